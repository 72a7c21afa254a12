package migration

import (
	"testing"

	"github.com/appbridge/migration-backend/model"
	"github.com/stretchr/testify/assert"
)

func TestConvertPath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"windir", `%windir%\System32\a.exe`, `%SystemRoot%\System32\a.exe`},
		{"case insensitive", `%WINDIR%\System32`, `%SystemRoot%\System32`},
		{"x86 program files", `%ProgramFiles(x86)%/Vendor/App/`, `%ProgramFiles(x86)%\Vendor\App`},
		{"program files", `%programfiles%\Vendor`, `%ProgramFiles%\Vendor`},
		{"common x86", `%COMMONPROGRAMFILES(X86)%\Shared`, `%CommonProgramFiles(x86)%\Shared`},
		{"local app data", `%localappdata%\Acme`, `%LocalAppData%\Acme`},
		{"tmp", `%TMP%\setup`, `%Temp%\setup`},
		{"drive root kept", `C:\`, `C:\`},
		{"drive root slash", `C:/`, `C:\`},
		{"trailing backslash", `C:\Program Files\Acme\`, `C:\Program Files\Acme`},
		{"no tokens", `D:\Tools\bin`, `D:\Tools\bin`},
		{"empty", ``, ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConvertPath(tt.in))
		})
	}
}

func TestConvertOperator(t *testing.T) {
	tests := map[string]model.DetectionOperator{
		"Equals":        model.OperatorEqual,
		"NotEquals":     model.OperatorNotEqual,
		"GreaterThan":   model.OperatorGreaterThan,
		"LessThan":      model.OperatorLessThan,
		"GreaterEquals": model.OperatorGreaterThanOrEqual,
		"LessEquals":    model.OperatorLessThanOrEqual,
		"":              model.OperatorEqual,
		"Between":       model.OperatorEqual,
		"equals":        model.OperatorEqual,
	}
	for in, want := range tests {
		assert.Equal(t, want, ConvertOperator(in), in)
	}
}

func TestConvertHive(t *testing.T) {
	assert.Equal(t, "HKEY_CLASSES_ROOT", ConvertHive("ClassesRoot"))
	assert.Equal(t, "HKEY_CURRENT_CONFIG", ConvertHive("CurrentConfig"))
	assert.Equal(t, "HKEY_CURRENT_USER", ConvertHive("CurrentUser"))
	assert.Equal(t, "HKEY_LOCAL_MACHINE", ConvertHive("LocalMachine"))
	assert.Equal(t, "HKEY_USERS", ConvertHive("Users"))
	assert.Equal(t, "HKEY_LOCAL_MACHINE", ConvertHive(""))
	assert.Equal(t, "HKEY_LOCAL_MACHINE", ConvertHive("HKCU"))
}
