package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSemanticVersion(t *testing.T) {
	v := ParseSemanticVersion("v1.85.2")
	require.NotNil(t, v.Major)
	require.NotNil(t, v.Minor)
	require.NotNil(t, v.Patch)
	assert.Equal(t, 1, *v.Major)
	assert.Equal(t, 85, *v.Minor)
	assert.Equal(t, 2, *v.Patch)

	v = ParseSemanticVersion("23.01.0.0")
	require.NotNil(t, v.Major)
	assert.Equal(t, 23, *v.Major)
	assert.Equal(t, 1, *v.Minor)
	assert.Equal(t, 0, *v.Patch)

	v = ParseSemanticVersion("")
	assert.Nil(t, v.Major)

	v = ParseSemanticVersion("latest")
	assert.Nil(t, v.Major)
}

func TestIsVersionString(t *testing.T) {
	assert.True(t, IsVersionString("1.0"))
	assert.True(t, IsVersionString("120.0.6099.130"))
	assert.False(t, IsVersionString("abc"))
	assert.False(t, IsVersionString(""))
}

func TestGetEnvDefault(t *testing.T) {
	t.Setenv("APPBRIDGE_TEST_ENV", "set")
	assert.Equal(t, "set", GetEnvDefault("APPBRIDGE_TEST_ENV", "default"))
	assert.Equal(t, "default", GetEnvDefault("APPBRIDGE_TEST_ENV_MISSING", "default"))
}

func TestSanitizeKey(t *testing.T) {
	assert.Equal(t, "catalog.yaml", SanitizeKey(" catalog.yaml "))
	assert.Equal(t, "data-catalog-winget.yaml", SanitizeKey("data/catalog winget.yaml"))
	assert.Equal(t, "12345678-1234", SanitizeKey("{12345678-1234}"))
}

func TestStringPtr(t *testing.T) {
	assert.Nil(t, StringPtr(""))
	require.NotNil(t, StringPtr("x"))
	assert.Equal(t, "x", *StringPtr("x"))
}
