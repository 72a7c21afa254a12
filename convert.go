package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/appbridge/migration-backend/migration"
	"github.com/appbridge/migration-backend/model"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Convert a legacy application export into Win32 app settings",
		Long: `Convert a legacy application (JSON, or YAML with a .yaml/.yml extension)
into Win32 app settings and print them with the conversion warnings and the
validation of the resulting detection rules.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := readApplication(args[0])
			if err != nil {
				return err
			}

			result := migration.ConvertAppSettings(app)
			return printJSON(cmd.OutOrStdout(), model.ConvertResponse{
				Result:     result,
				Validation: migration.ValidateDetectionRules(result.DetectionRules),
			})
		},
	}
	return cmd
}

func readApplication(path string) (model.SccmApplication, error) {
	var app model.SccmApplication

	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return app, fmt.Errorf("reading %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &app)
	default:
		err = json.Unmarshal(data, &app)
	}
	if err != nil {
		return app, fmt.Errorf("parsing %s: %w", path, err)
	}
	return app, nil
}
