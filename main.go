// Package main provides the entry point for the appbridge migration backend:
// the API server with its job event consumer, and offline matching and
// conversion commands.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "appbridge",
	Short: "Legacy application migration backend",
	Long: `appbridge matches legacy and discovered applications against the WinGet
catalog, converts legacy deployment types into Win32 app settings and tracks
auto-update policies from packaging job outcomes.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMatchCmd())
	rootCmd.AddCommand(newConvertCmd())
	rootCmd.AddCommand(newEmitCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
