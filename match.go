package main

import (
	"strings"

	"github.com/appbridge/migration-backend/matching"
	"github.com/appbridge/migration-backend/model"
	"github.com/spf13/cobra"
)

func newMatchCmd() *cobra.Command {
	var (
		publisher   string
		catalogFile string
	)

	cmd := &cobra.Command{
		Use:   "match NAME",
		Short: "Match an application name against a catalog",
		Long: `Match one observed application name against the bundled catalog, or the
YAML catalog given with --catalog, and print the match result as JSON.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog(catalogFile)
			if err != nil {
				return err
			}
			result := matching.Match(strings.Join(args, " "), publisher, catalog)
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&publisher, "publisher", "", "publisher of the application")
	cmd.Flags().StringVar(&catalogFile, "catalog", "", "YAML catalog file (default: bundled catalog)")
	return cmd
}

func loadCatalog(path string) ([]model.CandidateMapping, error) {
	if path == "" {
		return matching.DefaultCatalog(), nil
	}
	return matching.LoadCatalog(path)
}
