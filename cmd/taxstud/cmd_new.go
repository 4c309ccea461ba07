package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"taxstud/internal/schema"
	"taxstud/internal/store"
	"taxstud/internal/taxonomy"
)

var newDataName string

// newCmd scaffolds a fresh schema/data file pair
var newCmd = &cobra.Command{
	Use:   "new [dir]",
	Short: "Scaffold a new taxonomy schema and data file pair",
	Long: `Creates schema.json and an empty data file in the given directory.
The schema carries a minimal hierarchy and one facet dimension; edit it
before adding items. Existing files are never overwritten.`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVar(&newDataName, "data-file", "items.json", "name of the data file to create")
}

func runNew(cmd *cobra.Command, args []string) error {
	dir := args[0]
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	schemaPath := filepath.Join(dir, "schema.json")
	dataPath := filepath.Join(dir, newDataName)
	for _, p := range []string{schemaPath, dataPath} {
		if _, err := os.Stat(p); err == nil {
			return fmt.Errorf("%s already exists", p)
		}
	}

	if err := store.SaveSchemaDoc(schema.DefaultDoc(), schemaPath); err != nil {
		return err
	}
	if err := store.Save(taxonomy.NewData("schema.json"), dataPath); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s and %s\n", schemaPath, dataPath)
	return nil
}
