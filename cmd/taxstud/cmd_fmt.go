package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"taxstud/internal/store"
)

var fmtOutput string

// fmtCmd loads and re-saves a data file, normalizing formatting
var fmtCmd = &cobra.Command{
	Use:   "fmt [file]",
	Short: "Reformat a data file",
	Long: `Loads a data file through the full validation pipeline and writes it
back pretty-printed. Unrecognized fields are preserved verbatim, so this is
safe on files carrying extensions the model does not know about.`,
	Args: cobra.ExactArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().StringVarP(&fmtOutput, "output", "o", "", "write to this path instead of overwriting")
}

func runFmt(cmd *cobra.Command, args []string) error {
	path := args[0]

	data, _, err := store.Load(path)
	if err != nil {
		return err
	}

	target := fmtOutput
	if target == "" {
		target = path
	}
	if err := store.Save(data, target); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", target)
	return nil
}
