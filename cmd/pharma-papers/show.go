package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pharma-papers/internal/search"
	"github.com/pdiddy/pharma-papers/internal/store"
	"github.com/pdiddy/pharma-papers/pkg/types"
)

var showCmd = &cobra.Command{
	Use:   "show [SAVED.yaml]",
	Short: "Print results from a saved search or a SQLite export",
	Long: `Show renders the papers of a search saved with --save, or of one run
exported with --db (select it with --db and --run). Nothing is re-queried.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringP("file", "f", "", "write results as CSV to this file (always CSV, regardless of --format)")
	showCmd.Flags().String("format", string(types.OutputTable), "stdout format: table, csv, or json")
	showCmd.Flags().String("db", "", "SQLite database written by search --db")
	showCmd.Flags().String("run", "", "run id inside --db")

	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	csvPath, _ := cmd.Flags().GetString("file")
	dbPath, _ := cmd.Flags().GetString("db")
	runID, _ := cmd.Flags().GetString("run")
	if err := checkOutput(types.OutputFormat(format), csvPath); err != nil {
		return err
	}

	var papers []types.Paper
	switch {
	case len(args) == 1:
		qf, err := search.ReadQueryFile(args[0])
		if err != nil {
			return err
		}
		papers = qf.Papers
	case dbPath != "" && runID != "":
		st, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()
		papers, err = st.Papers(cmd.Context(), runID)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("provide a saved search file, or --db with --run")
	}

	return writePapers(cmd.OutOrStdout(), papers, types.OutputFormat(format), csvPath)
}
