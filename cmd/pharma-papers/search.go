package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pharma-papers/internal/extract"
	"github.com/pdiddy/pharma-papers/internal/logging"
	"github.com/pdiddy/pharma-papers/internal/pubmed"
	"github.com/pdiddy/pharma-papers/internal/search"
	"github.com/pdiddy/pharma-papers/internal/store"
	"github.com/pdiddy/pharma-papers/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search PubMed for papers with non-academic authors",
	Long: `Search runs a PubMed query, fetches up to --limit records in one request,
and keeps the papers where at least one author's affiliation contains a
commercial keyword. Failed requests are reported with --debug and produce an
empty result.

Examples:
  pharma-papers search "cancer immunotherapy"
  pharma-papers search "CRISPR" --year 2022,2023 -f results.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringP("file", "f", "", "write results as CSV to this file (always CSV, regardless of --format)")
	searchCmd.Flags().BoolP("debug", "d", false, "enable debug output")
	searchCmd.Flags().StringSlice("year", nil, "only keep papers published in these years (repeat or comma-separate)")
	searchCmd.Flags().Int("limit", pubmed.DefaultLimit, "maximum number of PubMed ids to fetch")
	searchCmd.Flags().String("format", string(types.OutputTable), "stdout format: table, csv, or json")
	searchCmd.Flags().String("save", "", "also save the query and results as YAML to this file")
	searchCmd.Flags().String("db", "", "also export the results to this SQLite database")

	viper.BindPFlag("limit", searchCmd.Flags().Lookup("limit"))

	rootCmd.AddCommand(searchCmd)
}

// searchConfig resolves flags, config file and environment into a
// SearchConfig.
func searchConfig(cmd *cobra.Command) types.SearchConfig {
	debug, _ := cmd.Flags().GetBool("debug")
	years, _ := cmd.Flags().GetStringSlice("year")

	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("timeout"),
			UserAgent: viper.GetString("user_agent"),
		},
		BaseURL:  viper.GetString("eutils_base"),
		Limit:    viper.GetInt("limit"),
		Years:    years,
		Email:    viper.GetString("email"),
		Tool:     viper.GetString("tool"),
		Debug:    debug,
		LogLevel: viper.GetString("log_level"),
	}
}

// newLogger returns the stderr logger for cfg. --debug wins over log_level.
func newLogger(cfg types.SearchConfig, cmd *cobra.Command) *slog.Logger {
	if cfg.Debug {
		return logging.New(cmd.ErrOrStderr(), true)
	}
	return logging.NewWithLevel(cmd.ErrOrStderr(), cfg.LogLevel)
}

// newService builds the E-utilities client for cfg, wrapped with call
// logging when logger has debug enabled.
func newService(cfg types.SearchConfig, logger *slog.Logger) pubmed.Service {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = pubmed.DefaultTimeout
	}
	client := pubmed.NewClient(
		pubmed.WithHTTPClient(&http.Client{Timeout: timeout}),
		pubmed.WithBaseURL(cfg.BaseURL),
		pubmed.WithUserAgent(cfg.UserAgent),
		pubmed.WithEmail(cfg.Email),
		pubmed.WithTool(cfg.Tool),
	)
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		return client
	}
	return pubmed.NewLoggingService(client, logger)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(args[0])
	if query == "" {
		return fmt.Errorf("query is empty: provide a PubMed search term")
	}

	format, _ := cmd.Flags().GetString("format")
	csvPath, _ := cmd.Flags().GetString("file")
	if err := checkOutput(types.OutputFormat(format), csvPath); err != nil {
		return err
	}
	savePath, _ := cmd.Flags().GetString("save")
	dbPath, _ := cmd.Flags().GetString("db")

	cfg := searchConfig(cmd)
	logger := newLogger(cfg, cmd)
	years := extract.NewYearFilter(cfg.Years)

	searcher := search.NewSearcher(newService(cfg, logger), extract.Default(logger), logger)
	out := searcher.SearchAndExtract(cmd.Context(), query, cfg.Limit, years)

	// Results are rendered first; a failing export must not hide them.
	errs := []error{writePapers(cmd.OutOrStdout(), out.Papers, types.OutputFormat(format), csvPath)}

	if savePath != "" {
		qf := search.NewQueryFile(query, cfg.Limit, years.Years(), out, time.Now().UTC())
		if err := search.WriteQueryFile(savePath, qf); err != nil {
			errs = append(errs, err)
		} else {
			logger.Debug("saved query file", "path", savePath)
		}
	}

	if dbPath != "" {
		run := store.Run{Query: query, Years: years.Years(), Limit: cfg.Limit}
		if err := exportRun(cmd, dbPath, run, out.Papers); err != nil {
			errs = append(errs, fmt.Errorf("exporting to %s: %w", dbPath, err))
		}
	}

	return errors.Join(errs...)
}

func exportRun(cmd *cobra.Command, dbPath string, run store.Run, papers []types.Paper) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := st.SaveRun(cmd.Context(), run, papers)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Exported run %s to %s\n", id, dbPath)
	return nil
}

// checkOutput validates --format and its combination with --file, which
// always writes CSV.
func checkOutput(format types.OutputFormat, csvPath string) error {
	switch format {
	case types.OutputTable, types.OutputCSV, types.OutputJSON:
	default:
		return fmt.Errorf("unknown format %q: use table, csv, or json", format)
	}
	if csvPath != "" && format == types.OutputJSON {
		return fmt.Errorf("--file writes CSV; drop --format json or write JSON to stdout")
	}
	return nil
}

// writePapers renders papers to w in format, or to csvPath when set.
func writePapers(w io.Writer, papers []types.Paper, format types.OutputFormat, csvPath string) error {
	if len(papers) == 0 {
		search.FormatConsole(nil, w)
		return nil
	}

	if csvPath != "" {
		if err := search.WriteCSVFile(csvPath, papers); err != nil {
			return fmt.Errorf("saving results: %w", err)
		}
		fmt.Fprintf(w, "Results saved to %s\n", csvPath)
		return nil
	}

	switch format {
	case types.OutputCSV:
		return search.FormatCSV(papers, w)
	case types.OutputJSON:
		return search.FormatJSON(papers, w)
	default:
		search.FormatConsole(papers, w)
		return nil
	}
}
