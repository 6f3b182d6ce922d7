package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pharma-papers/internal/affiliation"
	"github.com/pdiddy/pharma-papers/pkg/types"
)

var classifyCmd = &cobra.Command{
	Use:   "classify AFFILIATION...",
	Short: "Show how affiliation strings are classified",
	Long: `Classify runs the commercial-affiliation heuristic over each argument and
prints the verdict, the keywords that matched, and any email address found.
It makes no network requests.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	for _, aff := range args {
		matched := affiliation.Default.MatchedKeywords(aff)
		verdict := "academic"
		if len(matched) > 0 {
			verdict = "commercial (" + strings.Join(matched, ", ") + ")"
		}
		email, ok := affiliation.FindEmail(aff)
		if !ok {
			email = types.NotAvailable
		}
		fmt.Fprintf(w, "%s\n  classification: %s\n  email: %s\n", aff, verdict, email)
	}
	return nil
}
