package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-digest/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch, summarize and cache recent papers once",
	Long: `Fetch runs the list pipeline a single time: it queries arXiv for papers from
the last --days days, summarizes each one, replaces the cache, and prints the
result.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		papers, err := a.digest.List(cmd.Context())
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")
		return printPapers(cmd.OutOrStdout(), papers, asJSON)
	},
}

func init() {
	fetchCmd.Flags().Int("days", 0, "recency window in days (overrides source.days_back)")
	fetchCmd.Flags().Bool("json", false, "output results as JSON")
	bindFlag(fetchCmd, "source.days_back", "days")

	rootCmd.AddCommand(fetchCmd)
}

func printPapers(w io.Writer, papers []types.SummarizedPaper, asJSON bool) error {
	if asJSON {
		if papers == nil {
			papers = []types.SummarizedPaper{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(papers)
	}
	if len(papers) == 0 {
		_, err := fmt.Fprintln(w, "No recent papers found.")
		return err
	}
	for i, p := range papers {
		fmt.Fprintf(w, "%d. %s\n", i+1, p.Title)
		fmt.Fprintf(w, "   %s | %s\n", strings.Join(p.Authors, ", "), p.Published.UTC().Format("2006-01-02"))
		fmt.Fprintf(w, "   %s\n", p.PDFURL)
		for _, line := range strings.Split(strings.TrimSpace(p.Summary), "\n") {
			fmt.Fprintf(w, "   %s\n", line)
		}
		fmt.Fprintln(w)
	}
	return nil
}

// bindFlag lets a command flag override a config key, but only when set.
func bindFlag(cmd *cobra.Command, key, flag string) {
	_ = viper.BindPFlag(key, cmd.Flags().Lookup(flag))
}
