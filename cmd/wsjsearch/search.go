package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	searchindex "github.com/Bakhombisile02/search-engine"
)

func newSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Read one query per line from standard input, write ranked <doc_id> <score> lines to standard output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			indexDir, err := requiredString("index-dir")
			if err != nil {
				return err
			}
			return runSearch(indexDir, viper.GetString("document-store"), viper.GetInt("max-results"))
		},
	}
	cmd.Flags().String("index-dir", "", "directory containing the four index artifacts (WSJSEARCH_INDEX_DIR)")
	cmd.Flags().String("document-store", "", "document_store.jsonl used to build the index (accepted for interface parity, not read by the query path; WSJSEARCH_DOCUMENT_STORE)")
	cmd.Flags().Int("max-results", 0, "maximum number of results per query, 0 = unbounded (WSJSEARCH_MAX_RESULTS)")
	return cmd
}

func runSearch(indexDir, documentStore string, maxResults int) error {
	idx, stats, err := searchindex.Load(indexDir)
	if err != nil {
		// Spec §6 maps "missing or corrupt index" to exit code 2 as one
		// category, whether the artifact files are absent or malformed.
		return &cliError{code: exitCorruptIndex, err: fmt.Errorf("loading index from %s: %w", indexDir, err)}
	}
	slog.Debug("index loaded", "documents", stats.N, "terms", stats.NumTerms, "document_store", documentStore)

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		query := scanner.Text()
		matches := searchindex.Query(idx, query, maxResults)
		slog.Debug("query served", "query", query, "results", len(matches))
		for _, m := range matches {
			fmt.Fprintf(out, "%s %.4f\n", m.DocID, m.Score)
		}
	}
	if err := scanner.Err(); err != nil {
		return &cliError{code: exitIOError, err: fmt.Errorf("reading queries from stdin: %w", err)}
	}
	return nil
}
