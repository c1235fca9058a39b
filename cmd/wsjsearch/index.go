package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	searchindex "github.com/Bakhombisile02/search-engine"
)

func newIndexCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index <document_store.jsonl>",
		Short: "Build an inverted index from a document_store.jsonl stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputDir, err := requiredString("output-dir")
			if err != nil {
				return err
			}
			return runIndex(args[0], outputDir, viper.GetInt("shards"))
		},
	}
	cmd.Flags().String("output-dir", "", "directory to write the four index artifacts into (WSJSEARCH_OUTPUT_DIR)")
	cmd.Flags().Int("shards", 1, "worker count for the sharded builder, 1 = sequential (WSJSEARCH_SHARDS)")
	return cmd
}

func runIndex(docStorePath, outputDir string, shards int) error {
	f, err := os.Open(docStorePath)
	if err != nil {
		return &cliError{code: exitIOError, err: fmt.Errorf("opening %s: %w", docStorePath, err)}
	}
	defer f.Close()

	start := time.Now()

	var idx *searchindex.InvertedIndex
	if shards <= 1 {
		idx, err = buildSequential(f)
	} else {
		idx, err = buildConcurrentFromStream(f, shards)
	}
	if err != nil {
		return mapBuildError(err)
	}

	buildMs := time.Since(start).Milliseconds()

	if err := searchindex.Save(outputDir, idx, buildMs); err != nil {
		return &cliError{code: exitIOError, err: fmt.Errorf("saving index to %s: %w", outputDir, err)}
	}

	slog.Info("build complete",
		"documents", idx.N(),
		"terms", idx.NumTerms(),
		"postings", idx.NumPostings(),
		"build_ms", buildMs,
		"output_dir", outputDir,
	)
	return nil
}

type docStoreRecord struct {
	DocID string `json:"doc_id"`
	Body  string `json:"body"`
}

func buildSequential(f *os.File) (*searchindex.InvertedIndex, error) {
	builder := searchindex.NewBuilder()
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		var rec docStoreRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", searchindex.ErrMalformedInput, lineNo, err)
		}
		if err := builder.Add(rec.DocID, rec.Body); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if lineNo%10000 == 0 {
			slog.Debug("indexing progress", "documents_seen", lineNo)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading document store: %v", searchindex.ErrIOError, err)
	}
	return builder.Build(), nil
}

func buildConcurrentFromStream(f *os.File, shards int) (*searchindex.InvertedIndex, error) {
	var docs []searchindex.Document
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		var rec docStoreRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", searchindex.ErrMalformedInput, lineNo, err)
		}
		docs = append(docs, searchindex.Document{DocID: rec.DocID, Body: rec.Body})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading document store: %v", searchindex.ErrIOError, err)
	}

	return searchindex.BuildSharded(docs, shards)
}

// mapBuildError translates a build error into the exit code spec §6
// assigns it: malformed input (1) or I/O failure (3). DuplicateDocId is
// also treated as malformed input — the build cannot proceed either way.
func mapBuildError(err error) error {
	switch {
	case errors.Is(err, searchindex.ErrMalformedInput), errors.Is(err, searchindex.ErrDuplicateDocID):
		return &cliError{code: exitMalformedInput, err: err}
	default:
		return &cliError{code: exitIOError, err: err}
	}
}
