package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
)

// parsedDocument is one line of document_store.jsonl (spec §6): at
// minimum doc_id and body. This upstream parser is explicitly a
// best-effort collaborator, not a conformant SGML parser (spec §1, §4.6)
// — it never feeds decisions back into the index library.
type parsedDocument struct {
	DocID string `json:"doc_id"`
	Body  string `json:"body"`
}

var (
	docBlockRe = regexp.MustCompile(`(?s)<DOC>(.*?)</DOC>`)
	docnoRe    = regexp.MustCompile(`(?s)<DOCNO>\s*(.*?)\s*</DOCNO>`)
	textRe     = regexp.MustCompile(`(?s)<TEXT>(.*?)</TEXT>`)
	tagRe      = regexp.MustCompile(`(?s)<[^>]*>`)
)

func newParseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <input.xml>",
		Short: "Extract (doc_id, body) records from a WSJ/TREC-style SGML document into document_store.jsonl",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputDir, err := requiredString("output-dir")
			if err != nil {
				return err
			}
			return runParse(args[0], outputDir)
		},
	}
	cmd.Flags().String("output-dir", "", "directory to write document_store.jsonl into (WSJSEARCH_OUTPUT_DIR)")
	return cmd
}

func runParse(inputPath, outputDir string) error {
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return &cliError{code: exitIOError, err: fmt.Errorf("reading %s: %w", inputPath, err)}
	}

	docs, err := extractDocuments(string(raw))
	if err != nil {
		return &cliError{code: exitMalformedInput, err: err}
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return &cliError{code: exitIOError, err: fmt.Errorf("creating %s: %w", outputDir, err)}
	}

	outPath := filepath.Join(outputDir, "document_store.jsonl")
	f, err := os.Create(outPath)
	if err != nil {
		return &cliError{code: exitIOError, err: fmt.Errorf("creating %s: %w", outPath, err)}
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, d := range docs {
		if err := enc.Encode(d); err != nil {
			return &cliError{code: exitIOError, err: fmt.Errorf("writing %s: %w", outPath, err)}
		}
	}
	if err := w.Flush(); err != nil {
		return &cliError{code: exitIOError, err: fmt.Errorf("flushing %s: %w", outPath, err)}
	}

	slog.Info("parsed document stream", "input", inputPath, "documents", len(docs), "output", outPath)
	return nil
}

// extractDocuments scans raw for <DOC>...</DOC> blocks, pulling a
// doc_id from <DOCNO> and a body from <TEXT>, stripping any remaining
// tags from the body text. Blocks missing a non-empty <DOCNO> are
// rejected as malformed.
func extractDocuments(raw string) ([]parsedDocument, error) {
	blocks := docBlockRe.FindAllStringSubmatch(raw, -1)
	if len(blocks) == 0 {
		return nil, errors.New("parse: no <DOC>...</DOC> blocks found in input")
	}

	docs := make([]parsedDocument, 0, len(blocks))
	for i, block := range blocks {
		content := block[1]

		docnoMatch := docnoRe.FindStringSubmatch(content)
		if docnoMatch == nil || strings.TrimSpace(docnoMatch[1]) == "" {
			return nil, fmt.Errorf("parse: document %d has no <DOCNO>", i)
		}
		docID := strings.TrimSpace(docnoMatch[1])

		body := content
		if textMatch := textRe.FindStringSubmatch(content); textMatch != nil {
			body = textMatch[1]
		}
		body = tagRe.ReplaceAllString(body, " ")
		body = strings.Join(strings.Fields(body), " ")

		docs = append(docs, parsedDocument{DocID: docID, Body: body})
	}
	return docs, nil
}
