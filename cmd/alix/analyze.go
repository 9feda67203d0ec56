package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Laisky/errors/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cognicore/alix/internal/corpus"
	"github.com/cognicore/alix/internal/log"
	"github.com/cognicore/alix/pkg/alix/store"
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze files...",
		Short: "analyze text or JSONL files",
		Long: `Analyze each file and print its token stream, or store it when
--db is given. Files ending in .jsonl hold one document per line.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			dbPath, _ := cmd.Flags().GetString("db")
			format, _ := cmd.Flags().GetString("format")
			if format != "tsv" && format != "json" {
				return errors.Errorf("unknown format `%s`", format)
			}

			engine, cleanup, err := buildEngine(cmd.Context(), configPath, dbPath)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			for _, path := range args {
				docs, err := corpus.Load(path)
				if err != nil {
					return err
				}
				for _, d := range docs {
					doc, err := engine.Analyze(cmd.Context(), d)
					if err != nil {
						return err
					}
					if dbPath != "" {
						log.Logger.Info("stored", zap.String("name", doc.Name), zap.String("id", doc.ID))
						fmt.Fprintf(out, "%s\t%s\t%d\n", doc.ID, doc.Name, len(doc.Tokens))
						continue
					}
					if err := writeDoc(out, format, doc); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().String("db", "", "SQLite database receiving the documents")
	cmd.Flags().String("format", "tsv", "`tsv/json` output when no database is given")
	return cmd
}

// jsonToken is the JSON form of a token.
type jsonToken struct {
	Position int    `json:"position"`
	PosLen   int    `json:"pos_len"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Kind     string `json:"kind"`
	Text     string `json:"text"`
	Orth     string `json:"orth,omitempty"`
	Lemma    string `json:"lemma,omitempty"`
	Tag      string `json:"tag"`
	Term     string `json:"term,omitempty"`
	TermID   int32  `json:"term_id,omitempty"`
}

type jsonDoc struct {
	Name   string      `json:"name"`
	Title  string      `json:"title,omitempty"`
	Tokens []jsonToken `json:"tokens"`
}

func writeDoc(w io.Writer, format string, doc store.Doc) error {
	if format == "json" {
		jd := jsonDoc{Name: doc.Name, Title: doc.Title, Tokens: make([]jsonToken, len(doc.Tokens))}
		for i, tok := range doc.Tokens {
			jd.Tokens[i] = jsonToken(tok)
		}
		return json.NewEncoder(w).Encode(jd)
	}

	if _, err := fmt.Fprintf(w, "# %s\n", doc.Name); err != nil {
		return err
	}
	for _, tok := range doc.Tokens {
		_, err := fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%s\t%s\t%s\t%s\t%s\t%d\n",
			tok.Position, tok.PosLen, tok.Start, tok.End,
			tsvField(tok.Text), tsvField(tok.Orth), tsvField(tok.Lemma), tok.Tag, tok.Kind, tok.TermID)
		if err != nil {
			return err
		}
	}
	return nil
}

func tsvField(s string) string {
	if s == "" {
		return "-"
	}
	return strings.NewReplacer("\t", " ", "\n", " ").Replace(s)
}
