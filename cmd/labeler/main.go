package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/hcalazans/autovoz/internal/logging"
	"github.com/hcalazans/autovoz/internal/preprocess"
	"github.com/hcalazans/autovoz/internal/sentiment"
)

// labeler reads a CSV of raw mentions and writes it back with a cleaned
// text column and a heuristic sentiment label, producing a seed dataset
// for model fine-tuning.
func main() {
	inPath := flag.String("in", "", "input CSV path (required)")
	outPath := flag.String("out", "labeled.csv", "output CSV path")
	column := flag.String("column", "text", "name of the raw text column")
	lexiconPath := flag.String("lexicon", "", "optional YAML lexicon override")
	flag.Parse()

	logging.InitLogger()

	if *inPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	lexicon := sentiment.DefaultLexicon()
	if *lexiconPath != "" {
		var err error
		lexicon, err = sentiment.LoadLexicon(*lexiconPath)
		if err != nil {
			slog.Warn("[Labeler] Falling back to built-in lexicon",
				slog.String("path", *lexiconPath),
				slog.String("error", err.Error()))
		}
	}

	if err := run(*inPath, *outPath, *column, lexicon); err != nil {
		slog.Error("[Labeler] Failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(inPath, outPath, column string, lexicon sentiment.Lexicon) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	writer := csv.NewWriter(out)
	defer writer.Flush()

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	textIdx := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), column) {
			textIdx = i
			break
		}
	}
	if textIdx < 0 {
		return fmt.Errorf("column %q not found in header %v", column, header)
	}

	if err := writer.Write(append(header, "clean_text", "sentimento")); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	labeled := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read row: %w", err)
		}
		if textIdx >= len(row) {
			continue
		}

		clean := preprocess.RemoveStopwords(preprocess.Normalize(row[textIdx]))
		label := lexicon.LabelHeuristic(clean)

		if err := writer.Write(append(row, clean, string(label))); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
		labeled++
	}

	slog.Info("[Labeler] Done",
		slog.String("output", outPath),
		slog.Int("rows", labeled))
	return nil
}
