package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	internal "github.com/feldspar-ai/textprep/textprep"
	"github.com/feldspar-ai/textprep/textprep/config"
	"github.com/feldspar-ai/textprep/textprep/textproc"
	"github.com/feldspar-ai/textprep/textprep/vectorizer"
)

// LoadRecords reads text/label pairs from a delimited file. A header row is
// used to locate the "text" and "label" columns when present; otherwise the
// first two columns are taken in that order. Blank rows are skipped.
func LoadRecords(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	textCol, labelCol := 0, 1
	var records []Record
	row := 0

	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading dataset line %d: %w", row+1, err)
		}
		if len(rec) < 2 {
			row++
			continue
		}
		if row == 0 {
			if cols, ok := headerColumns(rec); ok {
				textCol, labelCol = cols[0], cols[1]
				row++
				continue
			}
		}

		text := strings.TrimSpace(rec[textCol])
		label := strings.TrimSpace(rec[labelCol])
		if text == "" || label == "" {
			row++
			continue
		}
		records = append(records, Record{Text: text, Label: label})
		row++
	}

	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}
	return records, nil
}

// headerColumns locates "text" and "label" columns in a candidate header row.
func headerColumns(rec []string) ([2]int, bool) {
	textCol, labelCol := -1, -1
	for i, field := range rec {
		switch strings.ToLower(strings.TrimSpace(field)) {
		case "text":
			textCol = i
		case "label":
			labelCol = i
		}
	}
	if textCol >= 0 && labelCol >= 0 {
		return [2]int{textCol, labelCol}, true
	}
	return [2]int{}, false
}

// LoadAndBuild loads records from a delimited file, derives the sequence
// length bound from the longest text, loads the configured stopword set,
// builds a vectorizer for the mode and returns a fully constructed manager.
//
// The observed maximum length is used as-is unless it exceeds the guard
// (1000 by default), in which case the bound collapses to the capped value
// (359 by default) to contain pathological outlier records.
func LoadAndBuild(path string, mode vectorizer.Mode, opts ...Option) (*SplitManager, error) {
	o := managerOptions{
		language:     internal.DefaultLanguage,
		seqLenGuard:  internal.DefaultSeqLenGuard,
		cappedSeqLen: internal.DefaultCappedSeqLen,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.seqLenGuard <= 0 {
		o.seqLenGuard = internal.DefaultSeqLenGuard
	}
	if o.cappedSeqLen <= 0 {
		o.cappedSeqLen = internal.DefaultCappedSeqLen
	}
	if o.language == "" {
		o.language = internal.DefaultLanguage
	}

	records, err := LoadRecords(path)
	if err != nil {
		return nil, err
	}

	seqLen := 0
	for _, r := range records {
		if n := utf8.RuneCountInString(r.Text); n > seqLen {
			seqLen = n
		}
	}
	if seqLen > o.seqLenGuard {
		slog.Warn("Longest text exceeds guard, capping sequence length",
			"observed", seqLen, "guard", o.seqLenGuard, "capped", o.cappedSeqLen)
		seqLen = o.cappedSeqLen
	}

	stopwords, err := textproc.LoadStopwords(o.language, o.stopwordFile)
	if err != nil {
		return nil, err
	}

	samples := make([]vectorizer.Sample, len(records))
	for i, r := range records {
		samples[i] = vectorizer.Sample{Text: r.Text, Label: r.Label}
	}

	var vecOpts []vectorizer.Option
	if o.wordpieceVocab != "" {
		vecOpts = append(vecOpts, vectorizer.WithWordPieceVocab(o.wordpieceVocab))
	}
	vec, err := vectorizer.FromCollection(samples, mode, seqLen, vecOpts...)
	if err != nil {
		return nil, fmt.Errorf("building vectorizer: %w", err)
	}

	return New(records, vec, stopwords, opts...)
}

// FromConfig builds a manager from application configuration.
func FromConfig(cfg *config.Config) (*SplitManager, error) {
	p := cfg.Prep
	return LoadAndBuild(p.DataPath, vectorizer.Mode(p.VectorizerMode),
		WithSeed(p.SplitSeed),
		WithLanguage(p.Language),
		WithStopwordFile(p.StopwordFile),
		WithWordPieceVocab(p.WordpieceVocab),
		WithSeqLenGuard(p.MaxSeqLenGuard, p.CappedSeqLen),
	)
}

// BatchConfigFromConfig derives batch-stream settings from application
// configuration.
func BatchConfigFromConfig(cfg *config.Config) BatchConfig {
	p := cfg.Prep
	return BatchConfig{
		BatchSize: p.BatchSize,
		Shuffle:   p.Shuffle,
		DropLast:  p.DropLast,
		Device:    p.Device,
		Workers:   p.Workers,
	}
}
