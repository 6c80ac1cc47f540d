package vectorizer

import (
	"bufio"
	"os"
	"strings"

	tk "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/model/wordpiece"
	"github.com/sugarme/tokenizer/normalizer"
	"github.com/sugarme/tokenizer/pretokenizer"
	"github.com/sugarme/tokenizer/processor"
)

// wordPieceEncoder wraps sugarme/tokenizer WordPiece (BERT-style) behind the
// fixed-length contract Vectorize expects.
type wordPieceEncoder struct {
	t      *tk.Tokenizer
	seqLen int
}

// newWordPieceEncoder loads vocab.txt and builds a BERT WordPiece tokenizer
// with the usual normalizer, pre-tokenizer and [CLS]/[SEP] post-processing.
func newWordPieceEncoder(vocabPath string, seqLen int) (*wordPieceEncoder, error) {
	wp, err := wordpiece.NewWordPieceFromFile(vocabPath, "[UNK]")
	if err != nil {
		return nil, err
	}

	t := tk.NewTokenizer(wp)
	t.WithNormalizer(normalizer.NewBertNormalizer(true, true, true, true))
	t.WithPreTokenizer(pretokenizer.NewBertPreTokenizer())

	clsID, sepID, err := specialTokenIDs(vocabPath)
	if err != nil {
		return nil, err
	}
	t.WithPostProcessor(processor.NewBertProcessing(
		processor.PostToken{Value: "[SEP]", Id: sepID},
		processor.PostToken{Value: "[CLS]", Id: clsID},
	))
	t.WithTruncation(&tk.TruncationParams{MaxLength: seqLen})
	t.WithPadding(&tk.PaddingParams{})

	return &wordPieceEncoder{t: t, seqLen: seqLen}, nil
}

// specialTokenIDs discovers [CLS]/[SEP] ids from vocab file line order,
// defaulting to the standard BERT ids when the tokens are absent.
func specialTokenIDs(vocabPath string) (clsID, sepID int, err error) {
	clsID, sepID = 101, 102

	f, err := os.Open(vocabPath)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	idx := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		tok := strings.TrimSpace(scanner.Text())
		if tok == "" {
			continue
		}
		switch tok {
		case "[CLS]":
			clsID = idx
		case "[SEP]":
			sepID = idx
		}
		idx++
	}
	return clsID, sepID, scanner.Err()
}

// encode produces exactly seqLen token ids, truncating or zero-padding the
// tokenizer output.
func (w *wordPieceEncoder) encode(text string) ([]float32, error) {
	enc, err := w.t.Encode(tk.NewSingleEncodeInput(tk.NewInputSequence(text)), true)
	if err != nil {
		return nil, err
	}

	out := make([]float32, w.seqLen)
	ids := enc.GetIds()
	n := len(ids)
	if n > w.seqLen {
		n = w.seqLen
	}
	for i := 0; i < n; i++ {
		out[i] = float32(ids[i])
	}
	return out, nil
}
