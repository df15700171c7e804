// Package tokenizer counts and splits text on BPE token boundaries.
//
// Splitting encodes the whole text once, slices the token stream into
// fixed-size windows, and decodes each window back to a string. Byte-level
// BPE decoding is lossless, so with zero overlap the windows are contiguous
// and concatenating them reproduces the input exactly.
package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is the BPE table used when none is configured. cl100k_base
// is the GPT-4 family tokenizer and a reasonable size proxy for other
// modern models.
const DefaultEncoding = "cl100k_base"

// SplitError reports a tokenizer failure: the encoding could not be loaded
// or the split parameters are invalid.
type SplitError struct {
	Err error
}

func (e *SplitError) Error() string {
	return fmt.Sprintf("split failed: %v", e.Err)
}

func (e *SplitError) Unwrap() error {
	return e.Err
}

// Codec encodes and decodes text with a fixed BPE encoding. Safe for
// concurrent use.
type Codec struct {
	enc *tiktoken.Tiktoken
}

// New loads the named encoding. An empty name selects DefaultEncoding.
func New(encoding string) (*Codec, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, &SplitError{Err: fmt.Errorf("failed to load encoding %q: %w", encoding, err)}
	}
	return &Codec{enc: enc}, nil
}

// Count returns the number of tokens in text. Special-token sequences such
// as "<|endoftext|>" count as ordinary tokens instead of failing.
func (c *Codec) Count(text string) int {
	if text == "" {
		return 0
	}
	return len(c.enc.Encode(text, []string{"all"}, nil))
}

// Split cuts text into pieces of at most chunkTokens tokens. Consecutive
// pieces share overlapTokens tokens; with zero overlap the pieces are
// contiguous and joining them reproduces text byte for byte. Text at or
// under the chunk size comes back as a single piece.
func (c *Codec) Split(text string, chunkTokens, overlapTokens int) ([]string, error) {
	if chunkTokens <= 0 {
		return nil, &SplitError{Err: fmt.Errorf("chunk size must be positive, got %d", chunkTokens)}
	}
	if overlapTokens < 0 || overlapTokens >= chunkTokens {
		return nil, &SplitError{Err: fmt.Errorf("overlap %d out of range for chunk size %d", overlapTokens, chunkTokens)}
	}

	tokens := c.enc.Encode(text, []string{"all"}, nil)
	if len(tokens) <= chunkTokens {
		return []string{text}, nil
	}

	step := chunkTokens - overlapTokens
	chunks := make([]string, 0, (len(tokens)+step-1)/step)
	for start := 0; start < len(tokens); start += step {
		end := start + chunkTokens
		if end > len(tokens) {
			end = len(tokens)
		}
		chunks = append(chunks, c.enc.Decode(tokens[start:end]))
		if end == len(tokens) {
			break
		}
	}
	return chunks, nil
}
