// Package chunker splits document text into overlapping windows suitable for
// independent embedding and retrieval.
package chunker

import (
	"errors"
	"strings"
)

const (
	DefaultChunkSize = 1000
	DefaultOverlap   = 200

	// minChunkLen is the smallest trimmed chunk worth embedding. Shorter
	// fragments are discarded.
	minChunkLen = 50
)

var (
	ErrInvalidChunkSize = errors.New("chunk size must be positive")
	ErrInvalidOverlap   = errors.New("overlap must be smaller than chunk size")
)

// Chunk is one window of the source text. Start and End are rune offsets of
// the untrimmed window, half-open [Start, End).
type Chunk struct {
	Content string
	Start   int
	End     int
}

// Split cuts text into windows of size runes, each overlapping the previous
// one by overlap runes. Windows whose trimmed content is minChunkLen runes or
// shorter are dropped. An empty result is a valid outcome, not an error.
func Split(text string, size, overlap int) ([]Chunk, error) {
	if size <= 0 {
		return nil, ErrInvalidChunkSize
	}
	if overlap < 0 || overlap >= size {
		return nil, ErrInvalidOverlap
	}

	runes := []rune(text)
	var chunks []Chunk

	start := 0
	for start < len(runes) {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}

		content := strings.TrimSpace(string(runes[start:end]))
		if len([]rune(content)) > minChunkLen {
			chunks = append(chunks, Chunk{
				Content: content,
				Start:   start,
				End:     end,
			})
		}

		if end >= len(runes) {
			break
		}
		start = end - overlap
	}

	return chunks, nil
}
