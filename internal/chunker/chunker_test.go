package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitWindowsAndOverlap(t *testing.T) {
	text := strings.Repeat("a", 2500)

	chunks, err := Split(text, 1000, 200)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	assert.Equal(t, 0, chunks[0].Start)
	assert.Equal(t, 1000, chunks[0].End)
	assert.Equal(t, 800, chunks[1].Start)
	assert.Equal(t, 1800, chunks[1].End)
	assert.Equal(t, 1600, chunks[2].Start)
	assert.Equal(t, 2500, chunks[2].End)
}

func TestSplitOverlappingCoverage(t *testing.T) {
	text := strings.Repeat("b", 5137)

	chunks, err := Split(text, 1000, 200)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	// Windows must cover the text with no gaps.
	assert.Equal(t, 0, chunks[0].Start)
	assert.Equal(t, len(text), chunks[len(chunks)-1].End)
	for i := 1; i < len(chunks); i++ {
		assert.LessOrEqual(t, chunks[i].Start, chunks[i-1].End,
			"gap between chunk %d and %d", i-1, i)
	}
}

func TestSplitShortTextSingleChunk(t *testing.T) {
	text := strings.Repeat("c", 300)

	chunks, err := Split(text, 1000, 200)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0].Content)
}

func TestSplitDropsTinyChunks(t *testing.T) {
	chunks, err := Split("  short note  ", 1000, 200)
	require.NoError(t, err)
	assert.Empty(t, chunks)

	// Exactly 50 runes after trimming is still too small.
	chunks, err = Split(strings.Repeat("d", 50), 1000, 200)
	require.NoError(t, err)
	assert.Empty(t, chunks)

	chunks, err = Split(strings.Repeat("d", 51), 1000, 200)
	require.NoError(t, err)
	assert.Len(t, chunks, 1)
}

func TestSplitEmptyInput(t *testing.T) {
	chunks, err := Split("", 1000, 200)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestSplitDropsTinyTrailingWindow(t *testing.T) {
	// 135 runes with size 100 / overlap 10 leaves a 45-rune trailing window,
	// which falls under the length filter.
	text := strings.Repeat("e", 135)

	chunks, err := Split(text, 100, 10)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, 0, chunks[0].Start)
	for _, c := range chunks {
		assert.Greater(t, len(c.Content), 50)
	}
}

func TestSplitValidation(t *testing.T) {
	_, err := Split("text", 0, 0)
	assert.ErrorIs(t, err, ErrInvalidChunkSize)

	_, err = Split("text", 100, 100)
	assert.ErrorIs(t, err, ErrInvalidOverlap)

	_, err = Split("text", 100, -1)
	assert.ErrorIs(t, err, ErrInvalidOverlap)
}
