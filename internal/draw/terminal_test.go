package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkWriterOffset(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)

	cw.MoveCursor(1, 1)
	cw.SetOffset(40, 3)
	cw.WriteStyledAt(2, 1, "hi", white, Black)
	require.NoError(t, cw.Flush())

	got := out.String()
	assert.True(t, strings.HasPrefix(got, "\033[1;1H"))
	assert.Contains(t, got, "\033[4;42H")
	assert.Contains(t, got, "hi"+colorReset)
}

func TestChunkWriterFlushesInChunks(t *testing.T) {
	var w countingWriter
	cw := NewChunkWriter(&w, 0, 0)
	ClearScreen(cw)
	cw.WriteString(strings.Repeat("x", 3*maxChunkSize))
	require.NoError(t, cw.Flush())

	assert.LessOrEqual(t, w.largest, maxChunkSize)
	assert.GreaterOrEqual(t, w.writes, 3)
}
