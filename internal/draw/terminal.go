package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/term"
)

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1400 bytes stays under a typical 1500 byte MTU for smooth SSH transmission.
const maxChunkSize = 1400

// ANSI control sequences.
const (
	colorReset   = "\033[0m"
	clearScreen  = "\033[H\033[2J"
	hideCursor   = "\033[?25l"
	showCursor   = "\033[?25h"
	altScreenOn  = "\033[?1049h"
	altScreenOff = "\033[?1049l"

	// Button press reporting (1000) in SGR encoding (1006)
	mouseOn  = "\033[?1000h\033[?1006h"
	mouseOff = "\033[?1006l\033[?1000l"

	// Focus in/out reporting
	focusOn  = "\033[?1004h"
	focusOff = "\033[?1004l"
)

// ChunkWriter accumulates text for terminal output and writes in chunks for optimal
// network flow (e.g. over SSH). Use MoveCursor, WriteString and WriteStyledAt to accumulate,
// then Flush to write to the underlying writer. Implements io.Writer for Canvas.Render.
type ChunkWriter struct {
	buf    strings.Builder
	bufw   *bufio.Writer // Buffers writes to underlying writer for fewer syscalls
	numBuf [20]byte      // Scratch buffer for allocation-free integer formatting
	offCol int
	offRow int
}

// Ensure ChunkWriter satisfies io.Writer.
var _ io.Writer = (*ChunkWriter)(nil)

// NewChunkWriter creates a ChunkWriter that writes to w. offsetCol and offsetRow
// are added to all MoveCursor coordinates (for canvas centering).
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		bufw:   bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the cursor offset (e.g. after terminal resize).
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// MoveCursor appends an ANSI cursor position sequence. col and row are 1-based
// canvas coordinates; offset is applied automatically.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.buf.WriteString("\033[")
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(row+cw.offRow), 10))
	cw.buf.WriteByte(';')
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(col+cw.offCol), 10))
	cw.buf.WriteByte('H')
}

// Write implements io.Writer for use with Canvas.Render.
func (cw *ChunkWriter) Write(p []byte) (n int, err error) {
	return cw.buf.Write(p)
}

// WriteString appends a string to the buffer.
func (cw *ChunkWriter) WriteString(s string) {
	cw.buf.WriteString(s)
}

// WriteStyledAt writes s at (col,row) in fg over bg, then resets the colors.
func (cw *ChunkWriter) WriteStyledAt(col, row int, s string, fg, bg colorful.Color) {
	cw.MoveCursor(col, row)
	cw.buf.WriteString(Style(fg, bg))
	cw.buf.WriteString(s)
	cw.buf.WriteString(colorReset)
}

// Flush writes the accumulated buffer to the underlying writer in chunks,
// then resets the buffer.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := cw.bufw.WriteString(chunk); err != nil {
			return err
		}
		if err := cw.bufw.Flush(); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return cw.bufw.Flush()
}

// Style returns the SGR sequence selecting truecolor fg and bg.
func Style(fg, bg colorful.Color) string {
	f, b := quantize(fg), quantize(bg)
	var sb strings.Builder
	sb.WriteString("\033[1;38;2;")
	writeRGB(&sb, f)
	sb.WriteString(";48;2;")
	writeRGB(&sb, b)
	sb.WriteByte('m')
	return sb.String()
}

func writeRGB(sb *strings.Builder, v rgb) {
	sb.WriteString(strconv.Itoa(int(v.r)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(v.g)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(v.b)))
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	io.WriteString(w, clearScreen)
}

// EnterGameMode switches to the alternate screen, hides the cursor and
// turns on mouse click and focus reporting.
func EnterGameMode(w io.Writer) {
	io.WriteString(w, altScreenOn+hideCursor+mouseOn+focusOn+clearScreen)
}

// ExitGameMode undoes EnterGameMode.
func ExitGameMode(w io.Writer) {
	io.WriteString(w, focusOff+mouseOff+colorReset+showCursor+altScreenOff)
}
