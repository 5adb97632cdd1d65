package draw

import (
	"io"
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/sshooter/internal/physics"
)

// Black is the background color.
var Black = colorful.Color{}

// BlockUpperHalf is the character every canvas cell is drawn with.
const BlockUpperHalf = '▀'

// Canvas is a color drawing buffer with 2x vertical resolution using
// half-block characters: each terminal cell shows two sub-pixels, the top one
// as the foreground of '▀' and the bottom one as its background.
// Supports scaling from logical coordinates to actual terminal pixels.
//
// Pixels keep their full color between frames so the caller can fade them
// for motion trails. Render only emits the cells whose 24-bit color changed
// since the previous Render.
type Canvas struct {
	termWidth      int              // Actual terminal columns
	termHeight     int              // Actual terminal rows
	subPixelHeight int              // termHeight * 2
	pixels         []colorful.Color // Flat slice: [y * termWidth + x]
	drawn          []cell           // What the terminal currently shows, per cell

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area. These are 0-based terminal
	// offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	numBuf [20]byte // Scratch buffer for allocation-free integer formatting
}

// rgb is a color quantized to what the terminal can show.
type rgb struct {
	r, g, b uint8
}

// cell is the pair of colors shown by one terminal cell.
type cell struct {
	top, bottom rgb
	valid       bool // false forces the cell to be emitted
}

func quantize(c colorful.Color) rgb {
	r, g, b := c.Clamped().RGB255()
	return rgb{r, g, b}
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by the game.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping the
// logical size. The whole canvas is cleared and redrawn on the next Render.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)

	c.termWidth = termWidth
	c.termHeight = termHeight
	c.subPixelHeight = termHeight * 2
	c.pixels = make([]colorful.Color, c.subPixelHeight*termWidth)
	c.drawn = make([]cell, termWidth*termHeight)

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// Letterbox fits a logical area of logicalW x logicalH into a terminal of
// termCols x termRows cells, where one cell spans cellW x cellH logical
// pixels at scale 1. It returns the largest canvas size in cells that keeps
// the aspect ratio, and the 0-based offsets that center it.
func Letterbox(termCols, termRows int, logicalW, logicalH, cellW, cellH float64) (cols, rows, offCol, offRow int) {
	termCols = max(termCols, 1)
	termRows = max(termRows, 1)
	scale := min(float64(termCols)*cellW/logicalW, float64(termRows)*cellH/logicalH)

	cols = min(max(int(math.Round(logicalW*scale/cellW)), 1), termCols)
	rows = min(max(int(math.Round(logicalH*scale/cellH)), 1), termRows)
	return cols, rows, (termCols - cols) / 2, (termRows - rows) / 2
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.Invalidate()
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Invalidate forgets what the terminal shows so the next Render emits every
// cell. Call it after anything else has written over the canvas area.
func (c *Canvas) Invalidate() {
	clear(c.drawn)
}

// Fade blends every pixel toward black by alpha, leaving a fading trail of
// whatever was drawn before.
func (c *Canvas) Fade(alpha float64) {
	if alpha <= 0 {
		return
	}
	for i, p := range c.pixels {
		c.pixels[i] = p.BlendRgb(Black, alpha)
	}
}

// blendPixel mixes col into the pixel at terminal coordinates (no scaling).
func (c *Canvas) blendPixel(x, y int, col colorful.Color, alpha float64) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return
	}
	i := y*c.termWidth + x
	if alpha >= 1 {
		c.pixels[i] = col
		return
	}
	c.pixels[i] = c.pixels[i].BlendRgb(col, alpha)
}

// FillCircle fills the circle of logical radius r centered at logical (x,y),
// blending col over the existing pixels with the given opacity. A pixel is
// covered when its center lies inside the circle. Circles too small to cover
// any pixel center still paint the pixel under their center.
func (c *Canvas) FillCircle(x, y, r float64, col colorful.Color, alpha float64) {
	if alpha <= 0 || r <= 0 {
		return
	}
	alpha = min(alpha, 1)

	minX := int(math.Floor((x - r) * c.scaleX))
	maxX := int(math.Ceil((x + r) * c.scaleX))
	minY := int(math.Floor((y - r) * c.scaleY))
	maxY := int(math.Ceil((y + r) * c.scaleY))

	minX, maxX = max(minX, 0), min(maxX, c.termWidth-1)
	minY, maxY = max(minY, 0), min(maxY, c.subPixelHeight-1)

	covered := false
	for py := minY; py <= maxY; py++ {
		cy := (float64(py) + 0.5) / c.scaleY
		for px := minX; px <= maxX; px++ {
			if physics.PointInCircle((float64(px)+0.5)/c.scaleX, cy, x, y, r) {
				c.blendPixel(px, py, col, alpha)
				covered = true
			}
		}
	}

	if !covered {
		c.blendPixel(int(math.Floor(x*c.scaleX)), int(math.Floor(y*c.scaleY)), col, alpha)
	}
}

// Render writes the changed cells to w as positioned, colored half-blocks.
// Each row of consecutive changed cells needs a single cursor move.
func (c *Canvas) Render(w io.Writer) error {
	buf := make([]byte, 0, 4096)
	emitted := false

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth
		cursorCol := -1 // Column the cursor sits at, -1 when unknown

		for col := 0; col < c.termWidth; col++ {
			next := cell{
				top:    quantize(c.pixels[topOffset+col]),
				bottom: quantize(c.pixels[bottomOffset+col]),
				valid:  true,
			}
			idx := row*c.termWidth + col
			if c.drawn[idx] == next {
				continue
			}
			c.drawn[idx] = next

			if cursorCol != col {
				buf = c.appendCursor(buf, col+1+c.offsetCol, row+1+c.offsetRow)
			}
			buf = c.appendColor(buf, "\033[38;2;", next.top)
			buf = c.appendColor(buf, "\033[48;2;", next.bottom)
			buf = append(buf, string(BlockUpperHalf)...)
			cursorCol = col + 1
			emitted = true

			if len(buf) >= maxChunkSize {
				if _, err := w.Write(buf); err != nil {
					return err
				}
				buf = buf[:0]
			}
		}
	}

	if emitted {
		buf = append(buf, colorReset...)
	}
	if len(buf) == 0 {
		return nil
	}
	_, err := w.Write(buf)
	return err
}

func (c *Canvas) appendCursor(buf []byte, col, row int) []byte {
	buf = append(buf, "\033["...)
	buf = append(buf, strconv.AppendInt(c.numBuf[:0], int64(row), 10)...)
	buf = append(buf, ';')
	buf = append(buf, strconv.AppendInt(c.numBuf[:0], int64(col), 10)...)
	return append(buf, 'H')
}

func (c *Canvas) appendColor(buf []byte, prefix string, v rgb) []byte {
	buf = append(buf, prefix...)
	buf = append(buf, strconv.AppendUint(c.numBuf[:0], uint64(v.r), 10)...)
	buf = append(buf, ';')
	buf = append(buf, strconv.AppendUint(c.numBuf[:0], uint64(v.g), 10)...)
	buf = append(buf, ';')
	buf = append(buf, strconv.AppendUint(c.numBuf[:0], uint64(v.b), 10)...)
	return append(buf, 'm')
}

// LogicalWidth returns the logical width.
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height.
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// TerminalToLogical converts a 1-based terminal position, as reported by
// mouse events, to the logical point at the center of that cell. ok is false
// when the position lies outside the canvas.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64, ok bool) {
	px := col - 1 - c.offsetCol
	cy := row - 1 - c.offsetRow
	if px < 0 || px >= c.termWidth || cy < 0 || cy >= c.termHeight {
		return 0, 0, false
	}
	x = (float64(px) + 0.5) / c.scaleX
	y = (float64(cy*2) + 1) / c.scaleY
	return x, y, true
}
