// Package preview renders a palette as a PNG swatch sheet.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/jmylchreest/ansigen/internal/colour"
)

// Sheet geometry in pixels.
const (
	SwatchWidth  = 96
	SwatchHeight = 64
	Columns      = 8
	Margin       = 8
	TitleHeight  = 24
	SampleHeight = 20
)

// Colours is a full ANSI palette.
type Colours = [colour.PaletteSize]colour.RGB

// Size returns the sheet dimensions.
func Size() (width, height int) {
	rows := colour.PaletteSize / Columns
	width = Margin*2 + Columns*SwatchWidth
	height = Margin*2 + TitleHeight + rows*SwatchHeight + Margin + (colour.PaletteSize-1)*SampleHeight
	return width, height
}

// Render draws the sheet: a title, the swatches in two rows of eight labelled with index and hex,
// then a line of sample text for every foreground slot on the background (slot 0).
func Render(title string, c Colours) *image.RGBA {
	w, h := Size()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	bg := rgba(c[colour.Black])
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	drawText(img, face, Margin, Margin+face.Ascent+4, rgba(c[colour.White]), title)

	top := Margin + TitleHeight
	for i, col := range c {
		x := Margin + (i%Columns)*SwatchWidth
		y := top + (i/Columns)*SwatchHeight
		rect := image.Rect(x, y, x+SwatchWidth, y+SwatchHeight)
		draw.Draw(img, rect, image.NewUniform(rgba(col)), image.Point{}, draw.Src)

		label := labelColour(col)
		drawText(img, face, x+4, y+face.Ascent+4, label, fmt.Sprintf("%d %s", i, colour.SlotName(i)))
		drawText(img, face, x+4, y+SwatchHeight-6, label, col.Hex())
	}

	y := top + (colour.PaletteSize/Columns)*SwatchHeight + Margin
	for i := 1; i < colour.PaletteSize; i++ {
		text := fmt.Sprintf("%-10s The quick brown fox  %s", colour.SlotName(i), c[i].Hex())
		drawText(img, face, Margin, y+face.Ascent+2, rgba(c[i]), text)
		y += SampleHeight
	}
	return img
}

// Encode writes the sheet as PNG.
func Encode(w io.Writer, title string, c Colours) error {
	if err := png.Encode(w, Render(title, c)); err != nil {
		return fmt.Errorf("failed to encode preview: %w", err)
	}
	return nil
}

// Write renders the sheet to a PNG file, creating parent directories.
func Write(path, title string, c Colours) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 - output directories are user readable
			return fmt.Errorf("failed to create preview directory: %w", err)
		}
	}
	f, err := os.Create(path) // #nosec G304 - output path supplied by the user
	if err != nil {
		return fmt.Errorf("failed to create preview: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close preview: %w", cerr)
		}
	}()
	return Encode(f, title, c)
}

func rgba(c colour.RGB) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// labelColour picks black or white text, whichever has the larger APCA contrast on bg.
func labelColour(bg colour.RGB) color.RGBA {
	onBlack := colour.APCA(colour.RGBBlack, bg)
	onWhite := colour.APCA(colour.RGBWhite, bg)
	if math.Abs(onBlack) >= math.Abs(onWhite) {
		return color.RGBA{A: 0xff}
	}
	return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
}

func drawText(img draw.Image, face font.Face, x, y int, c color.Color, text string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
