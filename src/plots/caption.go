package plots

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	// captionStripPx is the height reserved under the figure for Caption.
	captionStripPx  = 24
	captionMarginPx = 8
)

var captionBand = color.RGBA{R: 32, G: 32, B: 32, A: 255}

// Caption returns a copy of img with text in white on a dark band across its bottom captionStripPx
// rows. Text wider than the band is cut and ends in "...".
func Caption(img image.Image, text string) image.Image {
	text = strings.TrimSpace(text)
	if img == nil || text == "" {
		return img
	}
	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, img, b.Min, draw.Src)

	band := image.Rect(b.Min.X, max(b.Min.Y, b.Max.Y-captionStripPx), b.Max.X, b.Max.Y)
	draw.Draw(out, band, image.NewUniform(captionBand), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	d := &font.Drawer{Dst: out, Src: image.White, Face: face}
	text = fitText(d, text, band.Dx()-2*captionMarginPx)
	m := face.Metrics()
	baseline := band.Min.Y + (band.Dy()+m.Ascent.Ceil()-m.Descent.Ceil())/2
	d.Dot = fixed.P(band.Min.X+captionMarginPx, baseline)
	d.DrawString(text)
	return out
}

// fitText shortens text rune by rune until it, plus "...", fits in maxPx.
func fitText(d *font.Drawer, text string, maxPx int) string {
	if d.MeasureString(text).Ceil() <= maxPx {
		return text
	}
	r := []rune(text)
	for len(r) > 0 && d.MeasureString(string(r)+"...").Ceil() > maxPx {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
