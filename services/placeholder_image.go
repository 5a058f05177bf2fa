// File: services/placeholder_image.go
package services

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"techevents-web/models"
)

// placeholder geometry
const (
	PlaceholderWidth  = 400
	PlaceholderHeight = 300
	placeholderScale  = 3
	placeholderLabel  = "TechEvents"
)

var (
	gradientFrom = color.RGBA{R: 0x4f, G: 0x46, B: 0xe5, A: 0xff}
	gradientTo   = color.RGBA{R: 0x93, G: 0x33, B: 0xea, A: 0xff}
)

// newImageID names generated files; tests may replace it.
var newImageID = uuid.NewString

// PlaceholderImage renders a PNG with a diagonal gradient and label centered
// on it. An empty label falls back to the site name.
func PlaceholderImage(label string) (models.ImageUpload, error) {
	if label == "" {
		label = placeholderLabel
	}

	img := image.NewRGBA(image.Rect(0, 0, PlaceholderWidth, PlaceholderHeight))
	fillDiagonalGradient(img, gradientFrom, gradientTo)
	drawCenteredLabel(img, label)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return models.ImageUpload{}, fmt.Errorf("encode placeholder: %w", err)
	}
	return models.ImageUpload{
		FileName:    "placeholder-" + newImageID() + ".png",
		ContentType: "image/png",
		Data:        buf.Bytes(),
	}, nil
}

// fillDiagonalGradient blends from the top-left corner to the bottom-right.
func fillDiagonalGradient(img *image.RGBA, from, to color.RGBA) {
	b := img.Bounds()
	span := b.Dx() + b.Dy() - 2
	if span <= 0 {
		span = 1
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			t := float64(x-b.Min.X+y-b.Min.Y) / float64(span)
			img.SetRGBA(x, y, color.RGBA{
				R: lerp(from.R, to.R, t),
				G: lerp(from.G, to.G, t),
				B: lerp(from.B, to.B, t),
				A: 0xff,
			})
		}
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}

// drawCenteredLabel writes label in white with the basic bitmap face, scaled
// up and shrunk to fit when the text is wider than the image.
func drawCenteredLabel(dst *image.RGBA, label string) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, label).Ceil()
	height := face.Metrics().Height.Ceil()
	if width == 0 {
		return
	}

	text := image.NewRGBA(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  text,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(0, face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(label)

	scale := float64(placeholderScale)
	maxWidth := float64(dst.Bounds().Dx()) * 0.9
	if float64(width)*scale > maxWidth {
		scale = maxWidth / float64(width)
	}
	w := int(float64(width) * scale)
	h := int(float64(height) * scale)
	if w < 1 || h < 1 {
		return
	}

	x := (dst.Bounds().Dx() - w) / 2
	y := (dst.Bounds().Dy() - h) / 2
	draw.NearestNeighbor.Scale(dst, image.Rect(x, y, x+w, y+h), text, text.Bounds(), draw.Over, nil)
}
