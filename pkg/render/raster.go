package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"gitlab.com/tinyland/lab/sportsboard/pkg/board"
)

// logoSize is the square edge of a composited team logo on the panel.
const logoSize = 14

// Ink colors per line role on the panel.
var rasterColors = map[board.Role]color.RGBA{
	board.RoleScore:  {R: 255, G: 255, B: 255, A: 255},
	board.RoleStatus: {R: 255, G: 200, B: 40, A: 255},
	board.RoleDetail: {R: 150, G: 150, B: 150, A: 255},
	board.RoleLeader: {R: 60, G: 220, B: 160, A: 255},
	board.RoleNotice: {R: 240, G: 80, B: 80, A: 255},
}

// Rasterize draws a frame into a w x h bitmap for the LED panel: logos in
// the top corners when present, text lines stacked below, truncated when
// the panel runs out of rows.
func Rasterize(f board.Frame, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	top := 0
	if f.AwayLogo != nil || f.HomeLogo != nil {
		if f.AwayLogo != nil {
			blitLogo(img, f.AwayLogo, 0)
		}
		if f.HomeLogo != nil {
			blitLogo(img, f.HomeLogo, w-logoSize)
		}
		top = logoSize + 1
	}

	face := basicfont.Face7x13
	lineHeight := face.Height
	y := top + face.Ascent
	for _, line := range f.Lines {
		if y > h {
			break
		}
		ink, ok := rasterColors[line.Role]
		if !ok {
			ink = rasterColors[board.RoleDetail]
		}
		d := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(ink),
			Face: face,
			Dot:  fixed.P(1, y),
		}
		d.DrawString(line.Text)
		y += lineHeight
	}
	return img
}

// blitLogo resizes src to the logo square and copies it onto the panel at
// horizontal offset x.
func blitLogo(dst *image.RGBA, src image.Image, x int) {
	sized := src
	b := src.Bounds()
	if b.Dx() != logoSize || b.Dy() != logoSize {
		sized = imaging.Resize(src, logoSize, logoSize, imaging.Lanczos)
	}
	r := image.Rect(x, 0, x+logoSize, logoSize)
	draw.Draw(dst, r, sized, sized.Bounds().Min, draw.Over)
}
