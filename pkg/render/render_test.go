package render

import (
	"image"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/tinyland/lab/sportsboard/pkg/board"
)

func testFrame() board.Frame {
	return board.Frame{
		Source:    "nfl",
		CreatedAt: time.Date(2026, 1, 4, 13, 25, 0, 0, time.UTC),
		Lines: []board.Line{
			{Text: "BUF 24 - 27 KC", Role: board.RoleScore},
			{Text: "Q4 2:00", Role: board.RoleStatus},
		},
	}
}

func TestConsolePresentPlain(t *testing.T) {
	var out strings.Builder
	c := NewConsole(&out, WithStyled(false))

	require.NoError(t, c.Present(testFrame()))

	got := out.String()
	assert.Contains(t, got, "── NFL ── 13:25:00 ──")
	assert.Contains(t, got, "BUF 24 - 27 KC\n")
	assert.Contains(t, got, "Q4 2:00\n")
}

func TestConsolePresentStyled(t *testing.T) {
	var out strings.Builder
	c := NewConsole(&out, WithStyled(true))

	require.NoError(t, c.Present(testFrame()))
	assert.Contains(t, out.String(), "BUF 24 - 27 KC", "styled output keeps the text intact")
}

func TestConsoleNonFileWriterDefaultsUnstyled(t *testing.T) {
	c := NewConsole(&strings.Builder{})
	assert.False(t, c.styled)
}

func TestChannelTargetDeliversFrames(t *testing.T) {
	ch := NewChannelTarget()
	require.NoError(t, ch.Present(testFrame()))

	select {
	case f := <-ch.Frames():
		assert.Equal(t, "nfl", f.Source)
	default:
		t.Fatal("no frame available")
	}
}

func TestChannelTargetKeepsLatestFrame(t *testing.T) {
	ch := NewChannelTarget()

	first := testFrame()
	second := testFrame()
	second.Source = "mlb"
	require.NoError(t, ch.Present(first))
	require.NoError(t, ch.Present(second))

	select {
	case f := <-ch.Frames():
		assert.Equal(t, "mlb", f.Source, "older unconsumed frame should be displaced")
	default:
		t.Fatal("no frame available")
	}
}

func TestRasterizePaintsText(t *testing.T) {
	img := Rasterize(testFrame(), 64, 32)

	require.Equal(t, image.Rect(0, 0, 64, 32), img.Bounds())

	lit := 0
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r != 0 || g != 0 || b != 0 {
				lit++
			}
		}
	}
	assert.Positive(t, lit, "text should light pixels")
}

func TestRasterizeCompositesLogos(t *testing.T) {
	logo := image.NewRGBA(image.Rect(0, 0, logoSize, logoSize))
	for y := 0; y < logoSize; y++ {
		for x := 0; x < logoSize; x++ {
			logo.SetRGBA(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	f := testFrame()
	f.AwayLogo = logo
	f.HomeLogo = logo

	img := Rasterize(f, 64, 32)

	r, _, _, _ := img.At(0, 0).RGBA()
	assert.NotZero(t, r, "away logo in the top-left corner")
	r, _, _, _ = img.At(63, 0).RGBA()
	assert.NotZero(t, r, "home logo in the top-right corner")
}

func TestSerpentineReversesOddRows(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	// Encode each pixel's coordinates in its color channels.
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}

	strip := Serpentine(img)
	require.Equal(t, image.Rect(0, 0, 12, 1), strip.Bounds())

	at := func(i int) (x, y uint8) {
		c := strip.RGBAAt(i, 0)
		return c.R, c.G
	}

	// Row 0 reads left to right.
	x, y := at(0)
	assert.Equal(t, [2]uint8{0, 0}, [2]uint8{x, y})
	x, y = at(3)
	assert.Equal(t, [2]uint8{3, 0}, [2]uint8{x, y})

	// Row 1 reads right to left.
	x, y = at(4)
	assert.Equal(t, [2]uint8{3, 1}, [2]uint8{x, y})
	x, y = at(7)
	assert.Equal(t, [2]uint8{0, 1}, [2]uint8{x, y})

	// Row 2 flips back.
	x, y = at(8)
	assert.Equal(t, [2]uint8{0, 2}, [2]uint8{x, y})
}
