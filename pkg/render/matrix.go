package render

import (
	"fmt"
	"image"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/host/v3"

	"gitlab.com/tinyland/lab/sportsboard/pkg/board"
)

// Matrix drives a chained NRZ LED panel over SPI. The panel is addressed as
// a single strip in serpentine order: even rows run left to right, odd rows
// right to left.
type Matrix struct {
	drawer display.Drawer
	port   spi.PortCloser
	rows   int
	cols   int
}

// NewMatrix opens the first available SPI port and attaches a rows x cols
// NRZ LED device to it. Any failure here means no panel is reachable; the
// caller decides whether that is fatal or a reason to fall back to the
// console target.
func NewMatrix(rows, cols int) (*Matrix, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("render: init periph host: %w", err)
	}
	port, err := spireg.Open("")
	if err != nil {
		return nil, fmt.Errorf("render: open SPI port: %w", err)
	}

	opts := nrzled.DefaultOpts
	opts.NumPixels = rows * cols
	opts.Channels = 3
	dev, err := nrzled.NewSPI(port, &opts)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("render: attach LED device: %w", err)
	}

	return &Matrix{drawer: dev, port: port, rows: rows, cols: cols}, nil
}

// Name returns "matrix".
func (m *Matrix) Name() string { return "matrix" }

// Present rasterizes the frame and pushes it to the panel. An error here is
// an unrecoverable driver fault: with no panel there is no scoreboard, so
// the scheduler propagates it and exits.
func (m *Matrix) Present(f board.Frame) error {
	img := Rasterize(f, m.cols, m.rows)
	strip := Serpentine(img)
	if err := m.drawer.Draw(m.drawer.Bounds(), strip, image.Point{}); err != nil {
		return fmt.Errorf("render: draw frame to panel: %w", err)
	}
	return nil
}

// Close blanks the panel and releases the SPI port.
func (m *Matrix) Close() error {
	if err := m.drawer.Halt(); err != nil {
		m.port.Close()
		return fmt.Errorf("render: halt LED device: %w", err)
	}
	return m.port.Close()
}

// Serpentine flattens a 2D panel image into the 1 x (w*h) strip image the
// LED chain expects, reversing every odd row.
func Serpentine(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	strip := image.NewRGBA(image.Rect(0, 0, w*h, 1))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sx := x
			if y%2 == 1 {
				sx = w - 1 - x
			}
			strip.Set(y*w+x, 0, img.At(b.Min.X+sx, b.Min.Y+y))
		}
	}
	return strip
}
