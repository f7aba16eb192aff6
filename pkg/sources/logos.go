package sources

import (
	"context"
	"image"

	"gitlab.com/tinyland/lab/sportsboard/pkg/board"
)

// LogoProvider resolves a team logo URL to a panel-sized image. The
// pkg/logos fetcher is the real implementation; sources treat it as
// optional and best-effort.
type LogoProvider interface {
	Logo(ctx context.Context, url string) (image.Image, error)
}

// AttachLogos fills in the frame's team logos from p. A nil provider, a
// missing URL, or a fetch failure leaves the corresponding logo nil; text
// targets never notice and bitmap targets simply skip compositing.
func AttachLogos(ctx context.Context, f *board.Frame, g board.Game, p LogoProvider) {
	if p == nil {
		return
	}
	if g.Away.LogoURL != "" {
		if img, err := p.Logo(ctx, g.Away.LogoURL); err == nil {
			f.AwayLogo = img
		}
	}
	if g.Home.LogoURL != "" {
		if img, err := p.Logo(ctx, g.Home.LogoURL); err == nil {
			f.HomeLogo = img
		}
	}
}
