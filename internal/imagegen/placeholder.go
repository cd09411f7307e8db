package imagegen

import (
	"bytes"
	"context"
	"fmt"
	"hash/fnv"
	"image"
	"image/png"
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// Placeholder paints a deterministic vertical gradient instead of calling a
// remote model. The same seed always yields the same image.
type Placeholder struct {
	Width  int
	Height int
	// Delay simulates model latency
	Delay time.Duration
}

// NewPlaceholder returns a 9:16 placeholder generator
func NewPlaceholder() *Placeholder {
	return &Placeholder{Width: 270, Height: 480}
}

// Generate renders the gradient for req.Seed
func (p *Placeholder) Generate(ctx context.Context, req Request) (*Image, error) {
	if p.Delay > 0 {
		timer := time.NewTimer(p.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w, h := p.Width, p.Height
	if w <= 0 || h <= 0 {
		w, h = 270, 480
	}

	seed := req.Seed
	if seed == "" {
		seed = req.Prompt
	}
	img := Gradient(seed, w, h)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode placeholder: %w", err)
	}
	return &Image{Data: buf.Bytes(), MIMEType: DefaultMIMEType}, nil
}

// Gradient builds the seeded gradient image. Two hues are derived from the
// seed hash and blended in Lab space from top to bottom, with a soft glow
// whose centre also comes from the seed.
func Gradient(seed string, w, h int) *image.RGBA {
	hash := fnv.New64a()
	hash.Write([]byte(seed))
	sum := hash.Sum64()

	hueTop := float64(sum % 360)
	hueBase := math.Mod(hueTop+60+float64((sum>>9)%180), 360)
	top := colorful.Hcl(hueTop, 0.35, 0.22).Clamped()
	base := colorful.Hcl(hueBase, 0.55, 0.08).Clamped()
	glow := colorful.Hcl(hueTop, 0.6, 0.7).Clamped()

	cx := 0.2 + 0.6*float64((sum>>20)%100)/100
	cy := 0.2 + 0.5*float64((sum>>30)%100)/100

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		t := float64(y) / float64(max(h-1, 1))
		row := top.BlendLab(base, t)
		for x := 0; x < w; x++ {
			dx := float64(x)/float64(w) - cx
			dy := (float64(y)/float64(h) - cy) * 16 / 9
			d := math.Sqrt(dx*dx + dy*dy)
			strength := math.Max(0, 0.35-d) / 0.35 * 0.4
			c := row.BlendLab(glow, strength).Clamped()
			r, g, b := c.RGB255()
			off := img.PixOffset(x, y)
			img.Pix[off] = r
			img.Pix[off+1] = g
			img.Pix[off+2] = b
			img.Pix[off+3] = 0xff
		}
	}
	return img
}
