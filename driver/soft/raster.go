package soft

import (
	"image"
	"image/color"

	"github.com/renderkit/renderkit/native"
)

// Straight-alpha compositing. The stdlib's draw.Over assumes premultiplied
// color, which the ABI's pixel data is not, so the blend equations are
// written out here.

func rgba(c native.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// blendPx composites one straight-alpha pixel onto img. Out-of-bounds
// coordinates are clipped silently.
func blendPx(img *image.RGBA, x, y int, c native.Color, mode native.BlendMode) {
	if !(image.Point{X: x, Y: y}.In(img.Bounds())) {
		return
	}
	if mode == native.BlendModeNone {
		img.SetRGBA(x, y, rgba(c))
		return
	}
	d := img.RGBAAt(x, y)
	img.SetRGBA(x, y, blendRGBA(c.R, c.G, c.B, c.A, d, mode))
}

func blendRGBA(sr, sg, sb, sa uint8, d color.RGBA, mode native.BlendMode) color.RGBA {
	switch mode {
	case native.BlendModeBlend:
		// dst = src*srcA + dst*(1-srcA)
		a := uint32(sa)
		na := 255 - a
		return color.RGBA{
			R: uint8((uint32(sr)*a + uint32(d.R)*na) / 255),
			G: uint8((uint32(sg)*a + uint32(d.G)*na) / 255),
			B: uint8((uint32(sb)*a + uint32(d.B)*na) / 255),
			A: uint8(a + uint32(d.A)*na/255),
		}
	case native.BlendModeAdd:
		// dst = src*srcA + dst
		a := uint32(sa)
		return color.RGBA{
			R: sat(uint32(d.R) + uint32(sr)*a/255),
			G: sat(uint32(d.G) + uint32(sg)*a/255),
			B: sat(uint32(d.B) + uint32(sb)*a/255),
			A: d.A,
		}
	case native.BlendModeMod:
		// dst = src*dst
		return color.RGBA{
			R: uint8(uint32(sr) * uint32(d.R) / 255),
			G: uint8(uint32(sg) * uint32(d.G) / 255),
			B: uint8(uint32(sb) * uint32(d.B) / 255),
			A: d.A,
		}
	}
	return color.RGBA{R: sr, G: sg, B: sb, A: sa}
}

func sat(v uint32) uint8 {
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// composite draws src onto dst at (dx,dy) applying the texture's color and
// alpha modulation and its blend mode.
func composite(dst *image.RGBA, dx, dy int, src *image.RGBA, mod native.Color, mode native.BlendMode) {
	b := src.Bounds()
	neutral := mod == native.Color{R: 255, G: 255, B: 255, A: 255}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			s := src.RGBAAt(b.Min.X+x, b.Min.Y+y)
			if !neutral {
				s.R = uint8(uint32(s.R) * uint32(mod.R) / 255)
				s.G = uint8(uint32(s.G) * uint32(mod.G) / 255)
				s.B = uint8(uint32(s.B) * uint32(mod.B) / 255)
				s.A = uint8(uint32(s.A) * uint32(mod.A) / 255)
			}
			tx, ty := dx+x, dy+y
			if !(image.Point{X: tx, Y: ty}.In(dst.Bounds())) {
				continue
			}
			if mode == native.BlendModeNone {
				dst.SetRGBA(tx, ty, s)
				continue
			}
			d := dst.RGBAAt(tx, ty)
			dst.SetRGBA(tx, ty, blendRGBA(s.R, s.G, s.B, s.A, d, mode))
		}
	}
}
