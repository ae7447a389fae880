// Package text rasterizes strings into textures: the companion the renderer
// ecosystem usually ships next to the core. A Face wraps a parsed TrueType
// font at a fixed size; rendering produces straight-alpha RGBA pixel data
// suitable for TextureCreator.CreateTextureFrom.
package text

import (
	"image"
	"image/color"

	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/renderkit/renderkit/native"
	"github.com/renderkit/renderkit/render"
)

// Face is a font at a fixed size.
type Face struct {
	font *truetype.Font
	face font.Face
}

// NewFace parses TrueType font data and prepares a face at the given point
// size.
func NewFace(ttf []byte, size float64) (*Face, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse font")
	}
	face := truetype.NewFace(f, &truetype.Options{Size: size, Hinting: font.HintingFull})
	return &Face{font: f, face: face}, nil
}

// Close releases the face's glyph cache.
func (f *Face) Close() error {
	return f.face.Close()
}

// Measure returns the pixel size of s when rendered with this face.
func (f *Face) Measure(s string) (w, h int) {
	m := f.face.Metrics()
	return font.MeasureString(f.face, s).Ceil(), (m.Ascent + m.Descent).Ceil()
}

// Render draws s in the given color onto a transparent background and
// returns the raster. The caller owns the image.
func (f *Face) Render(s string, c native.Color) *image.RGBA {
	w, h := f.Measure(s)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}),
		Face: f.face,
		Dot:  fixed.Point26_6{X: 0, Y: f.face.Metrics().Ascent},
	}
	d.DrawString(s)
	return img
}

// CreateTexture renders s and uploads it as a static RGBA texture through
// the given creator. The texture's blend mode is set to alpha blending so
// the glyph edges composite correctly when copied.
func CreateTexture(tc *render.TextureCreator, f *Face, s string, c native.Color) (*render.Texture, error) {
	img := f.Render(s, c)
	b := img.Bounds()
	t, err := tc.CreateTextureFrom(native.PixelFormatRGBA8888, b.Dx(), b.Dy(), img.Pix, img.Stride)
	if err != nil {
		return nil, err
	}
	if err := t.SetBlendMode(native.BlendModeBlend); err != nil {
		t.Destroy()
		return nil, err
	}
	return t, nil
}
