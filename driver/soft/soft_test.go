package soft

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renderkit/renderkit/native"
	"github.com/renderkit/renderkit/render"
	"github.com/renderkit/renderkit/video"
)

var (
	red   = native.Color{R: 255, A: 255}
	green = native.Color{G: 255, A: 255}
	blue  = native.Color{B: 255, A: 255}
)

func newNativeRenderer(t *testing.T, flags uint32) (*Driver, *renderer) {
	t.Helper()
	d := New()
	id, err := d.CreateWindow("test", 0, 0, 32, 32, 0)
	require.NoError(t, err)
	nr, err := d.CreateRenderer(id, flags)
	require.NoError(t, err)
	return d, nr.(*renderer)
}

func TestCreateRendererRejectsAccelerated(t *testing.T) {
	d := New()
	id, err := d.CreateWindow("test", 0, 0, 32, 32, 0)
	require.NoError(t, err)
	_, err = d.CreateRenderer(id, native.RendererAccelerated)
	assert.Error(t, err)
}

func TestGenerationCheckedHandles(t *testing.T) {
	_, r := newNativeRenderer(t, 0)

	id1, err := r.CreateTexture(native.PixelFormatRGBA8888, native.AccessStatic, 4, 4)
	require.NoError(t, err)
	require.NoError(t, r.DestroyTexture(id1))

	// Destroying again through the stale handle is an error, not slot
	// corruption.
	assert.Error(t, r.DestroyTexture(id1))
	_, err = r.QueryTexture(id1)
	assert.Error(t, err)

	// The slot is reused under a new generation; the stale handle still
	// misses.
	id2, err := r.CreateTexture(native.PixelFormatRGBA8888, native.AccessStatic, 4, 4)
	require.NoError(t, err)
	assert.Equal(t, id1.Index(), id2.Index())
	assert.NotEqual(t, id1.Generation(), id2.Generation())
	_, err = r.QueryTexture(id1)
	assert.Error(t, err)
	_, err = r.QueryTexture(id2)
	assert.NoError(t, err)
}

func TestCreateTextureRejectsDegenerateSize(t *testing.T) {
	_, r := newNativeRenderer(t, 0)
	_, err := r.CreateTexture(native.PixelFormatRGBA8888, native.AccessStatic, 0, 32)
	assert.Error(t, err)
	_, err = r.CreateTexture(native.PixelFormatRGBA8888, native.AccessStatic, 32, -1)
	assert.Error(t, err)
}

func TestNativeTargetRoundTrip(t *testing.T) {
	_, r := newNativeRenderer(t, native.RendererTargetTexture)

	id, err := r.CreateTexture(native.PixelFormatRGBA8888, native.AccessTarget, 8, 8)
	require.NoError(t, err)
	require.True(t, r.Target().IsZero())
	require.NoError(t, r.SetTarget(id))
	assert.Equal(t, id, r.Target())
	require.NoError(t, r.SetTarget(0))
	assert.True(t, r.Target().IsZero())
}

func TestSetTargetRequiresTargetAccess(t *testing.T) {
	_, r := newNativeRenderer(t, native.RendererTargetTexture)
	id, err := r.CreateTexture(native.PixelFormatRGBA8888, native.AccessStatic, 8, 8)
	require.NoError(t, err)
	assert.Error(t, r.SetTarget(id))
}

func TestDestroyingCurrentTargetResetsIt(t *testing.T) {
	_, r := newNativeRenderer(t, native.RendererTargetTexture)
	id, err := r.CreateTexture(native.PixelFormatRGBA8888, native.AccessTarget, 8, 8)
	require.NoError(t, err)
	require.NoError(t, r.SetTarget(id))
	require.NoError(t, r.DestroyTexture(id))
	assert.True(t, r.Target().IsZero())
}

func TestUpdateTextureBounds(t *testing.T) {
	_, r := newNativeRenderer(t, 0)
	id, err := r.CreateTexture(native.PixelFormatRGBA8888, native.AccessStreaming, 4, 4)
	require.NoError(t, err)

	pix := make([]byte, 4*4*4)
	assert.NoError(t, r.UpdateTexture(id, nil, pix, 4*4))
	assert.Error(t, r.UpdateTexture(id, &native.Rect{X: 2, Y: 2, W: 4, H: 4}, pix, 4*4))
	assert.Error(t, r.UpdateTexture(id, nil, pix[:8], 4*4))
}

func TestPixelFormatDecoding(t *testing.T) {
	_, r := newNativeRenderer(t, 0)

	argb, err := r.CreateTexture(native.PixelFormatARGB8888, native.AccessStreaming, 1, 1)
	require.NoError(t, err)
	require.NoError(t, r.UpdateTexture(argb, nil, []byte{0x80, 0x11, 0x22, 0x33}, 4))
	s, err := r.lookup(argb)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x80}, s.img.RGBAAt(0, 0))

	rgb, err := r.CreateTexture(native.PixelFormatRGB888, native.AccessStreaming, 1, 1)
	require.NoError(t, err)
	require.NoError(t, r.UpdateTexture(rgb, nil, []byte{0x11, 0x22, 0x33}, 3))
	s, err = r.lookup(rgb)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xFF}, s.img.RGBAAt(0, 0))
}

func TestFillRectBlendModes(t *testing.T) {
	_, r := newNativeRenderer(t, 0)
	full := native.Rect{W: 32, H: 32}

	r.SetDrawColor(native.Color{R: 100, G: 100, B: 100, A: 255})
	require.NoError(t, r.FillRect(full))

	// 50% black over grey.
	r.SetDrawBlendMode(native.BlendModeBlend)
	r.SetDrawColor(native.Color{A: 128})
	require.NoError(t, r.FillRect(full))
	got := r.win.frame.RGBAAt(0, 0)
	assert.InDelta(t, 50, int(got.R), 1)

	// Additive.
	r.SetDrawBlendMode(native.BlendModeAdd)
	r.SetDrawColor(native.Color{R: 250, A: 255})
	require.NoError(t, r.FillRect(full))
	assert.Equal(t, uint8(255), r.win.frame.RGBAAt(0, 0).R)
}

func TestDrawRectDegenerateOutlineBlendsOnce(t *testing.T) {
	_, r := newNativeRenderer(t, 0)
	r.SetDrawBlendMode(native.BlendModeAdd)
	r.SetDrawColor(native.Color{R: 100, A: 255})

	// A 1-high outline is a single row; each pixel gets one contribution,
	// not a top edge plus a coincident bottom edge.
	require.NoError(t, r.DrawRect(native.Rect{X: 2, Y: 2, W: 4, H: 1}))
	assert.Equal(t, uint8(100), r.win.frame.RGBAAt(3, 2).R)

	// Same for a 1-wide outline.
	require.NoError(t, r.DrawRect(native.Rect{X: 10, Y: 2, W: 1, H: 4}))
	assert.Equal(t, uint8(100), r.win.frame.RGBAAt(10, 4).R)
}

func TestCopyScalesNearest(t *testing.T) {
	_, r := newNativeRenderer(t, 0)
	id, err := r.CreateTexture(native.PixelFormatRGBA8888, native.AccessStatic, 2, 1)
	require.NoError(t, err)
	// Left pixel red, right pixel blue.
	require.NoError(t, r.UpdateTexture(id, nil, []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}, 8))

	require.NoError(t, r.Copy(id, nil, &native.Rect{W: 4, H: 2}))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, r.win.frame.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, r.win.frame.RGBAAt(1, 1))
	assert.Equal(t, color.RGBA{B: 255, A: 255}, r.win.frame.RGBAAt(2, 0))
	assert.Equal(t, color.RGBA{B: 255, A: 255}, r.win.frame.RGBAAt(3, 1))
}

func TestCopyHonorsColorMod(t *testing.T) {
	_, r := newNativeRenderer(t, 0)
	id, err := r.CreateTexture(native.PixelFormatRGBA8888, native.AccessStatic, 1, 1)
	require.NoError(t, err)
	require.NoError(t, r.UpdateTexture(id, nil, []byte{255, 255, 255, 255}, 4))
	require.NoError(t, r.SetTextureColorMod(id, 255, 0, 0))

	require.NoError(t, r.Copy(id, nil, &native.Rect{W: 1, H: 1}))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, r.win.frame.RGBAAt(0, 0))
}

// TestRenderToTextureScenario drives the whole stack: surface draw, scoped
// redirection into a texture, restoration, and pixel verification of both
// the texture contents and the window surface.
func TestRenderToTextureScenario(t *testing.T) {
	d := New()
	win, err := video.CreateWindow(d, "scenario", 0, 0, 32, 32, 0)
	require.NoError(t, err)
	canvas, err := render.NewCanvas(win, native.RendererTargetTexture)
	require.NoError(t, err)

	t1 := canvas.TextureCreator()
	t2 := canvas.TextureCreator()
	x, err := t1.CreateTexture(native.PixelFormatRGBA8888, native.AccessTarget, 8, 8)
	require.NoError(t, err)
	spare, err := t2.CreateTexture(native.PixelFormatRGBA8888, native.AccessStatic, 4, 4)
	require.NoError(t, err)
	defer spare.Destroy()

	// Draw a red rectangle to the window surface.
	require.NoError(t, canvas.SetDrawColor(red))
	require.NoError(t, canvas.FillRect(native.Rect{X: 2, Y: 2, W: 6, H: 6}))

	// Redirect into X: clear it blue, draw a green rectangle.
	require.NoError(t, canvas.WithTexture(x, func(tc *render.TextureCanvas) error {
		if err := tc.SetDrawColor(blue); err != nil {
			return err
		}
		if err := tc.Clear(); err != nil {
			return err
		}
		if err := tc.SetDrawColor(green); err != nil {
			return err
		}
		return tc.FillRect(native.Rect{X: 2, Y: 2, W: 4, H: 4})
	}))

	frame, err := d.Frame(win.ID())
	require.NoError(t, err)

	// The window surface kept its red rectangle; the texture scope did not
	// leak into it.
	assert.Equal(t, color.RGBA{R: 255, A: 255}, frame.RGBAAt(3, 3))

	// Drawing now hits the window again: the target was restored.
	require.NoError(t, canvas.SetDrawColor(native.Color{R: 255, G: 255, B: 255, A: 255}))
	require.NoError(t, canvas.DrawPoint(native.Point{X: 30, Y: 30}))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, frame.RGBAAt(30, 30))

	// X holds the expected pattern: blue border, green center.
	require.NoError(t, canvas.Copy(x, nil, &native.Rect{X: 16, Y: 16, W: 8, H: 8}))
	assert.Equal(t, color.RGBA{B: 255, A: 255}, frame.RGBAAt(16, 16))
	assert.Equal(t, color.RGBA{G: 255, A: 255}, frame.RGBAAt(19, 19))

	x.Destroy()
	t1.Destroy()
	t2.Destroy()
	canvas.Destroy()
	win.Destroy()
}

func TestUnsupportedTargetSurfacesAsTargetRenderError(t *testing.T) {
	d := New()
	win, err := video.CreateWindow(d, "no-target", 0, 0, 16, 16, 0)
	require.NoError(t, err)
	// Renderer created without render-target support.
	canvas, err := render.NewCanvas(win, 0)
	require.NoError(t, err)
	defer canvas.Destroy()

	tc := canvas.TextureCreator()
	defer tc.Destroy()
	tex, err := tc.CreateTexture(native.PixelFormatRGBA8888, native.AccessTarget, 8, 8)
	require.NoError(t, err)
	defer tex.Destroy()

	ran := 0
	err = canvas.WithTexture(tex, func(*render.TextureCanvas) error {
		ran++
		return nil
	})
	var terr *render.TargetRenderError
	assert.ErrorAs(t, err, &terr)
	assert.Zero(t, ran)
}
