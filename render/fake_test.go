package render

import (
	"github.com/pkg/errors"

	"github.com/renderkit/renderkit/native"
)

// fakeDriver is a counting native layer: it records create and destroy
// calls, the full render-target history, and can be told to fail specific
// entry points.
type fakeDriver struct {
	windows        map[native.WindowID]bool
	nextWin        native.WindowID
	windowDestroys int
	destroyOrder   []string

	failCreateRenderer bool
	r                  *fakeRenderer
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{windows: map[native.WindowID]bool{}}
}

func (d *fakeDriver) Name() string { return "fake" }

func (d *fakeDriver) Info() native.RendererInfo {
	return native.RendererInfo{Name: "fake", Flags: native.RendererSoftware | native.RendererTargetTexture}
}

func (d *fakeDriver) CreateWindow(title string, x, y, w, h int, flags uint32) (native.WindowID, error) {
	d.nextWin++
	d.windows[d.nextWin] = true
	return d.nextWin, nil
}

func (d *fakeDriver) DestroyWindow(id native.WindowID) error {
	if !d.windows[id] {
		return errors.New("invalid window handle")
	}
	delete(d.windows, id)
	d.windowDestroys++
	d.destroyOrder = append(d.destroyOrder, "window")
	return nil
}

func (d *fakeDriver) CreateRenderer(parent native.WindowID, flags uint32) (native.Renderer, error) {
	if d.failCreateRenderer {
		return nil, errors.New("backend unavailable")
	}
	if !d.windows[parent] {
		return nil, errors.New("invalid window handle")
	}
	d.r = &fakeRenderer{
		d:        d,
		flags:    flags,
		textures: map[native.TextureID]native.TextureInfo{},
	}
	return d.r, nil
}

type fakeRenderer struct {
	d     *fakeDriver
	flags uint32

	textures    map[native.TextureID]native.TextureInfo
	nextTex     uint32
	texCreates  int
	texDestroys int

	target        native.TextureID
	targetHistory []native.TextureID

	draws     int
	presents  int
	destroys  int
	destroyed bool

	failSetTarget   bool
	failResetTarget bool
}

func (r *fakeRenderer) CreateTexture(format native.PixelFormat, access native.TextureAccess, w, h int) (native.TextureID, error) {
	if w <= 0 || h <= 0 {
		return 0, errors.New("invalid texture dimensions")
	}
	r.nextTex++
	id := native.MakeTextureID(r.nextTex, 1)
	r.textures[id] = native.TextureInfo{Format: format, Access: access, W: w, H: h}
	r.texCreates++
	return id, nil
}

func (r *fakeRenderer) CreateTextureFrom(format native.PixelFormat, w, h int, pix []byte, pitch int) (native.TextureID, error) {
	return r.CreateTexture(format, native.AccessStatic, w, h)
}

func (r *fakeRenderer) UpdateTexture(id native.TextureID, region *native.Rect, pix []byte, pitch int) error {
	if _, ok := r.textures[id]; !ok {
		return errors.New("invalid texture handle")
	}
	return nil
}

func (r *fakeRenderer) QueryTexture(id native.TextureID) (native.TextureInfo, error) {
	info, ok := r.textures[id]
	if !ok {
		return native.TextureInfo{}, errors.New("invalid texture handle")
	}
	return info, nil
}

func (r *fakeRenderer) SetTextureColorMod(id native.TextureID, red, g, b uint8) error {
	if _, ok := r.textures[id]; !ok {
		return errors.New("invalid texture handle")
	}
	return nil
}

func (r *fakeRenderer) SetTextureAlphaMod(id native.TextureID, a uint8) error {
	if _, ok := r.textures[id]; !ok {
		return errors.New("invalid texture handle")
	}
	return nil
}

func (r *fakeRenderer) SetTextureBlendMode(id native.TextureID, mode native.BlendMode) error {
	if _, ok := r.textures[id]; !ok {
		return errors.New("invalid texture handle")
	}
	return nil
}

func (r *fakeRenderer) DestroyTexture(id native.TextureID) error {
	if _, ok := r.textures[id]; !ok {
		return errors.New("invalid texture handle")
	}
	delete(r.textures, id)
	r.texDestroys++
	return nil
}

func (r *fakeRenderer) SetTarget(id native.TextureID) error {
	if id.IsZero() {
		if r.failResetTarget {
			return errors.New("reset target failed")
		}
		r.target = 0
		r.targetHistory = append(r.targetHistory, 0)
		return nil
	}
	if r.failSetTarget {
		return errors.New("render targets not supported")
	}
	if _, ok := r.textures[id]; !ok {
		return errors.New("invalid texture handle")
	}
	r.target = id
	r.targetHistory = append(r.targetHistory, id)
	return nil
}

func (r *fakeRenderer) Target() native.TextureID { return r.target }

func (r *fakeRenderer) SetDrawColor(c native.Color) {}
func (r *fakeRenderer) SetDrawBlendMode(mode native.BlendMode) {}

func (r *fakeRenderer) Clear() error {
	r.draws++
	return nil
}

func (r *fakeRenderer) DrawPoint(p native.Point) error {
	r.draws++
	return nil
}

func (r *fakeRenderer) DrawLine(a, b native.Point) error {
	r.draws++
	return nil
}

func (r *fakeRenderer) DrawRect(rc native.Rect) error {
	r.draws++
	return nil
}

func (r *fakeRenderer) FillRect(rc native.Rect) error {
	r.draws++
	return nil
}

func (r *fakeRenderer) Copy(id native.TextureID, src, dst *native.Rect) error {
	if _, ok := r.textures[id]; !ok {
		return errors.New("invalid texture handle")
	}
	r.draws++
	return nil
}

func (r *fakeRenderer) Present() error {
	r.presents++
	return nil
}

func (r *fakeRenderer) Destroy() {
	if r.destroyed {
		return
	}
	r.destroyed = true
	r.destroys++
	// The native layer destroys all textures with their renderer.
	for id := range r.textures {
		delete(r.textures, id)
	}
	r.d.destroyOrder = append(r.d.destroyOrder, "renderer")
}

var (
	_ native.Driver   = (*fakeDriver)(nil)
	_ native.Renderer = (*fakeRenderer)(nil)
)
