// Package soft is the software rendering backend: every window and texture
// is an RGBA raster in memory. It exercises the whole native surface without
// needing a display, and optionally hands finished frames to a Presenter
// (the framebuffer driver plugs in there).
//
// Pixel semantics: all rasters hold straight (non-premultiplied) RGBA bytes
// and compositing is done in straight alpha, matching the ABI's channel
// conventions.
package soft

import (
	"image"

	"github.com/pkg/errors"

	"github.com/renderkit/renderkit/native"
	"github.com/renderkit/renderkit/ticker"
)

const maxTextureDim = 16384

// Presenter receives finished frames from Present.
type Presenter interface {
	Present(frame *image.RGBA) error
	Close() error
}

// Driver implements native.Driver with an in-memory raster per window.
type Driver struct {
	name      string
	presenter Presenter
	refresh   int
	windows   map[native.WindowID]*window
	nextWin   native.WindowID
}

type window struct {
	id    native.WindowID
	title string
	w, h  int
	flags uint32
	frame *image.RGBA
}

// Option configures a Driver.
type Option func(*Driver)

// WithName overrides the registered driver name. Used by presenting
// front-ends like driver/fb.
func WithName(name string) Option {
	return func(d *Driver) { d.name = name }
}

// WithPresenter routes Present calls to p.
func WithPresenter(p Presenter) Option {
	return func(d *Driver) { d.presenter = p }
}

// WithRefreshRate sets the rate vsync renderers pace to. Default 60.
func WithRefreshRate(hz int) Option {
	return func(d *Driver) { d.refresh = hz }
}

// New creates a software driver.
func New(opts ...Option) *Driver {
	d := &Driver{
		name:    "soft",
		refresh: 60,
		windows: make(map[native.WindowID]*window),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func init() {
	native.Register(New())
}

func (d *Driver) Name() string { return d.name }

func (d *Driver) Info() native.RendererInfo {
	return native.RendererInfo{
		Name:  d.name,
		Flags: native.RendererSoftware | native.RendererTargetTexture | native.RendererPresentVSync,
		TextureFormats: []native.PixelFormat{
			native.PixelFormatRGBA8888,
			native.PixelFormatARGB8888,
			native.PixelFormatRGB888,
		},
		MaxTextureWidth:  maxTextureDim,
		MaxTextureHeight: maxTextureDim,
	}
}

func (d *Driver) CreateWindow(title string, x, y, w, h int, flags uint32) (native.WindowID, error) {
	if w < 1 || h < 1 || w > maxTextureDim || h > maxTextureDim {
		return 0, errors.New("invalid window size")
	}
	d.nextWin++
	win := &window{
		id:    d.nextWin,
		title: title,
		w:     w,
		h:     h,
		flags: flags,
		frame: image.NewRGBA(image.Rect(0, 0, w, h)),
	}
	d.windows[win.id] = win
	return win.id, nil
}

func (d *Driver) DestroyWindow(id native.WindowID) error {
	if _, ok := d.windows[id]; !ok {
		return errors.New("invalid window handle")
	}
	delete(d.windows, id)
	return nil
}

func (d *Driver) CreateRenderer(parent native.WindowID, flags uint32) (native.Renderer, error) {
	win, ok := d.windows[parent]
	if !ok {
		return nil, errors.New("invalid window handle")
	}
	if flags&native.RendererAccelerated != 0 {
		return nil, errors.New("no accelerated renderer available")
	}
	r := &renderer{d: d, win: win, flags: flags, color: native.Color{A: 255}}
	if flags&native.RendererPresentVSync != 0 {
		r.limiter = ticker.NewLimiter(d.refresh)
	}
	return r, nil
}

// Frame returns the live framebuffer of a window. Callers must treat it as
// read-only; it is the renderer's working surface.
func (d *Driver) Frame(id native.WindowID) (*image.RGBA, error) {
	win, ok := d.windows[id]
	if !ok {
		return nil, errors.New("invalid window handle")
	}
	return win.frame, nil
}
