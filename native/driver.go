package native

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// Driver is a rendering backend: the raw window and renderer creation entry
// points. Implementations live under driver/.
type Driver interface {
	Name() string

	// CreateWindow creates a native window (or offscreen parent) and returns
	// its raw handle. Window creation parameters are passed through opaquely.
	CreateWindow(title string, x, y, w, h int, flags uint32) (WindowID, error)

	// DestroyWindow releases a window handle. Calling it while a renderer
	// created from the window is still alive is undefined; the video layer
	// orders destruction so that never happens.
	DestroyWindow(id WindowID) error

	// CreateRenderer attaches a renderer to a window. Fails when the backend
	// is unavailable or incompatible with the parent.
	CreateRenderer(parent WindowID, flags uint32) (Renderer, error)

	Info() RendererInfo
}

// Renderer is the raw renderer object: it both draws and creates textures,
// with a settable render target. It has no notion of ownership; the render
// package layers that on top.
type Renderer interface {
	CreateTexture(format PixelFormat, access TextureAccess, w, h int) (TextureID, error)
	CreateTextureFrom(format PixelFormat, w, h int, pix []byte, pitch int) (TextureID, error)
	UpdateTexture(id TextureID, region *Rect, pix []byte, pitch int) error
	QueryTexture(id TextureID) (TextureInfo, error)
	SetTextureColorMod(id TextureID, r, g, b uint8) error
	SetTextureAlphaMod(id TextureID, a uint8) error
	SetTextureBlendMode(id TextureID, mode BlendMode) error

	// DestroyTexture releases one texture. A stale or already-destroyed
	// handle is an error, not undefined behavior.
	DestroyTexture(id TextureID) error

	// SetTarget redirects drawing to the given texture; the zero TextureID
	// restores the default target.
	SetTarget(id TextureID) error

	// Target returns the currently active render target.
	Target() TextureID

	SetDrawColor(c Color)
	SetDrawBlendMode(mode BlendMode)
	Clear() error
	DrawPoint(p Point) error
	DrawLine(a, b Point) error
	DrawRect(r Rect) error
	FillRect(r Rect) error
	Copy(id TextureID, src, dst *Rect) error
	Present() error

	// Destroy releases the renderer and every texture still alive on it.
	Destroy()
}

var (
	driversMu sync.Mutex
	drivers   = make(map[string]Driver)
)

// Register makes a driver available by name. It panics on a duplicate name,
// matching the registration-at-init convention.
func Register(d Driver) {
	driversMu.Lock()
	defer driversMu.Unlock()
	if d == nil {
		panic("native: Register driver is nil")
	}
	if _, dup := drivers[d.Name()]; dup {
		panic("native: Register called twice for driver " + d.Name())
	}
	drivers[d.Name()] = d
}

// Lookup returns the registered driver with the given name.
func Lookup(name string) (Driver, error) {
	driversMu.Lock()
	defer driversMu.Unlock()
	d, ok := drivers[name]
	if !ok {
		return nil, errors.Errorf("unknown render driver %q", name)
	}
	return d, nil
}

// Drivers lists the registered driver names, sorted.
func Drivers() []string {
	driversMu.Lock()
	defer driversMu.Unlock()
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
