// Package video wraps the native window and offscreen-surface handles that a
// renderer is attached to. The wrappers reference-count the underlying handle
// so that a renderer sharing it can guarantee destruction order: renderer
// first, parent after, never the other way around.
//
// Window creation parameters are passed through to the driver unchanged; this
// package does not redesign them.
package video

import (
	"github.com/pkg/errors"

	"github.com/renderkit/renderkit/native"
)

const (
	WindowFullscreen = 1 << iota // fullscreen window
	WindowShown                  // window is visible
	WindowHidden                 // window is not visible
	WindowBorderless             // no window decoration
	WindowResizable              // window can be resized
	WindowMinimized              // window is minimized
	WindowMaximized              // window is maximized
)

const WindowPosUndefined = 0x1FFF0000
const WindowPosCentered = 0x2FFF0000

// maxWindowDim matches the native layer's hard window size cap.
const maxWindowDim = 16384

// Parent is a renderer-capable native parent: a window or an offscreen
// surface. Retain and Release manage the shared reference count; the native
// destroy call fires exactly once, at the last Release.
type Parent interface {
	ID() native.WindowID
	Driver() native.Driver
	Retain()
	Release()
}

// handle is the shared refcounted core of Window and Surface.
type handle struct {
	drv  native.Driver
	id   native.WindowID
	refs int
	dead bool
}

func (h *handle) ID() native.WindowID { return h.id }
func (h *handle) Driver() native.Driver { return h.drv }

func (h *handle) Retain() {
	if h.dead {
		panic("video: retain of destroyed handle")
	}
	h.refs++
}

func (h *handle) Release() {
	if h.dead {
		return
	}
	h.refs--
	if h.refs > 0 {
		return
	}
	h.dead = true
	h.drv.DestroyWindow(h.id)
}

// Window is a visible native window usable as a renderer parent.
type Window struct {
	handle
	title string
	w, h  int
	flags uint32
}

// CreateWindow creates a native window through the given driver. Degenerate
// sizes are clamped to 1; absurd sizes are rejected before touching the
// native layer. The returned window holds one reference.
func CreateWindow(drv native.Driver, title string, x, y, w, h int, flags uint32) (*Window, error) {
	if drv == nil {
		return nil, errors.New("invalid driver")
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w > maxWindowDim || h > maxWindowDim {
		return nil, errors.New("window too large")
	}

	id, err := drv.CreateWindow(title, x, y, w, h, flags)
	if err != nil {
		return nil, errors.Wrap(err, "could not create window")
	}
	return &Window{
		handle: handle{drv: drv, id: id, refs: 1},
		title:  title,
		w:      w,
		h:      h,
		flags:  flags,
	}, nil
}

// Title returns the window title given at creation.
func (w *Window) Title() string { return w.title }

// Size returns the window's client area size.
func (w *Window) Size() (int, int) { return w.w, w.h }

// Flags returns the creation flags.
func (w *Window) Flags() uint32 { return w.flags }

// Destroy releases the caller's reference. The native window is destroyed
// once every holder, including any renderer context, has released it.
func (w *Window) Destroy() { w.Release() }
