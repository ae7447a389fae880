// Package renderkit is a safe layer over an SDL-shaped native rendering
// stack. The native renderer object both draws and creates textures and
// carries a settable render target; this module splits those capabilities
// into a Canvas and TextureCreators sharing one refcounted context, binds
// texture lifetimes to the renderer that made them, and turns render-target
// switches into a scoped call that always restores the original target.
//
// All handles are confined to the thread that created them.
package renderkit

import (
	"github.com/pkg/errors"

	_ "github.com/renderkit/renderkit/driver/soft"
	"github.com/renderkit/renderkit/hint"
	"github.com/renderkit/renderkit/native"
	"github.com/renderkit/renderkit/render"
	"github.com/renderkit/renderkit/ticker"
	"github.com/renderkit/renderkit/video"
)

const (
	InitTimer = 1 << iota
	InitVideo
)

const InitEverything = InitTimer | InitVideo

// Init prepares the requested subsystems. Video initialization requires at
// least one registered render driver.
func Init(flags uint32) error {
	if flags&InitTimer > 0 {
		ticker.Initialize()
	}
	if flags&InitVideo > 0 && len(native.Drivers()) == 0 {
		return errors.New("no render drivers registered")
	}
	return nil
}

// Open creates a window on the hinted driver and wraps it in a canvas. The
// canvas owns the window; destroying the canvas destroys both.
func Open(title string, w, h int, hints hint.Hints) (*render.Canvas, error) {
	drv, err := pickDriver(hints)
	if err != nil {
		return nil, err
	}
	win, err := video.CreateWindow(drv, title, video.WindowPosCentered, video.WindowPosCentered, w, h, video.WindowShown)
	if err != nil {
		return nil, err
	}
	canvas, err := render.NewCanvas(win, hints.Flags())
	if err != nil {
		win.Destroy()
		return nil, err
	}
	// Hand the window over: the canvas context holds its own reference, so
	// destroying the canvas destroys both.
	win.Release()
	return canvas, nil
}

func pickDriver(hints hint.Hints) (native.Driver, error) {
	name := hints.Driver
	if name == "" {
		names := native.Drivers()
		if len(names) == 0 {
			return nil, errors.New("no render drivers registered")
		}
		name = names[0]
	}
	drv, err := native.Lookup(name)
	if err != nil && hints.SoftwareFallback && name != "soft" {
		return native.Lookup("soft")
	}
	return drv, err
}
