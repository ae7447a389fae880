package video

import (
	"github.com/pkg/errors"

	"github.com/renderkit/renderkit/native"
)

// Surface is an offscreen renderer parent: same refcounted lifetime
// discipline as Window, no display. Drivers model it as a hidden window.
type Surface struct {
	handle
	w, h int
}

// NewSurface creates an offscreen parent of the given size.
func NewSurface(drv native.Driver, w, h int) (*Surface, error) {
	if drv == nil {
		return nil, errors.New("invalid driver")
	}
	if w < 1 || h < 1 {
		return nil, errors.New("invalid surface size")
	}
	if w > maxWindowDim || h > maxWindowDim {
		return nil, errors.New("surface too large")
	}

	id, err := drv.CreateWindow("", 0, 0, w, h, WindowHidden)
	if err != nil {
		return nil, errors.Wrap(err, "could not create offscreen surface")
	}
	return &Surface{handle: handle{drv: drv, id: id, refs: 1}, w: w, h: h}, nil
}

// Size returns the surface size.
func (s *Surface) Size() (int, int) { return s.w, s.h }

// Destroy releases the caller's reference.
func (s *Surface) Destroy() { s.Release() }
