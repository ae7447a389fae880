// Package render is the safe layer over the native renderer. It splits the
// raw renderer object into two cooperating handles: a Canvas, which draws,
// and any number of TextureCreators, which create textures. Both reference a
// shared context that destroys the native renderer exactly once, when the
// last holder goes away, and always before the parent window.
//
// Everything here is confined to the thread that created the parent window;
// none of these types may be shared across goroutines.
package render

import (
	"github.com/renderkit/renderkit/native"
	"github.com/renderkit/renderkit/video"
)

// sharedContext pairs the native renderer handle with a retained reference to
// its parent. It is shared by one Canvas and zero or more TextureCreators.
type sharedContext struct {
	r      native.Renderer
	parent video.Parent
	refs   int
	alive  bool
}

func newSharedContext(parent video.Parent, flags uint32) (*sharedContext, error) {
	drv := parent.Driver()
	r, err := drv.CreateRenderer(parent.ID(), flags)
	if err != nil {
		return nil, &RendererCreationError{Driver: drv.Name(), Err: err}
	}
	// The context takes its own parent reference, independent of the
	// caller's: even if the caller drops the window, the native window stays
	// alive until the renderer is gone.
	parent.Retain()
	return &sharedContext{r: r, parent: parent, refs: 1, alive: true}, nil
}

func (ctx *sharedContext) retain() {
	ctx.refs++
}

// release drops one holder. At zero the native renderer is destroyed, then
// the parent reference is let go, in that order. The destroy call fires at
// most once no matter how many holders existed.
func (ctx *sharedContext) release() {
	if !ctx.alive {
		return
	}
	ctx.refs--
	if ctx.refs > 0 {
		return
	}
	ctx.alive = false
	ctx.r.Destroy()
	ctx.parent.Release()
}
