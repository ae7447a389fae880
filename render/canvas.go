package render

import (
	"github.com/pkg/errors"

	"github.com/renderkit/renderkit/native"
	"github.com/renderkit/renderkit/video"
)

// painter carries the draw operations shared by Canvas and TextureCanvas.
// deny is consulted before every native call; it returns non-nil when the
// handle is unusable (destroyed, poisoned, expired scope, redirected).
type painter struct {
	ctx  *sharedContext
	deny func() error
}

// SetDrawColor sets the color used by Clear and the draw primitives.
func (p *painter) SetDrawColor(c native.Color) error {
	if err := p.deny(); err != nil {
		return err
	}
	p.ctx.r.SetDrawColor(c)
	return nil
}

// SetDrawBlendMode sets the blend mode used by the draw primitives.
func (p *painter) SetDrawBlendMode(mode native.BlendMode) error {
	if err := p.deny(); err != nil {
		return err
	}
	p.ctx.r.SetDrawBlendMode(mode)
	return nil
}

// Clear fills the current target with the draw color.
func (p *painter) Clear() error {
	if err := p.deny(); err != nil {
		return err
	}
	return errors.Wrap(p.ctx.r.Clear(), "clear failed")
}

// DrawPoint draws a single point with the draw color.
func (p *painter) DrawPoint(pt native.Point) error {
	if err := p.deny(); err != nil {
		return err
	}
	return errors.Wrap(p.ctx.r.DrawPoint(pt), "draw point failed")
}

// DrawLine draws a line between two points with the draw color.
func (p *painter) DrawLine(a, b native.Point) error {
	if err := p.deny(); err != nil {
		return err
	}
	return errors.Wrap(p.ctx.r.DrawLine(a, b), "draw line failed")
}

// DrawRect draws a rectangle outline with the draw color.
func (p *painter) DrawRect(r native.Rect) error {
	if err := p.deny(); err != nil {
		return err
	}
	return errors.Wrap(p.ctx.r.DrawRect(r), "draw rect failed")
}

// FillRect fills a rectangle with the draw color.
func (p *painter) FillRect(r native.Rect) error {
	if err := p.deny(); err != nil {
		return err
	}
	return errors.Wrap(p.ctx.r.FillRect(r), "fill rect failed")
}

// Copy blits a texture, or a region of it, onto the current target. The
// texture must come from a creator of the same renderer.
func (p *painter) Copy(t *Texture, src, dst *native.Rect) error {
	if err := p.deny(); err != nil {
		return err
	}
	if t == nil || t.destroyed {
		return errors.New("copy of destroyed texture")
	}
	if t.ctx != p.ctx {
		return errors.New("texture belongs to a different renderer")
	}
	return errors.Wrap(p.ctx.r.Copy(t.id, src, dst), "copy failed")
}

// Canvas is the unique drawing-capable handle of a renderer. Drawing always
// targets the parent window's surface; redirecting to a texture happens only
// inside WithTexture. A Canvas spawns TextureCreators but never needs one
// itself: drawing and texture creation are independent capabilities.
type Canvas struct {
	painter
	parent    video.Parent
	poison    error
	inScope   bool
	destroyed bool
}

// NewCanvas attaches a renderer to the parent and wraps it. The canvas
// retains its own parent reference, so the native window outlives the
// renderer no matter when the caller releases its reference. Creation
// failure returns *RendererCreationError and leaves no partial state.
func NewCanvas(parent video.Parent, flags uint32) (*Canvas, error) {
	if parent == nil {
		return nil, &RendererCreationError{Err: errors.New("nil parent")}
	}
	ctx, err := newSharedContext(parent, flags)
	if err != nil {
		return nil, err
	}
	c := &Canvas{parent: parent}
	c.painter = painter{ctx: ctx, deny: c.check}
	return c, nil
}

func (c *Canvas) check() error {
	switch {
	case c.poison != nil:
		return c.poison
	case c.destroyed:
		return errors.New("canvas destroyed")
	case c.inScope:
		return errors.New("canvas is redirected to a texture")
	case !c.ctx.alive:
		return errors.New("renderer destroyed")
	}
	return nil
}

// Parent returns the window or surface the canvas draws to.
func (c *Canvas) Parent() video.Parent { return c.parent }

// Present flushes accumulated draws to the display.
func (c *Canvas) Present() error {
	if err := c.deny(); err != nil {
		return err
	}
	return errors.Wrap(c.ctx.r.Present(), "present failed")
}

// TextureCreator returns a new texture-creating handle sharing this canvas's
// renderer. It may be called any number of times and neither consumes nor
// locks the canvas.
func (c *Canvas) TextureCreator() *TextureCreator {
	c.ctx.retain()
	return &TextureCreator{ctx: c.ctx}
}

// Destroy releases the canvas's hold on the renderer. The native renderer is
// destroyed once the last TextureCreator is gone too, and always before the
// parent window.
func (c *Canvas) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.ctx.release()
}

// TextureCanvas is the canvas view handed to a WithTexture closure. It
// carries the same draw operations but they hit the redirected texture, a
// fact encoded in the type: there is no Present, no TextureCreator and no
// further redirection. The value expires when the closure returns; keeping
// it around and drawing later fails.
type TextureCanvas struct {
	painter
	c       *Canvas
	expired bool
}

func (tc *TextureCanvas) check() error {
	switch {
	case tc.expired:
		return errors.New("render target scope has ended")
	case tc.c.poison != nil:
		return tc.c.poison
	case !tc.ctx.alive:
		return errors.New("renderer destroyed")
	}
	return nil
}

// WithTexture redirects the canvas's drawing into t for the duration of fn.
//
// The native target is restored on every exit path: after fn returns, and
// before re-panicking if fn panics. Restoration is issued inline, not from a
// finalizer, so it cannot be skipped by leaking the scoped canvas. If the
// switch itself fails, fn is never invoked and a *TargetRenderError is
// returned. If the restore fails the canvas is poisoned and the returned
// error is an *InvariantError.
func (c *Canvas) WithTexture(t *Texture, fn func(*TextureCanvas) error) error {
	if err := c.deny(); err != nil {
		return err
	}
	if t == nil || t.destroyed {
		return &TargetRenderError{Err: errors.New("destroyed texture")}
	}
	if t.ctx != c.ctx {
		return &TargetRenderError{Err: errors.New("texture belongs to a different renderer")}
	}
	if err := c.ctx.r.SetTarget(t.id); err != nil {
		return &TargetRenderError{Err: err}
	}

	tc := &TextureCanvas{c: c}
	tc.painter = painter{ctx: c.ctx, deny: tc.check}
	c.inScope = true

	defer func() {
		if p := recover(); p != nil {
			c.endScope(tc)
			panic(p)
		}
	}()

	err := fn(tc)
	if rerr := c.endScope(tc); rerr != nil {
		return rerr
	}
	return err
}

// endScope expires the scoped canvas and restores the default target. A
// restore failure poisons the canvas: the renderer's target is unknown from
// here on and nothing may pretend otherwise.
func (c *Canvas) endScope(tc *TextureCanvas) error {
	tc.expired = true
	c.inScope = false
	if err := c.ctx.r.SetTarget(native.TextureID(0)); err != nil {
		c.poison = &InvariantError{Err: err}
		return c.poison
	}
	return nil
}
