package render

import (
	"github.com/pkg/errors"

	"github.com/renderkit/renderkit/native"
)

// TextureCreator creates textures on a canvas's renderer. It is a sibling of
// the Canvas, not a view of it: creating a texture never contends with a draw
// call. Obtain one from Canvas.TextureCreator; any number may coexist.
//
// Textures it creates must not be used after the creator and its canvas have
// both been destroyed; the liveness check on every texture operation enforces
// that at runtime.
type TextureCreator struct {
	ctx       *sharedContext
	destroyed bool
}

func (tc *TextureCreator) check() error {
	if tc.destroyed {
		return errors.New("texture creator destroyed")
	}
	if !tc.ctx.alive {
		return errors.New("renderer destroyed")
	}
	return nil
}

// CreateTexture creates a blank texture. Dimensions and format are validated
// before the native layer is touched, so a rejected request allocates
// nothing.
func (tc *TextureCreator) CreateTexture(format native.PixelFormat, access native.TextureAccess, w, h int) (*Texture, error) {
	if err := tc.check(); err != nil {
		return nil, &TextureCreationError{Reason: "creator unusable", Err: err}
	}
	if w <= 0 || h <= 0 {
		return nil, &TextureCreationError{Reason: "invalid texture dimensions"}
	}
	if format.BytesPerPixel() == 0 {
		return nil, &TextureCreationError{Reason: "unsupported pixel format"}
	}
	id, err := tc.ctx.r.CreateTexture(format, access, w, h)
	if err != nil {
		return nil, &TextureCreationError{Reason: "native allocation failed", Err: err}
	}
	return &Texture{id: id, ctx: tc.ctx}, nil
}

// CreateTextureFrom creates a static texture initialized from raw pixel data
// laid out with the given pitch.
func (tc *TextureCreator) CreateTextureFrom(format native.PixelFormat, w, h int, pix []byte, pitch int) (*Texture, error) {
	if err := tc.check(); err != nil {
		return nil, &TextureCreationError{Reason: "creator unusable", Err: err}
	}
	if w <= 0 || h <= 0 {
		return nil, &TextureCreationError{Reason: "invalid texture dimensions"}
	}
	if format.BytesPerPixel() == 0 {
		return nil, &TextureCreationError{Reason: "unsupported pixel format"}
	}
	id, err := tc.ctx.r.CreateTextureFrom(format, w, h, pix, pitch)
	if err != nil {
		return nil, &TextureCreationError{Reason: "native allocation failed", Err: err}
	}
	return &Texture{id: id, ctx: tc.ctx}, nil
}

// Destroy releases the creator's hold on the renderer. Textures it created
// stay valid as long as any other holder keeps the renderer alive.
func (tc *TextureCreator) Destroy() {
	if tc.destroyed {
		return
	}
	tc.destroyed = true
	tc.ctx.release()
}

// Texture is an owned handle to one native texture. It has no Clone: the
// native handle has single-owner destroy semantics. Once the renderer that
// created it is gone every operation fails, and Destroy becomes a no-op
// because the native layer already destroyed the texture with its renderer.
type Texture struct {
	id        native.TextureID
	ctx       *sharedContext
	destroyed bool
}

func (t *Texture) check(op string) error {
	if t.destroyed {
		return &TextureOperationError{Op: op, Err: errors.New("texture destroyed")}
	}
	if !t.ctx.alive {
		return &TextureOperationError{Op: op, Err: errors.New("renderer destroyed")}
	}
	return nil
}

// Update replaces the pixels of region (the whole texture when nil) with raw
// pixel data laid out with the given pitch.
func (t *Texture) Update(region *native.Rect, pix []byte, pitch int) error {
	if err := t.check("update"); err != nil {
		return err
	}
	if err := t.ctx.r.UpdateTexture(t.id, region, pix, pitch); err != nil {
		return &TextureOperationError{Op: "update", Err: err}
	}
	return nil
}

// Query returns the texture's format, access mode and size.
func (t *Texture) Query() (native.TextureInfo, error) {
	if err := t.check("query"); err != nil {
		return native.TextureInfo{}, err
	}
	info, err := t.ctx.r.QueryTexture(t.id)
	if err != nil {
		return native.TextureInfo{}, &TextureOperationError{Op: "query", Err: err}
	}
	return info, nil
}

// SetColorMod sets the color multiplier applied when the texture is copied.
func (t *Texture) SetColorMod(r, g, b uint8) error {
	if err := t.check("set color mod"); err != nil {
		return err
	}
	if err := t.ctx.r.SetTextureColorMod(t.id, r, g, b); err != nil {
		return &TextureOperationError{Op: "set color mod", Err: err}
	}
	return nil
}

// SetAlphaMod sets the alpha multiplier applied when the texture is copied.
func (t *Texture) SetAlphaMod(a uint8) error {
	if err := t.check("set alpha mod"); err != nil {
		return err
	}
	if err := t.ctx.r.SetTextureAlphaMod(t.id, a); err != nil {
		return &TextureOperationError{Op: "set alpha mod", Err: err}
	}
	return nil
}

// SetBlendMode sets the blend mode used when the texture is copied.
func (t *Texture) SetBlendMode(mode native.BlendMode) error {
	if err := t.check("set blend mode"); err != nil {
		return err
	}
	if err := t.ctx.r.SetTextureBlendMode(t.id, mode); err != nil {
		return &TextureOperationError{Op: "set blend mode", Err: err}
	}
	return nil
}

// Destroy releases the native texture. If the renderer is already gone the
// native layer destroyed the texture with it, and issuing a second destroy
// on the same handle would be undefined behavior, so this becomes a no-op.
func (t *Texture) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	if !t.ctx.alive {
		return
	}
	t.ctx.r.DestroyTexture(t.id)
}
