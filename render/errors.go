package render

import "fmt"

// The error kinds mirror the failure taxonomy of the native layer. All of
// them are recoverable by the caller except InvariantError, which marks the
// renderer state as no longer trustworthy. Nothing is retried automatically:
// native graphics failures are not transient.

// RendererCreationError reports that the backend was unavailable or
// incompatible with the parent. No partial state is left behind.
type RendererCreationError struct {
	Driver string
	Err    error
}

func (e *RendererCreationError) Error() string {
	return fmt.Sprintf("renderer creation failed on driver %q: %v", e.Driver, e.Err)
}

func (e *RendererCreationError) Cause() error { return e.Err }
func (e *RendererCreationError) Unwrap() error { return e.Err }

// TextureCreationError reports invalid dimensions or format, or a native
// allocation failure. Err is nil when the request was rejected before
// reaching the native layer.
type TextureCreationError struct {
	Reason string
	Err    error
}

func (e *TextureCreationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("texture creation failed: %s: %v", e.Reason, e.Err)
	}
	return "texture creation failed: " + e.Reason
}

func (e *TextureCreationError) Cause() error { return e.Err }
func (e *TextureCreationError) Unwrap() error { return e.Err }

// TextureOperationError reports a native call failure on an existing texture,
// or use of a texture whose renderer is gone.
type TextureOperationError struct {
	Op  string
	Err error
}

func (e *TextureOperationError) Error() string {
	return fmt.Sprintf("texture %s failed: %v", e.Op, e.Err)
}

func (e *TextureOperationError) Cause() error { return e.Err }
func (e *TextureOperationError) Unwrap() error { return e.Err }

// TargetRenderError reports that the backend rejected a render-target switch.
// The redirected drawing closure was never invoked.
type TargetRenderError struct {
	Err error
}

func (e *TargetRenderError) Error() string {
	return fmt.Sprintf("render target switch failed: %v", e.Err)
}

func (e *TargetRenderError) Cause() error { return e.Err }
func (e *TargetRenderError) Unwrap() error { return e.Err }

// InvariantError reports that the native reset-target call failed after a
// successful switch: the active render target is now unknown. The canvas it
// came from is poisoned and returns the same error from every further
// operation.
type InvariantError struct {
	Err error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("render target restoration failed, renderer state unknown: %v", e.Err)
}

func (e *InvariantError) Cause() error { return e.Err }
func (e *InvariantError) Unwrap() error { return e.Err }
