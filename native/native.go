// Package native is the raw backend boundary of the render layer. It mirrors
// the C ABI of an SDL-shaped renderer: opaque handles, plain value types and
// entry-point interfaces with no safety guarantees of their own. Everything
// above this package (video, render) exists to make these calls safe; nothing
// below it does.
//
// All handles are confined to the thread that created them.
package native

// TextureID is a raw texture handle: a 32-bit slot index in the high half and
// a 32-bit generation in the low half. The zero value means "no texture" and,
// when passed to Renderer.SetTarget, selects the default target. Generations
// let a driver reject stale handles and double destroys in O(1) instead of
// corrupting a reused slot.
type TextureID uint64

// MakeTextureID packs a slot index and generation into a handle.
func MakeTextureID(index, gen uint32) TextureID {
	return TextureID(index)<<32 | TextureID(gen)
}

// Index returns the slot index half of the handle.
func (id TextureID) Index() uint32 { return uint32(id >> 32) }

// Generation returns the generation half of the handle.
func (id TextureID) Generation() uint32 { return uint32(id) }

// IsZero reports whether id is the "no texture" handle.
func (id TextureID) IsZero() bool { return id == 0 }

// WindowID is a raw identifier for a native window or offscreen parent.
type WindowID uint32

// Color is an RGBA8888 color. Channel order is part of the ABI and is passed
// through unchanged.
type Color struct {
	R, G, B, A uint8
}

// Point is a position in target coordinates, origin top-left.
type Point struct {
	X, Y int
}

// Rect is an axis-aligned rectangle. X,Y is the top-left corner.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// PixelFormat enumerates the texture pixel layouts the layer passes through.
// The names give the in-memory byte order.
type PixelFormat uint32

const (
	PixelFormatUnknown  PixelFormat = iota
	PixelFormatRGBA8888             // 4 bytes per pixel: R, G, B, A
	PixelFormatARGB8888             // 4 bytes per pixel: A, R, G, B
	PixelFormatRGB888               // 3 bytes per pixel: R, G, B, opaque
)

// BytesPerPixel returns the pixel stride of the format, 0 if unknown.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case PixelFormatRGBA8888, PixelFormatARGB8888:
		return 4
	case PixelFormatRGB888:
		return 3
	}
	return 0
}

// TextureAccess describes how a texture may be used after creation.
type TextureAccess int

const (
	AccessStatic    TextureAccess = iota // rarely updated, not a render target
	AccessStreaming                      // frequently updated from pixel data
	AccessTarget                         // usable as a render target
)

// BlendMode enumerates the draw and copy blend equations.
type BlendMode uint32

const (
	BlendModeNone  BlendMode = iota // dst = src
	BlendModeBlend                  // dst = src*srcA + dst*(1-srcA)
	BlendModeAdd                    // dst = src*srcA + dst
	BlendModeMod                    // dst = src*dst
)

// Renderer creation flags.
const (
	RendererSoftware       = 1 << iota // the renderer is a software fallback
	RendererAccelerated                // the renderer uses hardware acceleration
	RendererPresentVSync               // Present is synchronized with the refresh rate
	RendererTargetTexture              // the renderer supports rendering to texture
)

// RendererInfo describes a driver's renderer capabilities.
type RendererInfo struct {
	Name             string
	Flags            uint32
	TextureFormats   []PixelFormat
	MaxTextureWidth  int
	MaxTextureHeight int
}

// TextureInfo is the result of querying a live texture.
type TextureInfo struct {
	Format PixelFormat
	Access TextureAccess
	W, H   int
}
