package soft

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"

	"github.com/renderkit/renderkit/native"
	"github.com/renderkit/renderkit/ticker"
)

// renderer implements native.Renderer. Textures live in a slot table whose
// handles carry a generation; a stale handle or a double destroy is caught
// by the generation check instead of hitting a reused slot.
type renderer struct {
	d       *Driver
	win     *window
	flags   uint32
	color   native.Color
	blend   native.BlendMode
	target  native.TextureID
	slots   []texSlot
	free    []uint32
	limiter *ticker.Limiter

	destroyed bool
}

type texSlot struct {
	gen      uint32
	live     bool
	img      *image.RGBA
	info     native.TextureInfo
	colorMod native.Color
	blend    native.BlendMode
}

var errRendererDestroyed = errors.New("renderer destroyed")
var errInvalidTexture = errors.New("invalid texture handle")

func (r *renderer) lookup(id native.TextureID) (*texSlot, error) {
	idx := int(id.Index())
	if id.IsZero() || idx >= len(r.slots) {
		return nil, errInvalidTexture
	}
	s := &r.slots[idx]
	if !s.live || s.gen != id.Generation() {
		return nil, errInvalidTexture
	}
	return s, nil
}

func (r *renderer) CreateTexture(format native.PixelFormat, access native.TextureAccess, w, h int) (native.TextureID, error) {
	if r.destroyed {
		return 0, errRendererDestroyed
	}
	if w <= 0 || h <= 0 || w > maxTextureDim || h > maxTextureDim {
		return 0, errors.New("invalid texture dimensions")
	}
	if format.BytesPerPixel() == 0 {
		return 0, errors.New("unsupported pixel format")
	}
	if access != native.AccessStatic && access != native.AccessStreaming && access != native.AccessTarget {
		return 0, errors.New("invalid texture access mode")
	}

	slot := texSlot{
		live:     true,
		img:      image.NewRGBA(image.Rect(0, 0, w, h)),
		info:     native.TextureInfo{Format: format, Access: access, W: w, H: h},
		colorMod: native.Color{R: 255, G: 255, B: 255, A: 255},
	}

	var idx uint32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
		slot.gen = r.slots[idx].gen
		r.slots[idx] = slot
	} else {
		// Generations start at 1 so a texture handle is never the zero
		// "default target" value.
		slot.gen = 1
		r.slots = append(r.slots, slot)
		idx = uint32(len(r.slots) - 1)
	}
	return native.MakeTextureID(idx, r.slots[idx].gen), nil
}

func (r *renderer) CreateTextureFrom(format native.PixelFormat, w, h int, pix []byte, pitch int) (native.TextureID, error) {
	id, err := r.CreateTexture(format, native.AccessStatic, w, h)
	if err != nil {
		return 0, err
	}
	if err := r.UpdateTexture(id, nil, pix, pitch); err != nil {
		r.DestroyTexture(id)
		return 0, err
	}
	return id, nil
}

func (r *renderer) UpdateTexture(id native.TextureID, region *native.Rect, pix []byte, pitch int) error {
	if r.destroyed {
		return errRendererDestroyed
	}
	s, err := r.lookup(id)
	if err != nil {
		return err
	}
	rect := native.Rect{W: s.info.W, H: s.info.H}
	if region != nil {
		rect = *region
	}
	if rect.Empty() || rect.X < 0 || rect.Y < 0 || rect.X+rect.W > s.info.W || rect.Y+rect.H > s.info.H {
		return errors.New("update region out of bounds")
	}
	bpp := s.info.Format.BytesPerPixel()
	if pitch < rect.W*bpp || len(pix) < (rect.H-1)*pitch+rect.W*bpp {
		return errors.New("pixel data too small for update region")
	}

	for y := 0; y < rect.H; y++ {
		row := pix[y*pitch:]
		for x := 0; x < rect.W; x++ {
			s.img.SetRGBA(rect.X+x, rect.Y+y, decodePixel(s.info.Format, row[x*bpp:]))
		}
	}
	return nil
}

// decodePixel reads one pixel in the given ABI byte order.
func decodePixel(format native.PixelFormat, b []byte) color.RGBA {
	switch format {
	case native.PixelFormatRGBA8888:
		return color.RGBA{R: b[0], G: b[1], B: b[2], A: b[3]}
	case native.PixelFormatARGB8888:
		return color.RGBA{R: b[1], G: b[2], B: b[3], A: b[0]}
	case native.PixelFormatRGB888:
		return color.RGBA{R: b[0], G: b[1], B: b[2], A: 255}
	}
	return color.RGBA{}
}

func (r *renderer) QueryTexture(id native.TextureID) (native.TextureInfo, error) {
	if r.destroyed {
		return native.TextureInfo{}, errRendererDestroyed
	}
	s, err := r.lookup(id)
	if err != nil {
		return native.TextureInfo{}, err
	}
	return s.info, nil
}

func (r *renderer) SetTextureColorMod(id native.TextureID, red, g, b uint8) error {
	if r.destroyed {
		return errRendererDestroyed
	}
	s, err := r.lookup(id)
	if err != nil {
		return err
	}
	s.colorMod.R, s.colorMod.G, s.colorMod.B = red, g, b
	return nil
}

func (r *renderer) SetTextureAlphaMod(id native.TextureID, a uint8) error {
	if r.destroyed {
		return errRendererDestroyed
	}
	s, err := r.lookup(id)
	if err != nil {
		return err
	}
	s.colorMod.A = a
	return nil
}

func (r *renderer) SetTextureBlendMode(id native.TextureID, mode native.BlendMode) error {
	if r.destroyed {
		return errRendererDestroyed
	}
	s, err := r.lookup(id)
	if err != nil {
		return err
	}
	s.blend = mode
	return nil
}

func (r *renderer) DestroyTexture(id native.TextureID) error {
	if r.destroyed {
		return errRendererDestroyed
	}
	s, err := r.lookup(id)
	if err != nil {
		return err
	}
	if r.target == id {
		// Never leave the renderer writing into a dead texture.
		r.target = 0
	}
	s.live = false
	s.img = nil
	s.gen++
	r.free = append(r.free, id.Index())
	return nil
}

func (r *renderer) SetTarget(id native.TextureID) error {
	if r.destroyed {
		return errRendererDestroyed
	}
	if id.IsZero() {
		r.target = 0
		return nil
	}
	if r.flags&native.RendererTargetTexture == 0 {
		return errors.New("render targets are not supported by this renderer")
	}
	s, err := r.lookup(id)
	if err != nil {
		return err
	}
	if s.info.Access != native.AccessTarget {
		return errors.New("texture was not created with target access")
	}
	r.target = id
	return nil
}

func (r *renderer) Target() native.TextureID { return r.target }

// surface returns the raster the current target resolves to.
func (r *renderer) surface() *image.RGBA {
	if r.target.IsZero() {
		return r.win.frame
	}
	s, err := r.lookup(r.target)
	if err != nil {
		return r.win.frame
	}
	return s.img
}

func (r *renderer) SetDrawColor(c native.Color) { r.color = c }
func (r *renderer) SetDrawBlendMode(mode native.BlendMode) { r.blend = mode }

func (r *renderer) Clear() error {
	if r.destroyed {
		return errRendererDestroyed
	}
	dst := r.surface()
	// Clear ignores the blend mode: it overwrites the whole target.
	draw.Draw(dst, dst.Bounds(), image.NewUniform(rgba(r.color)), image.Point{}, draw.Src)
	return nil
}

func (r *renderer) DrawPoint(p native.Point) error {
	if r.destroyed {
		return errRendererDestroyed
	}
	blendPx(r.surface(), p.X, p.Y, r.color, r.blend)
	return nil
}

func (r *renderer) DrawLine(a, b native.Point) error {
	if r.destroyed {
		return errRendererDestroyed
	}
	dst := r.surface()
	// Bresenham.
	dx, sx := abs(b.X-a.X), 1
	if a.X > b.X {
		sx = -1
	}
	dy, sy := -abs(b.Y-a.Y), 1
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	x, y := a.X, a.Y
	for {
		blendPx(dst, x, y, r.color, r.blend)
		if x == b.X && y == b.Y {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
	return nil
}

func (r *renderer) DrawRect(rc native.Rect) error {
	if r.destroyed {
		return errRendererDestroyed
	}
	if rc.Empty() {
		return nil
	}
	dst := r.surface()
	for x := rc.X; x < rc.X+rc.W; x++ {
		blendPx(dst, x, rc.Y, r.color, r.blend)
		if rc.H > 1 {
			// Distinct bottom edge only; a 1-high outline must not blend
			// each pixel twice.
			blendPx(dst, x, rc.Y+rc.H-1, r.color, r.blend)
		}
	}
	for y := rc.Y + 1; y < rc.Y+rc.H-1; y++ {
		blendPx(dst, rc.X, y, r.color, r.blend)
		if rc.W > 1 {
			blendPx(dst, rc.X+rc.W-1, y, r.color, r.blend)
		}
	}
	return nil
}

func (r *renderer) FillRect(rc native.Rect) error {
	if r.destroyed {
		return errRendererDestroyed
	}
	if rc.Empty() {
		return nil
	}
	dst := r.surface()
	if r.blend == native.BlendModeNone {
		bounds := image.Rect(rc.X, rc.Y, rc.X+rc.W, rc.Y+rc.H).Intersect(dst.Bounds())
		draw.Draw(dst, bounds, image.NewUniform(rgba(r.color)), image.Point{}, draw.Src)
		return nil
	}
	for y := rc.Y; y < rc.Y+rc.H; y++ {
		for x := rc.X; x < rc.X+rc.W; x++ {
			blendPx(dst, x, y, r.color, r.blend)
		}
	}
	return nil
}

func (r *renderer) Copy(id native.TextureID, src, dst *native.Rect) error {
	if r.destroyed {
		return errRendererDestroyed
	}
	s, err := r.lookup(id)
	if err != nil {
		return err
	}
	srcRect := native.Rect{W: s.info.W, H: s.info.H}
	if src != nil {
		srcRect = *src
	}
	if srcRect.Empty() || srcRect.X < 0 || srcRect.Y < 0 ||
		srcRect.X+srcRect.W > s.info.W || srcRect.Y+srcRect.H > s.info.H {
		return errors.New("copy region out of bounds")
	}
	surf := r.surface()
	dstRect := native.Rect{W: surf.Bounds().Dx(), H: surf.Bounds().Dy()}
	if dst != nil {
		dstRect = *dst
	}
	if dstRect.Empty() {
		return nil
	}

	srcImg := s.img.SubImage(image.Rect(srcRect.X, srcRect.Y, srcRect.X+srcRect.W, srcRect.Y+srcRect.H)).(*image.RGBA)
	if srcRect.W != dstRect.W || srcRect.H != dstRect.H {
		scaled := image.NewRGBA(image.Rect(0, 0, dstRect.W, dstRect.H))
		xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), srcImg, srcImg.Bounds(), xdraw.Src, nil)
		srcImg = scaled
	}
	composite(surf, dstRect.X, dstRect.Y, srcImg, s.colorMod, s.blend)
	return nil
}

func (r *renderer) Present() error {
	if r.destroyed {
		return errRendererDestroyed
	}
	if r.d.presenter != nil {
		if err := r.d.presenter.Present(r.win.frame); err != nil {
			return errors.Wrap(err, "present failed")
		}
	}
	if r.limiter != nil {
		r.limiter.Wait()
	}
	return nil
}

// Destroy releases the renderer and every texture still alive on it, the
// same auto-destroy the real native layer performs.
func (r *renderer) Destroy() {
	if r.destroyed {
		return
	}
	r.destroyed = true
	r.target = 0
	for i := range r.slots {
		if r.slots[i].live {
			r.slots[i].live = false
			r.slots[i].img = nil
			r.slots[i].gen++
		}
	}
	r.slots = nil
	r.free = nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
