//go:build linux && cgo

// Package fb presents software-rendered frames on the Linux framebuffer
// device. It is the soft driver with a Presenter that blits each frame to
// /dev/fb0, plus the console mode switching that keeps the text cursor from
// drawing over the output.
package fb

import (
	"image"
	"image/draw"

	"github.com/gonutz/framebuffer"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/renderkit/renderkit/driver/soft"
	"github.com/renderkit/renderkit/native"
)

// DefaultDevice is the framebuffer device used by Register.
const DefaultDevice = "/dev/fb0"

// KD console mode ioctl, from linux/kd.h.
const (
	kdSetMode  = 0x4B3A
	kdText     = 0x00
	kdGraphics = 0x01
)

// Device is a soft.Presenter writing frames to a framebuffer device.
type Device struct {
	dev *framebuffer.Device
}

// Open opens a framebuffer device for presenting.
func Open(path string) (*Device, error) {
	dev, err := framebuffer.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open framebuffer %s", path)
	}
	return &Device{dev: dev}, nil
}

// Present blits a frame to the device, top-left aligned.
func (d *Device) Present(frame *image.RGBA) error {
	draw.Draw(d.dev, d.dev.Bounds(), frame, image.Point{}, draw.Src)
	return nil
}

// Close releases the device.
func (d *Device) Close() error {
	d.dev.Close()
	return nil
}

// driver lazily opens the framebuffer on first renderer creation, so merely
// registering the driver never touches the device.
type driver struct {
	path string
	soft *soft.Driver
}

// NewDriver returns a framebuffer-presenting driver for the given device.
func NewDriver(path string) native.Driver {
	return &driver{path: path}
}

// Register registers the framebuffer driver under the name "fb".
func Register() {
	native.Register(NewDriver(DefaultDevice))
}

func (d *driver) ensure() (*soft.Driver, error) {
	if d.soft != nil {
		return d.soft, nil
	}
	dev, err := Open(d.path)
	if err != nil {
		return nil, err
	}
	d.soft = soft.New(soft.WithName("fb"), soft.WithPresenter(dev))
	return d.soft, nil
}

func (d *driver) Name() string { return "fb" }

func (d *driver) Info() native.RendererInfo {
	if d.soft != nil {
		info := d.soft.Info()
		info.Name = "fb"
		return info
	}
	return native.RendererInfo{Name: "fb", Flags: native.RendererSoftware | native.RendererTargetTexture | native.RendererPresentVSync}
}

func (d *driver) CreateWindow(title string, x, y, w, h int, flags uint32) (native.WindowID, error) {
	s, err := d.ensure()
	if err != nil {
		return 0, err
	}
	return s.CreateWindow(title, x, y, w, h, flags)
}

func (d *driver) DestroyWindow(id native.WindowID) error {
	s, err := d.ensure()
	if err != nil {
		return err
	}
	return s.DestroyWindow(id)
}

func (d *driver) CreateRenderer(parent native.WindowID, flags uint32) (native.Renderer, error) {
	s, err := d.ensure()
	if err != nil {
		return nil, err
	}
	return s.CreateRenderer(parent, flags)
}

// EnterGraphicsMode switches the active console to graphics mode so the
// hardware cursor stops repainting over presented frames.
func EnterGraphicsMode() error {
	return setConsoleMode(kdGraphics)
}

// LeaveGraphicsMode restores the console to text mode.
func LeaveGraphicsMode() error {
	return setConsoleMode(kdText)
}

func setConsoleMode(mode int) error {
	var lastErr error
	for _, p := range []string{"/dev/tty", "/dev/tty0"} {
		fd, err := unix.Open(p, unix.O_RDONLY, 0)
		if err != nil {
			lastErr = errors.Wrapf(err, "open %s", p)
			continue
		}
		err = unix.IoctlSetInt(fd, kdSetMode, mode)
		unix.Close(fd)
		if err != nil {
			lastErr = errors.Wrapf(err, "KDSETMODE on %s", p)
			continue
		}
		return nil
	}
	return lastErr
}
