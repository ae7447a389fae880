// Package hint loads render hints: small tunables that pick the backend and
// presentation behavior without code changes, read from a TOML file in the
// user's config directory.
package hint

import (
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/renderkit/renderkit/native"
)

const hintFile = "render.toml"

// Hints selects the render driver and renderer behavior.
type Hints struct {
	// Driver names the render driver to use. Empty means the first
	// registered driver.
	Driver string

	// VSync synchronizes Present with the refresh rate.
	VSync bool

	// RenderTarget requests render-to-texture support. On by default; the
	// scoped target switch needs it.
	RenderTarget bool

	// SoftwareFallback falls back to the "soft" driver when the named
	// driver is not registered.
	SoftwareFallback bool
}

// Default returns the hints used when no file overrides them.
func Default() Hints {
	return Hints{
		RenderTarget:     true,
		SoftwareFallback: true,
	}
}

// Flags maps the hints to renderer creation flags.
func (h Hints) Flags() uint32 {
	var flags uint32
	if h.VSync {
		flags |= native.RendererPresentVSync
	}
	if h.RenderTarget {
		flags |= native.RendererTargetTexture
	}
	return flags
}

// LoadFile reads hints from a TOML file. A missing file is not an error: the
// defaults are returned.
func LoadFile(path string) (Hints, error) {
	h := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return h, nil
	}
	if _, err := toml.DecodeFile(path, &h); err != nil {
		return Default(), errors.Wrapf(err, "could not read hints from %s", path)
	}
	return h, nil
}

// Load reads hints from the user config directory, falling back to defaults
// on any failure.
func Load() Hints {
	h, err := LoadFile(filepath.Join(configDir(), hintFile))
	if err != nil {
		log.Printf("render hints unreadable, using defaults: %v", err)
		return Default()
	}
	return h
}

func configDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "renderkit")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "renderkit")
}
