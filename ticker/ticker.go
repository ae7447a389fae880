// Package ticker provides the shared monotonic clock and the frame limiter
// used by drivers for vsync pacing.
package ticker

import "time"

var start time.Time

func Initialize() {
	start = time.Now()
}

// Get returns the time elapsed since Initialize.
func Get() time.Duration {
	return time.Since(start)
}

func GetAsMS() uint32 {
	return uint32(Get() / time.Millisecond)
}

// Limiter paces a loop to a fixed rate by sleeping out the remainder of each
// interval. Zero or negative rates disable it.
type Limiter struct {
	interval time.Duration
	last     time.Time
}

func NewLimiter(hz int) *Limiter {
	if hz <= 0 {
		return &Limiter{}
	}
	return &Limiter{interval: time.Second / time.Duration(hz)}
}

// Wait sleeps until the next frame boundary.
func (l *Limiter) Wait() {
	if l.interval <= 0 {
		return
	}
	now := time.Now()
	if !l.last.IsZero() {
		if d := l.interval - now.Sub(l.last); d > 0 {
			time.Sleep(d)
			now = time.Now()
		}
	}
	l.last = now
}
