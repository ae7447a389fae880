package ticker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClock(t *testing.T) {
	Initialize()
	first := Get()
	time.Sleep(5 * time.Millisecond)
	assert.Greater(t, Get(), first)
}

func TestLimiterPacing(t *testing.T) {
	l := NewLimiter(200) // 5ms frames
	start := time.Now()
	l.Wait()
	l.Wait()
	l.Wait()
	assert.GreaterOrEqual(t, time.Since(start), 8*time.Millisecond, "two full intervals must elapse across three frames")
}

func TestLimiterDisabled(t *testing.T) {
	l := NewLimiter(0)
	start := time.Now()
	for i := 0; i < 1000; i++ {
		l.Wait()
	}
	assert.Less(t, time.Since(start), time.Second)
}
