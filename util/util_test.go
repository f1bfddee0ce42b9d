package util

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewImmediateTicker(t *testing.T) {
	ticker := NewImmediateTicker(time.Hour)
	defer ticker.Stop()
	select {
	case <-ticker.C:
	case <-time.After(time.Second):
		t.Fatal("ticker did not fire immediately")
	}
}

func TestImmediateTicker_Ticks(t *testing.T) {
	ticker := NewImmediateTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for i := 0; i < 3; i++ {
		select {
		case <-ticker.C:
		case <-time.After(time.Second):
			t.Fatalf("tick %d did not arrive", i)
		}
	}
}

func TestImmediateTicker_StopReleasesGoroutine(t *testing.T) {
	before := runtime.NumGoroutine()
	for i := 0; i < 100; i++ {
		ticker := NewImmediateTicker(time.Hour)
		<-ticker.C
		ticker.Stop()
		ticker.Stop()
	}
	require.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before+5
	}, time.Second, 10*time.Millisecond)
}

func TestMinInt(t *testing.T) {
	require.Equal(t, 1, MinInt(1, 2))
	require.Equal(t, -3, MinInt(4, -3))
}
