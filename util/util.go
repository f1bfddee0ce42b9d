package util

import (
	"sync"
	"time"
)

// ImmediateTicker is a time.Ticker that also fires once right away.
type ImmediateTicker struct {
	C <-chan time.Time

	t    *time.Ticker
	done chan struct{}
	once sync.Once
}

func NewImmediateTicker(d time.Duration) *ImmediateTicker {
	t := time.NewTicker(d)
	nc := make(chan time.Time, 1)
	it := &ImmediateTicker{C: nc, t: t, done: make(chan struct{})}
	nc <- time.Now()
	go func() {
		for {
			select {
			case <-it.done:
				return
			case tm := <-t.C:
				select {
				case nc <- tm:
				case <-it.done:
					return
				}
			}
		}
	}()
	return it
}

// Stop stops the ticker and its forwarding goroutine. It is safe to call more than once.
func (it *ImmediateTicker) Stop() {
	it.t.Stop()
	it.once.Do(func() { close(it.done) })
}

func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
