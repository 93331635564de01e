// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"sync"
	"time"
)

// NewTime creates a new time service
func NewTime(cfg TimeConfiguration) *Time {
	var interval time.Duration
	if cfg.FramesPerSecond <= 0 {
		interval = time.Nanosecond
	} else {
		interval = time.Second / (time.Duration)(cfg.FramesPerSecond)
	}

	pollDelay := time.Duration(cfg.EventPollDelay) * time.Millisecond
	if pollDelay <= 0 {
		pollDelay = time.Millisecond
	}

	return &Time{
		fps:            cfg.FramesPerSecond,
		fpsTicker:      time.NewTicker(interval),
		eventPollDelay: cfg.EventPollDelay,
		eventTicker:    time.NewTicker(pollDelay),
		now:            time.Now,
	}
}

// Time contains all the time services and tickers
type Time struct {
	fps       int
	fpsTicker *time.Ticker

	eventPollDelay int
	eventTicker    *time.Ticker

	mutex     sync.Mutex
	now       func() time.Time
	lastFrame time.Time
	elapsed   time.Duration
}

// Fps gets the set frames per second
func (t *Time) Fps() int {
	return t.fps
}

// FpsTicker gets the initialized fps ticker
func (t *Time) FpsTicker() *time.Ticker {
	return t.fpsTicker
}

// EventTicker gets the initialized event ticker for the event loop
func (t *Time) EventTicker() *time.Ticker {
	return t.eventTicker
}

// Frame marks the start of a frame and returns the time passed since
// the previous one. The first frame has a zero delta.
func (t *Time) Frame() time.Duration {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	now := t.now()
	var delta time.Duration
	if !t.lastFrame.IsZero() {
		delta = now.Sub(t.lastFrame)
	}
	t.lastFrame = now
	t.elapsed += delta
	return delta
}

// Elapsed is the sum of every frame delta so far.
func (t *Time) Elapsed() time.Duration {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.elapsed
}

// Stop stops both tickers.
func (t *Time) Stop() {
	t.fpsTicker.Stop()
	t.eventTicker.Stop()
}
