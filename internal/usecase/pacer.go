package usecase

import (
	"context"
	"time"
)

// Pacer imposes the cooperative delay required after each secondary
// resource fetch. It blocks only the current logical task and returns
// early when the context is cancelled.
type Pacer struct {
	delay time.Duration
}

// NewPacer builds a pacer; a zero or negative delay disables it.
func NewPacer(delay time.Duration) *Pacer {
	return &Pacer{delay: delay}
}

// Wait sleeps for the configured delay or until ctx is done.
func (p *Pacer) Wait(ctx context.Context) {
	if p == nil || p.delay <= 0 {
		return
	}

	timer := time.NewTimer(p.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
