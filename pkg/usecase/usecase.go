package usecase

import (
	"time"

	"github.com/secmon-lab/argus/pkg/service/vanta"
)

// workspacePause is the fixed courtesy delay between workspaces to keep
// request-rate pressure on the API low. Not a rate limiter; there is no
// feedback from 429/5xx responses.
const workspacePause = 200 * time.Millisecond

type UseCases struct {
	client *vanta.Client
	now    func() time.Time
	pause  time.Duration
}

type Option func(*UseCases)

// WithClock overrides the wall clock used for overdue-day computation
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

// WithPause overrides the inter-workspace delay
func WithPause(pause time.Duration) Option {
	return func(uc *UseCases) {
		uc.pause = pause
	}
}

func New(client *vanta.Client, opts ...Option) *UseCases {
	uc := &UseCases{
		client: client,
		now:    time.Now,
		pause:  workspacePause,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}
