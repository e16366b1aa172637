package ai

import (
	"context"

	"github.com/velora-app/matchengine/internal/profile"
	"github.com/velora-app/matchengine/internal/scoring"
)

// Intro is a model-written introduction for a scored pair. Presentation
// only: it never feeds back into scoring.
type Intro struct {
	Message string
	Raw     string
}

// Writer produces introduction text for a scored pair.
type Writer interface {
	Compose(ctx context.Context, result *scoring.Result, a, b *profile.UserMatchProfile) (*Intro, error)
}
