package pool

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/velora-app/matchengine/internal/profile"
	"github.com/velora-app/matchengine/internal/scoring"
	"github.com/velora-app/matchengine/internal/store"
)

// Source supplies the candidate profiles a subject may be scored against.
// The matching job owns which pairs are considered; the engine only scores
// the pairs it is handed.
type Source interface {
	Candidates(ctx context.Context, subject *profile.UserMatchProfile) (*profile.Profiles, error)
}

// FileSource serves candidates from a profiles JSON file, excluding the
// subject themselves.
type FileSource struct {
	Path string
}

func (s *FileSource) Candidates(_ context.Context, subject *profile.UserMatchProfile) (*profile.Profiles, error) {
	profiles, err := profile.FromFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("loading candidates: %w", err)
	}
	if subject == nil {
		return profiles, nil
	}
	return profiles.Without(subject.ID), nil
}

// Step describes the outcome of the eligibility filter.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// FilterEligible keeps only candidates whose life-stage band is mutually
// compatible with the subject's under the pair's flexibility mode. This is
// the same rule the life-stage scorer enforces; applying it here just saves
// scoring pairs that would score zero anyway.
func FilterEligible(subject *profile.UserMatchProfile, candidates *profile.Profiles, logger *zap.Logger) (*profile.Profiles, Step) {
	initial := candidates.Len()
	kept := make([]*profile.UserMatchProfile, 0, initial)

	for _, candidate := range candidates.Items {
		if scoring.LifeStageFit(subject, candidate, scoring.ModeFor(subject, candidate)) == 0 {
			if logger != nil {
				logger.Debug("candidate outside compatible life-stage bands",
					zap.String("subject", subject.ID),
					zap.String("candidate", candidate.ID),
				)
			}
			continue
		}
		kept = append(kept, candidate)
	}

	left := &profile.Profiles{Items: kept}
	step := Step{Initial: initial, Dropped: initial - left.Len(), Left: left.Len()}

	if logger != nil {
		logger.Info("life-stage eligibility filter",
			zap.Int("initial", step.Initial),
			zap.Int("dropped", step.Dropped),
			zap.Int("left", step.Left),
		)
	}

	return left, step
}

// ScoreAll scores the subject against every candidate, preserving candidate
// order. Each pair is independent, so a cancelled context simply stops the
// loop between pairs with nothing to roll back.
func ScoreAll(ctx context.Context, engine *scoring.Engine, subject *profile.UserMatchProfile, candidates *profile.Profiles) (*store.MatchRecords, error) {
	records := &store.MatchRecords{}

	for _, candidate := range candidates.Items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := engine.Score(subject, candidate)
		if err != nil {
			return nil, fmt.Errorf("scoring %s against %s: %w", subject.ID, candidate.ID, err)
		}

		records.Items = append(records.Items, store.NewRecord(subject.ID, candidate.ID, result))
	}

	return records, nil
}
