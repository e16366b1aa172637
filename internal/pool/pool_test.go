package pool

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/velora-app/matchengine/internal/compass"
	"github.com/velora-app/matchengine/internal/profile"
	"github.com/velora-app/matchengine/internal/scoring"
)

func subjectProfile() *profile.UserMatchProfile {
	return &profile.UserMatchProfile{
		ID:              "u1",
		Age:             30,
		AttachmentStyle: "secure",
		Compass: compass.Answers{
			compass.ChildrenVision: compass.ChildrenYesInvolved,
		},
	}
}

func TestFilterEligible(t *testing.T) {
	t.Parallel()

	subject := subjectProfile()
	candidates := &profile.Profiles{Items: []*profile.UserMatchProfile{
		{ID: "same-band", Age: 32},
		{ID: "adjacent-band", Age: 25},
		{ID: "too-far", Age: 50},
		{ID: "unknown-age"},
	}}

	eligible, step := FilterEligible(subject, candidates, zap.NewNop())

	if step.Initial != 4 || step.Dropped != 2 || step.Left != 2 {
		t.Fatalf("unexpected step accounting: %+v", step)
	}
	if eligible.FindByID("same-band") == nil || eligible.FindByID("adjacent-band") == nil {
		t.Fatalf("expected in-band candidates to remain: %v", eligible.IDs())
	}
	if eligible.FindByID("too-far") != nil || eligible.FindByID("unknown-age") != nil {
		t.Fatalf("expected out-of-band candidates to be dropped: %v", eligible.IDs())
	}
}

func TestScoreAllPreservesOrder(t *testing.T) {
	t.Parallel()

	subject := subjectProfile()
	candidates := &profile.Profiles{Items: []*profile.UserMatchProfile{
		{ID: "c1", Age: 32},
		{ID: "c2", Age: 30},
		{ID: "c3", Age: 25},
	}}

	engine := scoring.New(zap.NewNop())
	records, err := ScoreAll(context.Background(), engine, subject, candidates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if records.Len() != 3 {
		t.Fatalf("expected 3 records, got %d", records.Len())
	}
	for i, id := range []string{"c1", "c2", "c3"} {
		if records.Items[i].CandidateID != id {
			t.Fatalf("expected candidate order preserved, got %v", records.Items)
		}
		if records.Items[i].UserID != "u1" {
			t.Fatalf("unexpected subject id: %s", records.Items[i].UserID)
		}
	}
}

// Scoring is deterministic: repeating the batch yields identical scores.
func TestScoreAllIsDeterministic(t *testing.T) {
	t.Parallel()

	subject := subjectProfile()
	candidates := &profile.Profiles{Items: []*profile.UserMatchProfile{
		{ID: "c1", Age: 32, AttachmentStyle: "anxious", Interests: []string{"hiking"}},
		{ID: "c2", Age: 30, AttachmentStyle: "avoidant"},
	}}

	engine := scoring.New(zap.NewNop())

	first, err := ScoreAll(context.Background(), engine, subject, candidates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ScoreAll(context.Background(), engine, subject, candidates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range first.Items {
		if first.Items[i].Score != second.Items[i].Score {
			t.Fatalf("scores differ between runs: %v vs %v", first.Items[i].Score, second.Items[i].Score)
		}
	}
}

func TestScoreAllStopsOnCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := scoring.New(zap.NewNop())
	candidates := &profile.Profiles{Items: []*profile.UserMatchProfile{{ID: "c1", Age: 30}}}

	if _, err := ScoreAll(ctx, engine, subjectProfile(), candidates); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestFileSourceExcludesSubject(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "profiles.json")
	payload := []map[string]any{
		{"id": "u1", "age": 30},
		{"id": "u2", "age": 32},
	}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("prepare: %v", err)
	}

	source := &FileSource{Path: path}
	candidates, err := source.Candidates(context.Background(), &profile.UserMatchProfile{ID: "u1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if candidates.Len() != 1 || candidates.Items[0].ID != "u2" {
		t.Fatalf("expected only u2, got %v", candidates.IDs())
	}
}
