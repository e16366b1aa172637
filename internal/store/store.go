package store

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/velora-app/matchengine/internal/scoring"
)

// MatchRecord is the persisted form of one scored pair. Score is kept as a
// 0.0-1.0 fraction for downstream consumers; the full engine result rides
// along for audit and explanation.
type MatchRecord struct {
	UserID      string          `json:"user_id"`
	CandidateID string          `json:"candidate_id"`
	Score       float64         `json:"score"`
	Result      *scoring.Result `json:"result"`
	CreatedAt   time.Time       `json:"created_at"`
}

// MatchRecords is an appendable collection backed by a JSON file.
type MatchRecords struct {
	Items []*MatchRecord
}

// NewRecord converts an engine result into its persisted form, translating
// the 0-100 integer score into a fraction.
func NewRecord(userID, candidateID string, result *scoring.Result) *MatchRecord {
	return &MatchRecord{
		UserID:      userID,
		CandidateID: candidateID,
		Score:       float64(result.OverallScore) / 100,
		Result:      result,
		CreatedAt:   time.Now().UTC(),
	}
}

func (r *MatchRecords) Len() int {
	return len(r.Items)
}

func (r *MatchRecords) Append(other *MatchRecords) {
	r.Items = append(r.Items, other.Items...)
}

// FromFile loads previously saved match records. A zero-length file yields
// an empty collection rather than an error.
func FromFile(path string) (*MatchRecords, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &MatchRecords{}, nil
	}

	var records MatchRecords
	if err := json.NewDecoder(file).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode match records: %w", err)
	}
	return &records, nil
}

// ToFile writes the collection to path, creating the file when absent.
func (r *MatchRecords) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// DumpToTmpFile writes the collection to a fresh temporary file and returns
// its name.
func (r *MatchRecords) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "matches_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}
