package profile

import (
	"github.com/velora-app/matchengine/internal/compass"
	"github.com/velora-app/matchengine/internal/lifestage"
)

// UserMatchProfile is the scoring-relevant projection of a user. The engine
// receives it as a read-only snapshot and never mutates it; ownership stays
// with the persistence layer.
type UserMatchProfile struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	Gender string `json:"gender,omitempty"`
	Age    int    `json:"age,omitempty"`

	// LifeStage may be supplied directly by callers that already derived
	// it. When empty the stage is recomputed from Age, so it never drifts
	// from the age it was derived from.
	LifeStage lifestage.Stage `json:"life_stage,omitempty"`

	AttachmentStyle string          `json:"attachment_style,omitempty"`
	LoveLanguages   []string        `json:"love_languages,omitempty"`
	Interests       []string        `json:"interests,omitempty"`
	Compass         compass.Answers `json:"compass,omitempty"`
}

// Stage returns the profile's life-stage band, deriving it from age when no
// explicit stage was supplied.
func (p *UserMatchProfile) Stage() lifestage.Stage {
	if p.LifeStage != "" {
		return p.LifeStage
	}
	return lifestage.Classify(p.Age)
}

// Profiles is a read-only collection of candidate profiles.
type Profiles struct {
	Items []*UserMatchProfile
}

func (p *Profiles) Len() int {
	return len(p.Items)
}

func (p *Profiles) FindByID(id string) *UserMatchProfile {
	for _, item := range p.Items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

func (p *Profiles) IDs() []string {
	ids := make([]string, 0, len(p.Items))
	for _, item := range p.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

// Without returns a copy of the collection with the given user removed.
// The subject of a match run must never appear in its own candidate pool.
func (p *Profiles) Without(id string) *Profiles {
	items := make([]*UserMatchProfile, 0, len(p.Items))
	for _, item := range p.Items {
		if item.ID == id {
			continue
		}
		items = append(items, item)
	}
	return &Profiles{Items: items}
}
