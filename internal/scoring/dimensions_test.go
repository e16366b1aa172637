package scoring

import (
	"testing"

	"github.com/velora-app/matchengine/internal/compass"
	"github.com/velora-app/matchengine/internal/lifestage"
	"github.com/velora-app/matchengine/internal/profile"
)

func fullAnswers() compass.Answers {
	return compass.Answers{
		compass.LivingArrangement: compass.LivingNewCity,
		compass.FinancialStyle:    compass.FinanceEqual,
		compass.ChildrenVision:    compass.ChildrenYesInvolved,
		compass.ConflictStyle:     compass.ConflictTalkOut,
		compass.AmbitionBalance:   compass.AmbitionBalanced,
		compass.BigMismatch:       compass.MismatchDiscuss,
	}
}

func TestValuesAlignmentIdenticalAnswers(t *testing.T) {
	t.Parallel()

	if got := ValuesAlignment(fullAnswers(), fullAnswers()); got != 100 {
		t.Fatalf("expected 100 for identical answers, got %d", got)
	}
}

func TestValuesAlignmentNoSharedKeys(t *testing.T) {
	t.Parallel()

	a := compass.Answers{compass.LivingArrangement: compass.LivingNewCity}
	b := compass.Answers{compass.FinancialStyle: compass.FinanceEqual}

	if got := ValuesAlignment(a, b); got != 50 {
		t.Fatalf("expected neutral 50 with no shared keys, got %d", got)
	}
	if got := ValuesAlignment(nil, nil); got != 50 {
		t.Fatalf("expected neutral 50 for absent answers, got %d", got)
	}
}

func TestValuesAlignmentTiers(t *testing.T) {
	t.Parallel()

	// One exact, one compatible, one different: (1.0 + 0.7 + 0.3) / 3.
	a := compass.Answers{
		compass.FinancialStyle:    compass.FinanceEqual,
		compass.LivingArrangement: compass.LivingNewCity,
		compass.ConflictStyle:     compass.ConflictNeedSpace,
	}
	b := compass.Answers{
		compass.FinancialStyle:    compass.FinanceEqual,
		compass.LivingArrangement: compass.LivingFlexible,
		compass.ConflictStyle:     compass.ConflictMediator,
	}

	if got := ValuesAlignment(a, b); got != 67 {
		t.Fatalf("expected 67, got %d", got)
	}
}

// The big_mismatch "mismatch" value has no compatible set, so it scores as
// different even against itself.
func TestValuesAlignmentMismatchAgainstItself(t *testing.T) {
	t.Parallel()

	a := compass.Answers{compass.BigMismatch: compass.MismatchMismatch}
	b := compass.Answers{compass.BigMismatch: compass.MismatchMismatch}

	// Identical values are exact matches; this is only about different ones.
	if got := ValuesAlignment(a, b); got != 100 {
		t.Fatalf("identical mismatch answers are still exact, got %d", got)
	}

	c := compass.Answers{compass.BigMismatch: compass.MismatchDiscuss}
	if got := ValuesAlignment(a, c); got != 30 {
		t.Fatalf("expected tier-3 30 for mismatch vs discuss, got %d", got)
	}
}

func TestEmotionalFit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		a, b   *profile.UserMatchProfile
		expect int
	}{
		{
			name:   "secure pair without love languages",
			a:      &profile.UserMatchProfile{AttachmentStyle: "secure"},
			b:      &profile.UserMatchProfile{AttachmentStyle: "secure"},
			expect: 74, // round(0.6*90 + 0.4*50)
		},
		{
			name:   "secure anxious with one shared language",
			a:      &profile.UserMatchProfile{AttachmentStyle: "secure", LoveLanguages: []string{"quality_time"}},
			b:      &profile.UserMatchProfile{AttachmentStyle: "anxious", LoveLanguages: []string{"quality_time", "acts_of_service"}},
			expect: 79, // round(0.6*75 + 0.4*85)
		},
		{
			name:   "two shared languages",
			a:      &profile.UserMatchProfile{AttachmentStyle: "secure", LoveLanguages: []string{"quality_time", "touch"}},
			b:      &profile.UserMatchProfile{AttachmentStyle: "secure", LoveLanguages: []string{"touch", "quality_time"}},
			expect: 94, // round(0.6*90 + 0.4*100)
		},
		{
			name:   "no shared languages",
			a:      &profile.UserMatchProfile{AttachmentStyle: "avoidant", LoveLanguages: []string{"gifts"}},
			b:      &profile.UserMatchProfile{AttachmentStyle: "avoidant", LoveLanguages: []string{"touch"}},
			expect: 57, // round(0.6*55 + 0.4*60)
		},
		{
			name:   "missing attachment styles fall back to default",
			a:      &profile.UserMatchProfile{},
			b:      &profile.UserMatchProfile{},
			expect: 59, // round(0.6*65 + 0.4*50)
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EmotionalFit(tt.a, tt.b); got != tt.expect {
				t.Fatalf("expected %d, got %d", tt.expect, got)
			}
			// Attachment lookup sorts the pair; swapping users must not matter.
			if got := EmotionalFit(tt.b, tt.a); got != tt.expect {
				t.Fatalf("expected %d after swap, got %d", tt.expect, got)
			}
		})
	}
}

func TestLifestyleMatch(t *testing.T) {
	t.Parallel()

	a := &profile.UserMatchProfile{Interests: []string{"hiking", "music"}}
	b := &profile.UserMatchProfile{Interests: []string{"hiking", "cooking"}}
	if got := LifestyleMatch(a, b); got != 75 {
		t.Fatalf("expected 75 for one shared interest, got %d", got)
	}

	empty := &profile.UserMatchProfile{}
	if got := LifestyleMatch(a, empty); got != 70 {
		t.Fatalf("expected base 70 with no interests, got %d", got)
	}

	// Interest matching is case-sensitive.
	c := &profile.UserMatchProfile{Interests: []string{"Hiking"}}
	if got := LifestyleMatch(a, c); got != 70 {
		t.Fatalf("expected no match across case, got %d", got)
	}

	many := []string{"a", "b", "c", "d", "e", "f", "g"}
	d := &profile.UserMatchProfile{Interests: many}
	e := &profile.UserMatchProfile{Interests: many}
	if got := LifestyleMatch(d, e); got != 100 {
		t.Fatalf("expected cap at 100, got %d", got)
	}
}

func TestLifeStageFit(t *testing.T) {
	t.Parallel()

	byAge := func(age int) *profile.UserMatchProfile {
		return &profile.UserMatchProfile{Age: age}
	}

	tests := []struct {
		name   string
		a, b   *profile.UserMatchProfile
		mode   lifestage.Mode
		expect int
	}{
		{"same band", byAge(30), byAge(32), lifestage.ModeAdjacent, 100},
		{"adjacent bands", byAge(25), byAge(30), lifestage.ModeAdjacent, 85},
		{"two bands apart adjacent mode", byAge(25), byAge(40), lifestage.ModeAdjacent, 0},
		{"two bands apart flexible mode", byAge(25), byAge(40), lifestage.ModeFlexible, 70},
		{"three bands apart", byAge(22), byAge(50), lifestage.ModeFlexible, 0},
		{"unknown age", byAge(0), byAge(30), lifestage.ModeFlexible, 0},
		{"under the floor", byAge(19), byAge(21), lifestage.ModeAdjacent, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LifeStageFit(tt.a, tt.b, tt.mode); got != tt.expect {
				t.Fatalf("expected %d, got %d", tt.expect, got)
			}
			if got := LifeStageFit(tt.b, tt.a, tt.mode); got != tt.expect {
				t.Fatalf("expected %d after swap, got %d", tt.expect, got)
			}
		})
	}
}

func TestModeFor(t *testing.T) {
	t.Parallel()

	open := compass.Answers{compass.ChildrenVision: compass.ChildrenMaybe}
	wants := compass.Answers{compass.ChildrenVision: compass.ChildrenYesInvolved}

	tests := []struct {
		name   string
		a, b   *profile.UserMatchProfile
		expect lifestage.Mode
	}{
		{
			name:   "both open on children",
			a:      &profile.UserMatchProfile{Age: 30, Compass: open},
			b:      &profile.UserMatchProfile{Age: 30, Compass: compass.Answers{compass.ChildrenVision: compass.ChildrenNo}},
			expect: lifestage.ModeFlexible,
		},
		{
			name:   "one side wants children",
			a:      &profile.UserMatchProfile{Age: 30, Compass: open},
			b:      &profile.UserMatchProfile{Age: 30, Compass: wants},
			expect: lifestage.ModeAdjacent,
		},
		{
			name:   "older woman widens the band",
			a:      &profile.UserMatchProfile{Age: 36, Gender: "female", Compass: wants},
			b:      &profile.UserMatchProfile{Age: 30, Compass: wants},
			expect: lifestage.ModeFlexible,
		},
		{
			name:   "older man widens the band",
			a:      &profile.UserMatchProfile{Age: 30, Compass: wants},
			b:      &profile.UserMatchProfile{Age: 46, Gender: "male", Compass: wants},
			expect: lifestage.ModeFlexible,
		},
		{
			name:   "younger man does not",
			a:      &profile.UserMatchProfile{Age: 30, Gender: "male", Compass: wants},
			b:      &profile.UserMatchProfile{Age: 30, Gender: "female", Compass: wants},
			expect: lifestage.ModeAdjacent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ModeFor(tt.a, tt.b); got != tt.expect {
				t.Fatalf("expected %s, got %s", tt.expect, got)
			}
			if got := ModeFor(tt.b, tt.a); got != tt.expect {
				t.Fatalf("expected %s after swap, got %s", tt.expect, got)
			}
		})
	}
}
