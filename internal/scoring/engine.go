package scoring

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/velora-app/matchengine/internal/lifestage"
	"github.com/velora-app/matchengine/internal/profile"
	"github.com/velora-app/matchengine/internal/rules"
)

// ErrNilProfile is returned when either input profile is absent.
var ErrNilProfile = errors.New("both profiles are required")

// ErrUnknownLifeStage is returned when a profile carries a life-stage value
// outside the known bands. Profiles derived through the classifier can not
// trigger this; it guards direct callers.
var ErrUnknownLifeStage = errors.New("life stage is not a known band")

// Dimension weights for the overall score.
const (
	weightValues    = 0.35
	weightEmotional = 0.25
	weightLifestyle = 0.20
	weightLifeStage = 0.20
)

const maxTopReasons = 3

// Result is the engine's verdict for one ordered pair. It is constructed
// fresh on every call and never merged with a prior result.
type Result struct {
	OverallScore    int               `json:"overall_score"`
	DimensionScores map[Dimension]int `json:"dimension_scores"`
	TopReasons      []string          `json:"top_reasons"`
	Recommendation  string            `json:"recommendation"`
}

// Engine scores pairs of profiles. It holds no mutable state; a single
// value can serve any number of concurrent callers.
type Engine struct {
	rules  []rules.Rule
	logger *zap.Logger
}

// New creates an engine with the default rule list.
func New(logger *zap.Logger) *Engine {
	return NewWithRules(rules.Default, logger)
}

// NewWithRules creates an engine with a custom ordered rule list.
func NewWithRules(list []rules.Rule, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{rules: list, logger: logger}
}

// Score produces a compatibility verdict for the pair. The result is
// symmetric: swapping the two profiles yields identical scores, reasons
// and recommendation. Missing domain data degrades to neutral defaults;
// only nil profiles and out-of-range life stages are errors.
func (e *Engine) Score(a, b *profile.UserMatchProfile) (*Result, error) {
	if a == nil || b == nil {
		return nil, ErrNilProfile
	}
	if err := validateStage(a); err != nil {
		return nil, err
	}
	if err := validateStage(b); err != nil {
		return nil, err
	}

	verdict := rules.Evaluate(e.rules, a.Compass, b.Compass)

	if verdict.Dealbreaker() {
		e.logger.Debug("pair disqualified",
			zap.String("rule", verdict.Rule.Name),
			zap.String("user_a", a.ID),
			zap.String("user_b", b.ID),
		)
		return disqualified(verdict.Rule), nil
	}

	mode := ModeFor(a, b)
	dimensions := map[Dimension]int{
		DimensionValues:    ValuesAlignment(a.Compass, b.Compass),
		DimensionEmotional: EmotionalFit(a, b),
		DimensionLifestyle: LifestyleMatch(a, b),
		DimensionLifeStage: LifeStageFit(a, b, mode),
	}

	weighted := int(math.Round(
		weightValues*float64(dimensions[DimensionValues]) +
			weightEmotional*float64(dimensions[DimensionEmotional]) +
			weightLifestyle*float64(dimensions[DimensionLifestyle]) +
			weightLifeStage*float64(dimensions[DimensionLifeStage]),
	))

	overall := weighted
	if verdict.RedFlag() && overall > verdict.Rule.Ceiling {
		overall = verdict.Rule.Ceiling
	}

	result := &Result{
		OverallScore:    overall,
		DimensionScores: dimensions,
		TopReasons:      topReasons(verdict, dimensions),
		Recommendation:  RecommendationFor(overall),
	}

	e.logger.Debug("pair scored",
		zap.String("user_a", a.ID),
		zap.String("user_b", b.ID),
		zap.Int("overall", overall),
		zap.Int("weighted", weighted),
		zap.String("flexibility", string(mode)),
		zap.String("recommendation", result.Recommendation),
	)

	return result, nil
}

func validateStage(p *profile.UserMatchProfile) error {
	if p.LifeStage == "" || p.LifeStage == lifestage.StageUnknown {
		return nil
	}
	if !lifestage.IsKnown(p.LifeStage) {
		return fmt.Errorf("%w: %q", ErrUnknownLifeStage, p.LifeStage)
	}
	return nil
}

// disqualified is the terminal dealbreaker result: zero everywhere, the
// rule's message as the single reason, no dimensions computed.
func disqualified(rule *rules.Rule) *Result {
	dimensions := make(map[Dimension]int, len(Dimensions))
	for _, d := range Dimensions {
		dimensions[d] = 0
	}
	return &Result{
		OverallScore:    0,
		DimensionScores: dimensions,
		TopReasons:      []string{rule.Message},
		Recommendation:  "Not Compatible - " + rule.Message,
	}
}

// topReasons builds up to three reasons, most important first. A red-flag
// message always leads; dimension reasons follow in fixed priority order.
func topReasons(verdict *rules.Verdict, dimensions map[Dimension]int) []string {
	reasons := make([]string, 0, maxTopReasons)
	if verdict.RedFlag() {
		reasons = append(reasons, verdict.Rule.Message)
	}

	thresholds := []struct {
		dimension Dimension
		above     int
		text      string
	}{
		{DimensionValues, 80, "Your visions for the future align closely"},
		{DimensionEmotional, 75, "Your emotional styles complement each other"},
		{DimensionLifestyle, 70, "Your daily rhythms and interests sync well"},
	}

	for _, t := range thresholds {
		if len(reasons) == maxTopReasons {
			break
		}
		if dimensions[t.dimension] > t.above {
			reasons = append(reasons, t.text)
		}
	}

	return reasons
}

// recommendationBands maps score thresholds to labels, highest first.
var recommendationBands = []struct {
	atLeast int
	label   string
}{
	{85, "Exceptional Match"},
	{75, "Strong Match"},
	{65, "Good Match"},
	{55, "Moderate Match"},
	{20, "Low Compatibility"},
}

// RecommendationFor maps a final score to its label. Thresholds are
// inclusive and evaluated from highest to lowest.
func RecommendationFor(score int) string {
	for _, band := range recommendationBands {
		if score >= band.atLeast {
			return band.label
		}
	}
	return "Not Recommended"
}
