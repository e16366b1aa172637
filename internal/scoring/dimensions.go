package scoring

import (
	"math"
	"sort"

	"github.com/velora-app/matchengine/internal/compass"
	"github.com/velora-app/matchengine/internal/lifestage"
	"github.com/velora-app/matchengine/internal/profile"
)

// Dimension names the four scored dimensions.
type Dimension string

const (
	DimensionValues    Dimension = "values"
	DimensionEmotional Dimension = "emotional"
	DimensionLifestyle Dimension = "lifestyle"
	DimensionLifeStage Dimension = "life_stage"
)

// Dimensions lists the scored dimensions in reason-priority order.
var Dimensions = []Dimension{DimensionValues, DimensionEmotional, DimensionLifestyle, DimensionLifeStage}

const (
	valuesNeutralScore = 50
	exactAnswerWeight  = 1.0
	compatibleWeight   = 0.7
	differentWeight    = 0.3

	attachmentDefaultScore = 65
	loveLanguageNoData     = 50

	lifestyleBase        = 70
	lifestylePerInterest = 5
)

// attachmentPairScores is keyed by the sorted pair of attachment styles, so
// the order of the two users never matters.
var attachmentPairScores = map[[2]string]int{
	{"secure", "secure"}:     90,
	{"anxious", "secure"}:    75,
	{"avoidant", "secure"}:   70,
	{"anxious", "anxious"}:   60,
	{"anxious", "avoidant"}:  50,
	{"avoidant", "avoidant"}: 55,
}

// ValuesAlignment scores how closely two compass answer sets agree, over
// the keys both sides answered. Keys answered by only one side contribute
// to neither numerator nor denominator. With no shared keys the score is a
// neutral 50 so incomplete quizzes are not punished.
func ValuesAlignment(a, b compass.Answers) int {
	shared := compass.SharedQuestions(a, b)
	if len(shared) == 0 {
		return valuesNeutralScore
	}

	var sum float64
	for _, q := range shared {
		va, _ := a.Get(q)
		vb, _ := b.Get(q)
		switch {
		case va == vb:
			sum += exactAnswerWeight
		case compass.AreCompatible(q, va, vb):
			sum += compatibleWeight
		default:
			sum += differentWeight
		}
	}

	return clampScore(int(math.Round(100 * sum / float64(len(shared)))))
}

// EmotionalFit combines an attachment-style subscore with a love-language
// subscore, weighted 60/40. Missing attachment data falls back to the
// default pair score; missing love-language data is neutral.
func EmotionalFit(a, b *profile.UserMatchProfile) int {
	attachment := attachmentScore(a.AttachmentStyle, b.AttachmentStyle)
	language := loveLanguageScore(a.LoveLanguages, b.LoveLanguages)
	return clampScore(int(math.Round(0.6*float64(attachment) + 0.4*float64(language))))
}

func attachmentScore(a, b string) int {
	pair := [2]string{a, b}
	sort.Strings(pair[:])
	if score, ok := attachmentPairScores[pair]; ok {
		return score
	}
	return attachmentDefaultScore
}

func loveLanguageScore(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return loveLanguageNoData
	}
	switch shared := intersectionSize(a, b); {
	case shared >= 2:
		return 100
	case shared == 1:
		return 85
	default:
		return 60
	}
}

// LifestyleMatch starts from a base of 70 and adds 5 points per shared
// interest tag (case-sensitive exact match), capped at 100. Empty interest
// sets simply yield the base.
func LifestyleMatch(a, b *profile.UserMatchProfile) int {
	score := lifestyleBase + lifestylePerInterest*intersectionSize(a.Interests, b.Interests)
	return clampScore(score)
}

// LifeStageFit scores band proximity under the pair's flexibility mode. It
// re-applies the same eligibility rule the candidate pool filter uses, so
// direct calls in tests or batch jobs cannot bypass it: stages outside each
// other's compatible bands, or unknown, score zero.
func LifeStageFit(a, b *profile.UserMatchProfile, mode lifestage.Mode) int {
	sa, sb := a.Stage(), b.Stage()

	distance, ok := lifestage.Distance(sa, sb)
	if !ok {
		return 0
	}
	if !lifestage.Compatible(sa, sb, mode) || !lifestage.Compatible(sb, sa, mode) {
		return 0
	}

	switch distance {
	case 0:
		return 100
	case 1:
		return 85
	case 2:
		return 70
	default:
		return 0
	}
}

// ModeFor derives the pair's flexibility mode. The band widens when neither
// side is set on having children, or when a user's age and gender put them
// in a group that typically matches across wider age gaps. Both conditions
// are symmetric in the two users, keeping Score symmetric.
func ModeFor(a, b *profile.UserMatchProfile) lifestage.Mode {
	if openOnChildren(a.Compass) && openOnChildren(b.Compass) {
		return lifestage.ModeFlexible
	}
	if widensBand(a) || widensBand(b) {
		return lifestage.ModeFlexible
	}
	return lifestage.ModeAdjacent
}

func openOnChildren(a compass.Answers) bool {
	v, ok := a.Get(compass.ChildrenVision)
	return ok && (v == compass.ChildrenMaybe || v == compass.ChildrenNo)
}

func widensBand(p *profile.UserMatchProfile) bool {
	switch p.Gender {
	case "female":
		return p.Age >= 35
	case "male":
		return p.Age >= 45
	default:
		return false
	}
}

func intersectionSize(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}

	count := 0
	for _, v := range b {
		if _, ok := set[v]; ok {
			count++
			delete(set, v)
		}
	}
	return count
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
