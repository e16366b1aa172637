package rules

import "github.com/velora-app/matchengine/internal/compass"

// Kind distinguishes rules that disqualify a pair outright from rules that
// only cap the final score.
type Kind string

const (
	// KindDealbreaker forces a zero score and skips all dimension scoring.
	KindDealbreaker Kind = "dealbreaker"
	// KindRedFlag caps the weighted score at the rule's ceiling.
	KindRedFlag Kind = "red_flag"
)

// Check is a pure predicate over two answer sets. Checks must be symmetric
// in their arguments: the engine's output may not depend on argument order.
type Check func(a, b compass.Answers) bool

// Rule is one declarative entry in the ordered rule list. New rules are
// added here; the evaluation loop never changes.
type Rule struct {
	Name    string
	Kind    Kind
	Check   Check
	Message string
	// Ceiling is the score cap applied when a red-flag rule matches.
	// Ignored for dealbreakers.
	Ceiling int
}

// Verdict reports the first rule that matched a pair, if any.
type Verdict struct {
	Rule *Rule
}

// Dealbreaker reports whether the matched rule disqualifies the pair.
func (v *Verdict) Dealbreaker() bool {
	return v != nil && v.Rule != nil && v.Rule.Kind == KindDealbreaker
}

// RedFlag reports whether the matched rule caps the score.
func (v *Verdict) RedFlag() bool {
	return v != nil && v.Rule != nil && v.Rule.Kind == KindRedFlag
}

// Evaluate scans the rule list in order and returns a verdict for the first
// match: all dealbreakers are considered before any red flag, and within a
// kind list order wins. Returns nil when nothing matched.
func Evaluate(list []Rule, a, b compass.Answers) *Verdict {
	for i := range list {
		if list[i].Kind != KindDealbreaker {
			continue
		}
		if list[i].Check(a, b) {
			return &Verdict{Rule: &list[i]}
		}
	}

	for i := range list {
		if list[i].Kind != KindRedFlag {
			continue
		}
		if list[i].Check(a, b) {
			return &Verdict{Rule: &list[i]}
		}
	}

	return nil
}

// Default is the production rule list, ordered.
var Default = []Rule{
	{
		Name:    "children_vision_clash",
		Kind:    KindDealbreaker,
		Check:   childrenVisionClash,
		Message: "One of you firmly wants children and the other firmly does not",
	},
	{
		Name:    "both_avoid_conflict",
		Kind:    KindDealbreaker,
		Check:   bothAvoidConflict,
		Message: "Both of you avoid conflict, so disagreements would never get resolved",
	},
	{
		Name:    "ambition_clash",
		Kind:    KindRedFlag,
		Check:   ambitionClash,
		Message: "Very different ambition levels could pull your lives in different directions",
		Ceiling: 20,
	},
}

func childrenVisionClash(a, b compass.Answers) bool {
	return wantsChildren(a) && saysNoChildren(b) ||
		wantsChildren(b) && saysNoChildren(a)
}

func wantsChildren(a compass.Answers) bool {
	v, ok := a.Get(compass.ChildrenVision)
	return ok && (v == compass.ChildrenYesInvolved || v == compass.ChildrenYesSupport)
}

func saysNoChildren(a compass.Answers) bool {
	v, ok := a.Get(compass.ChildrenVision)
	return ok && v == compass.ChildrenNo
}

func bothAvoidConflict(a, b compass.Answers) bool {
	va, oka := a.Get(compass.ConflictStyle)
	vb, okb := b.Get(compass.ConflictStyle)
	return oka && okb && va == compass.ConflictAvoid && vb == compass.ConflictAvoid
}

func ambitionClash(a, b compass.Answers) bool {
	va, oka := a.Get(compass.AmbitionBalance)
	vb, okb := b.Get(compass.AmbitionBalance)
	if !oka || !okb {
		return false
	}
	return va == compass.AmbitionHigh && vb == compass.AmbitionSimpleLife ||
		va == compass.AmbitionSimpleLife && vb == compass.AmbitionHigh
}
