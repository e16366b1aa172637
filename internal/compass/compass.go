package compass

// Question identifies one of the six relationship-preference questions
// presented by the quiz flow.
type Question string

const (
	LivingArrangement Question = "living_arrangement"
	FinancialStyle    Question = "financial_style"
	ChildrenVision    Question = "children_vision"
	ConflictStyle     Question = "conflict_style"
	AmbitionBalance   Question = "ambition_balance"
	BigMismatch       Question = "big_mismatch"
)

// Questions lists the closed question vocabulary in quiz order.
var Questions = []Question{
	LivingArrangement,
	FinancialStyle,
	ChildrenVision,
	ConflictStyle,
	AmbitionBalance,
	BigMismatch,
}

// Allowed values per question. The vocabulary is closed and versioned:
// anything outside it is treated as not compatible, never as an error.
const (
	LivingWithParents = "with_parents"
	LivingNearParents = "near_parents"
	LivingNewCity     = "new_city"
	LivingFlexible    = "flexible"

	FinanceProvider  = "provider"
	FinanceLeadShare = "lead_share"
	FinanceEqual     = "equal"
	FinanceEmotional = "emotional"

	ChildrenYesInvolved = "yes_involved"
	ChildrenYesSupport  = "yes_support"
	ChildrenMaybe       = "maybe"
	ChildrenNo          = "no"

	ConflictTalkOut   = "talk_out"
	ConflictNeedSpace = "need_space"
	ConflictMediator  = "mediator"
	ConflictAvoid     = "avoid"

	AmbitionHigh        = "high_ambition"
	AmbitionBalanced    = "balanced"
	AmbitionFamilyFirst = "family_first"
	AmbitionSimpleLife  = "simple_life"

	MismatchDiscuss  = "discuss"
	MismatchUnsure   = "unsure"
	MismatchMismatch = "mismatch"
	MismatchFlexible = "flexible"
)

// Answers maps question keys to the single value a user selected. Answer
// sets may be partial: the quiz flow fills them incrementally and scoring
// must tolerate missing keys.
type Answers map[Question]string

// Get returns the answer for q and whether it is present and non-empty.
func (a Answers) Get(q Question) (string, bool) {
	if a == nil {
		return "", false
	}
	v, ok := a[q]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// SharedQuestions returns the question keys answered by both sides, in
// quiz order. Keys answered by only one side are ignored entirely.
func SharedQuestions(a, b Answers) []Question {
	shared := make([]Question, 0, len(Questions))
	for _, q := range Questions {
		if _, ok := a.Get(q); !ok {
			continue
		}
		if _, ok := b.Get(q); !ok {
			continue
		}
		shared = append(shared, q)
	}
	return shared
}
