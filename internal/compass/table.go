package compass

// compatibilityTable records, per question, which value pairs count as
// "compatible but not identical". Hand-curated domain knowledge; change it
// deliberately and update the table tests alongside.
//
// Note: big_mismatch has no entry for "mismatch" on purpose. The value has
// no compatible set and therefore always scores as different, even against
// itself.
var compatibilityTable = map[Question]map[string][]string{
	LivingArrangement: {
		LivingWithParents: {LivingNearParents},
		LivingNearParents: {LivingWithParents, LivingFlexible},
		LivingNewCity:     {LivingFlexible},
		LivingFlexible:    {LivingNearParents, LivingNewCity},
	},
	FinancialStyle: {
		FinanceProvider:  {FinanceLeadShare},
		FinanceLeadShare: {FinanceProvider, FinanceEqual},
		FinanceEqual:     {FinanceLeadShare, FinanceEmotional},
		FinanceEmotional: {FinanceEqual},
	},
	ChildrenVision: {
		ChildrenYesInvolved: {ChildrenYesSupport},
		ChildrenYesSupport:  {ChildrenYesInvolved, ChildrenMaybe},
		ChildrenMaybe:       {ChildrenYesSupport},
	},
	ConflictStyle: {
		ConflictTalkOut:   {ConflictNeedSpace, ConflictMediator},
		ConflictNeedSpace: {ConflictTalkOut},
		ConflictMediator:  {ConflictTalkOut},
	},
	AmbitionBalance: {
		AmbitionHigh:        {AmbitionBalanced},
		AmbitionBalanced:    {AmbitionHigh, AmbitionFamilyFirst},
		AmbitionFamilyFirst: {AmbitionBalanced, AmbitionSimpleLife},
		AmbitionSimpleLife:  {AmbitionFamilyFirst},
	},
	BigMismatch: {
		MismatchDiscuss:  {MismatchFlexible},
		MismatchUnsure:   {MismatchFlexible},
		MismatchFlexible: {MismatchDiscuss, MismatchUnsure},
	},
}

// CompatibleValues returns the compatible set for a value of q. Unknown
// questions or values yield an empty set.
func CompatibleValues(q Question, value string) []string {
	return compatibilityTable[q][value]
}

// AreCompatible reports whether two different values of q are compatible.
// The table is kept symmetric, but both directions are checked so argument
// order can never matter. Identical values are not "compatible but
// different" and report false here.
func AreCompatible(q Question, a, b string) bool {
	if a == b {
		return false
	}
	return inSet(compatibilityTable[q][a], b) || inSet(compatibilityTable[q][b], a)
}

func inSet(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
