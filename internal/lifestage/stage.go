package lifestage

// Stage is a coarse age-derived band used to bound match eligibility and
// to contribute a scoring dimension.
type Stage string

const (
	StageUnknown      Stage = "unknown"
	StageEarlyCareer  Stage = "early_career"
	StageEstablishing Stage = "establishing"
	StageEstablished  Stage = "established"
	StageMature       Stage = "mature"

	// minKnownAge is the floor below which an age does not map to a band.
	minKnownAge = 20
)

// ordered lists the known bands in ascending order. Band distance and
// adjacency are defined by positions in this slice.
var ordered = []Stage{StageEarlyCareer, StageEstablishing, StageEstablished, StageMature}

// Mode widens which life-stage distances are acceptable between two users.
type Mode string

const (
	// ModeAdjacent allows the same band plus one step to each side.
	ModeAdjacent Mode = "adjacent"
	// ModeFlexible additionally allows bands two steps away.
	ModeFlexible Mode = "flexible"
)

// Classify maps an age to its band. Ages below the floor (including zero
// for an absent age) classify as unknown. Lower bounds are inclusive.
func Classify(age int) Stage {
	switch {
	case age < minKnownAge:
		return StageUnknown
	case age <= 27:
		return StageEarlyCareer
	case age <= 35:
		return StageEstablishing
	case age <= 45:
		return StageEstablished
	default:
		return StageMature
	}
}

// IsKnown reports whether s is one of the four known bands.
func IsKnown(s Stage) bool {
	return index(s) >= 0
}

func index(s Stage) int {
	for i, stage := range ordered {
		if stage == s {
			return i
		}
	}
	return -1
}

// Distance returns the absolute difference of band positions. The second
// return value is false when either stage is unknown, signalling that the
// pair is incompatible rather than merely distant.
func Distance(a, b Stage) (int, bool) {
	ia, ib := index(a), index(b)
	if ia < 0 || ib < 0 {
		return 0, false
	}
	d := ia - ib
	if d < 0 {
		d = -d
	}
	return d, true
}

// CompatibleBands returns the set of bands eligible to match with stage
// under the given mode. The stage itself is always included; adjacent mode
// adds one step to each side, flexible mode two, clipped at the ends of the
// band order. Unknown stages have no compatible bands.
func CompatibleBands(stage Stage, mode Mode) []Stage {
	i := index(stage)
	if i < 0 {
		return nil
	}

	reach := 1
	if mode == ModeFlexible {
		reach = 2
	}

	low := i - reach
	if low < 0 {
		low = 0
	}
	high := i + reach
	if high > len(ordered)-1 {
		high = len(ordered) - 1
	}

	bands := make([]Stage, 0, high-low+1)
	bands = append(bands, ordered[low:high+1]...)
	return bands
}

// Compatible reports whether b falls inside a's compatible bands under mode.
func Compatible(a, b Stage, mode Mode) bool {
	for _, band := range CompatibleBands(a, mode) {
		if band == b {
			return true
		}
	}
	return false
}
