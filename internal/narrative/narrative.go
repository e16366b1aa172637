package narrative

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/velora-app/matchengine/internal/profile"
	"github.com/velora-app/matchengine/internal/scoring"
)

// Narrative is the presentation text rendered for one scored pair. It adds
// no scoring of its own; everything here is templated from the result.
type Narrative struct {
	Introduction         string   `json:"introduction"`
	Highlights           []string `json:"highlights"`
	Reasons              []string `json:"reasons"`
	ConversationStarters []string `json:"conversation_starters"`
}

// Openers are the fixed pool of introduction templates. One is picked at
// random per narrative; all are equivalent, so callers should not depend on
// which.
var Openers = []string{
	"We think %s and %s could be a lovely pair.",
	"Here is someone worth meeting: %s, say hello to %s.",
	"%s and %s have more in common than they might guess.",
	"Good news, %s - we found a promising match in %s.",
}

// attachmentPhrases gives pair-specific emotional framing, keyed by the
// sorted attachment-style pair.
var attachmentPhrases = map[[2]string]string{
	{"secure", "secure"}:     "You both bring a steady, secure way of connecting",
	{"anxious", "secure"}:    "One of you brings reassurance where the other seeks it",
	{"avoidant", "secure"}:   "A patient, secure presence can make space for independence",
	{"anxious", "anxious"}:   "You both care deeply about closeness - name it early and often",
	{"anxious", "avoidant"}:  "Your needs for closeness and space differ, so talk about pace",
	{"avoidant", "avoidant"}: "You both value independence - deliberate check-ins will help",
}

// Generator renders narratives. The random source is injectable so tests
// can pin opener selection.
type Generator struct {
	pick func(n int) int
}

func New() *Generator {
	return &Generator{pick: rand.Intn}
}

// NewWithPick creates a generator with a deterministic opener selector.
func NewWithPick(pick func(n int) int) *Generator {
	return &Generator{pick: pick}
}

// Generate renders the narrative for a scored pair.
func (g *Generator) Generate(result *scoring.Result, a, b *profile.UserMatchProfile) *Narrative {
	return &Narrative{
		Introduction:         fmt.Sprintf(Openers[g.pick(len(Openers))], displayName(a), displayName(b)),
		Highlights:           highlights(result, a, b),
		Reasons:              append([]string(nil), result.TopReasons...),
		ConversationStarters: starters(a, b),
	}
}

func displayName(p *profile.UserMatchProfile) string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

func highlights(result *scoring.Result, a, b *profile.UserMatchProfile) []string {
	var out []string

	out = append(out, fmt.Sprintf("Overall compatibility: %d/100 (%s)", result.OverallScore, result.Recommendation))

	if phrase, ok := attachmentPhrase(a.AttachmentStyle, b.AttachmentStyle); ok {
		out = append(out, phrase)
	}

	if shared := sharedTags(a.Interests, b.Interests); len(shared) > 0 {
		out = append(out, "Shared interests: "+strings.Join(shared, ", "))
	}

	return out
}

func attachmentPhrase(a, b string) (string, bool) {
	pair := [2]string{a, b}
	sort.Strings(pair[:])
	phrase, ok := attachmentPhrases[pair]
	return phrase, ok
}

func starters(a, b *profile.UserMatchProfile) []string {
	var out []string

	for _, tag := range sharedTags(a.Interests, b.Interests) {
		out = append(out, fmt.Sprintf("Ask about their favourite way to enjoy %s.", tag))
		if len(out) == 2 {
			break
		}
	}

	if len(out) == 0 {
		out = append(out, "Ask what a perfect weekend looks like for them.")
	}

	return out
}

func sharedTags(a, b []string) []string {
	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}

	var shared []string
	for _, v := range b {
		if _, ok := set[v]; ok {
			shared = append(shared, v)
			delete(set, v)
		}
	}
	sort.Strings(shared)
	return shared
}
