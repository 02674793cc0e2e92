// Package fallback is the deterministic response path used when every
// provider in the chain has failed. It never touches the network and
// never returns an error; its worst case is the generic template.
package fallback

import (
	"regexp"
	"strings"
)

// Intent tags produced by the classifier.
type Intent string

const (
	IntentProductivity Intent = "productivity"
	IntentPlanning     Intent = "planning"
	IntentEnergy       Intent = "energy"
	IntentPriorities   Intent = "priorities"
	IntentStats        Intent = "stats"
	IntentHelp         Intent = "help"
	IntentMethods      Intent = "methods"
	IntentTime         Intent = "time"
	IntentGeneral      Intent = "general"
)

// intentPatterns is evaluated in order against the lowercased
// utterance; the first matching entry wins, so earlier entries take
// precedence on overlapping vocabulary.
var intentPatterns = []struct {
	intent  Intent
	pattern *regexp.Regexp
}{
	{IntentProductivity, regexp.MustCompile(`productiv|efficien|improve|optimi[sz]e`)},
	{IntentPlanning, regexp.MustCompile(`plan|schedul|organi[sz]e|agenda|calendar`)},
	{IntentEnergy, regexp.MustCompile(`energy|tired|fatigue|concentrat|focus`)},
	{IntentPriorities, regexp.MustCompile(`priorit|important|urgent|eisenhower`)},
	{IntentStats, regexp.MustCompile(`statistic|report|analy|performance`)},
	{IntentHelp, regexp.MustCompile(`help|how (do|can|should)|advice|what should`)},
	{IntentMethods, regexp.MustCompile(`method|technique|pomodoro|gtd`)},
	{IntentTime, regexp.MustCompile(`\btime\b|\bhour\b|duration|how long`)},
}

// Classify tags an utterance with the first matching intent, or
// IntentGeneral when nothing matches. Matching is case-insensitive.
func Classify(utterance string) Intent {
	lowered := strings.ToLower(utterance)
	for _, entry := range intentPatterns {
		if entry.pattern.MatchString(lowered) {
			return entry.intent
		}
	}
	return IntentGeneral
}
