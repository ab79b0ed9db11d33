// Package extractor pulls a source/destination pair out of a transcribed
// voice command using a fixed, ordered list of patterns.
package extractor

import (
	"regexp"

	"github.com/wyg1997/VoiceRoute/internal/domain"
)

// Rule names reported by Extract
const (
	RuleFromTo   = "from_to"
	RuleGoToFrom = "go_to_from"
	RuleDirect   = "direct"
	RuleNone     = ""
)

// rule maps capture groups of one pattern onto source and destination
type rule struct {
	name        string
	pattern     *regexp.Regexp
	sourceGroup int
	destGroup   int
}

// Spans are lazy and stop at the first '.', ',' or end of text.
// Order matters: the anchored direct pattern would swallow "from" or "go"
// into the source if it ran first.
var rules = []rule{
	{RuleFromTo, regexp.MustCompile(`(?i)from (.*?) to (.*?)(?:$|[.,])`), 1, 2},
	{RuleGoToFrom, regexp.MustCompile(`(?i)go to (.*?) from (.*?)(?:$|[.,])`), 2, 1},
	{RuleDirect, regexp.MustCompile(`(?i)^(.*?) to (.*?)(?:$|[.,])`), 1, 2},
}

var _ domain.RouteExtractor = (*Extractor)(nil)

// Extractor implements domain.RouteExtractor. The zero value is ready to use
// and safe for concurrent callers.
type Extractor struct{}

// New creates a route extractor
func New() *Extractor {
	return &Extractor{}
}

// ExtractSourceDestination returns the first matching pattern's captures,
// untrimmed and with their original case. No match yields nil fields.
func (e *Extractor) ExtractSourceDestination(commandText string) domain.Extraction {
	result, _ := e.Extract(commandText)
	return result
}

// Extract is ExtractSourceDestination plus the name of the rule that matched,
// or RuleNone.
func (e *Extractor) Extract(commandText string) (domain.Extraction, string) {
	for _, r := range rules {
		m := r.pattern.FindStringSubmatch(commandText)
		if m == nil {
			continue
		}
		source, destination := m[r.sourceGroup], m[r.destGroup]
		return domain.Extraction{Source: &source, Destination: &destination}, r.name
	}
	return domain.Extraction{}, RuleNone
}
