// Package knowledge holds the static corpus of sourced productivity
// facts and provides relevance-ranked lookup over it. The corpus is
// loaded once at startup and never mutated; retrieval is safe for
// concurrent use.
package knowledge

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Insight is one attributable fact from the corpus.
type Insight struct {
	Title    string   `yaml:"title"`
	Fact     string   `yaml:"fact"`
	Source   string   `yaml:"source"`
	Category string   `yaml:"category"`
	Tags     []string `yaml:"tags"`
}

// Result pairs an insight with its relevance score for a query.
type Result struct {
	Insight Insight
	Score   int
}

// Base is an immutable insight corpus.
type Base struct {
	insights []Insight
}

// maxResults caps Search output.
const maxResults = 5

// NewBase builds a corpus from the given insights.
func NewBase(insights []Insight) *Base {
	return &Base{insights: insights}
}

// Default returns the built-in consulting-research corpus.
func Default() *Base {
	return NewBase(builtinInsights)
}

// FromYAML reads a corpus from a yaml document of the form
// `insights: [...]`. Used to extend or replace the built-in set.
func FromYAML(r io.Reader) (*Base, error) {
	var doc struct {
		Insights []Insight `yaml:"insights"`
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse corpus: %w", err)
	}
	return NewBase(doc.Insights), nil
}

// Len returns the corpus size.
func (b *Base) Len() int { return len(b.insights) }

// Search scores every insight against the whitespace-split query
// terms: +3 per term found in the title, +2 in the fact text, +1 in a
// tag, all case-insensitive substring matches. Zero-score insights are
// excluded. Results come back sorted descending by score, ties broken
// by corpus order, truncated to the top 5.
func (b *Base) Search(query string) []Result {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return nil
	}

	var results []Result
	for _, ins := range b.insights {
		score := relevance(terms, ins)
		if score > 0 {
			results = append(results, Result{Insight: ins, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

func relevance(terms []string, ins Insight) int {
	title := strings.ToLower(ins.Title)
	fact := strings.ToLower(ins.Fact)

	score := 0
	for _, term := range terms {
		if strings.Contains(title, term) {
			score += 3
		}
		if strings.Contains(fact, term) {
			score += 2
		}
		for _, tag := range ins.Tags {
			if strings.Contains(strings.ToLower(tag), term) {
				score++
				break
			}
		}
	}
	return score
}

// ContextBlock formats search results as a prompt fragment, one fact
// per line with its attribution in brackets.
func ContextBlock(results []Result) string {
	if len(results) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Relevant insights for this question:\n")
	for _, r := range results {
		fmt.Fprintf(&b, "- %s [%s]\n", r.Insight.Fact, r.Insight.Source)
	}
	return b.String()
}
