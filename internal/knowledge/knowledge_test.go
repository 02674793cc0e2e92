package knowledge

import (
	"strings"
	"testing"
)

var testCorpus = []Insight{
	{Title: "Meetings", Fact: "too many meetings", Source: "A", Tags: []string{"meetings", "time"}},
	{Title: "Focus", Fact: "deep work wins", Source: "B", Tags: []string{"focus"}},
	{Title: "Email", Fact: "email eats the day", Source: "C", Tags: []string{"inbox-zero"}},
}

func TestSearchTagOnlyMatchScoresOne(t *testing.T) {
	b := NewBase(testCorpus)
	results := b.Search("inbox-zero")
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Insight.Title != "Email" {
		t.Errorf("matched %q, want Email", results[0].Insight.Title)
	}
	if results[0].Score != 1 {
		t.Errorf("score = %d, want 1", results[0].Score)
	}
}

func TestSearchNoMatchReturnsEmpty(t *testing.T) {
	b := NewBase(testCorpus)
	if results := b.Search("quantum chromodynamics"); len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestSearchExcludesZeroScores(t *testing.T) {
	b := NewBase(testCorpus)
	for _, r := range b.Search("meetings") {
		if r.Score == 0 {
			t.Errorf("zero-score insight %q in results", r.Insight.Title)
		}
	}
}

func TestSearchRankingAndTieBreak(t *testing.T) {
	b := NewBase([]Insight{
		{Title: "alpha focus", Fact: "nothing", Tags: nil},       // title: 3
		{Title: "beta", Fact: "focus matters", Tags: nil},        // fact: 2
		{Title: "gamma", Fact: "also focus", Tags: []string{""}}, // fact: 2, later in corpus
	})
	results := b.Search("focus")
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].Insight.Title != "alpha focus" {
		t.Errorf("top result %q, want highest score first", results[0].Insight.Title)
	}
	// Equal scores keep corpus order (stable sort).
	if results[1].Insight.Title != "beta" || results[2].Insight.Title != "gamma" {
		t.Errorf("tie-break violated: %q then %q", results[1].Insight.Title, results[2].Insight.Title)
	}
}

func TestSearchTruncatesToFive(t *testing.T) {
	var corpus []Insight
	for i := 0; i < 8; i++ {
		corpus = append(corpus, Insight{Title: "focus", Fact: "focus"})
	}
	b := NewBase(corpus)
	if got := len(b.Search("focus")); got != 5 {
		t.Errorf("got %d results, want 5", got)
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	b := Default()
	if len(b.Search("MEETINGS")) == 0 {
		t.Error("uppercase query should match")
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	b := Default()
	if got := b.Search("   "); got != nil {
		t.Errorf("blank query returned %v, want nil", got)
	}
}

func TestFromYAML(t *testing.T) {
	doc := `
insights:
  - title: Custom
    fact: a custom fact
    source: Local Research
    category: misc
    tags: [custom, local]
`
	b, err := FromYAML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("FromYAML failed: %v", err)
	}
	if b.Len() != 1 {
		t.Fatalf("Len = %d, want 1", b.Len())
	}
	results := b.Search("custom")
	if len(results) != 1 || results[0].Insight.Source != "Local Research" {
		t.Errorf("unexpected results: %+v", results)
	}
}

func TestContextBlock(t *testing.T) {
	b := NewBase(testCorpus)
	block := ContextBlock(b.Search("meetings"))
	if !strings.Contains(block, "too many meetings") || !strings.Contains(block, "[A]") {
		t.Errorf("context block missing fact or attribution: %q", block)
	}
	if ContextBlock(nil) != "" {
		t.Error("empty results should render an empty block")
	}
}
