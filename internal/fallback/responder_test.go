package fallback

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"orgagpt/internal/knowledge"
	"orgagpt/internal/task"
)

func newTestResponder(t *testing.T, records []task.Record) (*Responder, *task.Store) {
	t.Helper()
	store := task.NewStoreWith(records)
	return NewResponder(store, knowledge.Default(), zap.NewNop()), store
}

func TestRespondAlwaysNonEmpty(t *testing.T) {
	r, _ := newTestResponder(t, nil)
	utterances := []string{
		"how productive am I",
		"plan my day",
		"I'm exhausted",
		"what's urgent",
		"show stats",
		"help",
		"pomodoro",
		"how long",
		"blah blah",
		"",
	}
	for _, u := range utterances {
		if got := r.Respond(u, Context{}); strings.TrimSpace(got) == "" {
			t.Errorf("Respond(%q) returned empty text", u)
		}
	}
}

func TestRespondProductivityScore(t *testing.T) {
	r, _ := newTestResponder(t, nil)
	ctx := Context{Stats: task.Stats{Total: 4, Completed: 3, TopPriorities: []string{"Q3 report"}}}
	got := r.Respond("how is my productivity", ctx)
	if !strings.Contains(got, "**75%**") {
		t.Fatalf("productivity answer missing score: %q", got)
	}
	if !strings.Contains(got, "3/4 tasks") {
		t.Fatalf("productivity answer missing counts: %q", got)
	}
	if !strings.Contains(got, "Q3 report") {
		t.Fatalf("productivity answer missing top priority: %q", got)
	}
	if !strings.Contains(got, "Keep up the momentum") {
		t.Fatalf("score >= 50 should encourage momentum: %q", got)
	}
}

func TestRespondProductivityLowScoreLowEnergy(t *testing.T) {
	r, _ := newTestResponder(t, nil)
	ctx := Context{
		Stats:       task.Stats{Total: 12, Completed: 2},
		EnergyLevel: "low",
	}
	got := r.Respond("improve my productivity", ctx)
	if !strings.Contains(got, "Pomodoro technique") {
		t.Fatalf("low score should recommend pomodoro: %q", got)
	}
	if !strings.Contains(got, "favor administrative tasks") {
		t.Fatalf("low energy should steer to admin work: %q", got)
	}
	if !strings.Contains(got, "Eisenhower matrix") {
		t.Fatalf("heavy backlog should recommend the matrix: %q", got)
	}
}

func TestRespondEnergyPlans(t *testing.T) {
	r, _ := newTestResponder(t, nil)
	ctx := Context{
		Stats:       task.Stats{TopPriorities: []string{"Design review", "Budget draft", "Inbox"}},
		EnergyLevel: "high",
	}
	got := r.Respond("I have so much energy and focus", ctx)
	if !strings.Contains(got, "High energy detected") {
		t.Fatalf("energy answer missing high headline: %q", got)
	}
	if !strings.Contains(got, "Design review (90 min of deep work)") {
		t.Fatalf("high-energy plan should schedule deep work on priorities: %q", got)
	}
	if strings.Contains(got, "Inbox") {
		t.Fatalf("plan should cap at two priorities: %q", got)
	}

	ctx.EnergyLevel = "low"
	got = r.Respond("I'm tired", ctx)
	if !strings.Contains(got, "Process email") {
		t.Fatalf("low-energy plan should suggest admin work: %q", got)
	}
}

func TestRespondEnergyUnknownLevelDefaultsToMedium(t *testing.T) {
	r, _ := newTestResponder(t, nil)
	got := r.Respond("I can't concentrate", Context{EnergyLevel: "caffeinated"})
	if !strings.Contains(got, "Medium energy") {
		t.Fatalf("unknown level should fall back to medium: %q", got)
	}
}

func TestRespondPrioritiesQuadrants(t *testing.T) {
	r, _ := newTestResponder(t, []task.Record{
		{ID: 1, Title: "Fix outage", Quadrant: 1},
		{ID: 2, Title: "Pay invoice", Quadrant: 1},
		{ID: 3, Title: "Write roadmap", Quadrant: 2},
		{ID: 4, Title: "Done already", Quadrant: 1, Completed: true},
	})
	got := r.Respond("what are my priorities", Context{})
	if !strings.Contains(got, "(2 tasks)") {
		t.Fatalf("urgent count should exclude completed: %q", got)
	}
	if !strings.Contains(got, "- Fix outage") || !strings.Contains(got, "- Write roadmap") {
		t.Fatalf("priorities answer missing quadrant titles: %q", got)
	}
	if strings.Contains(got, "Done already") {
		t.Fatalf("completed tasks must not appear: %q", got)
	}
	if !strings.Contains(got, "block time for the important") {
		t.Fatalf("small urgent load should recommend time blocking: %q", got)
	}
}

func TestRespondPrioritiesRecommendsDelegation(t *testing.T) {
	records := []task.Record{
		{ID: 1, Title: "A", Quadrant: 1},
		{ID: 2, Title: "B", Quadrant: 1},
		{ID: 3, Title: "C", Quadrant: 1},
		{ID: 4, Title: "D", Quadrant: 1},
	}
	r, _ := newTestResponder(t, records)
	got := r.Respond("urgent work", Context{})
	if !strings.Contains(got, "delegate") {
		t.Fatalf("more than 3 urgent tasks should trigger delegation advice: %q", got)
	}
}

func TestRespondGeneralListsCapabilities(t *testing.T) {
	r, _ := newTestResponder(t, nil)
	got := r.Respond("hi", Context{Stats: task.Stats{Completed: 7}, FocusTime: "2h30"})
	if !strings.Contains(got, "OrgaGPT") {
		t.Fatalf("general answer should introduce the assistant: %q", got)
	}
	if !strings.Contains(got, "completed 7 tasks") || !strings.Contains(got, "2h30") {
		t.Fatalf("general answer should cite progress: %q", got)
	}
}

func TestRespondReadOnly(t *testing.T) {
	r, store := newTestResponder(t, []task.Record{
		{ID: 1, Title: "Only task", Quadrant: 1},
	})
	before := store.Snapshot()
	for _, u := range []string{"priorities", "productivity", "energy", "hello"} {
		r.Respond(u, Context{})
	}
	after := store.Snapshot()
	if len(before) != len(after) || before[0] != after[0] {
		t.Fatalf("responder mutated the store: before=%v after=%v", before, after)
	}
}
