package fallback

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"orgagpt/internal/knowledge"
	"orgagpt/internal/task"
)

// Context is the read-only conversation snapshot the responder
// templates draw from.
type Context struct {
	Stats         task.Stats
	EnergyLevel   string // high/medium/low
	FocusTime     string // e.g. "3h"
	PomodoroCount int
}

// Responder renders deterministic templated answers per intent. It is
// read-only with respect to the task store and always produces
// non-empty text.
type Responder struct {
	store  *task.Store
	kb     *knowledge.Base
	logger *zap.Logger
}

// NewResponder returns a responder over the given store and corpus.
func NewResponder(store *task.Store, kb *knowledge.Base, logger *zap.Logger) *Responder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Responder{store: store, kb: kb, logger: logger.Named("fallback")}
}

// Respond classifies the utterance and renders the matching template.
func (r *Responder) Respond(utterance string, ctx Context) string {
	intent := Classify(utterance)
	r.logger.Debug("fallback responding", zap.String("intent", string(intent)))

	var text string
	switch intent {
	case IntentProductivity, IntentStats:
		text = r.productivityAnswer(ctx)
	case IntentEnergy:
		text = r.energyAnswer(ctx)
	case IntentPriorities, IntentPlanning:
		text = r.prioritiesAnswer(ctx)
	case IntentMethods, IntentHelp, IntentTime:
		text = r.methodsAnswer(utterance)
	default:
		text = r.generalAnswer(ctx)
	}
	if strings.TrimSpace(text) == "" {
		// Last line of defense: templates should never be empty, but
		// the conversation must get an answer regardless.
		text = r.generalAnswer(ctx)
	}
	return text
}

func (r *Responder) productivityAnswer(ctx Context) string {
	score := int(ctx.Stats.CompletionRatio() * 100)

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Your current productivity is at **%d%%** with %d/%d tasks completed.\n\n",
		score, ctx.Stats.Completed, ctx.Stats.Total)
	fmt.Fprintf(&b, "According to **McKinsey**, the most productive professionals spend 95%% of their time on their top 5 priorities. Your current priorities: %s.\n\n",
		joinOrNone(ctx.Stats.TopPriorities))

	b.WriteString("💡 **Personalized recommendations:**\n")
	if score < 50 {
		b.WriteString("- Use the Pomodoro technique to raise your focus\n")
	} else {
		b.WriteString("- Keep up the momentum!\n")
	}
	if ctx.EnergyLevel == "low" {
		b.WriteString("- Your energy is low: favor administrative tasks\n")
	} else {
		b.WriteString("- Use your energy for the complex tasks\n")
	}
	if ctx.Stats.Total > 10 {
		b.WriteString("- You have a lot of tasks: use the Eisenhower matrix to prioritize\n")
	}
	b.WriteString("\nWant me to help optimize your schedule?")
	return b.String()
}

func (r *Responder) energyAnswer(ctx Context) string {
	headlines := map[string]string{
		"high":   "🔋 High energy detected! This is the ideal moment for deep, creative work.",
		"medium": "⚡ Medium energy: perfect for meetings and communication.",
		"low":    "🪫 Low energy: focus on admin work and planning.",
	}
	headline, ok := headlines[ctx.EnergyLevel]
	if !ok {
		headline = headlines["medium"]
	}

	var b strings.Builder
	b.WriteString(headline)
	b.WriteString("\n\n")
	if hits := r.kb.Search("energy performance timing"); len(hits) > 0 {
		fmt.Fprintf(&b, "%s [%s]\n\n", hits[0].Insight.Fact, hits[0].Insight.Source)
	}
	b.WriteString("**Plan for your current energy level:**\n")
	b.WriteString(energyPlan(ctx.EnergyLevel, ctx.Stats.TopPriorities))
	b.WriteString("\n\n💡 Tip: take a 5-10 minute break every hour to keep your energy up.")
	return b.String()
}

// energyPlan renders the per-level block the energy template embeds.
func energyPlan(level string, priorities []string) string {
	top := priorities
	if len(top) > 2 {
		top = top[:2]
	}
	switch level {
	case "high":
		if len(top) == 0 {
			return "- 🧠 Pick your hardest task and give it 90 minutes of deep work"
		}
		var lines []string
		for _, p := range top {
			lines = append(lines, fmt.Sprintf("- 🧠 %s (90 min of deep work)", p))
		}
		return strings.Join(lines, "\n")
	case "low":
		return "- 📧 Process email (30 min)\n- 📅 Plan tomorrow (20 min)"
	default:
		if len(top) == 0 {
			return "- 💬 Handle meetings and communication in 45-minute blocks"
		}
		var lines []string
		for _, p := range top {
			lines = append(lines, fmt.Sprintf("- 💬 %s (45 min with breaks)", p))
		}
		return strings.Join(lines, "\n")
	}
}

func (r *Responder) prioritiesAnswer(ctx Context) string {
	urgent := r.store.Filter(func(t task.Record) bool { return t.Quadrant == 1 && !t.Completed })
	important := r.store.Filter(func(t task.Record) bool { return t.Quadrant == 2 && !t.Completed })

	var b strings.Builder
	b.WriteString("📋 **Your priorities through the Eisenhower matrix:**\n\n")
	fmt.Fprintf(&b, "🔴 **Urgent & important** (%d tasks)\n%s\n\n", len(urgent), titleList(urgent))
	fmt.Fprintf(&b, "🟢 **Important, not urgent** (%d tasks)\n%s\n\n", len(important), titleList(important))
	if hits := r.kb.Search("meetings priorities time"); len(hits) > 0 {
		fmt.Fprintf(&b, "%s [%s]\n\n", hits[0].Insight.Fact, hits[0].Insight.Source)
	}
	if len(urgent) > 3 {
		b.WriteString("**Recommended action:** delegate some of the urgent tasks. Too much time in the urgent quadrant leads to burnout.")
	} else {
		b.WriteString("**Recommended action:** block time for the important, non-urgent work.")
	}
	return b.String()
}

func (r *Responder) methodsAnswer(utterance string) string {
	var b strings.Builder
	b.WriteString("⏰ **Proven methods worth trying:**\n\n")
	b.WriteString("- **Pomodoro**: 25 minutes of focus, 5 minutes of break\n")
	b.WriteString("- **Eisenhower matrix**: sort by urgent vs. important\n")
	b.WriteString("- **GTD**: capture everything, then clarify and organize\n")
	b.WriteString("- **Time blocking**: give every priority a slot on the calendar\n")
	if hits := r.kb.Search(utterance); len(hits) > 0 {
		fmt.Fprintf(&b, "\n%s [%s]", hits[0].Insight.Fact, hits[0].Insight.Source)
	}
	return b.String()
}

func (r *Responder) generalAnswer(ctx Context) string {
	var b strings.Builder
	b.WriteString("I'm OrgaGPT, your productivity copilot built on consulting-firm research.\n\n")
	b.WriteString("**What I can do for you:**\n")
	b.WriteString("🎯 Analyze and optimize your priorities\n")
	b.WriteString("📊 Generate productivity reports\n")
	b.WriteString("⏰ Recommend methods (Pomodoro, GTD, ...)\n")
	b.WriteString("🔋 Match your schedule to your energy\n")
	b.WriteString("📈 Track progress and suggest improvements\n\n")
	fmt.Fprintf(&b, "**Fun fact:** you've already completed %d tasks and logged %s of focus time!\n\n",
		ctx.Stats.Completed, orDefault(ctx.FocusTime, "0h"))
	b.WriteString("What would you like to improve today?")
	return b.String()
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none defined yet"
	}
	return strings.Join(items, ", ")
}

func titleList(records []task.Record) string {
	if len(records) == 0 {
		return "- (none)"
	}
	if len(records) > 3 {
		records = records[:3]
	}
	var lines []string
	for _, t := range records {
		lines = append(lines, "- "+t.Title)
	}
	return strings.Join(lines, "\n")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
