package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"orgagpt/internal/config"
	"orgagpt/internal/knowledge"
	"orgagpt/internal/pipeline"
	"orgagpt/internal/provider"
	"orgagpt/internal/task"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	liveStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	deadStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// chatSession holds the state of one interactive conversation.
type chatSession struct {
	pipe        *pipeline.Pipeline
	store       *task.Store
	renderer    *glamour.TermRenderer
	energyLevel string
	started     time.Time
}

func runChat() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	kb := knowledge.Default()
	if cfg.KnowledgePath != "" {
		f, err := os.Open(cfg.KnowledgePath)
		if err != nil {
			return fmt.Errorf("failed to open knowledge corpus: %w", err)
		}
		kb, err = knowledge.FromYAML(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("failed to load knowledge corpus: %w", err)
		}
	}

	chain, err := provider.NewChainFromConfig(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to build provider chain: %w", err)
	}

	store := task.NewStore()
	pipe := pipeline.New(chain, store, kb, logger)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize renderer: %w", err)
	}

	session := &chatSession{
		pipe:        pipe,
		store:       store,
		renderer:    renderer,
		energyLevel: cfg.EnergyLevel,
		started:     time.Now(),
	}

	fmt.Println(titleStyle.Render("OrgaGPT") + dimStyle.Render("  ·  type /quit to leave, /tasks to list, /energy <level> to adjust"))
	session.printProbe(chain)
	return session.loop()
}

// printProbe reports which providers answered the startup health check.
func (s *chatSession) printProbe(chain *provider.Chain) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, r := range chain.Probe(ctx) {
		mark := deadStyle.Render("○")
		if r.Live {
			mark = liveStyle.Render("●")
		}
		fmt.Printf("  %s %s\n", mark, r.Provider)
		if r.Err != nil {
			logger.Debug("provider probe failed",
				zap.String("provider", r.Provider),
				zap.Error(r.Err))
		}
	}
	fmt.Println()
}

func (s *chatSession) loop() error {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(promptStyle.Render("you> "))
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			if quit := s.handleCommand(line); quit {
				return nil
			}
			continue
		}
		s.resolve(line)
	}
}

// handleCommand executes a slash command and reports whether the
// session should end.
func (s *chatSession) handleCommand(line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit":
		fmt.Println(dimStyle.Render("Goodbye!"))
		return true
	case "/tasks":
		s.printTasks()
	case "/energy":
		if len(fields) < 2 || !validEnergy(fields[1]) {
			fmt.Println(dimStyle.Render("usage: /energy high|medium|low"))
			break
		}
		s.energyLevel = fields[1]
		fmt.Println(dimStyle.Render("energy level set to " + s.energyLevel))
	default:
		fmt.Println(dimStyle.Render("unknown command: " + fields[0]))
	}
	return false
}

func (s *chatSession) printTasks() {
	records := s.store.Snapshot()
	if len(records) == 0 {
		fmt.Println(dimStyle.Render("no tasks yet"))
		return
	}
	for _, t := range records {
		state := "⬜"
		if t.Completed {
			state = "✅"
		}
		fmt.Printf("  %s %s (%s · %dmin · %s)\n", state, t.Title, t.Priority, t.EstimatedTime, t.Category)
	}
}

func (s *chatSession) resolve(utterance string) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	out := s.pipe.Resolve(ctx, utterance, pipeline.Context{
		Stats:       s.store.Stats(),
		EnergyLevel: s.energyLevel,
		FocusTime:   focusTime(s.started),
		CurrentView: "chat",
		Now:         time.Now(),
	})

	text := out.Text
	for _, c := range out.Confirmations {
		text += "\n\n" + c
	}
	rendered, err := s.renderer.Render(text)
	if err != nil {
		rendered = text
	}
	fmt.Print(rendered)
	if out.Source == pipeline.SourceFallback {
		fmt.Println(dimStyle.Render("  (offline answer)"))
	}
}

// focusTime reports elapsed session time rounded to hours, matching
// the "Nh" shape the prompt context expects.
func focusTime(started time.Time) string {
	hours := int(time.Since(started).Round(time.Hour).Hours())
	return fmt.Sprintf("%dh", hours)
}

func validEnergy(level string) bool {
	switch level {
	case "high", "medium", "low":
		return true
	}
	return false
}
