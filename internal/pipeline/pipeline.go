// Package pipeline resolves user utterances into assistant responses.
// It drives the provider chain, decodes embedded action directives
// from live completions, and falls through to the deterministic
// responder when no provider can answer.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"orgagpt/internal/action"
	"orgagpt/internal/fallback"
	"orgagpt/internal/knowledge"
	"orgagpt/internal/provider"
	"orgagpt/internal/task"
)

// Source tags where an outcome's text came from.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

// Context is the conversation snapshot passed into a resolution.
type Context struct {
	Stats         task.Stats
	EnergyLevel   string
	FocusTime     string
	PomodoroCount int
	CurrentView   string
	Now           time.Time
}

// Outcome is the result of resolving an utterance. Text is always
// non-empty; Confirmations carries dispatcher messages for directives
// embedded in a live completion.
type Outcome struct {
	Text          string
	Confirmations []string
	Source        Source
	Provider      string // producing provider name, empty for fallback
	ResolutionID  string
}

// Pipeline wires the chain, codec, dispatcher and fallback responder
// into a single resolution path.
type Pipeline struct {
	chain      *provider.Chain
	codec      *action.Codec
	dispatcher *action.Dispatcher
	responder  *fallback.Responder
	kb         *knowledge.Base
	store      *task.Store
	logger     *zap.Logger
}

// New assembles a pipeline over the given chain, store and corpus.
func New(chain *provider.Chain, store *task.Store, kb *knowledge.Base, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("pipeline")
	return &Pipeline{
		chain:      chain,
		codec:      action.NewCodec(logger),
		dispatcher: action.NewDispatcher(store, logger),
		responder:  fallback.NewResponder(store, kb, logger),
		kb:         kb,
		store:      store,
		logger:     logger,
	}
}

// Resolve turns an utterance into an outcome. It never returns an
// error to the caller: chain exhaustion and unexpected provider
// failures both route to the deterministic responder.
func (p *Pipeline) Resolve(ctx context.Context, utterance string, snap Context) Outcome {
	id := uuid.NewString()
	if snap.Now.IsZero() {
		snap.Now = time.Now()
	}

	prompt := buildPrompt(utterance, snap, p.kb)
	raw, providerName, err := p.chain.Generate(ctx, prompt)
	if err != nil {
		if !errors.Is(err, provider.ErrExhausted) {
			p.logger.Warn("chain failed outside exhaustion",
				zap.String("resolution_id", id),
				zap.Error(err))
		}
		p.logger.Info("resolving via fallback",
			zap.String("resolution_id", id))
		return Outcome{
			Text:         p.responder.Respond(utterance, fallbackContext(snap)),
			Source:       SourceFallback,
			ResolutionID: id,
		}
	}

	clean, directives := p.codec.Extract(raw)
	confirmations := p.dispatcher.Dispatch(directives)
	p.logger.Info("resolved via provider",
		zap.String("resolution_id", id),
		zap.String("provider", providerName),
		zap.Int("directives", len(directives)))

	text := clean
	if text == "" {
		// A completion made of directives only still owes the user a
		// visible answer.
		text = "Done!"
	}
	return Outcome{
		Text:          text,
		Confirmations: confirmations,
		Source:        SourceLive,
		Provider:      providerName,
		ResolutionID:  id,
	}
}

func fallbackContext(snap Context) fallback.Context {
	return fallback.Context{
		Stats:         snap.Stats,
		EnergyLevel:   snap.EnergyLevel,
		FocusTime:     snap.FocusTime,
		PomodoroCount: snap.PomodoroCount,
	}
}
