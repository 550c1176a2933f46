// Package assist drafts promotional copy with a generative text model.
// Every helper degrades to the caller's current text when generation fails.
package assist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/torvix-arena/observability"
)

var ErrAssistUnavailable = errors.New("text assist unavailable")

const (
	KindHype        = "hype"
	KindRules       = "rules"
	KindMatchUpdate = "match_update"

	defaultPrize   = "Huge Rewards"
	requestTimeout = 20 * time.Second
)

type Request struct {
	Prompt      string
	Temperature float32
}

type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

type Service struct {
	gen     Generator
	breaker *Breaker
	logger  *slog.Logger
	timeout time.Duration
}

// NewService accepts a nil generator; every call then fails with ErrAssistUnavailable.
func NewService(gen Generator, logger *slog.Logger) *Service {
	return &Service{
		gen:     gen,
		breaker: NewBreaker(3, 30*time.Second),
		logger:  logger,
		timeout: requestTimeout,
	}
}

func (s *Service) Enabled() bool {
	return s.gen != nil
}

func (s *Service) Hype(ctx context.Context, title, game, prize string) (string, error) {
	if strings.TrimSpace(prize) == "" {
		prize = defaultPrize
	}
	prompt := fmt.Sprintf("Generate an energetic, hype-filled 3-sentence description for a tournament called %q featuring %q with a prize pool of %q. Make it sound professional and exciting!", title, game, prize)
	return s.generate(ctx, KindHype, Request{Prompt: prompt, Temperature: 0.9})
}

func (s *Service) Rules(ctx context.Context, game string) (string, error) {
	prompt := fmt.Sprintf("Generate 5 standard professional rules for a competitive %q tournament. Use a clear, bulleted list format.", game)
	return s.generate(ctx, KindRules, Request{Prompt: prompt, Temperature: 0.7})
}

func (s *Service) MatchUpdate(ctx context.Context, p1, p2, score string) (string, error) {
	prompt := fmt.Sprintf("Write a short, thrilling sports-commentator style update for a match between %s and %s that just finished with a score of %s.", p1, p2, score)
	return s.generate(ctx, KindMatchUpdate, Request{Prompt: prompt, Temperature: 1.0})
}

// Describe returns generated hype text, or current when generation fails.
func (s *Service) Describe(ctx context.Context, title, game, prize, current string) string {
	return s.orKeep(KindHype, current, func() (string, error) { return s.Hype(ctx, title, game, prize) })
}

// RulesOrKeep returns generated rules, or current when generation fails.
func (s *Service) RulesOrKeep(ctx context.Context, game, current string) string {
	return s.orKeep(KindRules, current, func() (string, error) { return s.Rules(ctx, game) })
}

// MatchUpdateOrKeep returns a commentary blurb, or current when generation fails.
func (s *Service) MatchUpdateOrKeep(ctx context.Context, p1, p2, score, current string) string {
	return s.orKeep(KindMatchUpdate, current, func() (string, error) { return s.MatchUpdate(ctx, p1, p2, score) })
}

func (s *Service) orKeep(kind, current string, fn func() (string, error)) string {
	text, err := fn()
	if err != nil {
		s.logger.Warn("text generation failed, keeping current text", slog.String("kind", kind), slog.Any("error", err))
		return current
	}
	return text
}

func (s *Service) generate(ctx context.Context, kind string, req Request) (string, error) {
	if s.gen == nil {
		observability.ObserveAssist(kind, "disabled")
		return "", ErrAssistUnavailable
	}
	if !s.breaker.Allow() {
		observability.ObserveAssist(kind, "circuit_open")
		return "", fmt.Errorf("%w: circuit open", ErrAssistUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.gen.Generate(ctx, req)
	if err == nil && strings.TrimSpace(text) == "" {
		err = errors.New("generator returned empty text")
	}
	if err != nil {
		s.breaker.Failure()
		observability.ObserveAssist(kind, "error")
		return "", fmt.Errorf("%w: %v", ErrAssistUnavailable, err)
	}
	s.breaker.Success()
	observability.ObserveAssist(kind, "ok")
	return strings.TrimSpace(text), nil
}
