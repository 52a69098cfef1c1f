package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"tutorbot-backend/internal/gemini"
	"tutorbot-backend/internal/models"
	"tutorbot-backend/internal/prompt"
	"tutorbot-backend/internal/safety"
)

const (
	EmptyQuestionMessage = "Please type a question."
	UnsafeReply          = "Sorry, I can't help with that. If you need help, please ask your teacher or an adult."
	UpstreamReplyPrefix  = "❌ Error contacting Gemini API: "
)

// Generator produces a reply for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (gemini.Reply, error)
}

// ReplyCache is an optional store of previous replies keyed by prompt.
type ReplyCache interface {
	Get(ctx context.Context, prompt string) (string, bool, error)
	Set(ctx context.Context, prompt, reply string) error
}

type TutorService struct {
	filter    *safety.Filter
	generator Generator
	cache     ReplyCache
}

// NewTutorService wires the tutoring pipeline. cache may be nil.
func NewTutorService(filter *safety.Filter, generator Generator, cache ReplyCache) *TutorService {
	if filter == nil {
		filter = safety.Default()
	}
	return &TutorService{
		filter:    filter,
		generator: generator,
		cache:     cache,
	}
}

// Ask answers one question. Errors are *ValidationError, *SafetyRejection
// or *UpstreamFailure.
func (s *TutorService) Ask(ctx context.Context, req models.ChatRequest) (string, error) {
	req = req.Normalized()
	logger := log.Ctx(ctx).With().Str("subject", req.Subject).Int("grade", req.Grade).Logger()

	if req.Message == "" {
		return "", &ValidationError{Message: EmptyQuestionMessage}
	}

	if verdict := s.filter.Check(req.Message); !verdict.Allowed {
		logger.Warn().Str("matched_term", verdict.MatchedTerm).Msg("question rejected by safety filter")
		return "", &SafetyRejection{Term: verdict.MatchedTerm}
	}

	p := prompt.Build(req.Subject, req.Grade, req.Message)

	if s.cache != nil {
		reply, hit, err := s.cache.Get(ctx, p)
		if err != nil {
			logger.Warn().Err(err).Msg("reply cache lookup failed")
		} else if hit {
			logger.Debug().Msg("reply served from cache")
			return reply, nil
		}
	}

	reply, err := s.generator.Generate(ctx, p)
	if err != nil {
		logger.Error().Err(err).Msg("generation failed")
		return "", &UpstreamFailure{Err: err}
	}

	switch {
	case reply.Fallback:
		logger.Warn().Msg("response carried no answer text")
	case s.cache != nil:
		if err := s.cache.Set(ctx, p, reply.Text); err != nil {
			logger.Warn().Err(err).Msg("reply cache store failed")
		}
	}

	logger.Info().Int("reply_len", len(reply.Text)).Bool("fallback", reply.Fallback).Msg("question answered")
	return reply.Text, nil
}

// UserReply is the student-facing text for an Ask outcome.
func UserReply(reply string, err error) string {
	switch e := err.(type) {
	case nil:
		return reply
	case *ValidationError:
		return e.Message
	case *SafetyRejection:
		return UnsafeReply
	case *UpstreamFailure:
		return UpstreamReplyPrefix + e.Details()
	default:
		return UpstreamReplyPrefix + err.Error()
	}
}
