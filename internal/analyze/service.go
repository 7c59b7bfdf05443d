// Package analyze orchestrates the ticket summarization pipeline:
// authenticate, fetch, reduce, summarize, write back.
package analyze

import (
	"context"
	"encoding/json"
	"time"

	"kix-ai-bridge/internal/ai"
	"kix-ai-bridge/internal/common/errors"
	"kix-ai-bridge/internal/common/logger"
	"kix-ai-bridge/internal/common/metrics"
	"kix-ai-bridge/internal/kix"
)

// TicketAPI is the slice of the KIX client the pipeline needs.
type TicketAPI interface {
	Authenticate(ctx context.Context) (string, error)
	FetchTicket(ctx context.Context, token string, ticketID int64) (*kix.Ticket, error)
	UpdateDynamicField(ctx context.Context, token string, ticketID int64, fieldName, value string) error
}

// Summarizer is the slice of the completion client the pipeline needs.
type Summarizer interface {
	Summarize(ctx context.Context, ticketID int64, payload interface{}, prompt string, temperature float32) (string, error)
}

type Service struct {
	kix      TicketAPI
	ai       Summarizer
	defaults Defaults
	logger   logger.Logger
}

func NewService(ticketAPI TicketAPI, summarizer Summarizer, defaults Defaults, log logger.Logger) *Service {
	return &Service{
		kix:      ticketAPI,
		ai:       summarizer,
		defaults: defaults,
		logger: log.With(map[string]interface{}{
			"component": "analyze",
		}),
	}
}

// Resolve applies the configured defaults to a request body.
func (s *Service) Resolve(req Request) Options {
	return req.Resolve(s.defaults)
}

// Authenticate obtains a KIX session token for one request. The token is not
// cached across requests.
func (s *Service) Authenticate(ctx context.Context) (string, error) {
	start := time.Now()
	token, err := s.kix.Authenticate(ctx)
	metrics.PipelineStageDuration.WithLabelValues("authenticate").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.PipelineStageFailures.WithLabelValues("authenticate", string(errors.CodeOf(err))).Inc()
		return "", err
	}
	return token, nil
}

// Fetch retrieves the ticket with articles included.
func (s *Service) Fetch(ctx context.Context, token string, ticketID int64) (*kix.Ticket, error) {
	start := time.Now()
	ticket, err := s.kix.FetchTicket(ctx, token, ticketID)
	metrics.PipelineStageDuration.WithLabelValues("fetch").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.PipelineStageFailures.WithLabelValues("fetch", string(errors.CodeOf(err))).Inc()
		return nil, err
	}
	return ticket, nil
}

// Finish runs the post-response half of the pipeline: reduce, token guard,
// summarize, write back. The HTTP response has already been delivered when
// this runs, so failures are logged and counted but never surfaced. It is
// detached from the request context: once a ticket is accepted the pipeline
// runs to completion or silent failure regardless of client disconnect.
func (s *Service) Finish(ticketID int64, token string, ticket *kix.Ticket, opts Options) {
	metrics.AnalyzeInflight.Inc()
	defer metrics.AnalyzeInflight.Dec()

	log := s.logger.With(map[string]interface{}{
		"ticketId": ticketID,
	})

	ctx := context.Background()

	var payload interface{} = ticket
	if opts.Reduce {
		payload = kix.Reduce(ticket)
	}

	if s.defaults.MaxInputTokens > 0 {
		payloadJSON, err := json.Marshal(payload)
		if err == nil {
			tokens := ai.CountTokens(string(payloadJSON))
			if tokens > s.defaults.MaxInputTokens {
				guardErr := errors.NewPayloadTooLargeError(tokens, s.defaults.MaxInputTokens)
				metrics.PipelineStageFailures.WithLabelValues("summarize", string(guardErr.Code)).Inc()
				log.WithError(guardErr).Error("ticket payload exceeds input token limit", map[string]interface{}{
					"tokens": tokens,
					"limit":  s.defaults.MaxInputTokens,
				})
				return
			}
		}
	}

	start := time.Now()
	summary, err := s.ai.Summarize(ctx, ticketID, payload, opts.Prompt, opts.Temperature)
	metrics.PipelineStageDuration.WithLabelValues("summarize").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.PipelineStageFailures.WithLabelValues("summarize", string(errors.CodeOf(err))).Inc()
		log.WithError(err).Error("summarization failed", nil)
		return
	}

	// Fire-and-forget write-back: at most once, error logged only.
	start = time.Now()
	err = s.kix.UpdateDynamicField(ctx, token, ticketID, opts.DynamicField, summary)
	metrics.PipelineStageDuration.WithLabelValues("writeback").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.PipelineStageFailures.WithLabelValues("writeback", string(errors.CodeOf(err))).Inc()
		log.WithError(err).Error("summary write-back failed", map[string]interface{}{
			"field": opts.DynamicField,
		})
		return
	}

	log.Info("ticket summarized", map[string]interface{}{
		"field":   opts.DynamicField,
		"reduced": opts.Reduce,
	})
}
