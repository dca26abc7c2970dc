package insights

import (
	"context"
	"fmt"
	"log/slog"

	"saleslens/internal/logging"
	"saleslens/internal/services"
	"saleslens/internal/services/reasoning"
	"saleslens/internal/session"
	"saleslens/internal/store"
	"saleslens/internal/timeline"
)

const momentTitleLimit = 100

// Completer is the reasoning surface the pipeline needs. *reasoning.Client
// satisfies it.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Pipeline analyzes completed sessions and persists the findings.
type Pipeline struct {
	store   *store.Store
	builder *timeline.Builder
	client  Completer
	logger  *slog.Logger
}

// NewPipeline constructs an analysis pipeline.
func NewPipeline(st *store.Store, builder *timeline.Builder, client Completer, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		store:   st,
		builder: builder,
		client:  client,
		logger:  logging.NewComponentLogger(logger, "insights"),
	}
}

// Analyze runs the full analysis flow for one completed session.
//
// The session is claimed with an atomic completed-to-analyzing transition,
// so concurrent callers race safely: exactly one proceeds, the rest get a
// not-ready error. Any failure after the claim parks the session in the
// error status. On success the session ends up analyzed and the validated
// result is returned.
func (p *Pipeline) Analyze(ctx context.Context, sessionID string) (*AnalysisResult, error) {
	sess, err := p.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	claimed, err := p.store.TransitionStatus(ctx, sessionID, session.StatusCompleted, session.StatusAnalyzing)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, services.Wrap(services.ErrSessionNotReady, "insights", "analyze",
			fmt.Sprintf("session %s is %s, want %s", sessionID, sess.Status, session.StatusCompleted), nil)
	}

	p.logger.Info("analysis started",
		logging.String(logging.FieldSessionID, sessionID),
	)

	result, err := p.analyzeClaimed(ctx, sess)
	if err != nil {
		p.parkInError(ctx, sessionID, err)
		return nil, err
	}

	if err := p.store.SetStatus(ctx, sessionID, session.StatusAnalyzed); err != nil {
		return nil, err
	}
	p.logger.Info("analysis complete",
		logging.String(logging.FieldSessionID, sessionID),
		logging.Int("overall_score", result.OverallScore),
		logging.Int("key_moments", len(result.KeyMoments)),
		logging.Int("coaching_tips", len(result.CoachingTips)),
	)
	return result, nil
}

func (p *Pipeline) analyzeClaimed(ctx context.Context, sess *session.Session) (*AnalysisResult, error) {
	entries, err := p.builder.Build(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, services.Wrap(services.ErrNoTimelineData, "insights", "analyze", sess.ID, nil)
	}

	formatted := timeline.Format(entries, sess.StartTimeMS)
	raw, err := p.client.Complete(ctx, reasoning.CoachingSystemPrompt, reasoning.AnalysisPrompt(formatted))
	if err != nil {
		return nil, services.Wrap(services.ErrExternalService, "insights", "analyze", "reasoning request failed", err)
	}

	var result AnalysisResult
	if err := reasoning.DecodeJSON(raw, &result); err != nil {
		return nil, services.MalformedResponse("decode analysis", raw, err)
	}
	if err := result.Validate(); err != nil {
		return nil, services.MalformedResponse("validate analysis", raw, err)
	}
	result.Raw = raw

	if err := p.persistResult(ctx, sess.ID, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// persistResult fans the validated result out into insight rows. The
// summary row encodes the overall score in its title; key moments keep
// their source timestamp so the dashboard can link back into the timeline.
func (p *Pipeline) persistResult(ctx context.Context, sessionID string, result *AnalysisResult) error {
	summarySeverity := session.SeverityConcern
	if result.OverallScore >= 70 {
		summarySeverity = session.SeverityPositive
	}
	if err := p.store.AppendInsight(ctx, &session.Insight{
		SessionID: sessionID,
		Type:      session.InsightSummary,
		Title:     fmt.Sprintf("Score: %d/100", result.OverallScore),
		Body:      result.Summary,
		Severity:  summarySeverity,
	}); err != nil {
		return err
	}

	for _, moment := range result.KeyMoments {
		insightType := session.InsightHighlight
		severity := session.SeverityPositive
		if moment.Type == MomentConcern {
			insightType = session.InsightRisk
			severity = session.SeverityConcern
		}
		timestamp := moment.TimestampMS
		if err := p.store.AppendInsight(ctx, &session.Insight{
			SessionID:      sessionID,
			Type:           insightType,
			Title:          truncateTitle(moment.WhatHappened),
			Body:           moment.Recommendation,
			Severity:       severity,
			TimestampRefMS: &timestamp,
		}); err != nil {
			return err
		}
	}

	for _, tip := range result.CoachingTips {
		if err := p.store.AppendInsight(ctx, &session.Insight{
			SessionID: sessionID,
			Type:      session.InsightCoaching,
			Body:      tip,
			Severity:  session.SeverityNeutral,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) parkInError(ctx context.Context, sessionID string, cause error) {
	p.logger.Error("analysis failed",
		logging.String(logging.FieldSessionID, sessionID),
		logging.Error(cause),
	)
	if err := p.store.SetStatus(ctx, sessionID, session.StatusError); err != nil {
		p.logger.Error("failed to mark session errored",
			logging.String(logging.FieldSessionID, sessionID),
			logging.Error(err),
		)
	}
}

func truncateTitle(value string) string {
	runes := []rune(value)
	if len(runes) <= momentTitleLimit {
		return value
	}
	return string(runes[:momentTitleLimit])
}
