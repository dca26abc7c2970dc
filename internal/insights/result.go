package insights

import (
	"errors"
	"fmt"
	"strings"
)

// MomentType classifies a key moment reported by the reasoning service.
type MomentType string

const (
	MomentConcern           MomentType = "concern"
	MomentPositive          MomentType = "positive"
	MomentMissedOpportunity MomentType = "missed_opportunity"
)

// KeyMoment is one notable point in the conversation with its physiological
// evidence and a concrete recommendation.
type KeyMoment struct {
	TimestampMS           int64      `json:"timestamp_ms"`
	Type                  MomentType `json:"type"`
	WhatHappened          string     `json:"what_happened"`
	PhysiologicalEvidence string     `json:"physiological_evidence"`
	Recommendation        string     `json:"recommendation"`
}

// AnalysisResult is the structured payload the reasoning service must
// return. Raw carries the untouched model output for diagnostics.
type AnalysisResult struct {
	OverallScore       int         `json:"overall_score"`
	Summary            string      `json:"summary"`
	KeyMoments         []KeyMoment `json:"key_moments"`
	CoachingTips       []string    `json:"coaching_tips"`
	UnresolvedConcerns []string    `json:"unresolved_concerns"`
	Raw                string      `json:"-"`
}

// Validate rejects payloads that decoded but do not satisfy the contract.
// A single bad field fails the whole result; nothing partial is persisted.
func (r *AnalysisResult) Validate() error {
	if r == nil {
		return errors.New("result is nil")
	}
	if r.OverallScore < 0 || r.OverallScore > 100 {
		return fmt.Errorf("overall_score %d outside 0-100", r.OverallScore)
	}
	if strings.TrimSpace(r.Summary) == "" {
		return errors.New("summary is empty")
	}
	for i, moment := range r.KeyMoments {
		switch moment.Type {
		case MomentConcern, MomentPositive, MomentMissedOpportunity:
		default:
			return fmt.Errorf("key_moments[%d]: unknown type %q", i, moment.Type)
		}
		if moment.TimestampMS < 0 {
			return fmt.Errorf("key_moments[%d]: negative timestamp_ms %d", i, moment.TimestampMS)
		}
		if strings.TrimSpace(moment.WhatHappened) == "" {
			return fmt.Errorf("key_moments[%d]: what_happened is empty", i)
		}
	}
	for i, tip := range r.CoachingTips {
		if strings.TrimSpace(tip) == "" {
			return fmt.Errorf("coaching_tips[%d] is empty", i)
		}
	}
	return nil
}
