package main

import (
	"strings"
)

// Status is the label reported for a single evaluated measurement.
type Status string

const (
	StatusOptimal          Status = "Optimal"
	StatusNeedsAttention   Status = "Needs Attention"
	StatusSeriousIssue     Status = "Serious Issue"
	StatusGuidelineMissing Status = "N/A - Guideline Missing"
	StatusOutOfRange       Status = "N/A - Value Out of Defined Ranges"
	StatusBPOutOfRange     Status = "N/A - BP Out of Defined Ranges"
	StatusClientMissing    Status = "N/A - Client Value Missing"
	StatusUncategorized    Status = "N/A - Qualitative Value Uncategorized"
)

// Applicable is false for every "N/A" status.
func (s Status) Applicable() bool {
	switch s {
	case StatusOptimal, StatusNeedsAttention, StatusSeriousIssue:
		return true
	}
	return false
}

type Tier int

const (
	TierOptimal Tier = iota
	TierNeedsAttention
	TierSeriousIssue
)

func (t Tier) Status() Status {
	switch t {
	case TierOptimal:
		return StatusOptimal
	case TierNeedsAttention:
		return StatusNeedsAttention
	default:
		return StatusSeriousIssue
	}
}

func (g *MetricGuideline) spec(t Tier) string {
	switch t {
	case TierOptimal:
		return g.Optimal
	case TierNeedsAttention:
		return g.NeedsAttention
	default:
		return g.SeriousIssue
	}
}

func (g *QualitativeGuideline) description(t Tier) string {
	switch t {
	case TierOptimal:
		return g.Optimal
	case TierNeedsAttention:
		return g.NeedsAttention
	default:
		return g.SeriousIssue
	}
}

func (g *BloodPressureGuideline) tier(t Tier) *BloodPressureRange {
	switch t {
	case TierOptimal:
		return g.Optimal
	case TierNeedsAttention:
		return g.NeedsAttention
	default:
		return g.SeriousIssue
	}
}

// Tiers are checked from the most benign upwards, so overlapping specs resolve
// to the milder tier. Blood pressure is checked the other way round.
var (
	ascendingTiers  = []Tier{TierOptimal, TierNeedsAttention, TierSeriousIssue}
	descendingTiers = []Tier{TierSeriousIssue, TierNeedsAttention, TierOptimal}
)

func evaluateMetric(value float64, guideline *MetricGuideline) Status {
	if guideline == nil {
		return StatusGuidelineMissing
	}

	for _, tier := range ascendingTiers {
		if matchesRange(value, guideline.spec(tier)) {
			return tier.Status()
		}
	}

	return StatusOutOfRange
}

func evaluateBloodPressure(systolic, diastolic int, guideline *BloodPressureGuideline) Status {
	if guideline == nil {
		return StatusGuidelineMissing
	}

	for _, tier := range descendingTiers {
		if matchesBloodPressure(systolic, diastolic, guideline.tier(tier), tier) {
			return tier.Status()
		}
	}

	return StatusBPOutOfRange
}

// matchesBloodPressure combines the systolic and diastolic checks for one tier.
// A single abnormal reading is enough for a serious issue; the milder tiers need
// both readings to qualify.
func matchesBloodPressure(systolic, diastolic int, bpRange *BloodPressureRange, tier Tier) bool {
	if bpRange == nil || strings.TrimSpace(bpRange.Systolic) == "" || strings.TrimSpace(bpRange.Diastolic) == "" {
		return false
	}

	systolicMatch := matchesRange(float64(systolic), bpRange.Systolic)
	diastolicMatch := matchesRange(float64(diastolic), bpRange.Diastolic)

	if tier == TierSeriousIssue {
		return systolicMatch || diastolicMatch
	}
	return systolicMatch && diastolicMatch
}

func evaluateQualitative(clientValue string, guideline *QualitativeGuideline) Status {
	if guideline == nil {
		return StatusGuidelineMissing
	}
	if strings.TrimSpace(clientValue) == "" {
		return StatusClientMissing
	}

	for _, tier := range ascendingTiers {
		if mentionsKeyword(clientValue, guideline.description(tier)) {
			return tier.Status()
		}
	}

	return StatusUncategorized
}
