package engine

import (
	"sort"
	"strings"

	"github.com/issamHaimour5/ReportPilot-1/internal/domain"
)

// Pattern is a derived aggregate computed from a subset of behavior events
// sharing a category. Confidence is uncapped at this stage; capping to 100
// happens when a pattern is reconciled into or synthesized as a rule.
// Only the fields relevant to the category are set: Hour/Day for timing,
// Format for format.
type Pattern struct {
	Confidence int

	Hour int
	Day  int // time.Weekday numbering, 0=Sunday

	Format string
}

// Detector extracts one category of pattern from the full event log.
// Detectors are stateless; every pass re-scans the whole log.
type Detector interface {
	Category() domain.RuleType
	// Detect returns the category's pattern and whether the eligible event
	// subset was non-empty. An empty subset produces no pattern.
	Detect(events []*domain.BehaviorEvent) (Pattern, bool)
}

// DefaultDetectors returns the built-in detector set.
func DefaultDetectors() []Detector {
	return []Detector{timingDetector{}, formatDetector{}}
}

// DetectPatterns runs every detector over the event log and collects the
// non-empty results by category.
func DetectPatterns(detectors []Detector, events []*domain.BehaviorEvent) map[domain.RuleType]Pattern {
	patterns := make(map[domain.RuleType]Pattern)
	for _, d := range detectors {
		if p, ok := d.Detect(events); ok {
			patterns[d.Category()] = p
		}
	}
	return patterns
}

// timingDetector finds the preferred report hour and weekday. It considers
// every event whose action contains the substring "report" (case-sensitive)
// and histograms the local hour-of-day and day-of-week of each.
type timingDetector struct{}

func (timingDetector) Category() domain.RuleType { return domain.RuleTypeTiming }

func (timingDetector) Detect(events []*domain.BehaviorEvent) (Pattern, bool) {
	var hourCounts [24]int
	var dayCounts [7]int
	subset := 0

	for _, e := range events {
		if !strings.Contains(e.Action, "report") {
			continue
		}
		subset++
		hourCounts[e.Timestamp.Hour()]++
		dayCounts[int(e.Timestamp.Weekday())]++
	}

	if subset == 0 {
		return Pattern{}, false
	}

	// Scanning ascending with a strict > keeps ties deterministic: the
	// lowest hour/day wins.
	preferredHour := 0
	for h := 1; h < len(hourCounts); h++ {
		if hourCounts[h] > hourCounts[preferredHour] {
			preferredHour = h
		}
	}
	preferredDay := 0
	for d := 1; d < len(dayCounts); d++ {
		if dayCounts[d] > dayCounts[preferredDay] {
			preferredDay = d
		}
	}

	return Pattern{
		Confidence: subset * 10,
		Hour:       preferredHour,
		Day:        preferredDay,
	}, true
}

// formatDetector finds the preferred output format. It considers every event
// whose context carries a string "format" value and histograms those values.
type formatDetector struct{}

func (formatDetector) Category() domain.RuleType { return domain.RuleTypeFormat }

func (formatDetector) Detect(events []*domain.BehaviorEvent) (Pattern, bool) {
	counts := make(map[string]int)
	subset := 0

	for _, e := range events {
		format, ok := e.FormatHint()
		if !ok {
			continue
		}
		subset++
		counts[format]++
	}

	if subset == 0 {
		return Pattern{}, false
	}

	// Ties break toward the lexicographically smallest format (byte-wise
	// string comparison, the sort.Strings order).
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	preferred := keys[0]
	for _, k := range keys[1:] {
		if counts[k] > counts[preferred] {
			preferred = k
		}
	}

	return Pattern{
		Confidence: subset * 15,
		Format:     preferred,
	}, true
}
