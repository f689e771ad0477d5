// Package kpi aggregates a record collection into a KPI snapshot. The
// aggregator never re-filters or re-fetches; callers pre-filter by
// site/date/employee before calling.
package kpi

import (
	"time"

	"wellness-report/alerts"
	"wellness-report/config"
	"wellness-report/models"
)

const dateLayout = "2006-01-02"

// Compute builds the KPI snapshot for a record collection. Empty input
// yields a zero-valued snapshot, never an error.
func Compute(records []models.ShiftRecord, rules config.Rules) models.KPISnapshot {
	snap := models.KPISnapshot{
		WeeklySeries:      []models.DailyStress{},
		StateDistribution: map[string]int{},
	}
	if len(records) == 0 {
		return snap
	}

	var stressSum float64
	adequate := 0
	for _, rec := range records {
		stressSum += float64(rec.StressLevel)
		if adequateRest(rec, rules) {
			adequate++
		}
		if rec.EmotionalState != "" {
			snap.StateDistribution[rec.EmotionalState]++
		}
	}
	n := float64(len(records))
	snap.MeanStress = stressSum / n
	snap.PctAdequateRest = 100 * float64(adequate) / n
	snap.AlertCount = len(alerts.Detect(records, rules))
	snap.WeeklySeries = weeklySeries(records)
	return snap
}

// adequateRest applies the KPI floor (45 minutes by default). Records of
// the boolean shape count as adequate exactly when the flag is set.
func adequateRest(rec models.ShiftRecord, rules config.Rules) bool {
	if rec.RestFulfilled != nil {
		return *rec.RestFulfilled
	}
	return rec.RestMin() >= rules.AdequateRestMinutes
}

// weeklySeries emits mean stress per calendar day over the 7-day window
// ending at the latest parseable record date, zero-filled for days with
// no records. Records with unparseable dates are absent from the source
// pool entirely.
func weeklySeries(records []models.ShiftRecord) []models.DailyStress {
	sum := make(map[string]float64)
	count := make(map[string]int)
	var maxDate time.Time
	found := false

	for _, rec := range records {
		t, err := time.Parse(dateLayout, rec.Date)
		if err != nil {
			continue
		}
		day := t.Format(dateLayout)
		sum[day] += float64(rec.StressLevel)
		count[day]++
		if !found || t.After(maxDate) {
			maxDate = t
			found = true
		}
	}
	if !found {
		return []models.DailyStress{}
	}

	series := make([]models.DailyStress, 0, 7)
	for offset := -6; offset <= 0; offset++ {
		day := maxDate.AddDate(0, 0, offset).Format(dateLayout)
		point := models.DailyStress{Date: day}
		if count[day] > 0 {
			point.MeanStress = sum[day] / float64(count[day])
		}
		series = append(series, point)
	}
	return series
}
