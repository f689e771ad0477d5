// Package alerts evaluates each shift record against the wellness rule
// set and produces deduplicated alerts.
package alerts

import (
	"sort"
	"strconv"
	"strings"

	"wellness-report/config"
	"wellness-report/models"
)

// Reason fragments, one per rule. A record triggering several rules
// yields a single alert whose reason joins the fragments with ", ".
const (
	ReasonHighStress       = "high stress"
	ReasonInsufficientRest = "insufficient rest"
	ReasonCriticalState    = "critical emotional state"
	ReasonLongShift        = "long shift"
	ReasonLateStart        = "late start"
	ReasonMissingCheckout  = "missing checkout"
)

// Detect runs every rule over every record. Each rule is evaluated
// independently; all triggered rules are reported on one alert per
// record. Exact duplicates on (site, employee, reason, date) collapse to
// one alert. Output is ordered ascending by (site, date, employee).
//
// Rules never raise on malformed data: unparseable numbers were already
// coerced to 0 at ingestion, and clock-based rules skip records whose
// times do not parse as HH:MM.
func Detect(records []models.ShiftRecord, rules config.Rules) []models.Alert {
	out := make([]models.Alert, 0)
	seen := make(map[string]struct{})

	for _, rec := range records {
		reasons := evaluate(rec, rules)
		if len(reasons) == 0 {
			continue
		}
		alert := models.Alert{
			Site:         rec.Site,
			EmployeeName: rec.EmployeeName,
			Date:         rec.Date,
			Reason:       strings.Join(reasons, ", "),
			StressLevel:  rec.StressLevel,
		}
		key := strings.Join([]string{alert.Site, alert.EmployeeName, alert.Reason, alert.Date}, "\x1f")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, alert)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Site != b.Site {
			return a.Site < b.Site
		}
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.EmployeeName != b.EmployeeName {
			return a.EmployeeName < b.EmployeeName
		}
		return a.Reason < b.Reason
	})
	return out
}

func evaluate(rec models.ShiftRecord, rules config.Rules) []string {
	var reasons []string

	if rec.StressLevel >= rules.HighStressMin {
		reasons = append(reasons, ReasonHighStress)
	}
	if insufficientRest(rec, rules) {
		reasons = append(reasons, ReasonInsufficientRest)
	}
	if criticalState(rec.EmotionalState, rules.CriticalStates) {
		reasons = append(reasons, ReasonCriticalState)
	}

	start, startOK := clockMinutes(rec.ShiftStart)
	end, endOK := clockMinutes(rec.ShiftEnd)

	if startOK && endOK {
		span := end - start
		if span < 0 {
			// Overnight shift: checkout lands on the next day.
			span += 24 * 60
		}
		if float64(span) > rules.MaxShiftHours*60 {
			reasons = append(reasons, ReasonLongShift)
		}
	}
	if startOK && start/60 >= rules.LateStartHour {
		reasons = append(reasons, ReasonLateStart)
	}
	if rec.ShiftEnd == "" {
		reasons = append(reasons, ReasonMissingCheckout)
	}
	return reasons
}

// insufficientRest unifies the two record shapes: the boolean field wins
// when present, otherwise the minutes floor applies (absent minutes
// coerce to 0 and therefore trigger).
func insufficientRest(rec models.ShiftRecord, rules config.Rules) bool {
	if rec.RestFulfilled != nil {
		return !*rec.RestFulfilled
	}
	return rec.RestMin() < rules.MinRestMinutes
}

func criticalState(state string, critical []string) bool {
	for _, c := range critical {
		if strings.EqualFold(state, c) {
			return true
		}
	}
	return false
}

// clockMinutes parses an HH:MM value into minutes after midnight.
func clockMinutes(s string) (int, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
