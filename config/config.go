// Package config holds the wellness rule thresholds.
//
// The historical app variants disagree on several of these values
// (stress >=7 vs >=8, shift span >8h vs >9h, critical states widened to
// include "sad"/"anxious" in some snapshots). The defaults below are the
// canonical policy values; deployments that want the alternates override
// them with a YAML file.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"wellness-report/errors"
)

// Rules carries every tunable threshold used by the alert detector and
// the KPI aggregator.
type Rules struct {
	// HighStressMin triggers the high-stress alert when stress_level is
	// at or above it. Policy decision: 8 (one variant used 7).
	HighStressMin int `yaml:"high_stress_min"`

	// MinRestMinutes is the floor below which rest counts as
	// insufficient for alerting.
	MinRestMinutes int `yaml:"min_rest_minutes"`

	// AdequateRestMinutes is the KPI floor for "adequate rest".
	// Distinct from MinRestMinutes on purpose: a 35-minute break is not
	// alert-worthy but still misses the wellness target.
	AdequateRestMinutes int `yaml:"adequate_rest_minutes"`

	// MaxShiftHours triggers the long-shift alert when the parsed span
	// exceeds it. Policy decision: 9 (a minority variant used 8).
	MaxShiftHours float64 `yaml:"max_shift_hours"`

	// LateStartHour triggers the late-start alert when the shift begins
	// at or after this hour.
	LateStartHour int `yaml:"late_start_hour"`

	// CriticalStates are the normalized emotional states that trigger an
	// alert on their own. Matching is case-insensitive.
	CriticalStates []string `yaml:"critical_states"`
}

// Default returns the canonical rule set.
func Default() Rules {
	return Rules{
		HighStressMin:       8,
		MinRestMinutes:      30,
		AdequateRestMinutes: 45,
		MaxShiftHours:       9,
		LateStartHour:       10,
		CriticalStates:      []string{"Stressed", "Exhausted"},
	}
}

// Load reads a YAML override file on top of the defaults. Fields absent
// from the file keep their default values.
func Load(path string) (Rules, error) {
	rules := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return rules, errors.ErrNoRulesFile
		}
		return rules, err
	}
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return Default(), err
	}
	if rules.HighStressMin < 0 {
		rules.HighStressMin = 0
	}
	if rules.MinRestMinutes < 0 {
		rules.MinRestMinutes = 0
	}
	if rules.AdequateRestMinutes < 0 {
		rules.AdequateRestMinutes = 0
	}
	return rules, nil
}
