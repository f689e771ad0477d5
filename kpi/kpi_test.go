package kpi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellness-report/config"
	"wellness-report/kpi"
	"wellness-report/models"
)

func intp(n int) *int    { return &n }
func boolp(b bool) *bool { return &b }

func TestComputeEmptyInput(t *testing.T) {
	snap := kpi.Compute(nil, config.Default())

	assert.Equal(t, 0.0, snap.MeanStress)
	assert.Equal(t, 0.0, snap.PctAdequateRest)
	assert.Equal(t, 0, snap.AlertCount)
	assert.Empty(t, snap.WeeklySeries)
	assert.Empty(t, snap.StateDistribution)
}

func TestComputeMeanStress(t *testing.T) {
	records := []models.ShiftRecord{
		{Site: "A", Date: "2024-01-01", EmployeeName: "Ana", StressLevel: 4, RestMinutes: intp(60), EmotionalState: "Happy", ShiftStart: "09:00", ShiftEnd: "17:00"},
		{Site: "A", Date: "2024-01-02", EmployeeName: "Ana", StressLevel: 6, RestMinutes: intp(60), EmotionalState: "Happy", ShiftStart: "09:00", ShiftEnd: "17:00"},
	}
	snap := kpi.Compute(records, config.Default())
	assert.Equal(t, 5.0, snap.MeanStress)
}

func TestComputeAdequateRest(t *testing.T) {
	records := []models.ShiftRecord{
		{Date: "2024-01-01", RestMinutes: intp(45), ShiftStart: "09:00", ShiftEnd: "17:00"},
		{Date: "2024-01-01", RestMinutes: intp(44), ShiftStart: "09:00", ShiftEnd: "17:00"},
		{Date: "2024-01-01", RestFulfilled: boolp(true), ShiftStart: "09:00", ShiftEnd: "17:00"},
		{Date: "2024-01-01", RestFulfilled: boolp(false), ShiftStart: "09:00", ShiftEnd: "17:00"},
	}
	snap := kpi.Compute(records, config.Default())
	assert.Equal(t, 50.0, snap.PctAdequateRest)
}

func TestComputeScenarioSingleStressedRecord(t *testing.T) {
	records := []models.ShiftRecord{
		{Site: "A", Date: "2024-01-01", EmployeeName: "Ana", StressLevel: 9, RestMinutes: intp(20), EmotionalState: "Stressed", ShiftStart: "09:00", ShiftEnd: "17:00"},
	}
	snap := kpi.Compute(records, config.Default())

	assert.Equal(t, 9.0, snap.MeanStress)
	assert.Equal(t, 0.0, snap.PctAdequateRest)
	assert.Equal(t, 1, snap.AlertCount)
	assert.Equal(t, map[string]int{"Stressed": 1}, snap.StateDistribution)
}

func TestComputeWeeklySeries(t *testing.T) {
	records := []models.ShiftRecord{
		{Date: "2024-01-10", StressLevel: 4, RestMinutes: intp(60), ShiftStart: "09:00", ShiftEnd: "17:00"},
		{Date: "2024-01-10", StressLevel: 6, RestMinutes: intp(60), ShiftStart: "09:00", ShiftEnd: "17:00"},
		{Date: "2024-01-07", StressLevel: 2, RestMinutes: intp(60), ShiftStart: "09:00", ShiftEnd: "17:00"},
		{Date: "not-a-date", StressLevel: 10, RestMinutes: intp(60), ShiftStart: "09:00", ShiftEnd: "17:00"},
	}
	snap := kpi.Compute(records, config.Default())

	require.Len(t, snap.WeeklySeries, 7)
	assert.Equal(t, "2024-01-04", snap.WeeklySeries[0].Date)
	assert.Equal(t, "2024-01-10", snap.WeeklySeries[6].Date)

	byDate := make(map[string]float64)
	for _, point := range snap.WeeklySeries {
		byDate[point.Date] = point.MeanStress
	}
	assert.Equal(t, 5.0, byDate["2024-01-10"], "same-day records average")
	assert.Equal(t, 2.0, byDate["2024-01-07"])
	assert.Equal(t, 0.0, byDate["2024-01-08"], "days with no records are zero-filled")
	assert.Equal(t, 0.0, byDate["2024-01-09"])
}

func TestComputeWeeklySeriesAllDatesUnparseable(t *testing.T) {
	records := []models.ShiftRecord{
		{Date: "???", StressLevel: 5, RestMinutes: intp(60), ShiftStart: "09:00", ShiftEnd: "17:00"},
	}
	snap := kpi.Compute(records, config.Default())
	assert.Empty(t, snap.WeeklySeries, "no parseable date means no window")
	assert.Equal(t, 5.0, snap.MeanStress, "scalar KPIs still compute")
}

func TestComputeStateDistribution(t *testing.T) {
	records := []models.ShiftRecord{
		{Date: "2024-01-01", EmotionalState: "Happy", RestMinutes: intp(60), ShiftStart: "09:00", ShiftEnd: "17:00"},
		{Date: "2024-01-01", EmotionalState: "Happy", RestMinutes: intp(60), ShiftStart: "09:00", ShiftEnd: "17:00"},
		{Date: "2024-01-01", EmotionalState: "Calm", RestMinutes: intp(60), ShiftStart: "09:00", ShiftEnd: "17:00"},
		{Date: "2024-01-01", EmotionalState: "", RestMinutes: intp(60), ShiftStart: "09:00", ShiftEnd: "17:00"},
	}
	snap := kpi.Compute(records, config.Default())
	assert.Equal(t, map[string]int{"Happy": 2, "Calm": 1}, snap.StateDistribution)
}
