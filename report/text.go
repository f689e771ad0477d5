package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"wellness-report/models"
)

// Text returns the console summary: KPI lines, the alert listing and the
// weekly series.
func Text(records []models.ShiftRecord, alertList []models.Alert, snap models.KPISnapshot) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Registros: %d\n", len(records)))
	sb.WriteString(fmt.Sprintf("Estrés promedio: %.1f\n", snap.MeanStress))
	sb.WriteString(fmt.Sprintf("Descanso adecuado: %.1f%%\n", snap.PctAdequateRest))
	sb.WriteString(fmt.Sprintf("Alertas detectadas: %d\n", snap.AlertCount))

	if len(alertList) > 0 {
		sb.WriteString("\nAlertas:\n")
		for _, a := range alertList {
			sb.WriteString(fmt.Sprintf("  • %s %s %s: %s (estrés %d)\n",
				a.Site, a.Date, a.EmployeeName, a.Reason, a.StressLevel))
		}
	}

	if len(snap.WeeklySeries) > 0 {
		sb.WriteString("\nEstrés promedio por día:\n")
		for _, point := range snap.WeeklySeries {
			sb.WriteString(fmt.Sprintf("  %s : %.1f\n", point.Date, point.MeanStress))
		}
	}

	if len(snap.StateDistribution) > 0 {
		sb.WriteString("\nEstados emocionales:\n")
		for _, state := range sortedKeys(snap.StateDistribution) {
			sb.WriteString(fmt.Sprintf("  %s = %d\n", state, snap.StateDistribution[state]))
		}
	}

	return sb.String()
}

// Summary is the JSON export shape.
type Summary struct {
	Records []models.ShiftRecord `json:"records"`
	Alerts  []models.Alert       `json:"alerts"`
	KPIs    models.KPISnapshot   `json:"kpis"`
}

// JSON returns the indented JSON summary.
func JSON(records []models.ShiftRecord, alertList []models.Alert, snap models.KPISnapshot) string {
	jsonBytes, _ := json.MarshalIndent(Summary{
		Records: SortRecords(records),
		Alerts:  alertList,
		KPIs:    snap,
	}, "", "  ")
	return string(jsonBytes)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
