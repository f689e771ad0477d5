package report

import (
	"strconv"

	"wellness-report/config"
	"wellness-report/filter"
	"wellness-report/kpi"
	"wellness-report/models"
)

// ChartRenderer supplies pre-rendered chart images for embedding. The
// report decides what to plot; pixel rendering is the collaborator's
// job. A nil renderer or a failed chart omits that chart only.
type ChartRenderer interface {
	WeeklyBar(series []models.DailyStress) ([]byte, error)
	StatePie(dist map[string]int) ([]byte, error)
}

// PDF file name conventions.
const (
	RecordsPDFName = "registros_filtrados.pdf"
	AlertsPDFName  = "alertas_filtradas.pdf"
	ChartsPDFName  = "reporte_graficos.pdf"
	GeneralPDFName = "reporte_general.pdf"
)

// SitePDFName follows the convention reporte_<site>.pdf.
func SitePDFName(site string) string {
	return "reporte_" + sanitizeFileName(site) + ".pdf"
}

// PersonalPDFName follows the convention mis_registros_<employee>.pdf.
func PersonalPDFName(employee string) string {
	return "mis_registros_" + sanitizeFileName(employee) + ".pdf"
}

var (
	recordHeader  = []string{"Sede", "Fecha", "Empleado", "Inicio", "Salida", "Descanso", "Estrés", "Estado", "Comentario"}
	recordWeights = []float64{2, 2, 2.4, 1.3, 1.3, 1.5, 1, 1.8, 3}
	alertHeader   = []string{"Sede", "Fecha", "Empleado", "Motivo", "Estrés"}
	alertWeights  = []float64{2, 2, 2.4, 5.5, 1}
)

// RecordsPDF renders the general filtered-records listing.
func RecordsPDF(records []models.ShiftRecord) ([]byte, error) {
	var blocks []Block
	if len(records) == 0 {
		blocks = append(blocks, Message{Text: "No hay registros para los filtros aplicados."})
	} else {
		blocks = append(blocks, recordsTable(SortRecords(records)))
	}
	return Render("Registros filtrados", blocks)
}

// AlertsPDF renders the detected-alerts listing.
func AlertsPDF(alertList []models.Alert) ([]byte, error) {
	var blocks []Block
	if len(alertList) == 0 {
		blocks = append(blocks, Message{Text: "No se detectaron alertas."})
	} else {
		rows := make([][]string, 0, len(alertList))
		for _, a := range alertList {
			rows = append(rows, []string{a.Site, a.Date, a.EmployeeName, a.Reason, strconv.Itoa(a.StressLevel)})
		}
		blocks = append(blocks, Table{Header: alertHeader, Rows: rows, Widths: alertWeights})
	}
	return Render("Alertas detectadas", blocks)
}

// GeneralPDF renders KPIs, charts and the full record listing in one
// document.
func GeneralPDF(records []models.ShiftRecord, rules config.Rules, charts ChartRenderer) ([]byte, error) {
	snap := kpi.Compute(records, rules)
	blocks := []Block{KPISummary{Snapshot: snap, Items: len(records)}}
	blocks = append(blocks, chartBlocks(snap, charts)...)
	if len(records) == 0 {
		blocks = append(blocks, Message{Text: "No hay registros para los filtros aplicados."})
	} else {
		blocks = append(blocks, Heading{Text: "Registros"}, recordsTable(SortRecords(records)))
	}
	return Render("Reporte general de bienestar", blocks)
}

// ChartsPDF renders the KPI summary plus the weekly trend and state
// distribution charts, without the record listing.
func ChartsPDF(records []models.ShiftRecord, rules config.Rules, charts ChartRenderer) ([]byte, error) {
	snap := kpi.Compute(records, rules)
	blocks := []Block{KPISummary{Snapshot: snap, Items: len(records)}}
	imgs := chartBlocks(snap, charts)
	if len(imgs) == 0 {
		blocks = append(blocks, Message{Text: "Sin datos suficientes para graficar."})
	}
	blocks = append(blocks, imgs...)
	return Render("KPIs y gráficas", blocks)
}

// SitePDF renders the per-site report. An unknown or empty site states
// "no data for this site" rather than producing a broken table.
func SitePDF(records []models.ShiftRecord, site string, rules config.Rules) ([]byte, error) {
	scoped := filter.BySite(records, site)
	title := "Reporte de sede — " + site
	if len(scoped) == 0 {
		return Render(title, []Block{Message{Text: "Sin datos para esta sede."}})
	}
	snap := kpi.Compute(scoped, rules)
	blocks := []Block{
		KPISummary{Snapshot: snap, Items: len(scoped)},
		recordsTable(SortRecords(scoped)),
	}
	return Render(title, blocks)
}

// PersonalPDF renders one employee's records, most recent date first.
// The descending order is a deliberate difference from the other
// reports: employees read their own history newest-first.
func PersonalPDF(records []models.ShiftRecord, employee string) ([]byte, error) {
	mine := filter.ByEmployee(records, employee)
	title := "Mis registros — " + employee
	if len(mine) == 0 {
		return Render(title, []Block{Message{Text: "Aún no tienes registros."}})
	}
	return Render(title, []Block{recordsTable(SortRecordsByDateDesc(mine))})
}

func recordsTable(records []models.ShiftRecord) Table {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, csvRow(rec))
	}
	return Table{Header: recordHeader, Rows: rows, Widths: recordWeights}
}

func chartBlocks(snap models.KPISnapshot, charts ChartRenderer) []Block {
	if charts == nil {
		return nil
	}
	var blocks []Block
	if png, err := charts.WeeklyBar(snap.WeeklySeries); err == nil {
		blocks = append(blocks, Image{PNG: png, Width: 170})
	}
	if png, err := charts.StatePie(snap.StateDistribution); err == nil {
		blocks = append(blocks, Image{PNG: png, Width: 110})
	}
	return blocks
}
