package report

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellness-report/config"
	"wellness-report/models"
)

// White-box tests: pagination internals are exercised through
// renderDocument so page counts can be asserted directly.

func manyRecords(n int) []models.ShiftRecord {
	rest := 60
	records := make([]models.ShiftRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, models.ShiftRecord{
			Site:           fmt.Sprintf("Sede%02d", i%3),
			Date:           fmt.Sprintf("2024-01-%02d", i%28+1),
			EmployeeName:   fmt.Sprintf("Empleado %03d", i),
			ShiftStart:     "09:00",
			ShiftEnd:       "17:00",
			RestMinutes:    &rest,
			StressLevel:    i % 11,
			EmotionalState: "Normal",
		})
	}
	return records
}

func TestTablePaginatesLargeInput(t *testing.T) {
	doc := renderDocument("Registros", []Block{recordsTable(manyRecords(300))})
	require.NoError(t, doc.pdf.Error())
	assert.GreaterOrEqual(t, doc.pdf.PageCount(), 3, "300 rows cannot fit two pages")
}

func TestSmallTableStaysOnOnePage(t *testing.T) {
	doc := renderDocument("Registros", []Block{recordsTable(manyRecords(10))})
	require.NoError(t, doc.pdf.Error())
	assert.Equal(t, 1, doc.pdf.PageCount())
}

func TestBrokenImageIsOmitted(t *testing.T) {
	blocks := []Block{
		Image{PNG: []byte("definitely not a png")},
		Message{Text: "still here"},
	}
	doc := renderDocument("Reporte", blocks)
	assert.NoError(t, doc.pdf.Error(), "a broken chart never poisons the document")
}

func TestRecordsPDFEmptyInput(t *testing.T) {
	pdfBytes, err := RecordsPDF(nil)
	require.NoError(t, err)
	assert.True(t, len(pdfBytes) > 0)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}

func TestRecordsPDFHundredsOfRows(t *testing.T) {
	pdfBytes, err := RecordsPDF(manyRecords(500))
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}

func TestAlertsPDF(t *testing.T) {
	alerts := []models.Alert{
		{Site: "Centro", Date: "2024-01-01", EmployeeName: "Ana", Reason: "high stress, insufficient rest", StressLevel: 9},
	}
	pdfBytes, err := AlertsPDF(alerts)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))

	empty, err := AlertsPDF(nil)
	require.NoError(t, err)
	assert.True(t, len(empty) > 0, "empty alert list degrades to a message document")
}

func TestSitePDFUnknownSite(t *testing.T) {
	records := manyRecords(5)
	pdfBytes, err := SitePDF(records, "NoExiste", config.Default())
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]), "unknown site yields a no-data document, not an error")
}

func TestPersonalPDF(t *testing.T) {
	records := manyRecords(30)
	pdfBytes, err := PersonalPDF(records, "Empleado 003")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))

	none, err := PersonalPDF(records, "Nadie")
	require.NoError(t, err)
	assert.True(t, len(none) > 0)
}

// failingCharts simulates a chart collaborator that cannot build images.
type failingCharts struct{}

func (failingCharts) WeeklyBar([]models.DailyStress) ([]byte, error) {
	return nil, fmt.Errorf("no data")
}

func (failingCharts) StatePie(map[string]int) ([]byte, error) {
	return nil, fmt.Errorf("no data")
}

func TestChartsPDFDegradesWhenChartsFail(t *testing.T) {
	pdfBytes, err := ChartsPDF(manyRecords(5), config.Default(), failingCharts{})
	require.NoError(t, err, "failed charts are omitted, the document still renders")
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}

func TestGeneralPDFWithoutChartRenderer(t *testing.T) {
	pdfBytes, err := GeneralPDF(manyRecords(40), config.Default(), nil)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}
