// Package report renders record and alert collections into the export
// formats the admin panel offers: CSV bytes, paginated PDF documents and
// a plain-text console summary.
package report

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"
	"strings"

	"wellness-report/filter"
	"wellness-report/models"
)

// csvColumns is the fixed export column order. Fields absent from a
// record shape are emitted as empty strings.
var csvColumns = []string{
	"site", "date", "employee_name", "shift_start", "shift_end",
	"rest_minutes", "stress_level", "emotional_state", "comment",
}

// CSV renders the records as UTF-8 comma-delimited bytes with a header
// row, sorted ascending by (site, date, employee). Empty input yields a
// header-only document.
func CSV(records []models.ShiftRecord) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write(csvColumns)
	for _, rec := range SortRecords(records) {
		w.Write(csvRow(rec))
	}
	w.Flush()
	return buf.Bytes()
}

// CSVBySite renders only the records of one site. An unknown site yields
// a well-formed header-only document.
func CSVBySite(records []models.ShiftRecord, site string) []byte {
	return CSV(filter.BySite(records, site))
}

func csvRow(rec models.ShiftRecord) []string {
	rest := ""
	if rec.RestMinutes != nil {
		rest = strconv.Itoa(*rec.RestMinutes)
	}
	return []string{
		rec.Site,
		rec.Date,
		rec.EmployeeName,
		rec.ShiftStart,
		rec.ShiftEnd,
		rest,
		strconv.Itoa(rec.StressLevel),
		rec.EmotionalState,
		rec.Comment,
	}
}

// SortRecords returns a copy ordered ascending by (site, date,
// employee), the canonical report ordering. The input is not mutated.
func SortRecords(records []models.ShiftRecord) []models.ShiftRecord {
	out := make([]models.ShiftRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Site != b.Site {
			return a.Site < b.Site
		}
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return a.EmployeeName < b.EmployeeName
	})
	return out
}

// SortRecordsByDateDesc returns a copy with the most recent date first,
// the ordering used by the personal "my records" report.
func SortRecordsByDateDesc(records []models.ShiftRecord) []models.ShiftRecord {
	out := make([]models.ShiftRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

// CSVFileName follows the export convention reporte_<site>.csv.
func CSVFileName(site string) string {
	return "reporte_" + sanitizeFileName(site) + ".csv"
}

// PersonalCSVName follows the convention mis_registros_<employee>.csv.
func PersonalCSVName(employee string) string {
	return "mis_registros_" + sanitizeFileName(employee) + ".csv"
}

func sanitizeFileName(s string) string {
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	return strings.TrimSpace(s)
}
