package parser

import (
	"io"
	"strconv"
	"strings"
	"time"
	"unicode"

	jsoniter "github.com/json-iterator/go"

	"wellness-report/errors"
	"wellness-report/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Parse reads a JSON array of shift records from the reader and returns
// normalized ShiftRecords. The store has accumulated several record
// shapes over app generations: Spanish keys (sede, fecha, nombre,
// hora_inicio, hora_salida, descanso, estres, estado, comentario),
// English keys (site, date, employee_name, ...), a boolean
// rest_fulfilled/descanso_cumplido instead of rest minutes, and
// emoji-decorated emotional states. All of them are unified here, once,
// so downstream rule and KPI logic never branches on shape.
//
// Field-level problems never fail the parse: non-numeric stress or rest
// coerces to 0, unparseable clock values are kept verbatim (clock rules
// skip them), and stress is clamped to [0,10]. Only a malformed JSON
// document or a non-list top-level value is an error.
func Parse(r io.Reader) ([]models.ShiftRecord, error) {
	var top any
	if err := json.NewDecoder(r).Decode(&top); err != nil {
		return nil, err
	}
	list, ok := top.([]any)
	if !ok {
		return nil, errors.ErrNotAList
	}

	records := make([]models.ShiftRecord, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		records = append(records, NormalizeRecord(m))
	}
	return records, nil
}

// NormalizeRecord maps one raw key/value record of any observed shape
// into the canonical ShiftRecord.
func NormalizeRecord(m map[string]any) models.ShiftRecord {
	rec := models.ShiftRecord{
		Site:           stringField(m, "site", "sede"),
		Date:           NormalizeDate(stringField(m, "date", "fecha")),
		EmployeeName:   stringField(m, "employee_name", "nombre", "name", "empleado"),
		ShiftStart:     NormalizeClock(stringField(m, "shift_start", "hora_inicio", "hora_entrada")),
		ShiftEnd:       NormalizeClock(stringField(m, "shift_end", "hora_salida", "hora_fin")),
		StressLevel:    clampStress(intField(m, "stress_level", "estres", "nivel_estres")),
		EmotionalState: NormalizeState(stringField(m, "emotional_state", "estado", "estado_emocional")),
		Comment:        stringField(m, "comment", "comentario", "motivo_descanso"),
	}

	if v, ok := lookup(m, "rest_minutes", "descanso", "descanso_min", "minutos_descanso"); ok {
		n := coerceInt(v)
		if n < 0 {
			n = 0
		}
		rec.RestMinutes = &n
	}
	if v, ok := lookup(m, "rest_fulfilled", "descanso_cumplido", "rest_cumplido"); ok {
		b := coerceBool(v)
		rec.RestFulfilled = &b
	}
	return rec
}

// Normalize converts an already-decoded list of raw records.
func Normalize(raw []map[string]any) []models.ShiftRecord {
	records := make([]models.ShiftRecord, 0, len(raw))
	for _, m := range raw {
		records = append(records, NormalizeRecord(m))
	}
	return records
}

func lookup(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func stringField(m map[string]any, keys ...string) string {
	v, ok := lookup(m, keys...)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

func intField(m map[string]any, keys ...string) int {
	v, ok := lookup(m, keys...)
	if !ok {
		return 0
	}
	return coerceInt(v)
}

// coerceInt maps any observed numeric encoding to an int, 0 on failure.
func coerceInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0
		}
		return i
	case bool:
		if n {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func coerceBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case float64:
		return b != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "si", "sí", "yes", "1":
			return true
		}
		return false
	default:
		return false
	}
}

func clampStress(n int) int {
	if n < 0 {
		return 0
	}
	if n > 10 {
		return 10
	}
	return n
}

var dateLayouts = []string{"2006-01-02", "2006/01/02", "02/01/2006", "2006-01-02T15:04:05"}

// NormalizeDate reformats any recognized date layout to YYYY-MM-DD.
// Unrecognized values are kept verbatim so exact-match filtering still
// works on them; the weekly-series window simply excludes them.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}

var clockLayouts = []string{"15:04", "15:04:05", "3:04PM", "3:04 PM"}

// NormalizeClock reformats any recognized time-of-day layout to HH:MM.
// Unrecognized values are kept verbatim; the clock-based alert rules
// skip records they cannot parse.
func NormalizeClock(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04")
		}
	}
	return s
}

// stateAliases maps lower-cased source labels (both app languages) to
// the canonical emotional-state vocabulary.
var stateAliases = map[string]string{
	"feliz":     "Happy",
	"happy":     "Happy",
	"contento":  "Happy",
	"tranquilo": "Calm",
	"calm":      "Calm",
	"calmado":   "Calm",
	"normal":    "Normal",
	"estresado": "Stressed",
	"stressed":  "Stressed",
	"agotado":   "Exhausted",
	"exhausted": "Exhausted",
	"cansado":   "Exhausted",
	"triste":    "Sad",
	"sad":       "Sad",
	"ansioso":   "Anxious",
	"anxious":   "Anxious",
	"mal":       "Bad",
	"bad":       "Bad",
}

// NormalizeState strips cosmetic decorations (emoji suffixes and the
// like) and maps the label to the canonical vocabulary. Unknown labels
// survive cleaned but unmapped so the distribution still counts them.
func NormalizeState(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	cleaned := strings.Join(strings.Fields(b.String()), " ")
	if cleaned == "" {
		return ""
	}
	if canonical, ok := stateAliases[strings.ToLower(cleaned)]; ok {
		return canonical
	}
	return cleaned
}
