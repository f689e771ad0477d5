package models

// ShiftRecord is one employee's self-reported data for a single shift.
// Records are normalized once at the ingestion boundary and are immutable
// afterwards; the engine only reads them and produces derived objects.
//
// Optional fields use pointers: nil means the field was absent from the
// source record shape (older app generations recorded a rest_fulfilled
// boolean instead of rest minutes, for example).
type ShiftRecord struct {
	Site           string `json:"site"`
	Date           string `json:"date"` // YYYY-MM-DD; kept verbatim when unparseable
	EmployeeName   string `json:"employee_name"`
	ShiftStart     string `json:"shift_start"` // HH:MM; "" when missing, verbatim when unparseable
	ShiftEnd       string `json:"shift_end"`
	RestMinutes    *int   `json:"rest_minutes,omitempty"`   // minutes-based record shape
	RestFulfilled  *bool  `json:"rest_fulfilled,omitempty"` // boolean-based record shape
	StressLevel    int    `json:"stress_level"`             // clamped to [0,10]; non-numeric input coerces to 0
	EmotionalState string `json:"emotional_state"`
	Comment        string `json:"comment,omitempty"`
}

// RestMin returns the recorded rest minutes, 0 when the field is absent.
func (r ShiftRecord) RestMin() int {
	if r.RestMinutes == nil {
		return 0
	}
	return *r.RestMinutes
}

// Alert flags a record that matched a wellness or compliance rule.
// Alerts are recomputed on every query and have no persistent identity;
// two alerts with equal (Site, EmployeeName, Reason, Date) are the same
// alert.
type Alert struct {
	Site         string `json:"site"`
	EmployeeName string `json:"employee_name"`
	Date         string `json:"date"`
	Reason       string `json:"reason"` // triggered rules joined ", "
	StressLevel  int    `json:"stress_level"`
}

// DailyStress is one point of the trailing 7-day series.
type DailyStress struct {
	Date       string  `json:"date"` // YYYY-MM-DD
	MeanStress float64 `json:"mean_stress"`
}

// KPISnapshot holds aggregate statistics computed over a record
// collection at query time.
type KPISnapshot struct {
	MeanStress        float64        `json:"mean_stress"`
	PctAdequateRest   float64        `json:"pct_adequate_rest"`
	AlertCount        int            `json:"alert_count"`
	WeeklySeries      []DailyStress  `json:"weekly_series"`      // 7 calendar days ending at the latest record date
	StateDistribution map[string]int `json:"state_distribution"` // normalized emotional state -> count
}

// User is an already-resolved identity supplied by the auth collaborator.
type User struct {
	Username    string `json:"username"`
	Password    string `json:"-"`
	DisplayName string `json:"display_name"`
	Site        string `json:"site"`
	Role        string `json:"role"` // "admin" or "empleado"
}

// Name returns the identity used to match "my records": the display name
// when present, otherwise the username.
func (u User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}
