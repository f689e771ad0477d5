package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellness-report/errors"
	"wellness-report/parser"
)

func TestParse(t *testing.T) {
	t.Run("SpanishShape", func(t *testing.T) {
		input := `[{
			"sede": "Centro",
			"fecha": "2024-01-05",
			"nombre": "Ana",
			"hora_inicio": "09:00",
			"hora_salida": "17:30",
			"descanso": 45,
			"estres": 6,
			"estado": "Estresado 😣",
			"comentario": "día largo"
		}]`
		records, err := parser.Parse(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, records, 1)

		rec := records[0]
		assert.Equal(t, "Centro", rec.Site)
		assert.Equal(t, "2024-01-05", rec.Date)
		assert.Equal(t, "Ana", rec.EmployeeName)
		assert.Equal(t, "09:00", rec.ShiftStart)
		assert.Equal(t, "17:30", rec.ShiftEnd)
		require.NotNil(t, rec.RestMinutes)
		assert.Equal(t, 45, *rec.RestMinutes)
		assert.Nil(t, rec.RestFulfilled)
		assert.Equal(t, 6, rec.StressLevel)
		assert.Equal(t, "Stressed", rec.EmotionalState)
		assert.Equal(t, "día largo", rec.Comment)
	})

	t.Run("EnglishShapeWithBooleanRest", func(t *testing.T) {
		input := `[{
			"site": "Norte",
			"date": "2024-01-06",
			"employee_name": "Luis",
			"shift_start": "8:05",
			"shift_end": "",
			"rest_fulfilled": false,
			"stress_level": "7",
			"emotional_state": "Happy"
		}]`
		records, err := parser.Parse(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, records, 1)

		rec := records[0]
		assert.Equal(t, "08:05", rec.ShiftStart, "clock values normalize to HH:MM")
		assert.Equal(t, "", rec.ShiftEnd)
		assert.Nil(t, rec.RestMinutes)
		require.NotNil(t, rec.RestFulfilled)
		assert.False(t, *rec.RestFulfilled)
		assert.Equal(t, 7, rec.StressLevel, "string numbers coerce")
		assert.Equal(t, "Happy", rec.EmotionalState)
	})

	t.Run("MixedShapesInOneCollection", func(t *testing.T) {
		input := `[
			{"sede": "Centro", "fecha": "2024-01-05", "nombre": "Ana", "descanso": 30, "estres": 5, "estado": "Normal"},
			{"site": "Centro", "date": "2024-01-05", "employee_name": "Eva", "rest_fulfilled": true, "stress_level": 4, "emotional_state": "Calm"}
		]`
		records, err := parser.Parse(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.NotNil(t, records[0].RestMinutes)
		assert.NotNil(t, records[1].RestFulfilled)
	})

	t.Run("MalformedFieldsCoerceSoftly", func(t *testing.T) {
		input := `[{
			"sede": "Centro",
			"fecha": "05/01/2024",
			"nombre": "Ana",
			"hora_inicio": "whenever",
			"descanso": "not a number",
			"estres": 99,
			"estado": "  Agotado!!  "
		}]`
		records, err := parser.Parse(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, records, 1)

		rec := records[0]
		assert.Equal(t, "2024-01-05", rec.Date, "alternate date layouts normalize")
		assert.Equal(t, "whenever", rec.ShiftStart, "unparseable clock kept verbatim")
		require.NotNil(t, rec.RestMinutes)
		assert.Equal(t, 0, *rec.RestMinutes, "non-numeric rest coerces to 0")
		assert.Equal(t, 10, rec.StressLevel, "stress clamps to [0,10]")
		assert.Equal(t, "Exhausted", rec.EmotionalState)
	})

	t.Run("EmptyList", func(t *testing.T) {
		records, err := parser.Parse(strings.NewReader(`[]`))
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("NonListTopLevel", func(t *testing.T) {
		_, err := parser.Parse(strings.NewReader(`{"sede": "Centro"}`))
		assert.ErrorIs(t, err, errors.ErrNotAList)
	})

	t.Run("NonObjectEntriesSkipped", func(t *testing.T) {
		records, err := parser.Parse(strings.NewReader(`[42, {"sede": "Centro", "nombre": "Ana"}]`))
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})
}

func TestNormalizeState(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected string
	}{
		"SpanishLabel":     {"Feliz", "Happy"},
		"EmojiSuffix":      {"Estresado 😣", "Stressed"},
		"EnglishUntouched": {"Exhausted", "Exhausted"},
		"UnknownKept":      {"Meh", "Meh"},
		"Empty":            {"", ""},
		"OnlyDecorations":  {"😣😣", ""},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parser.NormalizeState(tt.input))
		})
	}
}

func TestParseUsers(t *testing.T) {
	input := `[
		{"username": "admin", "password": "x", "nombre": "Root", "sede": "Centro", "rol": "admin"},
		{"username": "ana", "password": "y", "nombre": "Ana", "sede": "Centro"}
	]`
	users, err := parser.ParseUsers(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, "admin", users[0].Role, "legacy rol key is accepted")
	assert.Equal(t, "Root", users[0].DisplayName)
	assert.Equal(t, "empleado", users[1].Role, "missing role defaults to empleado")
}
