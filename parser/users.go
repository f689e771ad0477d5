package parser

import (
	"io"
	"strings"

	"wellness-report/errors"
	"wellness-report/models"
)

// ParseUsers reads the JSON user list maintained alongside the record
// store. Older snapshots spell the role key "rol" and the display name
// "nombre"; both spellings are accepted.
func ParseUsers(r io.Reader) ([]models.User, error) {
	var top any
	if err := json.NewDecoder(r).Decode(&top); err != nil {
		return nil, err
	}
	list, ok := top.([]any)
	if !ok {
		return nil, errors.ErrNotAList
	}

	users := make([]models.User, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		users = append(users, models.User{
			Username:    stringField(m, "username", "usuario"),
			Password:    stringField(m, "password"),
			DisplayName: stringField(m, "nombre", "display_name", "name"),
			Site:        stringField(m, "sede", "site"),
			Role:        normalizeRole(stringField(m, "role", "rol")),
		})
	}
	return users, nil
}

func normalizeRole(role string) string {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return "empleado"
	}
	return role
}
