// Package auth resolves login credentials against the user list. The
// engine itself never authenticates; it only consumes the resolved
// identity for default-site filtering and "my records" reports.
package auth

import (
	"wellness-report/errors"
	"wellness-report/models"
)

// Authenticate returns the matching user for a username/password pair,
// or ErrBadCredentials. The user store is plain text at this scale.
func Authenticate(username, password string, users []models.User) (*models.User, error) {
	for _, u := range users {
		if u.Username == username && u.Password == password {
			match := u
			return &match, nil
		}
	}
	return nil, errors.ErrBadCredentials
}
