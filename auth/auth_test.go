package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellness-report/auth"
	"wellness-report/errors"
	"wellness-report/models"
)

func TestAuthenticate(t *testing.T) {
	users := []models.User{
		{Username: "admin", Password: "secreto", DisplayName: "Root", Site: "Centro", Role: "admin"},
		{Username: "ana", Password: "1234", DisplayName: "Ana", Site: "Norte", Role: "empleado"},
	}

	t.Run("Match", func(t *testing.T) {
		user, err := auth.Authenticate("ana", "1234", users)
		require.NoError(t, err)
		assert.Equal(t, "Ana", user.Name())
		assert.Equal(t, "Norte", user.Site)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := auth.Authenticate("ana", "wrong", users)
		assert.ErrorIs(t, err, errors.ErrBadCredentials)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		_, err := auth.Authenticate("ghost", "1234", users)
		assert.ErrorIs(t, err, errors.ErrBadCredentials)
	})

	t.Run("NameFallsBackToUsername", func(t *testing.T) {
		u := models.User{Username: "sinnombre"}
		assert.Equal(t, "sinnombre", u.Name())
	})
}
