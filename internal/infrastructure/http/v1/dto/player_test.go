package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roster/internal/core/apperror"
	"roster/internal/domain/roster"
)

func TestCreatePlayerRequestValidate(t *testing.T) {
	assert.NoError(t, CreatePlayerRequest{Name: "Bob", TeamID: "T1"}.Validate())
	assert.NoError(t, CreatePlayerRequest{Name: "Bob"}.Validate())

	for _, name := range []string{"", "   ", "\t\n"} {
		err := CreatePlayerRequest{Name: name, TeamID: "T1"}.Validate()
		assert.True(t, apperror.IsValidation(err), "name %q", name)
	}
}

func TestCreatePlayerRequestToInputKeepsFields(t *testing.T) {
	req := CreatePlayerRequest{Name: " Bob ", TeamID: "T1 "}
	assert.Equal(t, roster.PlayerInput{Name: " Bob ", TeamID: "T1 "}, req.ToInput())
}
