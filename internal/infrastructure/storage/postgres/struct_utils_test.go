package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roster/internal/domain/roster"
)

type auditedTeam struct {
	roster.Team
	Version int    `db:"version"`
	Note    string `db:"-"`
}

func TestExtractDBColumns(t *testing.T) {
	assert.Equal(t, []string{"id", "name", "missing_players"}, ExtractDBColumns[roster.Team]())
	assert.Equal(t, []string{"id", "name", "team_id"}, ExtractDBColumns[*roster.Player]())
}

func TestExtractDBColumnsEmbedded(t *testing.T) {
	assert.Equal(t, []string{"id", "name", "missing_players", "version"}, ExtractDBColumns[auditedTeam]())
}

func TestStructToMap(t *testing.T) {
	team := auditedTeam{
		Team:    roster.Team{ID: "T1", Name: "Lions", MissingPlayers: 2},
		Version: 3,
		Note:    "ignored",
	}

	m := StructToMap(&team)

	assert.Equal(t, map[string]any{
		"id":              "T1",
		"name":            "Lions",
		"missing_players": uint64(2),
		"version":         3,
	}, m)
}

func TestStructToMapNonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
	assert.Nil(t, StructToMap((*roster.Team)(nil)))
}
