package postgres

import (
	"github.com/Masterminds/squirrel"

	"roster/internal/domain/roster"
)

const (
	tableTeams   = "teams"
	tablePlayers = "players"
	tableOutbox  = "roster_outbox"
)

var (
	teamColumns   = ExtractDBColumns[roster.Team]()
	playerColumns = []string{"id::text AS id", "name", "team_id"}
)

// builder returns a squirrel builder with PostgreSQL placeholder format.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// insertPlayer leaves the id to the column default so the database assigns it.
func insertPlayer(in roster.PlayerInput) squirrel.InsertBuilder {
	return builder().
		Insert(tablePlayers).
		Columns("name", "team_id").
		Values(in.Name, in.TeamID).
		Suffix("RETURNING id::text AS id, name, team_id")
}

func selectPlayer(playerID string) squirrel.SelectBuilder {
	return builder().
		Select(playerColumns...).
		From(tablePlayers).
		Where(squirrel.Eq{"id": playerID}).
		Limit(1)
}

func selectTeam(teamID string) squirrel.SelectBuilder {
	return builder().
		Select(teamColumns...).
		From(tableTeams).
		Where(squirrel.Eq{"id": teamID}).
		Limit(1)
}

func upsertTeam(team roster.Team) squirrel.InsertBuilder {
	return builder().
		Insert(tableTeams).
		SetMap(StructToMap(team)).
		Suffix("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, missing_players = EXCLUDED.missing_players")
}
