// Package roster holds the player/team model and the storage contracts the
// command and query executors depend on.
package roster

// Player is a member of a team. ID is assigned by the storage backend when the
// player is created and is empty before that.
type Player struct {
	ID     string `json:"id" db:"id"`
	Name   string `json:"name" db:"name"`
	TeamID string `json:"team_id" db:"team_id"`
}

// Team is read-only from the domain's point of view. MissingPlayers counts the
// open roster slots left.
type Team struct {
	ID             string `json:"id" db:"id"`
	Name           string `json:"name" db:"name"`
	MissingPlayers uint64 `json:"missing_players" db:"missing_players"`
}

// HasOpenSlot reports whether another player may join.
func (t Team) HasOpenSlot() bool {
	return t.MissingPlayers > 0
}

// PlayerInput is the payload of a create-player request. Backends store Name
// and TeamID exactly as given.
type PlayerInput struct {
	Name   string
	TeamID string
}
