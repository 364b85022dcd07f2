package redis

import "fmt"

// Key prefix for all roster data
const keyPrefix = "roster"

// teamKey returns the key holding a Team as JSON
func teamKey(id string) string {
	return fmt.Sprintf("%s:team:%s", keyPrefix, id)
}

// playerKey returns the key holding a Player as JSON
func playerKey(id string) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// teamPlayersKey returns the SET of player ids on a team
func teamPlayersKey(teamID string) string {
	return fmt.Sprintf("%s:idx:team_players:%s", keyPrefix, teamID)
}
