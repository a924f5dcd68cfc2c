package bot

import (
	"fmt"
	"strings"
)

// Identity is the username attached to a server-filled seat.
type Identity struct {
	UserID   string
	Username string
}

const botIDPrefix = "bot:"

var identities = []Identity{
	{UserID: botIDPrefix + "1", Username: "Linh"},
	{UserID: botIDPrefix + "2", Username: "Mai"},
	{UserID: botIDPrefix + "3", Username: "Quang"},
	{UserID: botIDPrefix + "4", Username: "Tuan"},
}

// IsBot reports whether the given user id represents a bot seat.
func IsBot(userID string) bool {
	return strings.HasPrefix(userID, botIDPrefix)
}

// GetBotIdentity returns a stable identity for the given seat index.
func GetBotIdentity(seat int) Identity {
	if seat >= 0 && seat < len(identities) {
		return identities[seat]
	}
	return Identity{
		UserID:   fmt.Sprintf("%s%d", botIDPrefix, seat+1),
		Username: fmt.Sprintf("Bot %d", seat+1),
	}
}

// GetBotUsername resolves a bot user id to its display name, or "" when
// the id is not a bot.
func GetBotUsername(userID string) string {
	for _, id := range identities {
		if id.UserID == userID {
			return id.Username
		}
	}
	return ""
}
