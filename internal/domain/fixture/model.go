package fixture

import (
	"fmt"
	"strings"
	"time"
)

// StatusFinished is the provider's short code for a match that went the
// distance. Only finished fixtures are guessable.
const StatusFinished = "FT"

// Fixture represents one played match.
type Fixture struct {
	ID         int64
	KickoffAt  time.Time
	Venue      string
	HomeTeam   string
	AwayTeam   string
	HomeTeamID int64
	AwayTeamID int64
	HomeGoals  int
	AwayGoals  int
	Score      string
}

func IsFinishedStatus(short string) bool {
	return strings.TrimSpace(short) == StatusFinished
}

// ScoreString renders the final score as "home-away".
func ScoreString(home, away int) string {
	return fmt.Sprintf("%d-%d", home, away)
}
