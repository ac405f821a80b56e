package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/pitchguess/lineup-trivia/internal/domain/lineup"
	"github.com/pitchguess/lineup-trivia/internal/namematch"
)

type startingLineupLoader interface {
	StartingLineup(ctx context.Context, fixtureID, teamID int64) (lineup.Lineup, error)
}

// Slot is one guessable position of a round.
type Slot struct {
	Index   int
	Player  lineup.Player
	Hint    string
	Guessed bool
}

// Round is one trivia game over a single starting eleven. It is meant for a
// single goroutine, matching the one-player-at-a-keyboard flow.
type Round struct {
	FixtureID int64
	TeamID    int64
	TeamName  string
	Formation string
	Slots     []Slot

	guessed  int
	revealed bool
}

// ApplyGuess checks text against every unguessed slot and marks the first
// match. It returns the matched slot index, or -1 when nothing matched.
func (r *Round) ApplyGuess(text string) (int, bool) {
	if strings.TrimSpace(text) == "" {
		return -1, false
	}

	for i := range r.Slots {
		if r.Slots[i].Guessed {
			continue
		}
		if namematch.IsMatch(text, r.Slots[i].Player.Name) {
			r.Slots[i].Guessed = true
			r.guessed++
			return i, true
		}
	}

	return -1, false
}

// Reveal gives the round up, exposing every remaining player.
func (r *Round) Reveal() {
	r.revealed = true
}

func (r *Round) Revealed() bool {
	return r.revealed
}

func (r *Round) GuessedCount() int {
	return r.guessed
}

func (r *Round) Solved() bool {
	return r.guessed == len(r.Slots)
}

// TriviaService builds playable rounds out of historical lineups.
type TriviaService struct {
	data startingLineupLoader
}

func NewTriviaService(data startingLineupLoader) *TriviaService {
	return &TriviaService{data: data}
}

// StartRound loads the fixture's starting eleven for the requested team and
// turns it into eleven hint slots ordered goalkeeper-first.
func (s *TriviaService) StartRound(ctx context.Context, fixtureID, teamID int64) (*Round, error) {
	ctx, span := startUsecaseSpan(ctx, "TriviaService.StartRound")
	defer span.End()

	if fixtureID <= 0 || teamID <= 0 {
		return nil, fmt.Errorf("%w: fixture id and team id are required", ErrInvalidInput)
	}

	eleven, err := s.data.StartingLineup(ctx, fixtureID, teamID)
	if err != nil {
		return nil, err
	}

	slots := make([]Slot, 0, len(eleven.Starters))
	for i, starter := range eleven.Starters {
		slots = append(slots, Slot{
			Index:  i,
			Player: starter,
			Hint:   namematch.LetterHint(starter.Name),
		})
	}

	return &Round{
		FixtureID: fixtureID,
		TeamID:    teamID,
		TeamName:  eleven.TeamName,
		Formation: eleven.Formation,
		Slots:     slots,
	}, nil
}
