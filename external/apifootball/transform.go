package apifootball

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pitchguess/lineup-trivia/internal/domain/fixture"
	"github.com/pitchguess/lineup-trivia/internal/domain/league"
	"github.com/pitchguess/lineup-trivia/internal/domain/lineup"
	"github.com/pitchguess/lineup-trivia/internal/domain/team"
	"github.com/pitchguess/lineup-trivia/internal/usecase"
)

func mapLeagues(items []leagueItem) []league.League {
	out := make([]league.League, 0, len(items))
	for _, item := range items {
		if item.League.ID <= 0 {
			continue
		}
		out = append(out, league.League{
			ID:          item.League.ID,
			Name:        strings.TrimSpace(item.League.Name),
			Type:        strings.TrimSpace(item.League.Type),
			LogoURL:     strings.TrimSpace(item.League.Logo),
			Country:     strings.TrimSpace(item.Country.Name),
			CountryCode: strings.TrimSpace(item.Country.Code),
			FlagURL:     strings.TrimSpace(item.Country.Flag),
		})
	}
	return out
}

// mapSeasons keeps only seasons whose lineup coverage flag is set, most
// recent year first.
func mapSeasons(items []seasonItem) []league.Season {
	out := make([]league.Season, 0, len(items))
	for _, item := range items {
		if !item.Coverage.Fixtures.Lineups {
			continue
		}
		out = append(out, league.Season{
			Year:    item.Year,
			Start:   item.Start,
			End:     item.End,
			Current: item.Current,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Year > out[j].Year })
	return out
}

func mapTeams(items []teamItem) []team.Team {
	out := make([]team.Team, 0, len(items))
	for _, item := range items {
		if item.Team.ID <= 0 {
			continue
		}
		out = append(out, team.Team{
			ID:        item.Team.ID,
			Name:      strings.TrimSpace(item.Team.Name),
			LogoURL:   strings.TrimSpace(item.Team.Logo),
			VenueName: strings.TrimSpace(item.Venue.Name),
		})
	}
	return out
}

// mapFinishedFixtures keeps only finished matches, renders the "home-away"
// score string, and sorts chronologically by kickoff.
func mapFinishedFixtures(items []fixtureItem) []fixture.Fixture {
	out := make([]fixture.Fixture, 0, len(items))
	for _, item := range items {
		if item.Fixture.ID <= 0 || !fixture.IsFinishedStatus(item.Fixture.Status.Short) {
			continue
		}

		homeGoals, awayGoals := 0, 0
		if item.Goals.Home != nil {
			homeGoals = *item.Goals.Home
		}
		if item.Goals.Away != nil {
			awayGoals = *item.Goals.Away
		}

		kickoff, err := time.Parse(time.RFC3339, item.Fixture.Date)
		if err != nil {
			kickoff = time.Time{}
		}

		out = append(out, fixture.Fixture{
			ID:         item.Fixture.ID,
			KickoffAt:  kickoff,
			Venue:      strings.TrimSpace(item.Fixture.Venue.Name),
			HomeTeam:   strings.TrimSpace(item.Teams.Home.Name),
			AwayTeam:   strings.TrimSpace(item.Teams.Away.Name),
			HomeTeamID: item.Teams.Home.ID,
			AwayTeamID: item.Teams.Away.ID,
			HomeGoals:  homeGoals,
			AwayGoals:  awayGoals,
			Score:      fixture.ScoreString(homeGoals, awayGoals),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].KickoffAt.Before(out[j].KickoffAt) })
	return out
}

// mapStartingLineup selects the requested team's entry out of the two-team
// payload and converts each starter's grid position to a flat slot.
func mapStartingLineup(items []lineupEntry, fixtureID, teamID int64) (lineup.Lineup, error) {
	var selected *lineupEntry
	for i := range items {
		if items[i].Team.ID == teamID {
			selected = &items[i]
			break
		}
	}
	if selected == nil {
		return lineup.Lineup{}, &usecase.DataIntegrityError{
			Kind:    usecase.IntegrityMissingTeam,
			Message: fmt.Sprintf("no lineup for team %d in fixture %d", teamID, fixtureID),
		}
	}

	if len(selected.StartXI) != lineup.StartingElevenSize {
		return lineup.Lineup{}, &usecase.DataIntegrityError{
			Kind: usecase.IntegrityMalformedLineup,
			Message: fmt.Sprintf("lineup for team %d in fixture %d has %d starters, want %d",
				teamID, fixtureID, len(selected.StartXI), lineup.StartingElevenSize),
		}
	}

	starters := make([]lineup.Player, 0, lineup.StartingElevenSize)
	for _, slot := range selected.StartXI {
		index, err := lineup.SlotIndex(selected.Formation, slot.Player.Grid)
		if err != nil {
			return lineup.Lineup{}, &usecase.DataIntegrityError{
				Kind:    usecase.IntegrityMalformedLineup,
				Message: fmt.Sprintf("lineup for team %d in fixture %d: %v", teamID, fixtureID, err),
			}
		}
		starters = append(starters, lineup.Player{
			ID:        slot.Player.ID,
			Name:      strings.TrimSpace(slot.Player.Name),
			Number:    slot.Player.Number,
			Position:  strings.TrimSpace(slot.Player.Pos),
			SlotIndex: index,
		})
	}

	sort.SliceStable(starters, func(i, j int) bool { return starters[i].SlotIndex < starters[j].SlotIndex })

	return lineup.Lineup{
		TeamID:    selected.Team.ID,
		TeamName:  strings.TrimSpace(selected.Team.Name),
		Coach:     strings.TrimSpace(selected.Coach.Name),
		Formation: strings.TrimSpace(selected.Formation),
		Starters:  starters,
	}, nil
}
