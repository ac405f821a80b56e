package apifootball

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/pitchguess/lineup-trivia/internal/domain/fixture"
	"github.com/pitchguess/lineup-trivia/internal/domain/league"
	"github.com/pitchguess/lineup-trivia/internal/domain/lineup"
	"github.com/pitchguess/lineup-trivia/internal/domain/team"
)

// Leagues lists every competition the provider knows about.
func (c *Client) Leagues(ctx context.Context) ([]league.League, error) {
	var items []leagueItem
	if err := c.getItems(ctx, "/leagues", nil, &items); err != nil {
		return nil, err
	}
	return mapLeagues(items), nil
}

// Seasons lists the playable seasons of one league: only seasons with lineup
// coverage, most recent first.
func (c *Client) Seasons(ctx context.Context, leagueID int64) ([]league.Season, error) {
	if leagueID <= 0 {
		return nil, fmt.Errorf("league id must be greater than zero")
	}

	query := url.Values{}
	query.Set("id", strconv.FormatInt(leagueID, 10))

	var items []leagueItem
	if err := c.getItems(ctx, "/leagues", query, &items); err != nil {
		return nil, fmt.Errorf("fetch seasons league_id=%d: %w", leagueID, err)
	}
	if len(items) == 0 {
		return nil, nil
	}
	return mapSeasons(items[0].Seasons), nil
}

// Teams lists the clubs of a league season, venue included when known.
func (c *Client) Teams(ctx context.Context, leagueID int64, season int) ([]team.Team, error) {
	if leagueID <= 0 {
		return nil, fmt.Errorf("league id must be greater than zero")
	}
	if season <= 0 {
		return nil, fmt.Errorf("season must be greater than zero")
	}

	query := url.Values{}
	query.Set("league", strconv.FormatInt(leagueID, 10))
	query.Set("season", strconv.Itoa(season))

	var items []teamItem
	if err := c.getItems(ctx, "/teams", query, &items); err != nil {
		return nil, fmt.Errorf("fetch teams league_id=%d season=%d: %w", leagueID, season, err)
	}
	return mapTeams(items), nil
}

// FinishedFixtures lists a team's played matches of a season in kickoff
// order. Fixtures that did not finish are dropped.
func (c *Client) FinishedFixtures(ctx context.Context, teamID int64, season int) ([]fixture.Fixture, error) {
	if teamID <= 0 {
		return nil, fmt.Errorf("team id must be greater than zero")
	}
	if season <= 0 {
		return nil, fmt.Errorf("season must be greater than zero")
	}

	query := url.Values{}
	query.Set("team", strconv.FormatInt(teamID, 10))
	query.Set("season", strconv.Itoa(season))

	var items []fixtureItem
	if err := c.getItems(ctx, "/fixtures", query, &items); err != nil {
		return nil, fmt.Errorf("fetch fixtures team_id=%d season=%d: %w", teamID, season, err)
	}
	return mapFinishedFixtures(items), nil
}

// StartingLineup returns the requested team's starting eleven for a fixture.
// The provider sends both competing teams' lineups in one payload; the entry
// matching teamID is selected and validated.
func (c *Client) StartingLineup(ctx context.Context, fixtureID, teamID int64) (lineup.Lineup, error) {
	if fixtureID <= 0 {
		return lineup.Lineup{}, fmt.Errorf("fixture id must be greater than zero")
	}
	if teamID <= 0 {
		return lineup.Lineup{}, fmt.Errorf("team id must be greater than zero")
	}

	query := url.Values{}
	query.Set("fixture", strconv.FormatInt(fixtureID, 10))

	var items []lineupEntry
	if err := c.getItems(ctx, "/fixtures/lineups", query, &items); err != nil {
		return lineup.Lineup{}, fmt.Errorf("fetch lineup fixture_id=%d: %w", fixtureID, err)
	}
	return mapStartingLineup(items, fixtureID, teamID)
}
