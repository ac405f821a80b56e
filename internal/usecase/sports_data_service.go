package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/pitchguess/lineup-trivia/internal/domain/fixture"
	"github.com/pitchguess/lineup-trivia/internal/domain/league"
	"github.com/pitchguess/lineup-trivia/internal/domain/lineup"
	"github.com/pitchguess/lineup-trivia/internal/domain/team"
	"github.com/pitchguess/lineup-trivia/internal/platform/cache"
	"github.com/pitchguess/lineup-trivia/internal/platform/logging"
)

// Catalog data barely moves between matchdays; historical lineups never
// change at all.
const (
	catalogTTL = 30 * 24 * time.Hour
	lineupTTL  = 365 * 24 * time.Hour
)

const msgOffline = "you appear to be offline; check your connection and try again"

// SportsProvider is the upstream data source, already transformed to
// internal models and normalized to APIError failures.
type SportsProvider interface {
	Leagues(ctx context.Context) ([]league.League, error)
	Seasons(ctx context.Context, leagueID int64) ([]league.Season, error)
	Teams(ctx context.Context, leagueID int64, season int) ([]team.Team, error)
	FinishedFixtures(ctx context.Context, teamID int64, season int) ([]fixture.Fixture, error)
	StartingLineup(ctx context.Context, fixtureID, teamID int64) (lineup.Lineup, error)
}

// ConnectivityProbe reports whether the process currently has network
// access. Checked before every network attempt; cache hits never probe.
type ConnectivityProbe interface {
	Online() bool
}

type alwaysOnline struct{}

func (alwaysOnline) Online() bool { return true }

// SportsDataService fronts the provider with a cache-first, deduplicated
// fetch path: a hit returns immediately, a miss runs exactly one provider
// call per cache key at a time and writes the result through with a
// resource-specific TTL.
type SportsDataService struct {
	provider SportsProvider
	store    *cache.Store
	probe    ConnectivityProbe
	logger   *logging.Logger
}

func NewSportsDataService(provider SportsProvider, store *cache.Store) *SportsDataService {
	return &SportsDataService{
		provider: provider,
		store:    store,
		probe:    alwaysOnline{},
		logger:   logging.Default(),
	}
}

func (s *SportsDataService) SetConnectivityProbe(probe ConnectivityProbe) {
	if probe == nil {
		probe = alwaysOnline{}
	}
	s.probe = probe
}

func (s *SportsDataService) SetLogger(logger *logging.Logger) {
	if logger == nil {
		logger = logging.Default()
	}
	s.logger = logger
}

func (s *SportsDataService) Leagues(ctx context.Context) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "SportsDataService.Leagues")
	defer span.End()

	return loadTyped[[]league.League](ctx, s, "leagues", catalogTTL, func(ctx context.Context) (any, error) {
		return s.provider.Leagues(ctx)
	})
}

func (s *SportsDataService) SeasonsByLeague(ctx context.Context, leagueID int64) ([]league.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "SportsDataService.SeasonsByLeague")
	defer span.End()

	if leagueID <= 0 {
		return nil, fmt.Errorf("%w: league id must be greater than zero", ErrInvalidInput)
	}

	key := fmt.Sprintf("seasons-%d", leagueID)
	return loadTyped[[]league.Season](ctx, s, key, catalogTTL, func(ctx context.Context) (any, error) {
		return s.provider.Seasons(ctx, leagueID)
	})
}

func (s *SportsDataService) TeamsBySeason(ctx context.Context, leagueID int64, season int) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "SportsDataService.TeamsBySeason")
	defer span.End()

	if leagueID <= 0 || season <= 0 {
		return nil, fmt.Errorf("%w: league id and season are required", ErrInvalidInput)
	}

	key := fmt.Sprintf("teams-%d-%d", leagueID, season)
	return loadTyped[[]team.Team](ctx, s, key, catalogTTL, func(ctx context.Context) (any, error) {
		return s.provider.Teams(ctx, leagueID, season)
	})
}

func (s *SportsDataService) FinishedFixtures(ctx context.Context, teamID int64, season int) ([]fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "SportsDataService.FinishedFixtures")
	defer span.End()

	if teamID <= 0 || season <= 0 {
		return nil, fmt.Errorf("%w: team id and season are required", ErrInvalidInput)
	}

	key := fmt.Sprintf("fixtures-%d-%d", teamID, season)
	return loadTyped[[]fixture.Fixture](ctx, s, key, catalogTTL, func(ctx context.Context) (any, error) {
		return s.provider.FinishedFixtures(ctx, teamID, season)
	})
}

func (s *SportsDataService) StartingLineup(ctx context.Context, fixtureID, teamID int64) (lineup.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "SportsDataService.StartingLineup")
	defer span.End()

	if fixtureID <= 0 || teamID <= 0 {
		return lineup.Lineup{}, fmt.Errorf("%w: fixture id and team id are required", ErrInvalidInput)
	}

	key := fmt.Sprintf("lineup-%d-%d", fixtureID, teamID)
	return loadTyped[lineup.Lineup](ctx, s, key, lineupTTL, func(ctx context.Context) (any, error) {
		return s.provider.StartingLineup(ctx, fixtureID, teamID)
	})
}

// ClearCache drops every cached resource.
func (s *SportsDataService) ClearCache(ctx context.Context) {
	s.store.Clear(ctx)
}

// ClearExpired purges stale entries and reports how many were dropped.
func (s *SportsDataService) ClearExpired(ctx context.Context) int {
	return s.store.ClearExpired(ctx)
}

func loadTyped[T any](ctx context.Context, s *SportsDataService, key string, ttl time.Duration, load func(context.Context) (any, error)) (T, error) {
	var zero T

	value, err := s.store.GetOrLoad(ctx, key, ttl, func(ctx context.Context) (any, error) {
		if !s.probe.Online() {
			s.logger.WarnContext(ctx, "skipping fetch while offline", "key", key)
			return nil, fmt.Errorf("%w: %w", ErrOffline, &APIError{
				StatusCode: StatusNoResponse,
				Message:    msgOffline,
				Retryable:  true,
			})
		}
		return load(ctx)
	})
	if err != nil {
		return zero, err
	}

	out, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected cached payload type %T for key %q", value, key)
	}
	return out, nil
}
