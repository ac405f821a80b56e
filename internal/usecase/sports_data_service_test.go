package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pitchguess/lineup-trivia/internal/domain/fixture"
	"github.com/pitchguess/lineup-trivia/internal/domain/league"
	"github.com/pitchguess/lineup-trivia/internal/domain/lineup"
	"github.com/pitchguess/lineup-trivia/internal/domain/team"
	"github.com/pitchguess/lineup-trivia/internal/platform/cache"
)

type fakeProvider struct {
	mu         sync.Mutex
	calls      map[string]int
	fetchDelay time.Duration
	leagues    []league.League
	seasons    []league.Season
	teams      []team.Team
	fixtures   []fixture.Fixture
	startingXI lineup.Lineup
	failWith   error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		calls:   make(map[string]int),
		leagues: []league.League{{ID: 39, Name: "Premier League", Country: "England"}},
		seasons: []league.Season{{Year: 2023}, {Year: 2022}},
		teams:   []team.Team{{ID: 40, Name: "Liverpool", VenueName: "Anfield"}},
		fixtures: []fixture.Fixture{
			{ID: 1100, HomeTeam: "Liverpool", AwayTeam: "Everton", Score: "2-0"},
		},
		startingXI: testLineup(),
	}
}

func (p *fakeProvider) record(op string) error {
	p.mu.Lock()
	p.calls[op]++
	p.mu.Unlock()
	if p.fetchDelay > 0 {
		time.Sleep(p.fetchDelay)
	}
	return p.failWith
}

func (p *fakeProvider) callCount(op string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[op]
}

func (p *fakeProvider) Leagues(context.Context) ([]league.League, error) {
	if err := p.record("leagues"); err != nil {
		return nil, err
	}
	return p.leagues, nil
}

func (p *fakeProvider) Seasons(_ context.Context, leagueID int64) ([]league.Season, error) {
	if err := p.record("seasons"); err != nil {
		return nil, err
	}
	return p.seasons, nil
}

func (p *fakeProvider) Teams(_ context.Context, leagueID int64, season int) ([]team.Team, error) {
	if err := p.record("teams"); err != nil {
		return nil, err
	}
	return p.teams, nil
}

func (p *fakeProvider) FinishedFixtures(_ context.Context, teamID int64, season int) ([]fixture.Fixture, error) {
	if err := p.record("fixtures"); err != nil {
		return nil, err
	}
	return p.fixtures, nil
}

func (p *fakeProvider) StartingLineup(_ context.Context, fixtureID, teamID int64) (lineup.Lineup, error) {
	if err := p.record("lineup"); err != nil {
		return lineup.Lineup{}, err
	}
	return p.startingXI, nil
}

type offlineProbe struct{}

func (offlineProbe) Online() bool { return false }

func testLineup() lineup.Lineup {
	names := []string{
		"Alisson Becker", "Trent Alexander-Arnold", "Ibrahima Konaté",
		"Virgil van Dijk", "Andrew Robertson", "Jordan Henderson",
		"Fabinho Tavares", "Thiago Alcântara", "Mohamed Salah",
		"Darwin Núñez", "Luis Díaz",
	}
	starters := make([]lineup.Player, 0, len(names))
	for i, name := range names {
		starters = append(starters, lineup.Player{
			ID:        int64(100 + i),
			Name:      name,
			Number:    i + 1,
			SlotIndex: i,
		})
	}
	return lineup.Lineup{
		TeamID:    40,
		TeamName:  "Liverpool",
		Formation: "4-4-2",
		Starters:  starters,
	}
}

func TestSportsDataService_CacheHitSkipsProvider(t *testing.T) {
	t.Parallel()

	provider := newFakeProvider()
	svc := NewSportsDataService(provider, cache.NewStore(0))

	first, err := svc.Leagues(context.Background())
	require.NoError(t, err)
	second, err := svc.Leagues(context.Background())
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 1, provider.callCount("leagues"))
}

func TestSportsDataService_DeduplicatesConcurrentFetches(t *testing.T) {
	t.Parallel()

	provider := newFakeProvider()
	provider.fetchDelay = 25 * time.Millisecond
	svc := NewSportsDataService(provider, cache.NewStore(0))

	const workers = 16
	start := make(chan struct{})
	var wg sync.WaitGroup
	var failures atomic.Int32
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			fixtures, err := svc.FinishedFixtures(context.Background(), 40, 2023)
			if err != nil || len(fixtures) != 1 {
				failures.Add(1)
			}
		}()
	}

	close(start)
	wg.Wait()

	require.Zero(t, failures.Load())
	require.Equal(t, 1, provider.callCount("fixtures"))
}

func TestSportsDataService_DistinctKeysFetchSeparately(t *testing.T) {
	t.Parallel()

	provider := newFakeProvider()
	svc := NewSportsDataService(provider, cache.NewStore(0))

	_, err := svc.TeamsBySeason(context.Background(), 39, 2022)
	require.NoError(t, err)
	_, err = svc.TeamsBySeason(context.Background(), 39, 2023)
	require.NoError(t, err)

	require.Equal(t, 2, provider.callCount("teams"))
}

func TestSportsDataService_OfflineShortCircuits(t *testing.T) {
	t.Parallel()

	provider := newFakeProvider()
	svc := NewSportsDataService(provider, cache.NewStore(0))
	svc.SetConnectivityProbe(offlineProbe{})

	_, err := svc.Leagues(context.Background())
	require.ErrorIs(t, err, ErrOffline)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok, "expected APIError, got %v", err)
	require.True(t, apiErr.Retryable)
	require.Equal(t, StatusNoResponse, apiErr.StatusCode)
	require.Zero(t, provider.callCount("leagues"), "offline must not reach the provider")
}

func TestSportsDataService_OfflineStillServesCache(t *testing.T) {
	t.Parallel()

	provider := newFakeProvider()
	svc := NewSportsDataService(provider, cache.NewStore(0))

	_, err := svc.SeasonsByLeague(context.Background(), 39)
	require.NoError(t, err)

	// Going offline must not hide previously fetched resources.
	svc.SetConnectivityProbe(offlineProbe{})
	seasons, err := svc.SeasonsByLeague(context.Background(), 39)
	require.NoError(t, err)
	require.Len(t, seasons, 2)
	require.Equal(t, 1, provider.callCount("seasons"))
}

func TestSportsDataService_FailedFetchIsNotCached(t *testing.T) {
	t.Parallel()

	provider := newFakeProvider()
	provider.failWith = &APIError{StatusCode: 500, Message: "boom", Retryable: true}
	svc := NewSportsDataService(provider, cache.NewStore(0))

	_, err := svc.Leagues(context.Background())
	require.Error(t, err)

	provider.failWith = nil
	leagues, err := svc.Leagues(context.Background())
	require.NoError(t, err)
	require.Len(t, leagues, 1)
	require.Equal(t, 2, provider.callCount("leagues"))
}

func TestSportsDataService_InvalidInput(t *testing.T) {
	t.Parallel()

	provider := newFakeProvider()
	svc := NewSportsDataService(provider, cache.NewStore(0))

	_, err := svc.SeasonsByLeague(context.Background(), 0)
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.TeamsBySeason(context.Background(), 39, 0)
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.FinishedFixtures(context.Background(), 0, 2023)
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.StartingLineup(context.Background(), 0, 40)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSportsDataService_ClearCacheForcesRefetch(t *testing.T) {
	t.Parallel()

	provider := newFakeProvider()
	svc := NewSportsDataService(provider, cache.NewStore(0))

	_, err := svc.Leagues(context.Background())
	require.NoError(t, err)

	svc.ClearCache(context.Background())

	_, err = svc.Leagues(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, provider.callCount("leagues"))
}
