package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/pitchguess/lineup-trivia/external/apifootball"
	"github.com/pitchguess/lineup-trivia/internal/config"
	"github.com/pitchguess/lineup-trivia/internal/platform/cache"
	"github.com/pitchguess/lineup-trivia/internal/platform/logging"
	"github.com/pitchguess/lineup-trivia/internal/platform/resilience"
	"github.com/pitchguess/lineup-trivia/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer logger.Sync()

	client := apifootball.NewClient(apifootball.ClientConfig{
		BaseURL:           cfg.APIBaseURL,
		APIHost:           cfg.APIHost,
		APIKey:            cfg.APIKey,
		Timeout:           cfg.APITimeout,
		MaxRetries:        cfg.APIMaxRetries,
		RequestsPerMinute: cfg.RequestsPerMinute,
		Logger:            logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.CircuitEnabled,
			FailureThreshold: cfg.CircuitFailureCount,
			OpenTimeout:      cfg.CircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.CircuitHalfOpenMaxReq,
		},
	})

	store := cache.NewDisabledStore()
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheMaxEntries)
	}

	data := usecase.NewSportsDataService(client, store)
	data.SetLogger(logger)
	trivia := usecase.NewTriviaService(data)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, data, trivia); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Println("\nbye")
			return
		}
		logger.Error("game loop failed", "error", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, data *usecase.SportsDataService, trivia *usecase.TriviaService) error {
	in := bufio.NewScanner(os.Stdin)

	leagues, err := data.Leagues(ctx)
	if err != nil {
		return fmt.Errorf("load leagues: %w", err)
	}
	if len(leagues) == 0 {
		return errors.New("no leagues with lineup coverage available")
	}

	fmt.Println("Pick a league:")
	for i, l := range leagues {
		fmt.Printf("  %2d. %s (%s)\n", i+1, l.Name, l.Country)
	}
	leagueIdx, err := promptIndex(ctx, in, "league", len(leagues))
	if err != nil {
		return err
	}
	chosenLeague := leagues[leagueIdx]

	seasons, err := data.SeasonsByLeague(ctx, chosenLeague.ID)
	if err != nil {
		return fmt.Errorf("load seasons: %w", err)
	}
	if len(seasons) == 0 {
		return fmt.Errorf("no seasons with lineup coverage for %s", chosenLeague.Name)
	}

	fmt.Println("Pick a season:")
	for i, s := range seasons {
		fmt.Printf("  %2d. %d\n", i+1, s.Year)
	}
	seasonIdx, err := promptIndex(ctx, in, "season", len(seasons))
	if err != nil {
		return err
	}
	season := seasons[seasonIdx].Year

	teams, err := data.TeamsBySeason(ctx, chosenLeague.ID, season)
	if err != nil {
		return fmt.Errorf("load teams: %w", err)
	}
	if len(teams) == 0 {
		return fmt.Errorf("no teams for %s %d", chosenLeague.Name, season)
	}

	fmt.Println("Pick a team:")
	for i, tm := range teams {
		fmt.Printf("  %2d. %s\n", i+1, tm.Name)
	}
	teamIdx, err := promptIndex(ctx, in, "team", len(teams))
	if err != nil {
		return err
	}
	chosenTeam := teams[teamIdx]

	fixtures, err := data.FinishedFixtures(ctx, chosenTeam.ID, season)
	if err != nil {
		return fmt.Errorf("load fixtures: %w", err)
	}
	if len(fixtures) == 0 {
		return fmt.Errorf("no finished fixtures for %s in %d", chosenTeam.Name, season)
	}

	fmt.Println("Pick a match:")
	for i, fx := range fixtures {
		fmt.Printf("  %2d. %s %s %s (%s)\n", i+1, fx.HomeTeam, fx.Score, fx.AwayTeam, fx.KickoffAt.Format("2006-01-02"))
	}
	fixtureIdx, err := promptIndex(ctx, in, "match", len(fixtures))
	if err != nil {
		return err
	}

	round, err := trivia.StartRound(ctx, fixtures[fixtureIdx].ID, chosenTeam.ID)
	if err != nil {
		return fmt.Errorf("start round: %w", err)
	}

	return playRound(ctx, in, round)
}

func playRound(ctx context.Context, in *bufio.Scanner, round *usecase.Round) error {
	fmt.Printf("\nName the %s starting eleven (%s). Type a surname, or 'reveal' to give up.\n", round.TeamName, round.Formation)

	for !round.Solved() && !round.Revealed() {
		printBoard(round)

		line, err := readLine(ctx, in, "guess> ")
		if err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			continue
		case "reveal", "giveup":
			round.Reveal()
			continue
		case "quit", "exit":
			return context.Canceled
		}

		if index, ok := round.ApplyGuess(line); ok {
			fmt.Printf("correct! %s (%d/%d)\n", round.Slots[index].Player.Name, round.GuessedCount(), len(round.Slots))
		} else {
			fmt.Println("no match")
		}
	}

	printBoard(round)
	if round.Solved() {
		fmt.Println("full house, well played")
	} else {
		fmt.Printf("you got %d of %d\n", round.GuessedCount(), len(round.Slots))
	}

	return nil
}

func printBoard(round *usecase.Round) {
	fmt.Println()
	for _, slot := range round.Slots {
		label := slot.Hint
		if slot.Guessed || round.Revealed() {
			label = slot.Player.Name
		}
		fmt.Printf("  %2d. %s\n", slot.Index+1, label)
	}
	fmt.Println()
}

func promptIndex(ctx context.Context, in *bufio.Scanner, what string, max int) (int, error) {
	for {
		line, err := readLine(ctx, in, fmt.Sprintf("%s [1-%d]> ", what, max))
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || n < 1 || n > max {
			fmt.Printf("enter a number between 1 and %d\n", max)
			continue
		}
		return n - 1, nil
	}
}

func readLine(ctx context.Context, in *bufio.Scanner, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Print(prompt)
	if !in.Scan() {
		if err := in.Err(); err != nil {
			return "", err
		}
		return "", context.Canceled
	}
	return in.Text(), nil
}
