// Command autoplay deals a series of seeded games and plays each one with a
// simple greedy strategy, then reports how many were won. It is a quick way
// to compare how forgiving the rule configurations in configs/ are.
//
// The strategy prefers foundation plays, then tableau moves that make
// progress (play the waste card, turn up a face-down card, or clear a column
// for a King), and draws only when nothing else helps.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/klondike-game/game/config"
	"github.com/wricardo/klondike-game/game/engine"
)

// GameResult is the outcome of one automatic game
type GameResult struct {
	Seed       int64
	Won        bool
	Score      int
	Moves      int
	Foundation int
}

// Summary aggregates the results of a run
type Summary struct {
	Games      int
	Wins       int
	TotalScore int
	TotalMoves int
	TotalCards int
}

// Add folds one result into the summary
func (s *Summary) Add(r GameResult) {
	s.Games++
	if r.Won {
		s.Wins++
	}
	s.TotalScore += r.Score
	s.TotalMoves += r.Moves
	s.TotalCards += r.Foundation
}

// WinRate returns the share of games won, from 0 to 100
func (s *Summary) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return 100 * float64(s.Wins) / float64(s.Games)
}

func (s *Summary) average(total int) float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(total) / float64(s.Games)
}

// chooseMove picks the greedy move from the legal moves of gs. It returns
// false when no move makes progress.
func chooseMove(gs *engine.GameState, moves []engine.Move) (engine.Move, bool) {
	var draw *engine.Move
	for i, m := range moves {
		switch m.Kind {
		case engine.MoveFoundation:
			return m, true
		case engine.MoveDraw:
			draw = &moves[i]
		}
	}

	for _, m := range moves {
		if m.Kind == engine.MoveTableau && productive(gs, m) {
			return m, true
		}
	}

	if draw != nil {
		return *draw, true
	}
	return engine.Move{}, false
}

// productive reports whether a tableau move changes more than which column a
// run sits in. Shuffling a run between face-up bases could repeat forever.
func productive(gs *engine.GameState, m engine.Move) bool {
	if m.Source.Kind == engine.Waste {
		return true
	}

	column := gs.Tableau[m.Source.Index]
	if m.CardIndex == 0 {
		// Moving a King off an empty spot only lands it on another one
		return column[0].Rank != engine.King
	}
	return !column[m.CardIndex-1].FaceUp
}

func apply(eng *engine.GameEngine, m engine.Move) error {
	var err error
	switch m.Kind {
	case engine.MoveDraw:
		_, err = eng.Draw()
	case engine.MoveFoundation:
		_, err = eng.MoveToFoundation(m.Source, m.CardIndex)
	default:
		_, err = eng.MoveToTableau(m.Source, m.CardIndex, m.DestCol)
	}
	return err
}

// playGame deals cfg with seed and plays until won, stuck or maxSteps.
func playGame(cfg *engine.GameConfig, seed int64, maxSteps int) (GameResult, error) {
	seeded := *cfg
	seeded.Seed = seed

	eng, err := engine.NewEngine(&seeded)
	if err != nil {
		return GameResult{}, err
	}

	for step := 0; step < maxSteps; step++ {
		move, ok := chooseMove(eng.GetState(), eng.LegalMoves())
		if !ok {
			break
		}
		if err := apply(eng, move); err != nil {
			return GameResult{}, fmt.Errorf("seed %d, step %d: %w", seed, step, err)
		}
	}

	state := eng.GetState()
	if err := engine.CheckInvariants(state); err != nil {
		return GameResult{}, fmt.Errorf("seed %d: %w", seed, err)
	}

	return GameResult{
		Seed:       seed,
		Won:        state.IsWon(),
		Score:      state.Score,
		Moves:      state.MoveCount,
		Foundation: state.FoundationCount(),
	}, nil
}

// loadRules returns the named config from dir, or the built-in classic
// rules when dir holds no configs.
func loadRules(dir, name string) (*engine.GameConfig, error) {
	manager, err := config.NewManager(dir)
	if err != nil {
		if name != "" {
			return nil, err
		}
		return engine.DefaultConfig(), nil
	}
	if name == "" {
		return manager.GetDefault(), nil
	}
	return manager.LoadConfig(name)
}

// run plays games games starting at seed and writes the report to out.
func run(out io.Writer, cfg *engine.GameConfig, games int, seed int64, maxSteps int, verbose bool) (*Summary, error) {
	summary := &Summary{}

	for i := 0; i < games; i++ {
		result, err := playGame(cfg, seed+int64(i), maxSteps)
		if err != nil {
			return nil, err
		}
		summary.Add(result)

		if verbose {
			status := "stuck"
			if result.Won {
				status = "won"
			}
			fmt.Fprintf(out, "seed %-8d %-5s score %4d  moves %4d  foundation %2d/%d\n",
				result.Seed, status, result.Score, result.Moves, result.Foundation, engine.DeckSize)
		}
	}

	fmt.Fprintf(out, "\n=== %s ===\n", cfg.Name)
	fmt.Fprintf(out, "Games:          %d\n", summary.Games)
	fmt.Fprintf(out, "Wins:           %d (%.1f%%)\n", summary.Wins, summary.WinRate())
	fmt.Fprintf(out, "Average score:  %.1f\n", summary.average(summary.TotalScore))
	fmt.Fprintf(out, "Average moves:  %.1f\n", summary.average(summary.TotalMoves))
	fmt.Fprintf(out, "Average cards:  %.1f/%d on foundations\n", summary.average(summary.TotalCards), engine.DeckSize)

	return summary, nil
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "autoplay",
		Usage: "play seeded Klondike deals with a greedy strategy and report the win rate",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "games",
				Aliases: []string{"n"},
				Value:   100,
				Usage:   "number of games to play",
			},
			&cli.IntFlag{
				Name:  "seed",
				Value: 1,
				Usage: "seed of the first deal; game i uses seed+i",
			},
			&cli.StringFlag{
				Name:  "config-dir",
				Value: "configs",
				Usage: "directory containing game configurations",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config ID to play (default config when empty)",
			},
			&cli.IntFlag{
				Name:  "max-steps",
				Value: 1000,
				Usage: "move limit per game",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "print one line per game",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			games := int(cmd.Int("games"))
			seed := int64(cmd.Int("seed"))
			maxSteps := int(cmd.Int("max-steps"))

			if games < 1 {
				return errors.New("games must be at least 1")
			}
			if seed < 1 {
				return errors.New("seed must be positive")
			}
			if maxSteps < 1 {
				return errors.New("max-steps must be at least 1")
			}

			cfg, err := loadRules(cmd.String("config-dir"), cmd.String("config"))
			if err != nil {
				return err
			}

			out := cmd.Root().Writer
			if out == nil {
				out = os.Stdout
			}

			_, err = run(out, cfg, games, seed, maxSteps, cmd.Bool("verbose"))
			return err
		},
	}
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
