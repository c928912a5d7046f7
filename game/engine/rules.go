package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMove marks a rejected transition. The state is unchanged.
	ErrInvalidMove = errors.New("invalid move")

	// ErrGameComplete is returned for any move attempted after the game is won
	ErrGameComplete = fmt.Errorf("%w: game already complete", ErrInvalidMove)

	// ErrBadReference reports a pile or card index that does not exist
	ErrBadReference = errors.New("bad pile reference")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidMove, fmt.Sprintf(format, args...))
}

// CanPlaceOnFoundation reports whether card may be added to pile. The pile
// must be the foundation of the card's suit.
func CanPlaceOnFoundation(card Card, pile []Card) bool {
	if len(pile) == 0 {
		return card.Rank == Ace
	}
	top := pile[len(pile)-1]
	return top.Suit == card.Suit && card.Rank == top.Rank+1
}

// CanPlaceOnTableau reports whether a run whose bottom card is base may be
// placed on column
func CanPlaceOnTableau(base Card, column []Card) bool {
	if len(column) == 0 {
		return base.Rank == King
	}
	top := column[len(column)-1]
	return top.FaceUp && base.Color() != top.Color() && base.Rank == top.Rank-1
}

// IsValidRun reports whether every adjacent pair of run alternates color and
// descends by one rank
func IsValidRun(run []Card) bool {
	for i := 1; i < len(run); i++ {
		below, above := run[i-1], run[i]
		if below.Color() == above.Color() || above.Rank != below.Rank-1 {
			return false
		}
	}
	return true
}

// CheckRef reports ErrBadReference if src does not name a playable source pile
// or cardIndex is outside it. Transitions panic on such references.
func CheckRef(gs *GameState, src PileRef, cardIndex int) error {
	switch src.Kind {
	case Tableau:
		if err := CheckColumn(gs, src.Index); err != nil {
			return err
		}
		if cardIndex < 0 || cardIndex >= len(gs.Tableau[src.Index]) {
			return fmt.Errorf("%w: card index %d outside column %d (%d cards)",
				ErrBadReference, cardIndex, src.Index, len(gs.Tableau[src.Index]))
		}
	case Waste:
		if cardIndex < 0 || cardIndex >= len(gs.Waste) {
			return fmt.Errorf("%w: card index %d outside waste (%d cards)", ErrBadReference, cardIndex, len(gs.Waste))
		}
	default:
		return fmt.Errorf("%w: %q is not a source pile", ErrBadReference, src.Kind)
	}
	return nil
}

// CheckColumn reports ErrBadReference if col is not a tableau column
func CheckColumn(gs *GameState, col int) error {
	if col < 0 || col >= len(gs.Tableau) {
		return fmt.Errorf("%w: tableau column %d does not exist", ErrBadReference, col)
	}
	return nil
}

func mustRef(gs *GameState, src PileRef, cardIndex int) {
	if err := CheckRef(gs, src, cardIndex); err != nil {
		panic(err)
	}
}

func mustColumn(gs *GameState, col int) {
	if err := CheckColumn(gs, col); err != nil {
		panic(err)
	}
}

// checkFoundationMove validates a foundation play without changing anything
func checkFoundationMove(gs *GameState, src PileRef, cardIndex int) (Card, error) {
	if gs.IsWon() {
		return Card{}, ErrGameComplete
	}
	mustRef(gs, src, cardIndex)

	var card Card
	switch src.Kind {
	case Tableau:
		column := gs.Tableau[src.Index]
		if cardIndex != len(column)-1 {
			return Card{}, invalid("only the top card of column %d can go to a foundation", src.Index)
		}
		card = column[cardIndex]
	case Waste:
		if cardIndex != 0 {
			return Card{}, invalid("only the top card of the waste can be played")
		}
		card = gs.Waste[0]
	}

	if !card.FaceUp {
		return Card{}, invalid("%s is face-down", card)
	}
	if !CanPlaceOnFoundation(card, gs.Foundations[card.Suit.Index()]) {
		return Card{}, invalid("%s does not continue the %s foundation", card, card.Suit)
	}
	return card, nil
}

// checkTableauMove validates moving src[cardIndex:] onto destCol and returns the run
func checkTableauMove(gs *GameState, cfg *GameConfig, src PileRef, cardIndex, destCol int) ([]Card, error) {
	if gs.IsWon() {
		return nil, ErrGameComplete
	}
	mustRef(gs, src, cardIndex)
	mustColumn(gs, destCol)

	var run []Card
	switch src.Kind {
	case Tableau:
		if src.Index == destCol {
			return nil, invalid("source and destination are both column %d", destCol)
		}
		run = gs.Tableau[src.Index][cardIndex:]
	case Waste:
		if cardIndex != 0 {
			return nil, invalid("only the top card of the waste can be played")
		}
		run = gs.Waste[:1]
	}

	for _, card := range run {
		if !card.FaceUp {
			return nil, invalid("run contains the face-down card %s", card)
		}
	}
	if cfg.StrictRuns && !IsValidRun(run) {
		return nil, invalid("cards above %s do not form a descending alternating run", run[0])
	}

	dest := gs.Tableau[destCol]
	if !CanPlaceOnTableau(run[0], dest) {
		if len(dest) == 0 {
			return nil, invalid("only a King can start an empty column, got %s", run[0])
		}
		return nil, invalid("%s cannot be placed on %s", run[0], dest[len(dest)-1])
	}
	return run, nil
}
