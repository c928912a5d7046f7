package engine

import (
	"errors"
	"fmt"
)

// ErrCorruptState reports a structural invariant violation. It indicates a
// programming error, never a player mistake.
var ErrCorruptState = errors.New("corrupt game state")

// CheckInvariants verifies the structure of a state:
//   - seven tableau columns and four foundations
//   - every (suit, rank) pair present exactly once across all piles
//   - foundations hold one suit each, in order from Ace
//   - stock face-down; waste and foundations face-up
//   - within a column no face-down card lies above a face-up one, and a
//     non-empty column shows its top card
//   - status is won exactly when all cards are on the foundations
func CheckInvariants(gs *GameState) error {
	if gs == nil {
		return fmt.Errorf("%w: nil state", ErrCorruptState)
	}
	if len(gs.Tableau) != NumColumns {
		return fmt.Errorf("%w: %d tableau columns", ErrCorruptState, len(gs.Tableau))
	}
	if len(gs.Foundations) != NumSuits {
		return fmt.Errorf("%w: %d foundations", ErrCorruptState, len(gs.Foundations))
	}

	seen := make(map[Card]string, DeckSize)
	count := func(card Card, where string) error {
		if card.Suit.Index() < 0 || !card.Rank.Valid() {
			return fmt.Errorf("%w: unknown card %+v in %s", ErrCorruptState, card, where)
		}
		key := Card{Suit: card.Suit, Rank: card.Rank}
		if prev, dup := seen[key]; dup {
			return fmt.Errorf("%w: %s found in both %s and %s", ErrCorruptState, key, prev, where)
		}
		seen[key] = where
		return nil
	}

	for col, column := range gs.Tableau {
		where := fmt.Sprintf("column %d", col)
		faceUpSeen := false
		for _, card := range column {
			if err := count(card, where); err != nil {
				return err
			}
			if card.FaceUp {
				faceUpSeen = true
			} else if faceUpSeen {
				return fmt.Errorf("%w: face-down %s above a face-up card in %s", ErrCorruptState, card, where)
			}
		}
		if n := len(column); n > 0 && !column[n-1].FaceUp {
			return fmt.Errorf("%w: top of %s is face-down", ErrCorruptState, where)
		}
	}

	for _, card := range gs.Stock {
		if err := count(card, "stock"); err != nil {
			return err
		}
		if card.FaceUp {
			return fmt.Errorf("%w: face-up %s in stock", ErrCorruptState, card)
		}
	}

	for _, card := range gs.Waste {
		if err := count(card, "waste"); err != nil {
			return err
		}
		if !card.FaceUp {
			return fmt.Errorf("%w: face-down %s in waste", ErrCorruptState, card)
		}
	}

	for i, pile := range gs.Foundations {
		suit := Suits[i]
		where := fmt.Sprintf("%s foundation", suit)
		for pos, card := range pile {
			if err := count(card, where); err != nil {
				return err
			}
			if card.Suit != suit || card.Rank != Rank(pos+1) || !card.FaceUp {
				return fmt.Errorf("%w: %s out of order in %s", ErrCorruptState, card, where)
			}
		}
	}

	if len(seen) != DeckSize {
		return fmt.Errorf("%w: %d of %d cards present", ErrCorruptState, len(seen), DeckSize)
	}

	complete := gs.FoundationCount() == DeckSize
	if complete != gs.IsWon() {
		return fmt.Errorf("%w: status %q with %d foundation cards", ErrCorruptState, gs.Status, gs.FoundationCount())
	}
	return nil
}

// MustBeValid panics if gs violates a structural invariant
func MustBeValid(gs *GameState) {
	if err := CheckInvariants(gs); err != nil {
		panic(err)
	}
}
