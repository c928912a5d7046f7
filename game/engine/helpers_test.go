package engine

import (
	"math/rand/v2"
	"testing"
)

func up(rank Rank, suit Suit) Card {
	return Card{Suit: suit, Rank: rank, FaceUp: true}
}

func down(rank Rank, suit Suit) Card {
	return Card{Suit: suit, Rank: rank}
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// buildState lays out the given piles and puts every remaining card
// face-down in the stock. foundations maps a suit to its highest rank.
func buildState(t *testing.T, tableau [][]Card, waste []Card, foundations map[Suit]Rank) *GameState {
	t.Helper()

	gs := &GameState{
		Tableau:     make([][]Card, NumColumns),
		Waste:       []Card{},
		Foundations: make([][]Card, NumSuits),
		Stock:       []Card{},
		Status:      StatusInProgress,
		ConfigName:  "test",
		MoveHistory: []MoveHistoryEntry{},
	}

	used := make(map[Card]bool)
	mark := func(c Card) {
		used[Card{Suit: c.Suit, Rank: c.Rank}] = true
	}

	for col := range gs.Tableau {
		gs.Tableau[col] = []Card{}
		if col < len(tableau) {
			gs.Tableau[col] = append(gs.Tableau[col], tableau[col]...)
			for _, c := range tableau[col] {
				mark(c)
			}
		}
	}
	for _, c := range waste {
		c.FaceUp = true
		gs.Waste = append(gs.Waste, c)
		mark(c)
	}
	for i, suit := range Suits {
		gs.Foundations[i] = []Card{}
		for r := Ace; r <= foundations[suit]; r++ {
			c := up(r, suit)
			gs.Foundations[i] = append(gs.Foundations[i], c)
			mark(c)
		}
	}
	for _, c := range NewDeck() {
		if !used[c] {
			gs.Stock = append(gs.Stock, c)
		}
	}
	if gs.FoundationCount() == DeckSize {
		gs.Status = StatusWon
	}

	if err := CheckInvariants(gs); err != nil {
		t.Fatalf("test state is invalid: %v", err)
	}
	return gs
}

func testConfig() *GameConfig {
	cfg := DefaultConfig()
	cfg.Name = "Engine Test Config"
	cfg.Seed = 42
	return cfg
}
