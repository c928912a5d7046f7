package engine

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Deal shuffles a fresh deck and lays out a new game: tableau columns of
// sizes 1..7 with only the last card face-up, and the remaining cards as the
// face-down stock.
func Deal(cfg *GameConfig, rng *rand.Rand) *GameState {
	cfg = orDefault(cfg)

	deck := NewDeck()
	Shuffle(deck, rng)

	gs := &GameState{
		Tableau:     make([][]Card, NumColumns),
		Waste:       []Card{},
		Foundations: make([][]Card, NumSuits),
		Status:      StatusInProgress,
		ConfigName:  cfg.Name,
		Message:     cfg.Messages.Welcome,
		MoveHistory: []MoveHistoryEntry{},
	}

	next := 0
	for col := 0; col < NumColumns; col++ {
		column := make([]Card, 0, col+1)
		for row := 0; row <= col; row++ {
			card := deck[next]
			card.FaceUp = row == col
			column = append(column, card)
			next++
		}
		gs.Tableau[col] = column
	}
	for i := range gs.Foundations {
		gs.Foundations[i] = []Card{}
	}
	gs.Stock = append([]Card{}, deck[next:]...)

	MustBeValid(gs)
	return gs
}

// DrawFromStock turns the top stock card face-up onto the waste. Drawing from
// an empty stock returns gs unchanged and no error.
func DrawFromStock(gs *GameState, cfg *GameConfig) (*GameState, error) {
	cfg = orDefault(cfg)
	if gs.IsWon() {
		return gs, ErrGameComplete
	}
	if len(gs.Stock) == 0 {
		return gs, nil
	}

	next := gs.Clone()
	card := next.Stock[0]
	card.FaceUp = true
	next.Stock = next.Stock[1:]
	next.Waste = append([]Card{card}, next.Waste...)

	delta := next.addScore(cfg.DrawPoints)
	next.MoveCount++
	next.Message = fmt.Sprintf("Drew %s", card)
	next.record(MoveHistoryEntry{
		Action:     MoveDraw,
		From:       PileRef{Kind: Stock},
		To:         WasteRef(),
		Cards:      []Card{card},
		ScoreDelta: delta,
	})

	MustBeValid(next)
	return next, nil
}

// MoveToFoundation moves the top card of a tableau column or of the waste to
// the foundation of its suit
func MoveToFoundation(gs *GameState, cfg *GameConfig, src PileRef, cardIndex int) (*GameState, error) {
	cfg = orDefault(cfg)
	card, err := checkFoundationMove(gs, src, cardIndex)
	if err != nil {
		return gs, err
	}

	next := gs.Clone()
	revealed := next.take(src, cardIndex)
	dest := card.Suit.Index()
	next.Foundations[dest] = append(next.Foundations[dest], card)

	delta := next.addScore(cfg.FoundationPoints)
	next.MoveCount++
	next.Message = fmt.Sprintf("%s moved to the %s foundation", card, card.Suit)
	next.record(MoveHistoryEntry{
		Action:     MoveFoundation,
		From:       src,
		To:         FoundationRef(card.Suit),
		CardIndex:  cardIndex,
		Cards:      []Card{card},
		ScoreDelta: delta,
		Revealed:   revealed,
	})

	if next.FoundationCount() == DeckSize {
		next.Status = StatusWon
		next.Message = fmt.Sprintf(cfg.Messages.Victory, next.Score)
	}

	MustBeValid(next)
	return next, nil
}

// MoveToTableau moves the run src[cardIndex:] onto column destCol as a single
// block. The waste can only contribute its top card.
func MoveToTableau(gs *GameState, cfg *GameConfig, src PileRef, cardIndex, destCol int) (*GameState, error) {
	cfg = orDefault(cfg)
	run, err := checkTableauMove(gs, cfg, src, cardIndex, destCol)
	if err != nil {
		return gs, err
	}
	moved := cloneCards(run)

	next := gs.Clone()
	revealed := next.take(src, cardIndex)
	next.Tableau[destCol] = append(next.Tableau[destCol], moved...)

	next.MoveCount++
	if len(moved) == 1 {
		next.Message = fmt.Sprintf("%s moved to column %d", moved[0], destCol+1)
	} else {
		next.Message = fmt.Sprintf("%d cards from %s moved to column %d", len(moved), moved[0], destCol+1)
	}
	next.record(MoveHistoryEntry{
		Action:    MoveTableau,
		From:      src,
		To:        ColumnRef(destCol),
		CardIndex: cardIndex,
		Cards:     moved,
		Revealed:  revealed,
	})

	MustBeValid(next)
	return next, nil
}

// Tick advances the elapsed-time counter by one second. The clock stops once
// the game is won.
func Tick(gs *GameState) *GameState {
	if gs.IsWon() {
		return gs
	}
	next := gs.Clone()
	next.ElapsedSeconds++
	return next
}

// take removes src[cardIndex:] and flips a face-down card left on top of a
// tableau column. It reports whether a card was revealed.
func (gs *GameState) take(src PileRef, cardIndex int) bool {
	switch src.Kind {
	case Waste:
		gs.Waste = gs.Waste[1:]
	case Tableau:
		column := gs.Tableau[src.Index][:cardIndex]
		gs.Tableau[src.Index] = column
		if n := len(column); n > 0 && !column[n-1].FaceUp {
			column[n-1].FaceUp = true
			return true
		}
	}
	return false
}

// addScore applies delta, keeping the score at or above zero, and returns the
// change actually applied
func (gs *GameState) addScore(delta int) int {
	before := gs.Score
	gs.Score += delta
	if gs.Score < 0 {
		gs.Score = 0
	}
	return gs.Score - before
}

func (gs *GameState) record(entry MoveHistoryEntry) {
	entry.Timestamp = time.Now().Unix()
	entry.MoveNumber = gs.MoveCount
	gs.MoveHistory = append(gs.MoveHistory, entry)
}

func orDefault(cfg *GameConfig) *GameConfig {
	if cfg == nil {
		return DefaultConfig()
	}
	return cfg
}
