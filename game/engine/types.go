package engine

const (
	NumColumns   = 7
	NumSuits     = 4
	RanksPerSuit = 13
	DeckSize     = NumSuits * RanksPerSuit
	StockSize    = DeckSize - NumColumns*(NumColumns+1)/2

	DefaultFoundationPoints = 10
)

// Status is the meta-state of a game
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
)

// PileKind names a family of piles
type PileKind string

const (
	Tableau    PileKind = "tableau"
	Waste      PileKind = "waste"
	Foundation PileKind = "foundation"
	Stock      PileKind = "stock"
)

// PileRef identifies a single pile. Index selects the tableau column or the
// foundation (by suit order) and is ignored for the waste and the stock.
type PileRef struct {
	Kind  PileKind `json:"kind"`
	Index int      `json:"index"`
}

// ColumnRef references tableau column col
func ColumnRef(col int) PileRef {
	return PileRef{Kind: Tableau, Index: col}
}

// WasteRef references the waste pile
func WasteRef() PileRef {
	return PileRef{Kind: Waste}
}

// FoundationRef references the foundation for suit
func FoundationRef(suit Suit) PileRef {
	return PileRef{Kind: Foundation, Index: suit.Index()}
}

// MoveKind names the transition that produced a move
type MoveKind string

const (
	MoveDraw       MoveKind = "draw"
	MoveFoundation MoveKind = "foundation"
	MoveTableau    MoveKind = "tableau"
)

// Move describes a playable transition, as reported by LegalMoves
type Move struct {
	Kind      MoveKind `json:"kind"`
	Source    PileRef  `json:"source"`
	CardIndex int      `json:"card_index"`
	DestCol   int      `json:"dest_col"`
	Card      *Card    `json:"card,omitempty"`
}

// GameState represents the complete game state.
//
// Stock and Waste keep their top card at index 0; tableau columns and
// foundations keep their top card at the end.
type GameState struct {
	Tableau        [][]Card           `json:"tableau"`
	Stock          []Card             `json:"stock"`
	Waste          []Card             `json:"waste"`
	Foundations    [][]Card           `json:"foundations"`
	MoveCount      int                `json:"move_count"`
	Score          int                `json:"score"`
	ElapsedSeconds int                `json:"elapsed_seconds"`
	Status         Status             `json:"status"`
	ConfigName     string             `json:"config_name"`
	Message        string             `json:"message"`
	MoveHistory    []MoveHistoryEntry `json:"move_history"`
}

// MoveHistoryEntry records one accepted transition. It is a log for display,
// not an undo stack.
type MoveHistoryEntry struct {
	Action     MoveKind `json:"action"`
	From       PileRef  `json:"from"`
	To         PileRef  `json:"to"`
	CardIndex  int      `json:"card_index"`
	Cards      []Card   `json:"cards"`
	ScoreDelta int      `json:"score_delta"`
	Revealed   bool     `json:"revealed,omitempty"`
	Timestamp  int64    `json:"timestamp"`
	MoveNumber int      `json:"move_number"`
}

// IsWon reports whether all foundations are complete
func (gs *GameState) IsWon() bool {
	return gs.Status == StatusWon
}

// FoundationCount returns the number of cards on all foundations
func (gs *GameState) FoundationCount() int {
	n := 0
	for _, pile := range gs.Foundations {
		n += len(pile)
	}
	return n
}

// Clone returns a deep copy of the state
func (gs *GameState) Clone() *GameState {
	next := *gs
	next.Tableau = clonePiles(gs.Tableau)
	next.Foundations = clonePiles(gs.Foundations)
	next.Stock = cloneCards(gs.Stock)
	next.Waste = cloneCards(gs.Waste)
	next.MoveHistory = make([]MoveHistoryEntry, len(gs.MoveHistory))
	for i, entry := range gs.MoveHistory {
		entry.Cards = cloneCards(entry.Cards)
		next.MoveHistory[i] = entry
	}
	return &next
}

func clonePiles(piles [][]Card) [][]Card {
	out := make([][]Card, len(piles))
	for i, pile := range piles {
		out[i] = cloneCards(pile)
	}
	return out
}

func cloneCards(cards []Card) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}
