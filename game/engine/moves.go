package engine

// LegalMoves returns every move the current state accepts: foundation plays
// first, then tableau plays, then a draw if the stock is not empty. A won
// game has no legal moves.
func LegalMoves(gs *GameState, cfg *GameConfig) []Move {
	cfg = orDefault(cfg)
	if gs.IsWon() {
		return nil
	}

	var moves []Move
	sources := make([]PileRef, 0, NumColumns+1)
	if len(gs.Waste) > 0 {
		sources = append(sources, WasteRef())
	}
	for col := range gs.Tableau {
		if len(gs.Tableau[col]) > 0 {
			sources = append(sources, ColumnRef(col))
		}
	}

	for _, src := range sources {
		idx := topIndex(gs, src)
		if card, err := checkFoundationMove(gs, src, idx); err == nil {
			moves = append(moves, Move{Kind: MoveFoundation, Source: src, CardIndex: idx, Card: &card})
		}
	}

	for _, src := range sources {
		for _, idx := range runStarts(gs, src) {
			for dest := range gs.Tableau {
				run, err := checkTableauMove(gs, cfg, src, idx, dest)
				if err != nil {
					continue
				}
				base := run[0]
				moves = append(moves, Move{Kind: MoveTableau, Source: src, CardIndex: idx, DestCol: dest, Card: &base})
			}
		}
	}

	if len(gs.Stock) > 0 {
		moves = append(moves, Move{Kind: MoveDraw, Source: PileRef{Kind: Stock}})
	}
	return moves
}

func topIndex(gs *GameState, src PileRef) int {
	if src.Kind == Tableau {
		return len(gs.Tableau[src.Index]) - 1
	}
	return 0
}

// runStarts lists the card indexes of src that could begin a moving run
func runStarts(gs *GameState, src PileRef) []int {
	if src.Kind == Waste {
		return []int{0}
	}
	var starts []int
	for i, card := range gs.Tableau[src.Index] {
		if card.FaceUp {
			starts = append(starts, i)
		}
	}
	return starts
}
