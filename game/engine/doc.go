// Package engine provides the core rule engine for Klondike Solitaire.
//
// The engine package implements the game mechanics including:
//   - The 52-card deck and a uniform Fisher-Yates shuffle
//   - The triangular deal onto seven tableau columns
//   - Stock to waste drawing
//   - Foundation building (A to K, one pile per suit)
//   - Tableau runs (alternating colors, descending ranks, Kings on empty columns)
//   - Scoring, move counting and the elapsed-time counter
//   - Structural invariant checks over the full card set
//
// Core Types:
//
// GameState is a plain value describing every pile. The transition functions
// (DrawFromStock, MoveToFoundation, MoveToTableau, Tick) never mutate their
// input: they return a new GameState on success, or the unchanged input and
// an error wrapping ErrInvalidMove when a move breaks the rules. Referencing
// a pile or card index that does not exist is a programming error and panics;
// callers on a trust boundary use CheckRef first.
//
// GameEngine wraps a state together with its GameConfig and random source and
// is what the session layer stores.
//
// Usage:
//
//	eng, err := engine.NewEngine(engine.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	eng.Draw()
//	state, err := eng.MoveToFoundation(engine.WasteRef(), 0)
//	if errors.Is(err, engine.ErrInvalidMove) {
//		// rejected, state is unchanged
//	}
//
// Game Rules:
//
// The game is won the moment all four foundations hold thirteen cards. A won
// game accepts no further moves. There is no lose state; LegalMoves reports
// what can still be played.
package engine
