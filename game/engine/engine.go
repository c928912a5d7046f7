package engine

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Reset() *GameState
	IsVictory() bool
	GetScore() int

	// Transitions
	Draw() (*GameState, error)
	MoveToFoundation(src PileRef, cardIndex int) (*GameState, error)
	MoveToTableau(src PileRef, cardIndex, destCol int) (*GameState, error)
	Tick() *GameState
	LegalMoves() []Move

	// Configuration
	GetConfig() *GameConfig
	SetConfig(config *GameConfig) error

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry
}

// GameEngine implements the Engine interface
type GameEngine struct {
	state  *GameState
	config *GameConfig
	rng    *rand.Rand
}

// NewEngine creates a new game engine with the provided configuration and
// deals the first game
func NewEngine(config *GameConfig) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	engine := &GameEngine{
		config: config,
		rng:    newRand(config.Seed),
	}
	engine.state = Deal(config, engine.rng)

	return engine, nil
}

// NewEngineWithDefaults creates a new game engine with the classic rules
func NewEngineWithDefaults() *GameEngine {
	engine, err := NewEngine(DefaultConfig())
	if err != nil {
		panic(fmt.Sprintf("default config is invalid: %v", err))
	}
	return engine
}

// newRand seeds from seed when non-zero so that deals are reproducible
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// SetState replaces the game state after checking its structure
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if err := CheckInvariants(state); err != nil {
		return err
	}
	e.state = state
	return nil
}

// Reset discards the current game and deals a new one
func (e *GameEngine) Reset() *GameState {
	e.state = Deal(e.config, e.rng)
	return e.state
}

// IsVictory returns whether the player has won
func (e *GameEngine) IsVictory() bool {
	return e.state.IsWon()
}

// GetScore returns the current score
func (e *GameEngine) GetScore() int {
	return e.state.Score
}

// Draw turns the top stock card onto the waste
func (e *GameEngine) Draw() (*GameState, error) {
	next, err := DrawFromStock(e.state, e.config)
	e.state = next
	return next, err
}

// MoveToFoundation plays the top card of src to its foundation
func (e *GameEngine) MoveToFoundation(src PileRef, cardIndex int) (*GameState, error) {
	next, err := MoveToFoundation(e.state, e.config, src, cardIndex)
	e.state = next
	return next, err
}

// MoveToTableau moves src[cardIndex:] onto column destCol
func (e *GameEngine) MoveToTableau(src PileRef, cardIndex, destCol int) (*GameState, error) {
	next, err := MoveToTableau(e.state, e.config, src, cardIndex, destCol)
	e.state = next
	return next, err
}

// Tick advances the elapsed-time counter
func (e *GameEngine) Tick() *GameState {
	e.state = Tick(e.state)
	return e.state
}

// LegalMoves returns the moves the current state accepts
func (e *GameEngine) LegalMoves() []Move {
	return LegalMoves(e.state, e.config)
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// SetConfig sets a new game configuration and deals a new game
func (e *GameEngine) SetConfig(config *GameConfig) error {
	if err := ValidateGameConfig(config); err != nil {
		return err
	}

	e.config = config
	e.rng = newRand(config.Seed)
	e.state = Deal(config, e.rng)
	return nil
}

// GetMoveHistory returns the moves made in the current game
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	return e.state.MoveHistory
}

// GetLastMove returns the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.state.MoveHistory) == 0 {
		return nil
	}
	return &e.state.MoveHistory[len(e.state.MoveHistory)-1]
}
