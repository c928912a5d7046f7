package service

import (
	"time"

	"github.com/wricardo/klondike-game/game/engine"
)

// Event types reported in MoveResult.Events
const (
	EventDraw       = "draw"
	EventFoundation = "foundation"
	EventTableau    = "tableau"
	EventReveal     = "reveal"
	EventVictory    = "victory"
	EventReset      = "reset"
)

// Machine-friendly reasons for an unsuccessful move
const (
	ReasonInvalidMove  = "invalid_move"
	ReasonGameComplete = "game_complete"
	ReasonStockEmpty   = "stock_empty"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// MoveResult contains the result of a move operation. A rejected move is
// reported with Success false and a Reason code, not as an error.
type MoveResult struct {
	Success   bool              `json:"success"`
	GameState *engine.GameState `json:"game_state"`
	Message   string            `json:"message"`
	Events    []GameEvent       `json:"events,omitempty"`
	Reason    string            `json:"reason,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string       `json:"type"` // "draw", "foundation", "tableau", "reveal", "victory", "reset"
	Message   string       `json:"message"`
	Timestamp time.Time    `json:"timestamp"`
	Card      *engine.Card `json:"card,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// Hint is a legal move with a readable description
type Hint struct {
	Move        engine.Move `json:"move"`
	Description string      `json:"description"`
}

// HintsResponse lists every move the session currently accepts
type HintsResponse struct {
	Hints []Hint `json:"hints"`
	Count int    `json:"count"`
	// Stuck is true when no legal move remains on an unfinished game
	Stuck bool `json:"stuck"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename         string `json:"filename"`
	ConfigID         string `json:"config_id"` // The identifier to use for session creation
	Name             string `json:"name"`      // Display name
	Description      string `json:"description"`
	FoundationPoints int    `json:"foundation_points"`
	DrawPoints       int    `json:"draw_points"`
	StrictRuns       bool   `json:"strict_runs"`
}
