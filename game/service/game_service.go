package service

import (
	"context"
	"time"

	"github.com/wricardo/klondike-game/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Draw(ctx context.Context, sessionID string) (*MoveResult, error)
	MoveToFoundation(ctx context.Context, sessionID string, src engine.PileRef, cardIndex int) (*MoveResult, error)
	MoveToTableau(ctx context.Context, sessionID string, src engine.PileRef, cardIndex, destCol int) (*MoveResult, error)
	Reset(ctx context.Context, sessionID string) (*MoveResult, error)
	Tick(ctx context.Context, sessionID string) (*engine.GameState, error)
	TickAll(ctx context.Context) (map[string]*engine.GameState, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)
	GetHints(ctx context.Context, sessionID string) (*HintsResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error
}

// SessionManager defines session storage operations. Touch is Get plus a
// LastAccessedAt stamp and is only called under the service write lock.
type SessionManager interface {
	Create(id string, config *engine.GameConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *engine.GameConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	Touch(id string) (*Session, error)
}

// ConfigManager handles game configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
	SaveConfig(name string, config *engine.GameConfig) error
}

// Session represents an active game session
type Session struct {
	ID             string
	ConfigID       string
	Engine         *engine.GameEngine
	Config         *engine.GameConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
