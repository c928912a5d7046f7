package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/klondike-game/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config display name
func (s *gameServiceImpl) getConfigID(sess *Session) string {
	if sess.ConfigID != "" {
		return sess.ConfigID
	}
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == sess.Config.Name {
				return cfg.ConfigID
			}
		}
	}
	return "default"
}

func (s *gameServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     s.getConfigID(sess),
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState(),
		GameConfig:     sess.Config,
	}
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			availableConfigs, listErr := s.configs.ListConfigs()
			if listErr == nil && len(availableConfigs) > 0 {
				configIDs := make([]string, 0, len(availableConfigs))
				for _, cfg := range availableConfigs {
					configIDs = append(configIDs, cfg.ConfigID)
				}
				return nil, fmt.Errorf("failed to load config %q (available: %s): %w",
					configName, strings.Join(configIDs, ", "), err)
			}
			return nil, fmt.Errorf("failed to load config %q: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	sess.ConfigID = configName

	return s.sessionInfo(sess), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	// Touch writes LastAccessedAt, which sessionInfo reads under RLock
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Touch(sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Draw turns the top stock card onto the waste
func (s *gameServiceImpl) Draw(ctx context.Context, sessionID string) (*MoveResult, error) {
	return s.play(sessionID, nil, func(e *engine.GameEngine) (*engine.GameState, error) {
		return e.Draw()
	})
}

// MoveToFoundation plays the top card of src to its foundation
func (s *gameServiceImpl) MoveToFoundation(ctx context.Context, sessionID string, src engine.PileRef, cardIndex int) (*MoveResult, error) {
	check := func(gs *engine.GameState) error {
		return engine.CheckRef(gs, src, cardIndex)
	}
	return s.play(sessionID, check, func(e *engine.GameEngine) (*engine.GameState, error) {
		return e.MoveToFoundation(src, cardIndex)
	})
}

// MoveToTableau moves the run starting at cardIndex of src onto destCol
func (s *gameServiceImpl) MoveToTableau(ctx context.Context, sessionID string, src engine.PileRef, cardIndex, destCol int) (*MoveResult, error) {
	check := func(gs *engine.GameState) error {
		if err := engine.CheckRef(gs, src, cardIndex); err != nil {
			return err
		}
		return engine.CheckColumn(gs, destCol)
	}
	return s.play(sessionID, check, func(e *engine.GameEngine) (*engine.GameState, error) {
		return e.MoveToTableau(src, cardIndex, destCol)
	})
}

// play runs a transition on a session. References are checked before the
// engine sees them so a bad request is reported as ErrBadReference.
func (s *gameServiceImpl) play(sessionID string, check func(*engine.GameState) error,
	move func(*engine.GameEngine) (*engine.GameState, error)) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Touch(sessionID)
	if err != nil {
		return nil, err
	}

	before := sess.Engine.GetState()
	messages := sess.Config.Messages

	// A won game rejects every move, whatever it references
	if check != nil && !before.IsWon() {
		if err := check(before); err != nil {
			return nil, err
		}
	}

	after, err := move(sess.Engine)
	if err != nil {
		result := &MoveResult{
			Success:   false,
			GameState: after,
			Reason:    ReasonInvalidMove,
			Message:   withDetail(messages.InvalidMove, err),
		}
		if errors.Is(err, engine.ErrGameComplete) {
			result.Reason = ReasonGameComplete
			result.Message = withDetail(messages.GameComplete, err)
		}
		return result, nil
	}

	if after == before {
		msg := messages.StockEmpty
		if msg == "" {
			msg = "The stock is empty"
		}
		return &MoveResult{
			Success:   false,
			GameState: after,
			Reason:    ReasonStockEmpty,
			Message:   msg,
		}, nil
	}

	return &MoveResult{
		Success:   true,
		GameState: after,
		Message:   after.Message,
		Events:    moveEvents(after),
	}, nil
}

func withDetail(message string, err error) string {
	if message == "" {
		return err.Error()
	}
	return fmt.Sprintf("%s (%v)", message, err)
}

// moveEvents describes the last recorded move of state
func moveEvents(state *engine.GameState) []GameEvent {
	if len(state.MoveHistory) == 0 {
		return nil
	}
	entry := state.MoveHistory[len(state.MoveHistory)-1]
	now := time.Now()
	events := []GameEvent{}

	var card *engine.Card
	if len(entry.Cards) > 0 {
		c := entry.Cards[0]
		card = &c
	}

	switch entry.Action {
	case engine.MoveDraw:
		events = append(events, GameEvent{
			Type:      EventDraw,
			Message:   fmt.Sprintf("Drew %s, %d left in stock", card, len(state.Stock)),
			Timestamp: now,
			Card:      card,
		})
	case engine.MoveFoundation:
		events = append(events, GameEvent{
			Type:      EventFoundation,
			Message:   fmt.Sprintf("%s played to foundation, score %d", card, state.Score),
			Timestamp: now,
			Card:      card,
		})
	case engine.MoveTableau:
		events = append(events, GameEvent{
			Type:      EventTableau,
			Message:   fmt.Sprintf("Moved %d card(s) from %s onto column %d", len(entry.Cards), card, entry.To.Index+1),
			Timestamp: now,
			Card:      card,
		})
	}

	if entry.Revealed {
		column := state.Tableau[entry.From.Index]
		top := column[len(column)-1]
		events = append(events, GameEvent{
			Type:      EventReveal,
			Message:   fmt.Sprintf("Revealed %s in column %d", top, entry.From.Index+1),
			Timestamp: now,
			Card:      &top,
		})
	}

	if state.IsWon() {
		events = append(events, GameEvent{
			Type:      EventVictory,
			Message:   state.Message,
			Timestamp: now,
		})
	}

	return events
}

// Reset deals a new game for a session with its current config
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Touch(sessionID)
	if err != nil {
		return nil, err
	}

	state := sess.Engine.Reset()
	message := sess.Config.Messages.Welcome
	if message == "" {
		message = "New game dealt"
	}

	return &MoveResult{
		Success:   true,
		GameState: state,
		Message:   message,
		Events: []GameEvent{{
			Type:      EventReset,
			Message:   message,
			Timestamp: time.Now(),
		}},
	}, nil
}

// Tick advances the elapsed time of one session
func (s *gameServiceImpl) Tick(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.Tick(), nil
}

// TickAll advances the clock of every unfinished game and returns the new
// states keyed by session ID. Ticks do not count as access.
func (s *gameServiceImpl) TickAll(ctx context.Context) (map[string]*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticked := make(map[string]*engine.GameState)
	for _, sess := range s.sessions.List() {
		if err := ctx.Err(); err != nil {
			return ticked, err
		}
		if sess.Engine.IsVictory() {
			continue
		}
		ticked[sess.ID] = sess.Engine.Tick()
	}
	return ticked, nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Touch(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.GetState(), nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	moves := []engine.MoveHistoryEntry{}
	if start < total {
		if opts.Order == "desc" {
			// Most recent first
			for i := total - 1 - start; i >= total-end; i-- {
				moves = append(moves, history[i])
			}
		} else {
			moves = append(moves, history[start:end]...)
		}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// GetHints lists the moves the session's game currently accepts
func (s *gameServiceImpl) GetHints(ctx context.Context, sessionID string) (*HintsResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	moves := sess.Engine.LegalMoves()
	hints := make([]Hint, 0, len(moves))
	for _, m := range moves {
		hints = append(hints, Hint{Move: m, Description: DescribeMove(m)})
	}

	return &HintsResponse{
		Hints: hints,
		Count: len(hints),
		Stuck: len(hints) == 0 && !sess.Engine.IsVictory(),
	}, nil
}

// DescribeMove renders a move as a short sentence
func DescribeMove(m engine.Move) string {
	from := "waste"
	if m.Source.Kind == engine.Tableau {
		from = fmt.Sprintf("column %d", m.Source.Index+1)
	}

	switch m.Kind {
	case engine.MoveDraw:
		return "Draw from the stock"
	case engine.MoveFoundation:
		return fmt.Sprintf("Play %s from %s to the foundation", m.Card, from)
	default:
		return fmt.Sprintf("Move %s from %s onto column %d", m.Card, from, m.DestCol+1)
	}
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}
