// Package service provides the business logic layer for the Klondike game server.
//
// The service package implements:
//   - Multi-session game management
//   - Configuration lookup for new sessions
//   - Draw, foundation and tableau plays with event reporting
//   - Elapsed-time ticks across all sessions
//   - Move history pagination and hints
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages game configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. Each session owns its own engine instance. Operations that
// change a session, including recording an access, hold the write side of one
// RWMutex. History, hints and listing share the read side.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.MoveToFoundation(ctx, info.ID, engine.WasteRef(), 0)
//
// Rejected Moves:
//
// A move the rules reject is not an error here. The returned MoveResult has
// Success false, a Reason code (invalid_move, game_complete, stock_empty) and
// the unchanged state. Unknown sessions and out-of-range pile references are
// returned as errors; the latter wrap engine.ErrBadReference.
package service
