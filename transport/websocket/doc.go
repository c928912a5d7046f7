// Package websocket provides WebSocket transport for the Klondike game server.
//
// The websocket package implements:
//   - Session-aware push connections
//   - State broadcasting after every change
//   - Elapsed-time tick events
//   - Connection lifecycle management with ping/pong deadlines
//
// Architecture:
//
// A central Hub owns every connection. Register, unregister and broadcast
// requests are channel messages handled by the single Run loop; each client
// has its own read and write goroutines.
//
// Message Protocol:
//
// Every frame is one JSON Message:
//
//	{"session_id": "ab12", "event": "state_update", "game_state": {...}}
//	{"session_id": "ab12", "event": "tick", "data": {"elapsed_seconds": 31}}
//
// A state_update carries the full GameState, which is everything a client
// needs to render the table. Incoming frames are ignored.
//
// Session Integration:
//
// Clients pick their session with the ?session=<id> query parameter. IDs are
// matched case-insensitively. The API server sends the current state as the
// first frame after the upgrade.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//
//	hub.BroadcastToSession(sessionID, state)
//	hub.BroadcastEvent(sessionID, websocket.EventTick, data)
//
// Cancelling ctx closes every client connection and makes later broadcasts
// no-ops.
package websocket
