// Package api provides HTTP REST API handlers for the Klondike game server.
//
// The api package implements:
//   - Session management endpoints
//   - Move endpoints for drawing and for foundation and tableau plays
//   - Move history with pagination and hint listing
//   - Configuration listing, lookup and upload
//   - WebSocket upgrade handling
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session, body {"config_id": "vegas"}
//   - GET /api/sessions - List sessions (sort=created|accessed, order, limit)
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Full game state
//   - POST /api/sessions/{id}/draw - Turn one card from stock to waste
//   - POST /api/sessions/{id}/foundation - Play a card to its foundation
//   - POST /api/sessions/{id}/tableau - Move a card or run onto a column
//   - POST /api/sessions/{id}/reset - Deal a new game with the same config
//   - GET /api/sessions/{id}/history - Move history (page, limit, order)
//   - GET /api/sessions/{id}/hints - Every legal move from the current state
//
// Configuration:
//   - GET /api/configs - List available configurations
//   - POST /api/configs - Save a configuration (?config_id= optional)
//   - GET /api/configs/{name} - Get one configuration
//
// Other:
//   - GET /health - Liveness check
//   - GET /ws?session={id} - WebSocket stream of state updates
//
// Moves:
//
// Cards are addressed by pile and index. Tableau indices count from the
// bottom of the column, so the last card is the top; waste index 0 is the
// top card and is the default when card_index is omitted.
//
//	POST /api/sessions/ab12/foundation
//	{"source": {"kind": "tableau", "index": 3}, "card_index": 4}
//
//	POST /api/sessions/ab12/tableau
//	{"source": {"kind": "waste"}, "dest_col": 6}
//
// A rejected move is not an HTTP error. The response is 200 with
// success=false and a reason of invalid_move, game_complete or stock_empty.
//
// Error Handling:
//
// Errors are returned as JSON with an appropriate HTTP status code:
//
//	{"error": "session not found: zz99"}
//
// Unknown sessions and configs are 404. Malformed bodies, out-of-range pile
// references and invalid configs are 400.
package api
