// Package mcp provides the Model Context Protocol server for the Klondike game.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions that forward to the REST API
//   - Text rendering of tables, move results and hints
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - create_session: Create new game session with config selection
//   - list_sessions: List all active sessions
//   - get_session: Get specific session details
//   - delete_session: Remove a session
//   - game_state: Get the table as text
//   - draw: Turn one card from stock to waste
//   - move_to_foundation: Play the waste card or a column's top card
//   - move_to_tableau: Move cards from the waste or a column onto a column
//   - hints: List every legal move
//   - reset_game: Deal a new game with the same config
//   - move_history: Retrieve move history with pagination
//   - list_configs: List available game configurations
//   - game_instructions: Rules and strategy reference
//
// Columns are numbered 1 to 7 in tool arguments and output. The REST API
// underneath uses 0-based indices; the client converts between the two.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//
//	// Stdio mode
//	server.ServeStdio(client.GetMCPServer())
//
//	// HTTP mode
//	response := client.GetMCPServer().HandleMessage(ctx, body)
package mcp
