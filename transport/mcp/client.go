package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/klondike-game/game/engine"
	"github.com/wricardo/klondike-game/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Klondike Solitaire",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Klondike Solitaire - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Build all four foundations from Ace to King, one per suit.

AVAILABLE TOOLS:
- create_session: Deal a new game, optionally with a named config
- list_sessions / get_session / delete_session: Manage games
- game_state: Show the table
- draw: Turn the top stock card onto the waste
- move_to_foundation: Play the waste card or a column's top card to its foundation
- move_to_tableau: Move the waste card or a run of face-up cards onto a column
- hints: List every legal move
- reset_game: Deal a fresh game with the same config
- move_history: View past moves
- list_configs: List available configurations
- game_instructions: Full rules

Columns are numbered 1 to 7 in every tool.`),
	)

	c.registerTools()
}

func sessionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

func columnProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"minimum":     1,
		"maximum":     engine.NumColumns,
		"description": description,
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the config to use, see list_configs (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions, most recently used first",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "delete_session",
		Description: "Delete a game session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleDeleteSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current table: stock, waste, foundations and the seven columns",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "draw",
		Description: "Turn the top card of the stock face up onto the waste",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleDraw)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_to_foundation",
		Description: "Play the top waste card, or the top card of a column, onto its suit's foundation",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"from": map[string]interface{}{
					"type":        "string",
					"description": `"waste" or a column number "1" to "7"`,
				},
			},
			Required: []string{"session_id", "from"},
		},
	}, c.handleMoveToFoundation)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_to_tableau",
		Description: "Move the top waste card, or the top cards of a column, onto another column",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"from": map[string]interface{}{
					"type":        "string",
					"description": `"waste" or a column number "1" to "7"`,
				},
				"count": map[string]interface{}{
					"type":        "integer",
					"minimum":     1,
					"description": "Number of face-up cards to move from the top of the source column (default 1)",
				},
				"to": columnProperty("Destination column number"),
			},
			Required: []string{"session_id", "from", "to"},
		},
	}, c.handleMoveToTableau)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "hints",
		Description: "List every legal move from the current position",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleHints)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Deal a fresh game using the session's config",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get move history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
				"order": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"asc", "desc"},
					"description": "Oldest first (asc) or newest first (desc, default)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the complete rules of the game",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

// intArg reads a JSON number argument, returning def when it is absent
func intArg(args map[string]interface{}, key string, def int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

// parseSource turns "waste" or a 1-based column number into a pile reference
func parseSource(from string) (engine.PileRef, error) {
	from = strings.TrimSpace(strings.ToLower(from))
	if from == "waste" || from == "w" {
		return engine.WasteRef(), nil
	}

	col, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(from, "column")))
	if err != nil || col < 1 || col > engine.NumColumns {
		return engine.PileRef{}, fmt.Errorf("from must be \"waste\" or a column number 1-%d", engine.NumColumns)
	}
	return engine.ColumnRef(col - 1), nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		status := ""
		if s.GameState != nil {
			status = fmt.Sprintf(", Score: %d, Moves: %d, %s", s.GameState.Score, s.GameState.MoveCount, s.GameState.Status)
		}
		fmt.Fprintf(&b, "- %s (Config: %s, Created: %s%s)\n",
			s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"), status)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleDeleteSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	if err := c.apiCall(ctx, "DELETE", sessionPath(sessionID, ""), nil, nil); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Deleted session %s", sessionID)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleDraw(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/draw"), nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleMoveToFoundation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	from, _ := args["from"].(string)

	src, err := parseSource(from)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cardIndex := 0
	if src.Kind == engine.Tableau {
		// Only the top card of a column can go up
		state, err := c.fetchState(ctx, sessionID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		column := state.Tableau[src.Index]
		if len(column) == 0 {
			return mcp.NewToolResultError(fmt.Sprintf("Column %d is empty", src.Index+1)), nil
		}
		cardIndex = len(column) - 1
	}

	body := map[string]interface{}{
		"source":     src,
		"card_index": cardIndex,
	}

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/foundation"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleMoveToTableau(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	from, _ := args["from"].(string)
	count := intArg(args, "count", 1)
	to := intArg(args, "to", 0)

	src, err := parseSource(from)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if to < 1 || to > engine.NumColumns {
		return mcp.NewToolResultError(fmt.Sprintf("to must be a column number 1-%d", engine.NumColumns)), nil
	}
	if count < 1 {
		return mcp.NewToolResultError("count must be at least 1"), nil
	}

	cardIndex := 0
	if src.Kind == engine.Tableau {
		state, err := c.fetchState(ctx, sessionID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		column := state.Tableau[src.Index]
		if count > len(column) {
			return mcp.NewToolResultError(fmt.Sprintf("Column %d has only %d card(s)", src.Index+1, len(column))), nil
		}
		cardIndex = len(column) - count
	} else if count != 1 {
		return mcp.NewToolResultError("Only one card can be moved from the waste"), nil
	}

	body := map[string]interface{}{
		"source":     src,
		"card_index": cardIndex,
		"dest_col":   to - 1,
	}

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/tableau"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) fetchState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	var state engine.GameState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return nil, err
	}
	if len(state.Tableau) != engine.NumColumns {
		return nil, fmt.Errorf("unexpected tableau with %d columns", len(state.Tableau))
	}
	return &state, nil
}

func (c *Client) handleHints(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var hints service.HintsResponse
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/hints"), nil, &hints); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHints(&hints)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var response struct {
		Message string              `json:"message"`
		State   *engine.GameState   `json:"state"`
		Events  []service.GameEvent `json:"events"`
	}
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/reset"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text := response.Message
	for _, event := range response.Events {
		if event.Type == service.EventReset && event.Message != "" {
			text += "\n" + event.Message
		}
	}
	return mcp.NewToolResultText(text + "\n\n" + formatGameState(response.State)), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	query := url.Values{}
	if page := intArg(args, "page", 0); page > 0 {
		query.Set("page", fmt.Sprint(page))
	}
	if limit := intArg(args, "limit", 0); limit > 0 {
		query.Set("limit", fmt.Sprint(limit))
	}
	if order, _ := args["order"].(string); order != "" {
		query.Set("order", order)
	}

	path := sessionPath(sessionID, "/history")
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, cfg := range configs {
		fmt.Fprintf(&b, "- %s: %s (foundation %+d, draw %+d", cfg.ConfigID, cfg.Name, cfg.FoundationPoints, cfg.DrawPoints)
		if cfg.StrictRuns {
			b.WriteString(", strict runs")
		}
		b.WriteString(")\n")
		if cfg.Description != "" {
			fmt.Fprintf(&b, "  %s\n", cfg.Description)
		}
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

const instructions = `Klondike Solitaire - Complete Instructions

GAME OBJECTIVE:
Move all 52 cards onto the four foundations. Each foundation holds one suit,
built up from Ace to King.

THE TABLE:
- Stock: face-down cards you can draw from, one at a time
- Waste: cards drawn from the stock; only the top card is playable
- Foundations: one pile per suit (♠ ♥ ♦ ♣)
- Tableau: seven columns; column N starts with N cards, only the last face up

READING THE STATE:
- Columns are listed top to bottom; the last card shown is the playable one
- ## marks a face-down card
- Red suits are ♥ ♦, black suits are ♠ ♣

LEGAL MOVES:
1. draw: turn the top stock card onto the waste. When the stock is empty the
   draw is refused; the waste is not recycled.
2. move_to_foundation: the next rank of a suit goes on its foundation.
   Only Aces start an empty foundation.
3. move_to_tableau: a card goes onto a column whose top card is one rank
   higher and of the opposite color. Only Kings go onto an empty column.
   From a column you may move several face-up cards at once with count.
4. When the top card of a column is face down after a move, it is turned
   face up automatically.

SCORING:
- Every card played to a foundation earns the config's foundation points
- Draws may cost points in some configs (see list_configs)

VICTORY CONDITIONS:
- All four foundations complete from Ace to King
- Once won, the game refuses further moves; use reset_game for a new deal

STRATEGY TIPS:
- Use hints when in doubt; it lists every legal move
- Prefer moves that turn up face-down cards
- Keep an empty column for a King that frees a long pile
- Do not rush cards to the foundations if they are still needed as
  landing spots for lower cards of the other color

Good luck!`

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func formatCard(card engine.Card) string {
	if !card.FaceUp {
		return "##"
	}
	return card.String()
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Score: %d | Moves: %d | Time: %s | Foundations: %d/%d\n\n",
		state.Score, state.MoveCount,
		(time.Duration(state.ElapsedSeconds) * time.Second).String(),
		state.FoundationCount(), engine.DeckSize)

	// Stock and waste
	fmt.Fprintf(&b, "Stock: %d card(s)\n", len(state.Stock))
	if len(state.Waste) == 0 {
		b.WriteString("Waste: empty\n")
	} else {
		fmt.Fprintf(&b, "Waste: %s", formatCard(state.Waste[0]))
		if len(state.Waste) > 1 {
			fmt.Fprintf(&b, " (%d more below)", len(state.Waste)-1)
		}
		b.WriteString("\n")
	}

	// Foundations
	b.WriteString("Foundations:")
	for i, suit := range engine.Suits {
		top := "--"
		if i < len(state.Foundations) && len(state.Foundations[i]) > 0 {
			pile := state.Foundations[i]
			top = formatCard(pile[len(pile)-1])
		}
		fmt.Fprintf(&b, " %s %s", suit.Symbol(), top)
	}
	b.WriteString("\n\nTableau:\n")

	for i, column := range state.Tableau {
		fmt.Fprintf(&b, "%d:", i+1)
		if len(column) == 0 {
			b.WriteString(" (empty)")
		}
		for _, card := range column {
			b.WriteString(" " + formatCard(card))
		}
		b.WriteString("\n")
	}

	if state.Status == engine.StatusWon {
		b.WriteString("\n🎉 VICTORY!")
	}

	if state.Message != "" {
		fmt.Fprintf(&b, "\nMessage: %s", state.Message)
	}

	return b.String()
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder
	if result.Success {
		b.WriteString("✓ Move successful\n")
	} else {
		fmt.Fprintf(&b, "✗ Move failed (%s)\n", result.Reason)
	}

	if result.Message != "" {
		fmt.Fprintf(&b, "%s\n", result.Message)
	}

	if len(result.Events) > 0 {
		b.WriteString("Events:\n")
		for _, event := range result.Events {
			fmt.Fprintf(&b, "- %s: %s\n", event.Type, event.Message)
		}
	}

	b.WriteString("\n" + formatGameState(result.GameState))
	return b.String()
}

func formatHints(hints *service.HintsResponse) string {
	if hints.Count == 0 {
		if hints.Stuck {
			return "No legal moves left. Use reset_game to deal again."
		}
		return "No moves available."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Legal moves (%d):\n", hints.Count)
	for _, hint := range hints.Hints {
		fmt.Fprintf(&b, "- %s\n", hint.Description)
	}
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Move History (Page %d/%d, Total: %d moves):\n\n",
		history.Page, history.TotalPages, history.TotalMoves)

	for _, move := range history.Moves {
		cards := make([]string, len(move.Cards))
		for i, card := range move.Cards {
			cards[i] = card.String()
		}
		fmt.Fprintf(&b, "Move %d: %s %s", move.MoveNumber, move.Action, strings.Join(cards, " "))
		if move.Action != engine.MoveDraw {
			fmt.Fprintf(&b, " %s → %s", formatPile(move.From), formatPile(move.To))
		}
		if move.ScoreDelta != 0 {
			fmt.Fprintf(&b, " (%+d)", move.ScoreDelta)
		}
		if move.Revealed {
			b.WriteString(" [revealed a card]")
		}
		b.WriteString("\n")
	}

	if history.HasNext {
		b.WriteString("\n(more moves on the next page)")
	}

	return b.String()
}

func formatPile(ref engine.PileRef) string {
	switch ref.Kind {
	case engine.Tableau:
		return fmt.Sprintf("column %d", ref.Index+1)
	case engine.Foundation:
		if ref.Index >= 0 && ref.Index < len(engine.Suits) {
			return "foundation " + engine.Suits[ref.Index].Symbol()
		}
		return "foundation"
	default:
		return string(ref.Kind)
	}
}
