package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// GameConfig represents a rule configuration loaded from JSON
type GameConfig struct {
	Name             string   `json:"name" validate:"required"`
	Description      string   `json:"description" validate:"required"`
	FoundationPoints int      `json:"foundation_points" validate:"gte=0,lte=1000"`
	DrawPoints       int      `json:"draw_points" validate:"gte=-100,lte=100"`
	StrictRuns       bool     `json:"strict_runs"`
	Seed             int64    `json:"seed,omitempty"`
	Messages         Messages `json:"messages"`
}

// Messages are the player-facing texts of a configuration
type Messages struct {
	Welcome      string `json:"welcome" validate:"required"`
	Victory      string `json:"victory" validate:"required,contains=%d"`
	InvalidMove  string `json:"invalid_move,omitempty"`
	StockEmpty   string `json:"stock_empty,omitempty"`
	GameComplete string `json:"game_complete,omitempty"`
}

var validate = validator.New()

// ValidateGameConfig validates a game configuration for correctness
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config cannot be nil")
	}

	if err := validate.Struct(config); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			problems := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				problems = append(problems, describeFieldError(fe))
			}
			return fmt.Errorf("config validation: %s", strings.Join(problems, "; "))
		}
		return fmt.Errorf("config validation: %w", err)
	}

	return nil
}

func describeFieldError(fe validator.FieldError) string {
	field := jsonFieldName(fe.Namespace())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "contains":
		return fmt.Sprintf("%s must contain %s", field, fe.Param())
	case "gte", "lte":
		return fmt.Sprintf("%s must be %s %s, got %v", field, fe.Tag(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

// jsonFieldName turns "GameConfig.Messages.Victory" into "messages.victory"
func jsonFieldName(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = toSnake(p)
	}
	return strings.Join(parts, ".")
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// DefaultConfig returns the built-in classic rules
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Name:             "Classic Klondike",
		Description:      "Draw one card at a time, no redeal, 10 points per foundation card",
		FoundationPoints: DefaultFoundationPoints,
		Messages: Messages{
			Welcome:      "New game dealt. Good luck!",
			Victory:      "You won! Final score: %d",
			InvalidMove:  "That move is not allowed",
			StockEmpty:   "The stock is empty",
			GameComplete: "The game is already complete",
		},
	}
}
