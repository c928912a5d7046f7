package engine

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strconv"
)

// Suit identifies one of the four French suits
type Suit string

const (
	Spades   Suit = "spades"
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
)

// Suits lists the suits in foundation order
var Suits = [NumSuits]Suit{Spades, Hearts, Diamonds, Clubs}

// Index returns the foundation index of the suit, or -1 for an unknown suit
func (s Suit) Index() int {
	for i, suit := range Suits {
		if suit == s {
			return i
		}
	}
	return -1
}

// Symbol returns the printable suit glyph
func (s Suit) Symbol() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Color returns the color of the suit
func (s Suit) Color() Color {
	if s == Hearts || s == Diamonds {
		return Red
	}
	return Black
}

// Color is derived from the suit
type Color string

const (
	Black Color = "black"
	Red   Color = "red"
)

// Rank is the card value, Ace = 1 through King = 13
type Rank int

const (
	Ace   Rank = 1
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
)

var rankNames = map[Rank]string{Ace: "A", Jack: "J", Queen: "Q", King: "K"}

// String returns the rank as printed on the card (A, 2..10, J, Q, K)
func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return strconv.Itoa(int(r))
}

// Valid reports whether the rank is within A..K
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// ParseRank parses the printed form of a rank
func ParseRank(s string) (Rank, error) {
	for r, name := range rankNames {
		if name == s {
			return r, nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 2 || n > 10 {
		return 0, fmt.Errorf("invalid rank %q", s)
	}
	return Rank(n), nil
}

// MarshalJSON encodes the rank in its printed form
func (r Rank) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes the printed form of a rank
func (r *Rank) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRank(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Card is a single playing card. Identity is (Suit, Rank).
type Card struct {
	Suit   Suit `json:"suit"`
	Rank   Rank `json:"rank"`
	FaceUp bool `json:"face_up"`
}

// Color returns the derived card color
func (c Card) Color() Color {
	return c.Suit.Color()
}

// String returns a short form such as "10♥"
func (c Card) String() string {
	return c.Rank.String() + c.Suit.Symbol()
}

// SameCard reports whether both cards have the same identity, ignoring orientation
func (c Card) SameCard(other Card) bool {
	return c.Suit == other.Suit && c.Rank == other.Rank
}

// NewDeck returns all 52 cards face-down in canonical suit/rank order
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for rank := Ace; rank <= King; rank++ {
			deck = append(deck, Card{Suit: suit, Rank: rank})
		}
	}
	return deck
}

// Shuffle permutes the deck in place with Fisher-Yates. A nil rng uses the
// package-level source.
func Shuffle(deck []Card, rng *rand.Rand) {
	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}
	for i := len(deck) - 1; i > 0; i-- {
		j := intN(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
}
