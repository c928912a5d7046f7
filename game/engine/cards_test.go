package engine

import (
	"encoding/json"
	"testing"
)

func TestNewDeck(t *testing.T) {
	deck := NewDeck()
	if len(deck) != DeckSize {
		t.Fatalf("Expected %d cards, got %d", DeckSize, len(deck))
	}

	seen := make(map[Card]bool)
	for _, card := range deck {
		if card.FaceUp {
			t.Errorf("Expected %s to be face-down", card)
		}
		if seen[card] {
			t.Errorf("Duplicate card %s", card)
		}
		seen[card] = true
	}
}

func TestShuffle_IsPermutation(t *testing.T) {
	deck := NewDeck()
	Shuffle(deck, seeded(9))

	seen := make(map[Card]bool)
	for _, card := range deck {
		seen[card] = true
	}
	if len(seen) != DeckSize {
		t.Errorf("Expected %d distinct cards after shuffle, got %d", DeckSize, len(seen))
	}
}

func TestShuffle_SpreadsCards(t *testing.T) {
	const trials = DeckSize * 200
	rng := seeded(11)
	counts := make([]int, DeckSize)

	for i := 0; i < trials; i++ {
		deck := NewDeck()
		Shuffle(deck, rng)
		for pos, card := range deck {
			if card.Suit == Spades && card.Rank == Ace {
				counts[pos]++
			}
		}
	}

	// Expected 200 per position
	for pos, n := range counts {
		if n < 120 || n > 290 {
			t.Errorf("A♠ landed at position %d %d times, expected about 200", pos, n)
		}
	}
}

func TestCardColor(t *testing.T) {
	tests := []struct {
		suit Suit
		want Color
	}{
		{Spades, Black},
		{Clubs, Black},
		{Hearts, Red},
		{Diamonds, Red},
	}
	for _, tt := range tests {
		if got := (Card{Suit: tt.suit, Rank: Ace}).Color(); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.suit, tt.want, got)
		}
	}
}

func TestRankJSON(t *testing.T) {
	data, err := json.Marshal(up(10, Hearts))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"suit":"hearts","rank":"10","face_up":true}` {
		t.Errorf("Unexpected encoding %s", data)
	}

	var card Card
	if err := json.Unmarshal([]byte(`{"suit":"clubs","rank":"Q"}`), &card); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if card.Rank != Queen || card.Suit != Clubs {
		t.Errorf("Expected Q♣, got %s", card)
	}

	if err := json.Unmarshal([]byte(`{"rank":"1"}`), &card); err == nil {
		t.Error("Expected an error for rank 1")
	}
}

func TestCardString(t *testing.T) {
	if s := up(Ace, Spades).String(); s != "A♠" {
		t.Errorf("Expected A♠, got %s", s)
	}
	if s := down(10, Diamonds).String(); s != "10♦" {
		t.Errorf("Expected 10♦, got %s", s)
	}
}

func TestMoveJSON_FirstColumnDestination(t *testing.T) {
	card := up(9, Hearts)
	data, err := json.Marshal(Move{Kind: MoveTableau, Source: ColumnRef(2), CardIndex: 1, DestCol: 0, Card: &card})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	dest, ok := decoded["dest_col"]
	if !ok {
		t.Fatalf("Expected dest_col in %s", data)
	}
	if dest != float64(0) {
		t.Errorf("Expected dest_col 0, got %v", dest)
	}
}
