package card

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalid is wrapped by every field validation failure
var ErrInvalid = errors.New("invalid card")

// PowerToughness holds a creature's power and toughness
type PowerToughness [2]int

// Power returns the first element of the pair
func (pt PowerToughness) Power() int { return pt[0] }

// Toughness returns the second element of the pair
func (pt PowerToughness) Toughness() int { return pt[1] }

func (pt PowerToughness) String() string {
	return fmt.Sprintf("%d,%d", pt[0], pt[1])
}

// Card represents a single card in a user's collection
type Card struct {
	ID             int             `toml:"id"`
	Name           string          `toml:"name"`
	ManaCost       int             `toml:"mana_cost"`
	Color          Color           `toml:"color"`
	Type           LineType        `toml:"type"`
	Rarity         Rarity          `toml:"rarity"`
	RulesText      string          `toml:"rules_text"`
	PowerToughness *PowerToughness `toml:"power_toughness,omitempty"` // Creatures only
	LoyaltyCounter *int            `toml:"loyalty_counter,omitempty"` // Planeswalkers only
	Value          int             `toml:"value"`
}

// Validate checks the field constraints of a card
func (c Card) Validate() error {
	if c.ID < 0 {
		return fmt.Errorf("%w: id must not be negative, got %d", ErrInvalid, c.ID)
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if c.ManaCost < 0 {
		return fmt.Errorf("%w: mana cost must not be negative, got %d", ErrInvalid, c.ManaCost)
	}
	if !c.Color.Valid() {
		return fmt.Errorf("%w: unknown color %q", ErrInvalid, string(c.Color))
	}
	if !c.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalid, string(c.Type))
	}
	if !c.Rarity.Valid() {
		return fmt.Errorf("%w: unknown rarity %q", ErrInvalid, string(c.Rarity))
	}
	if c.LoyaltyCounter != nil && *c.LoyaltyCounter < 0 {
		return fmt.Errorf("%w: loyalty counter must not be negative, got %d", ErrInvalid, *c.LoyaltyCounter)
	}
	if c.Value < 0 {
		return fmt.Errorf("%w: value must not be negative, got %d", ErrInvalid, c.Value)
	}
	return nil
}

// ParsePowerToughness parses a "power,toughness" pair such as "2,3"
func ParsePowerToughness(s string) (PowerToughness, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return PowerToughness{}, fmt.Errorf("%w: power/toughness must look like 2,3, got %q", ErrInvalid, s)
	}

	var pt PowerToughness
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return PowerToughness{}, fmt.Errorf("%w: power/toughness must be numbers, got %q", ErrInvalid, s)
		}
		pt[i] = n
	}
	return pt, nil
}
