package card

import (
	"fmt"
	"strings"
)

// Color is the color identity of a card
type Color string

const (
	White      Color = "White"
	Blue       Color = "Blue"
	Black      Color = "Black"
	Red        Color = "Red"
	Green      Color = "Green"
	Colorless  Color = "Colorless"
	Multicolor Color = "Multicolor"
)

// LineType is the type line of a card
type LineType string

const (
	Creature     LineType = "Creature"
	Planeswalker LineType = "Planeswalker"
	Instant      LineType = "Instant"
	Sorcery      LineType = "Sorcery"
	Enchantment  LineType = "Enchantment"
	Artifact     LineType = "Artifact"
	Land         LineType = "Land"
)

// Rarity is the printed rarity of a card
type Rarity string

const (
	Common   Rarity = "Common"
	Uncommon Rarity = "Uncommon"
	Rare     Rarity = "Rare"
	Mythic   Rarity = "Mythic"
)

// Colors, LineTypes and Rarities list the members of each enumeration in
// their canonical order.
var (
	Colors    = []Color{White, Blue, Black, Red, Green, Colorless, Multicolor}
	LineTypes = []LineType{Creature, Planeswalker, Instant, Sorcery, Enchantment, Artifact, Land}
	Rarities  = []Rarity{Common, Uncommon, Rare, Mythic}
)

// ParseColor returns the canonical Color matching s, ignoring case
func ParseColor(s string) (Color, error) {
	v, ok := lookup(Colors, s)
	if !ok {
		return "", fmt.Errorf("%w: Invalid card color %q (expected one of %s)", ErrInvalid, s, Join(Colors))
	}
	return v, nil
}

// ParseLineType returns the canonical LineType matching s, ignoring case
func ParseLineType(s string) (LineType, error) {
	v, ok := lookup(LineTypes, s)
	if !ok {
		return "", fmt.Errorf("%w: Invalid card type %q (expected one of %s)", ErrInvalid, s, Join(LineTypes))
	}
	return v, nil
}

// ParseRarity returns the canonical Rarity matching s, ignoring case
func ParseRarity(s string) (Rarity, error) {
	v, ok := lookup(Rarities, s)
	if !ok {
		return "", fmt.Errorf("%w: Invalid card rarity %q (expected one of %s)", ErrInvalid, s, Join(Rarities))
	}
	return v, nil
}

func (c Color) Valid() bool    { return member(Colors, c) }
func (t LineType) Valid() bool { return member(LineTypes, t) }
func (r Rarity) Valid() bool   { return member(Rarities, r) }

// UnmarshalText lets the record decoder reject unknown names.
func (c *Color) UnmarshalText(text []byte) error {
	v, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (t *LineType) UnmarshalText(text []byte) error {
	v, err := ParseLineType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (r *Rarity) UnmarshalText(text []byte) error {
	v, err := ParseRarity(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

func lookup[T ~string](values []T, s string) (T, bool) {
	s = strings.TrimSpace(s)
	for _, v := range values {
		if strings.EqualFold(string(v), s) {
			return v, true
		}
	}
	return "", false
}

func member[T ~string](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// Join lists enumeration members separated by commas
func Join[T ~string](values []T) string {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = string(v)
	}
	return strings.Join(names, ", ")
}
