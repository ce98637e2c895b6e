package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/arcanaland/planeswalker/internal/card"
)

// enumFlag validates its value with one of the card parsers while the
// command line is parsed, so a bad value aborts the invocation early.
type enumFlag[T ~string] struct {
	value    *T
	typeName string
	parse    func(string) (T, error)
}

var _ pflag.Value = (*enumFlag[card.Color])(nil)

func (f *enumFlag[T]) String() string {
	if f.value == nil {
		return ""
	}
	return string(*f.value)
}

func (f *enumFlag[T]) Type() string { return f.typeName }

func (f *enumFlag[T]) Set(s string) error {
	v, err := f.parse(s)
	if err != nil {
		return err
	}
	*f.value = v
	return nil
}

// powerToughnessFlag parses "power,toughness" into a pair
type powerToughnessFlag struct {
	value **card.PowerToughness
}

func (f *powerToughnessFlag) String() string {
	if f.value == nil || *f.value == nil {
		return ""
	}
	return (*f.value).String()
}

func (f *powerToughnessFlag) Type() string { return "power,toughness" }

func (f *powerToughnessFlag) Set(s string) error {
	pt, err := card.ParsePowerToughness(s)
	if err != nil {
		return err
	}
	*f.value = &pt
	return nil
}

// userIDFlags are the flags addressing a single card
type userIDFlags struct {
	user string
	id   int
}

func (f *userIDFlags) register(cmd *cobra.Command, withID bool) {
	cmd.Flags().StringVar(&f.user, "user", "", "Username")
	cmd.MarkFlagRequired("user")
	if withID {
		cmd.Flags().IntVar(&f.id, "id", 0, "Card identifier")
		cmd.MarkFlagRequired("id")
	}
}

// cardFlags are the flags describing a full card, shared by add and update
type cardFlags struct {
	userIDFlags
	card    card.Card
	loyalty int
}

func (f *cardFlags) register(cmd *cobra.Command) {
	f.userIDFlags.register(cmd, true)

	flags := cmd.Flags()
	flags.StringVar(&f.card.Name, "name", "", "Card name")
	flags.IntVar(&f.card.ManaCost, "manaCost", 0, "Card mana cost")
	flags.Var(&enumFlag[card.Color]{value: &f.card.Color, typeName: "color", parse: card.ParseColor},
		"color", "Card color ("+card.Join(card.Colors)+")")
	flags.Var(&enumFlag[card.LineType]{value: &f.card.Type, typeName: "type", parse: card.ParseLineType},
		"type", "Card type ("+card.Join(card.LineTypes)+")")
	flags.Var(&enumFlag[card.Rarity]{value: &f.card.Rarity, typeName: "rarity", parse: card.ParseRarity},
		"rarity", "Card rarity ("+card.Join(card.Rarities)+")")
	flags.StringVar(&f.card.RulesText, "rulesText", "", "Card rules text")
	flags.Var(&powerToughnessFlag{value: &f.card.PowerToughness}, "powerToughness", "Card power and toughness, e.g. 2,3")
	flags.IntVar(&f.loyalty, "loyaltyCounter", 0, "Card loyalty counter")
	flags.IntVar(&f.card.Value, "value", 0, "Card value")

	for _, name := range []string{"name", "manaCost", "color", "type", "rarity", "rulesText", "value"} {
		cmd.MarkFlagRequired(name)
	}
}

// build returns the card described by the parsed flags
func (f *cardFlags) build(cmd *cobra.Command) card.Card {
	c := f.card
	c.ID = f.id
	if cmd.Flags().Changed("loyaltyCounter") {
		loyalty := f.loyalty
		c.LoyaltyCounter = &loyalty
	}
	return c
}
