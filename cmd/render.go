package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/term"

	"github.com/arcanaland/planeswalker/internal/card"
)

const separator = "----------------------------"

// manaColors are the swatch colors of the five colors and colorless
var manaColors = map[card.Color]string{
	card.White:     "#f8f6d8",
	card.Blue:      "#0e68ab",
	card.Black:     "#3d3a36",
	card.Red:       "#d3202a",
	card.Green:     "#00733e",
	card.Colorless: "#cbc2bf",
}

var (
	labelColor   = colorize.New(colorize.FgCyan)
	valueColor   = colorize.New(colorize.FgHiWhite)
	successColor = colorize.New(colorize.FgGreen)
	failureColor = colorize.New(colorize.FgRed)
)

func success(w io.Writer, format string, args ...any) {
	successColor.Fprintf(w, format+"\n", args...)
}

// failure prints err as a red status line and marks the command as failed
func failure(w io.Writer, err error) error {
	failureColor.Fprintln(w, err.Error())
	return ErrReported
}

// displayCard prints every field of a card, one labeled line each
func displayCard(w io.Writer, c card.Card) {
	field := func(label, value string) {
		fmt.Fprintln(w, labelColor.Sprint(label+": ")+valueColor.Sprint(value))
	}

	field("ID", strconv.Itoa(c.ID))
	field("Name", c.Name)
	field("Mana cost", strconv.Itoa(c.ManaCost))
	if s := swatch(c.Color); s != "" {
		fmt.Fprintln(w, labelColor.Sprint("Color: ")+valueColor.Sprint(string(c.Color))+" "+s)
	} else {
		field("Color", string(c.Color))
	}
	field("Type", string(c.Type))
	field("Rarity", string(c.Rarity))

	label := "Rules text: "
	lines := wrapText(c.RulesText, terminalWidth()-len(label))
	fmt.Fprintln(w, labelColor.Sprint(label)+valueColor.Sprint(lines[0]))
	for _, line := range lines[1:] {
		fmt.Fprintln(w, strings.Repeat(" ", len(label))+valueColor.Sprint(line))
	}

	if c.PowerToughness != nil {
		field("Power", strconv.Itoa(c.PowerToughness.Power()))
		field("Toughness", strconv.Itoa(c.PowerToughness.Toughness()))
	}
	if c.LoyaltyCounter != nil {
		field("Loyalty counter", strconv.Itoa(*c.LoyaltyCounter))
	}
	field("Value", strconv.Itoa(c.Value))
}

// swatch renders a 24-bit color sample for a card color. Multicolor cards
// get a gradient through the five colors. Empty when color is disabled.
func swatch(c card.Color) string {
	if colorize.NoColor {
		return ""
	}

	if c == card.Multicolor {
		stops := []card.Color{card.White, card.Blue, card.Black, card.Red, card.Green}
		var b strings.Builder
		for i := 0; i < len(stops)-1; i++ {
			from, _ := colorful.Hex(manaColors[stops[i]])
			to, _ := colorful.Hex(manaColors[stops[i+1]])
			for step := 0; step < 2; step++ {
				b.WriteString(ansiBlock(from.BlendLuv(to, float64(step)/2).Clamped()))
			}
		}
		last, _ := colorful.Hex(manaColors[card.Green])
		b.WriteString(ansiBlock(last))
		return b.String()
	}

	hex, ok := manaColors[c]
	if !ok {
		return ""
	}
	col, err := colorful.Hex(hex)
	if err != nil {
		return ""
	}
	return ansiBlock(col) + ansiBlock(col)
}

// ansiBlock formats a full block character in a 24-bit foreground color
func ansiBlock(c colorful.Color) string {
	r, g, b := c.RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm█\x1b[0m", r, g, b)
}

// terminalWidth returns the width of stdout, or 80 when it is not a terminal
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// wrapText wraps text to a specified width
func wrapText(text string, width int) []string {
	if width < 20 {
		width = 20
	}

	var result []string
	var currentLine string
	words := strings.Fields(text)

	if len(words) == 0 {
		return []string{""}
	}

	for _, word := range words {
		if len(currentLine) == 0 {
			currentLine = word
		} else if len(currentLine)+1+len(word) <= width {
			currentLine += " " + word
		} else {
			result = append(result, currentLine)
			currentLine = word
		}
	}

	if currentLine != "" {
		result = append(result, currentLine)
	}

	return result
}
