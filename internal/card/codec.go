package card

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
)

// Marshal encodes a card as a TOML record
func Marshal(c Card) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("error encoding card %d: %v", c.ID, err)
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a TOML record. Unknown enum names and unknown keys are
// rejected; field constraints are left to Validate.
func Unmarshal(data []byte) (Card, error) {
	var c Card
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return Card{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Card{}, fmt.Errorf("unknown field %q", undecoded[0].String())
	}
	for _, key := range []string{"id", "name", "color", "type", "rarity"} {
		if !md.IsDefined(key) {
			return Card{}, fmt.Errorf("missing field %q", key)
		}
	}
	return c, nil
}
