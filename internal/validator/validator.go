package validator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arcanaland/planeswalker/internal/card"
	"github.com/arcanaland/planeswalker/internal/store/filestore"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
	Records  int
}

// Validator checks a collection directory written by the file backend
type Validator struct {
	CollectionPath string
	Results        ValidationResults
}

func NewValidator(collectionPath string) *Validator {
	return &Validator{
		CollectionPath: collectionPath,
		Results:        ValidationResults{},
	}
}

func (v *Validator) Validate() (ValidationResults, error) {
	info, err := os.Stat(v.CollectionPath)
	if os.IsNotExist(err) {
		return v.Results, fmt.Errorf("collection directory not found: %s", v.CollectionPath)
	}
	if err != nil {
		return v.Results, err
	}
	if !info.IsDir() {
		return v.Results, fmt.Errorf("%s is not a directory", v.CollectionPath)
	}

	entries, err := os.ReadDir(v.CollectionPath)
	if err != nil {
		return v.Results, fmt.Errorf("error reading collection directory: %v", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			v.addWarning("unexpected directory in collection: %s", name)
			continue
		}

		id, ok := filestore.ParseRecordName(name)
		if !ok {
			if strings.HasPrefix(name, ".card-") {
				v.addWarning("leftover temporary file from an interrupted write: %s", name)
			} else {
				v.addWarning("not a card record: %s", name)
			}
			continue
		}

		v.Results.Records++
		v.validateRecord(name, id)
	}

	return v.Results, nil
}

// validateRecord decodes one record and checks it against its file name
func (v *Validator) validateRecord(name string, id int) {
	data, err := os.ReadFile(filepath.Join(v.CollectionPath, name))
	if err != nil {
		v.addError("error reading %s: %v", name, err)
		return
	}

	c, err := card.Unmarshal(data)
	if err != nil {
		v.addError("error parsing %s: %v", name, err)
		return
	}

	if c.ID != id {
		v.addError("%s holds card id %d", name, c.ID)
	}

	if err := c.Validate(); err != nil {
		v.addError("%s: %v", name, err)
	}

	v.validateSemantics(name, c)
}

// validateSemantics warns about fields that do not fit the card type
func (v *Validator) validateSemantics(name string, c card.Card) {
	switch c.Type {
	case card.Creature:
		if c.PowerToughness == nil {
			v.addWarning("%s: creature %q has no power/toughness", name, c.Name)
		}
	case card.Planeswalker:
		if c.LoyaltyCounter == nil {
			v.addWarning("%s: planeswalker %q has no loyalty counter", name, c.Name)
		}
	}

	if c.PowerToughness != nil && c.Type != card.Creature {
		v.addWarning("%s: power/toughness set on a %s card", name, c.Type)
	}
	if c.LoyaltyCounter != nil && c.Type != card.Planeswalker {
		v.addWarning("%s: loyalty counter set on a %s card", name, c.Type)
	}
}

func (v *Validator) addError(format string, args ...any) {
	v.Results.Errors = append(v.Results.Errors, fmt.Sprintf(format, args...))
}

func (v *Validator) addWarning(format string, args ...any) {
	v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf(format, args...))
}
