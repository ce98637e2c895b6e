package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t       *testing.T
	dataDir string
	extra   []string
}

func newHarness(t *testing.T, extra ...string) *harness {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Chdir(dir)
	return &harness{t: t, dataDir: filepath.Join(dir, "users"), extra: extra}
}

// run executes one invocation on a fresh command tree
func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	args = append(args, "--no-color", "--data-dir", h.dataDir)
	root.SetArgs(append(args, h.extra...))
	err := root.Execute()
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, out)
	return out
}

var counterspellArgs = []string{
	"--user", "Javier", "--id", "1", "--name", "Counterspell", "--manaCost", "2",
	"--color", "Blue", "--type", "Instant", "--rarity", "Uncommon",
	"--rulesText", "Counter target spell.", "--value", "5",
}

func addArgs(extra ...string) []string {
	return append(append([]string{"add"}, counterspellArgs...), extra...)
}

func TestAddAndRead(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun(addArgs()...)
	assert.Equal(t, "New card added to Javier collection!\n", out)

	out = h.mustRun("read", "--user", "Javier", "--id", "1")
	assert.Contains(t, out, "ID: 1\n")
	assert.Contains(t, out, "Name: Counterspell\n")
	assert.Contains(t, out, "Mana cost: 2\n")
	assert.Contains(t, out, "Color: Blue\n")
	assert.Contains(t, out, "Type: Instant\n")
	assert.Contains(t, out, "Rarity: Uncommon\n")
	assert.Contains(t, out, "Rules text: Counter target spell.\n")
	assert.Contains(t, out, "Value: 5\n")
	assert.NotContains(t, out, "Power")
	assert.NotContains(t, out, "Loyalty")

	out, err := h.run("read", "--user", "Eduardo", "--id", "1")
	assert.ErrorIs(t, err, ErrReported)
	assert.Equal(t, "User does not exist!\n", out)

	out, err = h.run("read", "--user", "Javier", "--id", "2")
	assert.ErrorIs(t, err, ErrReported)
	assert.Equal(t, "Card not found at Javier collection!\n", out)
}

func TestAddDuplicate(t *testing.T) {
	h := newHarness(t)
	h.mustRun(addArgs()...)

	out, err := h.run(addArgs()...)
	assert.ErrorIs(t, err, ErrReported)
	assert.Equal(t, "Card already exists at Javier collection!\n", out)
}

func TestAddOptionalFields(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "--user", "Javier", "--id", "3", "--name", "Jace Beleren", "--manaCost", "3",
		"--color", "blue", "--type", "planeswalker", "--rarity", "mythic",
		"--rulesText", "+2: Each player draws a card.", "--loyaltyCounter", "3",
		"--powerToughness", "2, 3", "--value", "20")

	out := h.mustRun("read", "--user", "Javier", "--id", "3")
	assert.Contains(t, out, "Type: Planeswalker\n")
	assert.Contains(t, out, "Rarity: Mythic\n")
	assert.Contains(t, out, "Power: 2\n")
	assert.Contains(t, out, "Toughness: 3\n")
	assert.Contains(t, out, "Loyalty counter: 3\n")

	data, err := os.ReadFile(filepath.Join(h.dataDir, "Javier", "3.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "power_toughness = [2, 3]")
	assert.Contains(t, string(data), "loyalty_counter = 3")
}

func TestInvalidEnumAbortsBeforeStore(t *testing.T) {
	tests := map[string][]string{
		"color":  {"--color", "Purple"},
		"type":   {"--type", "Battle"},
		"rarity": {"--rarity", "Special"},
		"pt":     {"--powerToughness", "two,three"},
	}

	for name, override := range tests {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t)
			_, err := h.run(addArgs(override...)...)
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrReported)
			assert.Contains(t, err.Error(), "invalid card")

			_, statErr := os.Stat(h.dataDir)
			assert.True(t, os.IsNotExist(statErr), "no store access expected")
		})
	}
}

func TestMissingRequiredFlag(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("add", "--user", "Javier", "--id", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")

	_, err = h.run("read", "--user", "Javier")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"id"`)
}

func TestUpdateAndRemove(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(append([]string{"update"}, counterspellArgs...)...)
	assert.ErrorIs(t, err, ErrReported)
	assert.Equal(t, "Card not found at Javier collection!\n", out)
	_, statErr := os.Stat(filepath.Join(h.dataDir, "Javier"))
	assert.True(t, os.IsNotExist(statErr))

	h.mustRun(addArgs()...)
	args := append([]string{"update"}, counterspellArgs...)
	args = append(args, "--value", "9")
	out = h.mustRun(args...)
	assert.Equal(t, "Card updated at Javier collection!\n", out)
	assert.Contains(t, h.mustRun("read", "--user", "Javier", "--id", "1"), "Value: 9\n")

	out = h.mustRun("remove", "--user", "Javier", "--id", "1")
	assert.Equal(t, "Card deleted from Javier collection!\n", out)

	out, err = h.run("remove", "--user", "Javier", "--id", "1")
	assert.ErrorIs(t, err, ErrReported)
	assert.Equal(t, "Card not found at Javier collection!\n", out)

	info, statErr := os.Stat(filepath.Join(h.dataDir, "Javier"))
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())
}

func TestList(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("list", "--user", "Javier")
	assert.ErrorIs(t, err, ErrReported)
	assert.Equal(t, "User does not exist!\n", out)

	h.mustRun("add", "--user", "Javier", "--id", "7", "--name", "Grizzly Bears", "--manaCost", "2",
		"--color", "Green", "--type", "Creature", "--rarity", "Common",
		"--rulesText", "", "--powerToughness", "2,2", "--value", "1")
	h.mustRun(addArgs()...)

	out = h.mustRun("list", "--user", "Javier")
	assert.True(t, strings.HasPrefix(out, "Cards in Javier collection:\n"+separator+"\nID: 1\n"), out)
	assert.Less(t, strings.Index(out, "Counterspell"), strings.Index(out, "Grizzly Bears"))
	assert.Equal(t, 3, strings.Count(out, separator))
	assert.True(t, strings.HasSuffix(out, "2 cards, total value 6\n"), out)

	h.mustRun("remove", "--user", "Javier", "--id", "1")
	h.mustRun("remove", "--user", "Javier", "--id", "7")
	out = h.mustRun("list", "--user", "Javier")
	assert.Equal(t, "Cards in Javier collection:\n"+separator+"\n0 cards, total value 0\n", out)
}

func TestCollectionList(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("collection", "ls")
	assert.Contains(t, out, "No collections found.")

	h.mustRun(addArgs()...)
	h.mustRun("add", "--user", "Antonio", "--id", "1", "--name", "Island", "--manaCost", "0",
		"--color", "Colorless", "--type", "Land", "--rarity", "Common", "--rulesText", "", "--value", "0")
	h.mustRun("add", "--user", "Antonio", "--id", "2", "--name", "Island", "--manaCost", "0",
		"--color", "Colorless", "--type", "Land", "--rarity", "Common", "--rulesText", "", "--value", "0")

	out = h.mustRun("collection", "ls")
	assert.Equal(t, "  Antonio (2 cards)\n  Javier (1 card)\n", out)
}

func TestValidate(t *testing.T) {
	h := newHarness(t)
	h.mustRun(addArgs()...)

	out := h.mustRun("validate", "--user", "Javier")
	assert.Contains(t, out, "Collection 'Javier' is valid (1 records).")

	require.NoError(t, os.WriteFile(filepath.Join(h.dataDir, "Javier", "2.toml"), []byte("garbage = "), 0644))
	out, err := h.run("validate", "--user", "Javier")
	assert.ErrorIs(t, err, ErrReported)
	assert.Contains(t, out, "has 1 validation errors")
	assert.Contains(t, out, "error parsing 2.toml")

	out, err = h.run("read", "--user", "Javier", "--id", "2")
	assert.ErrorIs(t, err, ErrReported)
	assert.Equal(t, "Error parsing card data\n", out)
}

func TestSQLiteBackend(t *testing.T) {
	h := newHarness(t, "--backend", "sqlite")

	h.mustRun(addArgs()...)
	out := h.mustRun("read", "--user", "Javier", "--id", "1")
	assert.Contains(t, out, "Name: Counterspell\n")

	_, err := os.Stat(filepath.Join(h.dataDir, "cards.db"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(h.dataDir, "Javier"))
	assert.True(t, os.IsNotExist(err), "sqlite backend keeps no per-user directories")

	out, err = h.run("validate", "--user", "Javier")
	assert.ErrorIs(t, err, ErrReported)
	assert.Contains(t, out, "only works with the files backend")
}

func TestInit(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("init")
	assert.Contains(t, out, "Collections directory initialized at: "+h.dataDir)

	info, err := os.Stat(h.dataDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCommandsWithoutStoreLeaveDiskAlone(t *testing.T) {
	for name, args := range map[string][]string{
		"completion": {"completion", "bash"},
		"help":       {"help", "add"},
	} {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t)
			h.mustRun(args...)

			_, err := os.Stat(h.dataDir)
			assert.True(t, os.IsNotExist(err), "data directory created")
			_, err = os.Stat(filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "planeswalker", "config.toml"))
			assert.True(t, os.IsNotExist(err), "config file written")
		})
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("Flying. When this creature enters, draw a card for each opponent you control.", 20)
	for _, line := range lines {
		assert.LessOrEqual(t, len(line), 20)
	}
	assert.Equal(t, "Flying. When this", lines[0])
	assert.Equal(t, []string{""}, wrapText("", 40))
}
