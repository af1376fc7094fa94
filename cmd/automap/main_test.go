package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"ca-map/internal/automaton"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pairRules = "../../rules/pair.yaml"

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRunRequiresCommand(t *testing.T) {
	_, _, err := runCLI(t)
	assert.ErrorIs(t, err, errUsage)

	_, _, err = runCLI(t, "bogus")
	assert.ErrorIs(t, err, errUsage)
}

func TestHelpPrintsUsage(t *testing.T) {
	out, _, err := runCLI(t, "help")
	require.NoError(t, err)
	assert.Contains(t, out, "attractors")
}

func TestMapPrintsTransitions(t *testing.T) {
	out, _, err := runCLI(t, "map", "-config", pairRules)
	require.NoError(t, err)
	assert.Equal(t, "0 -> 3\n1 -> 1\n2 -> 2\n3 -> 3\n", out)
}

func TestMapJSON(t *testing.T) {
	out, _, err := runCLI(t, "map", "-config", pairRules, "-json")
	require.NoError(t, err)

	var got mapJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 2, got.Width)
	assert.Equal(t, 1, got.Height)
	assert.Equal(t, 2, got.States)
	assert.Empty(t, got.ID)
	assert.Len(t, got.Transitions, 4)
	assert.EqualValues(t, 3, got.Transitions[0])
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	out, _, err := runCLI(t, "map", "-config", pairRules, "-width", "1")
	require.NoError(t, err)
	// A lone cell has no neighbours: nothing matches and it keeps its state.
	assert.Equal(t, "0 -> 0\n1 -> 1\n", out)
}

func TestMapWithoutMatchFails(t *testing.T) {
	_, _, err := runCLI(t, "map", "-config", pairRules, "-no-match", "fail")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no matching rule")
}

func TestMapRespectsCeiling(t *testing.T) {
	_, _, err := runCLI(t, "map", "-width", "3", "-height", "3", "-states", "3", "-ceiling", "100")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ceiling")
}

func TestAttractors(t *testing.T) {
	out, _, err := runCLI(t, "attractors", "-config", pairRules, "-grids")
	require.NoError(t, err)
	assert.Contains(t, out, "attractors 3, fixed points 3, garden of eden 1")
	assert.Regexp(t, regexp.MustCompile(`(?m)^1\s+2\s+50%\s+3$`), out)
	assert.Contains(t, out, "signature 3 (period 1)")
	assert.Contains(t, out, "Grid (width=2, height=1")
}

func TestStepPrintsGenerations(t *testing.T) {
	out, _, err := runCLI(t, "step", "-config", pairRules, "-signature", "0", "-steps", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "generation 0 signature 0")
	assert.Contains(t, out, "generation 1 signature 3")
	assert.Contains(t, out, "generation 2 signature 3")
}

func TestStepRejectsSignatureOutsideDomain(t *testing.T) {
	_, _, err := runCLI(t, "step", "-config", pairRules, "-signature", "4")
	assert.Error(t, err)
}

func TestOrbitReportsTransientAndPeriod(t *testing.T) {
	out, _, err := runCLI(t, "orbit", "-config", pairRules, "-signature", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "transient 1, period 1")
}

func TestSaveListShow(t *testing.T) {
	db := filepath.Join(t.TempDir(), "maps.db")

	_, errOut, err := runCLI(t, "map", "-config", pairRules, "-save", "-quiet", "-db-path", db)
	require.NoError(t, err)
	match := regexp.MustCompile(`saved map (\S+)`).FindStringSubmatch(errOut)
	require.Len(t, match, 2, errOut)
	id := match[1]

	out, _, err := runCLI(t, "list", "-db-path", db)
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "2x1 wrap=false diagonal=false")

	out, _, err = runCLI(t, "show", "-db-path", db, "-id", id)
	require.NoError(t, err)
	assert.Equal(t, "0 -> 3\n1 -> 1\n2 -> 2\n3 -> 3\n", out)

	out, _, err = runCLI(t, "show", "-db-path", db, "-id", id, "-analyze")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "shape 2x1"))

	_, _, err = runCLI(t, "show", "-db-path", db, "-id", "missing")
	assert.ErrorContains(t, err, "not found")
}

func TestListEmptyStore(t *testing.T) {
	out, _, err := runCLI(t, "list", "-store", "memory")
	require.NoError(t, err)
	assert.Equal(t, "no saved maps\n", out)
}

func TestFormatCycleTruncates(t *testing.T) {
	assert.Equal(t, "1 -> 2 -> ...", formatCycle([]automaton.Signature{1, 2, 3}, 2))
	assert.Equal(t, "7", formatCycle([]automaton.Signature{7}, 8))
}
