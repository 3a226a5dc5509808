package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSeed = `
Pilot_Roster:
  - {name: Sneha, status: Available, location: Bangalore, skills: "Thermal, Mapping"}
  - {name: Arjun, status: On Leave, location: Mumbai}
Drone_Fleet:
  - {drone_id: D001, status: Available, location: Bangalore}
Missions:
  - {project_id: PRJ001, location: Bangalore, priority: High}
`

func setup(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	seed := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(seed, []byte(testSeed), 0o644))
	cfg := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(`store:
  type: memory
  conf:
    seed: `+seed+`
audit:
  backend: none
`), 0o644))
	t.Cleanup(func() {
		listStatus = ""
		askJSON = false
	})
	cfgPath = cfg
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append(args, "--config", cfgPath))
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestAsk(t *testing.T) {
	setup(t)
	out := run(t, "ask", "assign", "pilots", "for", "PRJ001")
	assert.Equal(t, "Mission PRJ001 in Bangalore: 1 pilots and 1 drones available\n", out)

	out = run(t, "ask", "--json", "hello")
	assert.Contains(t, out, `"intent": "unknown"`)
}

func TestPilotsLs(t *testing.T) {
	setup(t)
	out := run(t, "pilots", "ls")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.Contains(t, lines[1], "Mapping,Thermal")

	out = run(t, "pilots", "ls", "--status", "on leave")
	assert.Contains(t, out, "Arjun")
	assert.NotContains(t, out, "Sneha")
}

func TestMissionsAndDronesLs(t *testing.T) {
	setup(t)
	assert.Contains(t, run(t, "missions", "ls"), "PRJ001")
	assert.Contains(t, run(t, "drones", "ls"), "D001")
}

func TestSeedRejectsMissingFile(t *testing.T) {
	setup(t)
	rootCmd.SetArgs([]string{"seed", "--from", filepath.Join(t.TempDir(), "nope.yaml"), "--config", cfgPath})
	assert.Error(t, rootCmd.Execute())
}

func TestSeedRedis(t *testing.T) {
	setup(t)
	mr := miniredis.RunT(t)
	dir := t.TempDir()
	seed := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(seed, []byte(testSeed), 0o644))
	cfgPath = filepath.Join(dir, "redis.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("store:\n  type: redis\n  conf:\n    addr: "+mr.Addr()+"\naudit:\n  backend: none\n"), 0o644))

	out := run(t, "seed", "--from", seed)
	assert.Contains(t, out, "Pilot_Roster: 2 rows")
	assert.Contains(t, out, "Missions: 1 rows")

	items, err := mr.List("skylark:table:Pilot_Roster")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	assert.Contains(t, run(t, "pilots", "ls"), "Sneha")
}
