package bench

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	go_sync_lock "github.com/datnguyenzzz/nogodb/lib/go-sync-lock"
)

func Test_LoadScenarios(t *testing.T) {
	scenarios, err := LoadScenarios(filepath.Join("testdata", "scenarios.toml"))
	require.NoError(t, err)
	require.Len(t, scenarios, 4)

	assert.Equal(t, Scenario{
		Name:    "uncontended",
		Workers: 1,
		Ops:     2000,
		Hold:    0,
		Timeout: go_sync_lock.Infinite,
	}, scenarios[0])
	assert.Equal(t, 200*time.Microsecond, scenarios[2].Hold)
	assert.Equal(t, time.Millisecond, scenarios[2].Timeout)
	assert.Equal(t, time.Duration(0), scenarios[3].Timeout)
}

func Test_LoadScenarios_Invalid(t *testing.T) {
	type param struct {
		desc    string
		content string
	}

	testList := []param{
		{"malformed toml", "[[scenario]\nname = 1"},
		{"no workers", "[[scenario]]\nname = \"a\"\nworkers = 0\nops = 1"},
		{"bad hold", "[[scenario]]\nname = \"a\"\nworkers = 1\nops = 1\nhold = \"soon\""},
		{"bad timeout", "[[scenario]]\nname = \"a\"\nworkers = 1\nops = 1\ntimeout = \"never\""},
	}

	for _, tc := range testList {
		t.Run(tc.desc, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "scenarios.toml")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0644))

			_, err := LoadScenarios(path)
			require.Error(t, err)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadScenarios(filepath.Join(t.TempDir(), "absent.toml"))
		require.Error(t, err)
	})
}

func Test_Run(t *testing.T) {
	t.Run("infinite timeout never loses an acquisition", func(t *testing.T) {
		report, err := Run(Scenario{Name: "t", Workers: 8, Ops: 100, Timeout: go_sync_lock.Infinite})
		require.NoError(t, err)
		assert.Equal(t, int64(800), report.Acquired)
		assert.Zero(t, report.Timeouts)
		assert.Equal(t, int64(800), report.Waits.TotalCount())
	})

	t.Run("probing under contention times out", func(t *testing.T) {
		report, err := Run(Scenario{Name: "t", Workers: 4, Ops: 50, Hold: time.Millisecond, Timeout: 0})
		require.NoError(t, err)
		assert.Equal(t, int64(200), report.Acquired+report.Timeouts)
		assert.Positive(t, report.Acquired)
	})
}
