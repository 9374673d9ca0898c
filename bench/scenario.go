package bench

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	go_sync_lock "github.com/datnguyenzzz/nogodb/lib/go-sync-lock"
)

type scenarioFile struct {
	Scenarios []rawScenario `toml:"scenario"`
}

type rawScenario struct {
	Name    string `toml:"name"`
	Workers int    `toml:"workers"`
	Ops     int    `toml:"ops"`
	Hold    string `toml:"hold"`
	Timeout string `toml:"timeout"`
}

// Scenario describes one contention run: Workers goroutines each performing Ops
// acquisitions and holding the guard for Hold.
type Scenario struct {
	Name    string
	Workers int
	Ops     int
	Hold    time.Duration
	Timeout time.Duration
}

func LoadScenarios(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f scenarioFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	res := make([]Scenario, 0, len(f.Scenarios))
	for _, raw := range f.Scenarios {
		s, err := raw.parse()
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", raw.Name, err)
		}
		res = append(res, s)
	}

	return res, nil
}

func (r rawScenario) parse() (Scenario, error) {
	if r.Workers <= 0 || r.Ops <= 0 {
		return Scenario{}, fmt.Errorf("workers and ops must be positive")
	}

	s := Scenario{Name: r.Name, Workers: r.Workers, Ops: r.Ops}

	var err error
	if r.Hold != "" {
		if s.Hold, err = time.ParseDuration(r.Hold); err != nil {
			return Scenario{}, err
		}
	}

	switch r.Timeout {
	case "", "infinite":
		s.Timeout = go_sync_lock.Infinite
	default:
		if s.Timeout, err = time.ParseDuration(r.Timeout); err != nil {
			return Scenario{}, err
		}
	}

	return s, nil
}
