package positioner

import (
	"encoding/json"
	"os"

	"github.com/perchhq/perch/internal/paths"
)

// minimum saved size accepted on load; smaller values are treated as a
// corrupt or stale state file and ignored.
const (
	minSavedWidth  = 400
	minSavedHeight = 300
)

// State persists the main window's placement between restarts. Absolute
// screen coordinates, so the window restores to the correct monitor.
type State struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// loadState reads saved window state from path. Returns nil if the file
// doesn't exist, can't be parsed, or holds a nonsensical size.
func loadState(path string) *State {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil
	}
	if st.Width < minSavedWidth || st.Height < minSavedHeight {
		return nil
	}
	return &st
}

// saveState writes the window state to path atomically.
func saveState(path string, st State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return paths.AtomicWrite(path, data)
}
