// Package positioner remembers the main window's placement across
// restarts and tracks the tray icon's screen position so the window can
// be placed relative to it.
package positioner

import (
	"fmt"
	"sync"
	"time"

	"github.com/perchhq/perch/internal/host"
)

// autosaveInterval is how often the current placement is persisted while
// the app runs. The host runtime exposes no cross-platform move event, so
// the positioner polls.
const autosaveInterval = 30 * time.Second

// Manager is the window-position memory integration. It is installed
// against the live application handle during setup, not registered with
// the builder.
type Manager struct {
	statePath string

	mu      sync.Mutex
	trayX   int
	trayY   int
	hasTray bool
}

// New returns a Manager persisting state at statePath.
func New(statePath string) *Manager {
	return &Manager{statePath: statePath}
}

// Install restores the saved placement of the main window and starts the
// autosave loop. The app handle is only borrowed; the Manager keeps no
// reference to it.
func (m *Manager) Install(app host.App) error {
	w, ok := app.Window(host.MainWindow)
	if !ok {
		return fmt.Errorf("positioner: window %q not registered", host.MainWindow)
	}
	if st := loadState(m.statePath); st != nil {
		w.SetPosition(st.X, st.Y)
	}
	go m.autosave(w)
	return nil
}

// Save persists the window's current placement immediately.
func (m *Manager) Save(w host.Window) error {
	x, y := w.Position()
	width, height := w.Size()
	return saveState(m.statePath, State{X: x, Y: y, Width: width, Height: height})
}

func (m *Manager) autosave(w host.Window) {
	for range time.Tick(autosaveInterval) {
		// Best-effort: a failed write retries on the next tick.
		_ = m.Save(w)
	}
}

// OnTrayEvent is the tray-event hook. Every tray interaction updates the
// recorded tray icon position when the platform reports coordinates.
func (m *Manager) OnTrayEvent(app host.App, ev host.TrayEvent) {
	if ev.X == 0 && ev.Y == 0 {
		return
	}
	m.mu.Lock()
	m.trayX, m.trayY = ev.X, ev.Y
	m.hasTray = true
	m.mu.Unlock()
}

// TrayPosition returns the last recorded tray icon screen position.
// ok is false until a tray event with coordinates has been seen.
func (m *Manager) TrayPosition() (x, y int, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.trayX, m.trayY, m.hasTray
}
