package wailshost

import (
	"context"
	"fmt"
	"sync"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/perchhq/perch/internal/config"
	"github.com/perchhq/perch/internal/host"
)

// App is the live application handle. Window operations issued before the
// Wails runtime is up block on (or defer until) the ready channel, which
// closes when startup completes — setup callbacks run before the event
// loop starts, so they must not synchronously wait on it.
type App struct {
	cfg   config.Config
	ready chan struct{}
	ctx   context.Context

	mu     sync.Mutex
	policy host.ActivationPolicy
	tray   *tray
}

func newApp(cfg config.Config) *App {
	return &App{cfg: cfg, ready: make(chan struct{})}
}

// startup navigates the WebView to the configured app URL and unblocks
// pending window operations.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	wailsRuntime.WindowExecJS(ctx, fmt.Sprintf("window.location.href = %q;", a.cfg.AppURL))
	close(a.ready)
}

func (a *App) shutdown(ctx context.Context) {
	a.mu.Lock()
	t := a.tray
	a.mu.Unlock()
	if t != nil {
		t.stop()
	}
}

// await blocks until the Wails runtime is up, then returns its context.
func (a *App) await() context.Context {
	<-a.ready
	return a.ctx
}

// quit ends the event loop. Used by the tray menu.
func (a *App) quit() {
	wailsRuntime.Quit(a.await())
}

// Window returns the handle registered under name. Only the main window
// exists in this host.
func (a *App) Window(name string) (host.Window, bool) {
	if name != host.MainWindow {
		return nil, false
	}
	return &window{app: a}, true
}

// NewTray starts the system tray icon and forwards its events to
// onEvent. At most one tray may exist.
func (a *App) NewTray(onEvent func(host.TrayEvent)) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.tray != nil {
		return fmt.Errorf("wailshost: tray already built")
	}
	t, err := newTray(a, onEvent)
	if err != nil {
		return err
	}
	a.tray = t
	return nil
}

func (a *App) SetActivationPolicy(p host.ActivationPolicy) {
	a.mu.Lock()
	a.policy = p
	a.mu.Unlock()
}

func (a *App) activationPolicy() host.ActivationPolicy {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.policy
}

// window adapts Wails runtime calls to host.Window. Write operations are
// fire-and-forget so callers running before startup don't deadlock; read
// operations block until the runtime is up.
type window struct {
	app *App
}

func (w *window) Focus() error {
	ctx := w.app.await()
	wailsRuntime.WindowUnminimise(ctx)
	wailsRuntime.WindowShow(ctx)
	return nil
}

func (w *window) Show() {
	go func() {
		wailsRuntime.WindowShow(w.app.await())
	}()
}

func (w *window) Hide() {
	go func() {
		wailsRuntime.WindowHide(w.app.await())
	}()
}

func (w *window) Position() (int, int) {
	return wailsRuntime.WindowGetPosition(w.app.await())
}

func (w *window) SetPosition(x, y int) {
	go func() {
		wailsRuntime.WindowSetPosition(w.app.await(), x, y)
	}()
}

func (w *window) Size() (int, int) {
	return wailsRuntime.WindowGetSize(w.app.await())
}
