package bootstrap

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/perchhq/perch/internal/config"
	"github.com/perchhq/perch/internal/eventlog"
	"github.com/perchhq/perch/internal/host"
)

// fakeWindow records focus requests.
type fakeWindow struct {
	focusCalls int
	x, y, w, h int
}

func (f *fakeWindow) Focus() error { f.focusCalls++; return nil }
func (f *fakeWindow) Show() {}
func (f *fakeWindow) Hide() {}
func (f *fakeWindow) Position() (int, int) { return f.x, f.y }
func (f *fakeWindow) SetPosition(x, y int) { f.x, f.y = x, y }
func (f *fakeWindow) Size() (int, int) { return f.w, f.h }

// fakeApp records setup-time effects in order.
type fakeApp struct {
	windows     map[string]host.Window
	effects     []string
	trayHandler func(host.TrayEvent)
	trayErr     error
	policies    []host.ActivationPolicy
}

func (f *fakeApp) Window(name string) (host.Window, bool) {
	f.effects = append(f.effects, "lookup:"+name)
	w, ok := f.windows[name]
	return w, ok
}

func (f *fakeApp) NewTray(h func(host.TrayEvent)) error {
	f.effects = append(f.effects, "tray")
	if f.trayErr != nil {
		return f.trayErr
	}
	f.trayHandler = h
	return nil
}

func (f *fakeApp) SetActivationPolicy(p host.ActivationPolicy) {
	f.effects = append(f.effects, "policy")
	f.policies = append(f.policies, p)
}

// fakeBuilder records registration order and simulates the host run
// sequence: setup callbacks first, event loop after.
type fakeBuilder struct {
	app *fakeApp

	registered  []string
	bound       []any
	secondID    string
	onSecond    host.SecondInstanceFunc
	setups      []host.SetupFunc
	commands    []host.Command
	commandsSet bool
	runErr      error
	loopStarted bool
}

func (f *fakeBuilder) Register(ig host.Integration) error {
	for _, n := range f.registered {
		if n == ig.Name() {
			return fmt.Errorf("integration %q registered twice", n)
		}
	}
	if err := ig.Attach(f); err != nil {
		return err
	}
	f.registered = append(f.registered, ig.Name())
	return nil
}

func (f *fakeBuilder) Bind(service any) { f.bound = append(f.bound, service) }

func (f *fakeBuilder) OnSecondInstance(id string, fn host.SecondInstanceFunc) {
	f.secondID = id
	f.onSecond = fn
}

func (f *fakeBuilder) OnSetup(fn host.SetupFunc) { f.setups = append(f.setups, fn) }

func (f *fakeBuilder) Commands(cmds []host.Command) {
	f.commands = cmds
	f.commandsSet = true
}

func (f *fakeBuilder) Run() error {
	for _, fn := range f.setups {
		if err := fn(f.app); err != nil {
			return err
		}
	}
	f.loopStarted = true
	return f.runErr
}

func newFakeBuilder() (*fakeBuilder, *fakeWindow) {
	w := &fakeWindow{w: 1100, h: 760}
	app := &fakeApp{windows: map[string]host.Window{host.MainWindow: w}}
	return &fakeBuilder{app: app}, w
}

func statePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "window-state.json")
}

func TestDesktopRegistrationOrder(t *testing.T) {
	b, _ := newFakeBuilder()

	if err := run(b, config.Default(), nil, nil, true, statePath(t)); err != nil {
		t.Fatalf("run: %v", err)
	}

	wantOrder := []string{"network", "single-instance", "deeplink", "opener"}
	if !reflect.DeepEqual(b.registered, wantOrder) {
		t.Errorf("registration order = %v, want %v", b.registered, wantOrder)
	}
	if b.onSecond == nil {
		t.Error("single-instance callback not armed")
	}
	if b.secondID != config.DefaultInstanceID {
		t.Errorf("instance ID = %q, want %q", b.secondID, config.DefaultInstanceID)
	}
	if !b.commandsSet || len(b.commands) != 0 {
		t.Errorf("command table = %v (set=%t), want empty", b.commands, b.commandsSet)
	}
	if !b.loopStarted {
		t.Error("event loop never started")
	}

	// Setup effects in order: position memory first (main window lookup),
	// then tray, then activation policy.
	wantEffects := []string{"lookup:main", "tray", "policy"}
	if !reflect.DeepEqual(b.app.effects, wantEffects) {
		t.Errorf("setup effects = %v, want %v", b.app.effects, wantEffects)
	}
}

func TestMobileSkipsDesktopIntegrations(t *testing.T) {
	b, _ := newFakeBuilder()

	if err := run(b, config.Default(), nil, nil, false, statePath(t)); err != nil {
		t.Fatalf("run: %v", err)
	}

	wantOrder := []string{"network", "deeplink", "opener"}
	if !reflect.DeepEqual(b.registered, wantOrder) {
		t.Errorf("registration order = %v, want %v", b.registered, wantOrder)
	}
	if b.onSecond != nil {
		t.Error("single-instance guard registered on mobile")
	}
	if len(b.app.effects) != 0 {
		t.Errorf("desktop setup effects ran on mobile: %v", b.app.effects)
	}
	if len(b.app.policies) != 0 {
		t.Error("activation policy set on mobile")
	}
	if !b.commandsSet || len(b.commands) != 0 {
		t.Error("command table not registered empty")
	}
	if !b.loopStarted {
		t.Error("event loop never started")
	}
}

func TestDuplicateLaunchFocusesMainWindow(t *testing.T) {
	b, w := newFakeBuilder()

	if err := run(b, config.Default(), nil, nil, true, statePath(t)); err != nil {
		t.Fatalf("run: %v", err)
	}

	b.onSecond(b.app, []string{"--flag", "value"}, "/some/cwd")
	if w.focusCalls != 1 {
		t.Errorf("focus calls = %d, want 1", w.focusCalls)
	}
}

func TestDuplicateLaunchWithoutMainWindowPanics(t *testing.T) {
	b, _ := newFakeBuilder()
	b.app.windows = map[string]host.Window{} // no main window registered

	if err := run(b, config.Default(), nil, nil, true, statePath(t)); err != nil {
		t.Fatalf("run: %v", err)
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on duplicate launch without main window")
		}
		if msg, ok := r.(string); !ok || !strings.Contains(msg, "no main window") {
			t.Errorf("panic = %v, want message containing %q", r, "no main window")
		}
	}()
	b.onSecond(b.app, nil, "")
}

func TestTrayFailureAbortsBeforeEventLoop(t *testing.T) {
	b, _ := newFakeBuilder()
	b.app.trayErr = errors.New("tray backend unavailable")

	err := run(b, config.Default(), nil, nil, true, statePath(t))
	if err == nil || !strings.Contains(err.Error(), "build tray icon") {
		t.Fatalf("run error = %v, want tray construction failure", err)
	}
	if b.loopStarted {
		t.Error("event loop started despite setup failure")
	}
	if len(b.app.policies) != 0 {
		t.Error("activation policy set after tray failure")
	}
}

func TestAccessoryPolicySetOnceAfterTray(t *testing.T) {
	b, _ := newFakeBuilder()

	if err := run(b, config.Default(), nil, nil, true, statePath(t)); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(b.app.policies) != 1 || b.app.policies[0] != host.PolicyAccessory {
		t.Fatalf("policies = %v, want exactly one accessory", b.app.policies)
	}
	// Policy must come after tray construction and before the loop; the
	// effect list is appended in order and Run flips loopStarted last.
	last := b.app.effects[len(b.app.effects)-1]
	if last != "policy" {
		t.Errorf("last setup effect = %q, want policy", last)
	}
	if !b.loopStarted {
		t.Error("event loop never started")
	}
}

func TestTrayEventsForwardToPositioner(t *testing.T) {
	b, _ := newFakeBuilder()
	sp := statePath(t)

	if err := run(b, config.Default(), nil, nil, true, sp); err != nil {
		t.Fatalf("run: %v", err)
	}
	if b.app.trayHandler == nil {
		t.Fatal("tray handler not bound")
	}

	// The handler must not panic and must accept every event kind.
	for _, kind := range []host.TrayEventKind{host.TrayClick, host.TrayDoubleClick, host.TrayRightClick} {
		b.app.trayHandler(host.TrayEvent{Kind: kind, X: 100, Y: 10})
	}
}

func TestEventLoopFailurePropagates(t *testing.T) {
	b, _ := newFakeBuilder()
	b.runErr = errors.New("display server gone")

	err := run(b, config.Default(), nil, nil, true, statePath(t))
	if err == nil || !strings.Contains(err.Error(), "display server gone") {
		t.Errorf("run error = %v, want event loop failure", err)
	}
}

func TestBadScopeFailsBeforeRegistration(t *testing.T) {
	b, _ := newFakeBuilder()
	cfg := config.Default()
	cfg.HTTPScope = []string{"gopher://nope/*"}

	err := run(b, cfg, nil, nil, true, statePath(t))
	if err == nil {
		t.Fatal("expected scope compile error")
	}
	if len(b.registered) != 0 {
		t.Errorf("integrations registered despite scope error: %v", b.registered)
	}
}

func TestIntegrationServicesBound(t *testing.T) {
	b, _ := newFakeBuilder()

	if err := run(b, config.Default(), nil, nil, true, statePath(t)); err != nil {
		t.Fatalf("run: %v", err)
	}
	// netfetch, deeplink and opener each bind one service.
	if len(b.bound) != 3 {
		t.Errorf("bound %d services, want 3", len(b.bound))
	}
}

func TestLifecycleEventsRecorded(t *testing.T) {
	events, err := eventlog.Open(filepath.Join(t.TempDir(), "events.db"))
	if err != nil {
		t.Fatalf("eventlog.Open: %v", err)
	}
	t.Cleanup(func() { events.Close() })

	b, _ := newFakeBuilder()
	args := []string{"perch://inbox/item?id=5"}
	if err := run(b, config.Default(), args, events, true, statePath(t)); err != nil {
		t.Fatalf("run: %v", err)
	}
	b.onSecond(b.app, nil, "")
	b.app.trayHandler(host.TrayEvent{Kind: host.TrayClick, X: 5, Y: 5})

	entries, err := events.Entries(0)
	if err != nil {
		t.Fatal(err)
	}
	kinds := make(map[string]int)
	for _, e := range entries {
		kinds[e.Kind]++
	}
	if kinds[eventlog.KindDeepLink] != 1 {
		t.Errorf("deeplink events = %d, want 1", kinds[eventlog.KindDeepLink])
	}
	if kinds[eventlog.KindSecondInstance] != 1 {
		t.Errorf("second-instance events = %d, want 1", kinds[eventlog.KindSecondInstance])
	}
	if kinds[eventlog.KindTray] != 1 {
		t.Errorf("tray events = %d, want 1", kinds[eventlog.KindTray])
	}
}
