// Package host defines the contract between the application bootstrapper
// and the GUI runtime that owns the event loop. The bootstrapper only ever
// talks to these interfaces; the production implementation lives in
// internal/wailshost, and tests substitute in-memory fakes.
package host

// MainWindow is the well-known name the application's main window is
// registered under. The bootstrapper depends on this contract but does
// not enforce it.
const MainWindow = "main"

// ActivationPolicy controls how the OS shell presents the application.
type ActivationPolicy int

const (
	// PolicyRegular is the default foreground presence (dock/taskbar entry).
	PolicyRegular ActivationPolicy = iota
	// PolicyAccessory is a background-utility presence: tray icon only,
	// no dock/taskbar chrome.
	PolicyAccessory
)

// TrayEventKind identifies an interaction with the tray icon.
type TrayEventKind int

const (
	TrayClick TrayEventKind = iota
	TrayDoubleClick
	TrayRightClick
)

func (k TrayEventKind) String() string {
	switch k {
	case TrayClick:
		return "click"
	case TrayDoubleClick:
		return "double-click"
	case TrayRightClick:
		return "right-click"
	}
	return "unknown"
}

// TrayEvent is one interaction with the tray icon. X and Y are the screen
// coordinates of the icon at the time of the event, when the platform
// reports them; both are zero otherwise.
type TrayEvent struct {
	Kind TrayEventKind
	X    int
	Y    int
}

// Window is a handle to a named application window. Implementations may
// defer operations until the underlying window exists.
type Window interface {
	// Focus brings the window to the foreground and gives it input focus.
	Focus() error
	Show()
	Hide()
	Position() (x, y int)
	SetPosition(x, y int)
	Size() (w, h int)
}

// App is the live application handle passed to setup and event callbacks.
// It is owned by the host runtime for the process lifetime; callers borrow
// it transiently and must not retain it past the callback.
type App interface {
	// Window returns the window registered under name, or false if no
	// window with that name exists. Lookups are fresh on every call.
	Window(name string) (Window, bool)
	// NewTray builds the application's tray icon and binds onEvent to
	// every tray interaction. It may be called at most once.
	NewTray(onEvent func(TrayEvent)) error
	SetActivationPolicy(p ActivationPolicy)
}

// Integration is a self-contained unit of platform behavior installed into
// the builder before the event loop starts.
type Integration interface {
	// Name identifies the integration; names must be unique per builder.
	Name() string
	// Attach wires the integration into the builder. Called exactly once,
	// during Builder.Register.
	Attach(b Builder) error
}

// Command is a single frontend-invocable operation.
type Command struct {
	Name string
	// Service is the value whose exported methods implement the command.
	Service any
}

// SecondInstanceFunc is invoked when a duplicate launch attempt is
// redirected into the running instance. args and cwd describe the second
// launch's command line and working directory.
type SecondInstanceFunc func(app App, args []string, cwd string)

// SetupFunc runs once after the builder finalizes, before the event loop
// starts. A non-nil error aborts startup.
type SetupFunc func(app App) error

// Builder assembles the application before handing control to the host
// event loop.
type Builder interface {
	// Register installs an integration. Registration order is preserved
	// and observable; registering two integrations with the same name is
	// an error.
	Register(ig Integration) error
	// Bind exposes a service's exported methods to the frontend layer.
	// Integrations use this to contribute their own capabilities.
	Bind(service any)
	// OnSecondInstance arms the single-instance guard with the given
	// unique ID and duplicate-launch callback.
	OnSecondInstance(uniqueID string, fn SecondInstanceFunc)
	// OnSetup registers the deferred setup callback.
	OnSetup(fn SetupFunc)
	// Commands registers the application's invocable command table.
	Commands(cmds []Command)
	// Run finalizes the builder, runs setup callbacks, then blocks in the
	// host event loop until the application exits. A setup error is
	// returned before the event loop starts.
	Run() error
}
