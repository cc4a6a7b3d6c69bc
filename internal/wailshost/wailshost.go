// Package wailshost implements the host contract on top of the Wails v2
// runtime and the energye systray. It owns the real window, event loop,
// single-instance lock and tray icon; the bootstrapper only sees the
// interfaces in internal/host.
package wailshost

import (
	"fmt"
	"net/http"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"

	"github.com/perchhq/perch/internal/config"
	"github.com/perchhq/perch/internal/host"
)

// Builder assembles a Wails application. It implements host.Builder.
type Builder struct {
	cfg config.Config
	app *App

	integrations []string
	bound        []any
	uniqueID     string
	onSecond     host.SecondInstanceFunc
	setups       []host.SetupFunc
}

// New returns a builder for the given configuration.
func New(cfg config.Config) *Builder {
	return &Builder{cfg: cfg, app: newApp(cfg)}
}

func (b *Builder) Register(ig host.Integration) error {
	for _, n := range b.integrations {
		if n == ig.Name() {
			return fmt.Errorf("wailshost: integration %q registered twice", n)
		}
	}
	if err := ig.Attach(b); err != nil {
		return fmt.Errorf("wailshost: attach %s: %w", ig.Name(), err)
	}
	b.integrations = append(b.integrations, ig.Name())
	return nil
}

func (b *Builder) Bind(service any) {
	b.bound = append(b.bound, service)
}

func (b *Builder) OnSecondInstance(uniqueID string, fn host.SecondInstanceFunc) {
	b.uniqueID = uniqueID
	b.onSecond = fn
}

func (b *Builder) OnSetup(fn host.SetupFunc) {
	b.setups = append(b.setups, fn)
}

func (b *Builder) Commands(cmds []host.Command) {
	for _, c := range cmds {
		b.bound = append(b.bound, c.Service)
	}
}

// Run executes the setup callbacks and then blocks in the Wails event
// loop until the application exits. A setup failure returns before the
// loop starts.
func (b *Builder) Run() error {
	for _, fn := range b.setups {
		if err := fn(b.app); err != nil {
			return err
		}
	}
	return wails.Run(b.options())
}

// options assembles the Wails run options from everything registered so
// far. Called after setup so the activation policy is known.
func (b *Builder) options() *options.App {
	opts := &options.App{
		Title:     "perch",
		Width:     b.cfg.Window.Width,
		Height:    b.cfg.Window.Height,
		MinWidth:  b.cfg.Window.MinWidth,
		MinHeight: b.cfg.Window.MinHeight,
		// Closing the window hides to the tray; quitting goes through
		// the tray menu.
		HideWindowOnClose: true,
		AssetServer: &assetserver.Options{
			Handler: loaderHandler(),
		},
		BackgroundColour: &options.RGBA{R: 26, G: 27, B: 38, A: 255}, // #1a1b26
		OnStartup:        b.app.startup,
		OnShutdown:       b.app.shutdown,
		Bind:             b.bound,
		Mac: &mac.Options{
			ActivationPolicy: macPolicy(b.app.activationPolicy()),
		},
	}

	if b.onSecond != nil {
		onSecond := b.onSecond
		opts.SingleInstanceLock = &options.SingleInstanceLock{
			UniqueId: b.uniqueID,
			OnSecondInstanceLaunch: func(data options.SecondInstanceData) {
				onSecond(b.app, data.Args, data.WorkingDirectory)
			},
		}
	}
	return opts
}

func macPolicy(p host.ActivationPolicy) mac.ActivationPolicy {
	if p == host.PolicyAccessory {
		return mac.NSApplicationActivationPolicyAccessory
	}
	return mac.NSApplicationActivationPolicyRegular
}

// loaderHandler bootstraps the WebView with an empty page. Startup then
// navigates to the configured app URL so the browser talks to it
// directly — no asset proxying in between.
func loaderHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html><html><body style="background:#1a1b26"></body></html>`))
	})
}
