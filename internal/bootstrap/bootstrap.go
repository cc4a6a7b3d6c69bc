// Package bootstrap assembles the perch application: it registers the
// fixed set of platform integrations in a fixed order, wires their
// startup-time cooperation, and hands control to the host event loop.
// There is no algorithmic logic here — only composition and ordering.
package bootstrap

import (
	"fmt"
	"os"

	"github.com/perchhq/perch/internal/config"
	"github.com/perchhq/perch/internal/deeplink"
	"github.com/perchhq/perch/internal/eventlog"
	"github.com/perchhq/perch/internal/host"
	"github.com/perchhq/perch/internal/netfetch"
	"github.com/perchhq/perch/internal/opener"
	"github.com/perchhq/perch/internal/paths"
	"github.com/perchhq/perch/internal/platform"
	"github.com/perchhq/perch/internal/positioner"
	"github.com/perchhq/perch/internal/singleinst"
)

// Run composes the application on the given builder and blocks in the
// host event loop until the application exits. args are the process
// launch arguments without argv[0] (scanned for deep links). A non-nil
// error means startup failed; the caller treats it as fatal.
func Run(b host.Builder, cfg config.Config, args []string, events *eventlog.Store) error {
	return run(b, cfg, args, events, platform.Desktop, paths.StatePath())
}

// run is Run with the static platform flag and state path injected, so
// tests can exercise both platform shapes from one build.
func run(b host.Builder, cfg config.Config, args []string, events *eventlog.Store, desktop bool, statePath string) error {
	// Outbound network access is available on every platform and must
	// exist before the event loop handles the first launch.
	net, err := netfetch.New(cfg.HTTPScope)
	if err != nil {
		return fmt.Errorf("network integration: %w", err)
	}
	if err := b.Register(net); err != nil {
		return err
	}

	if desktop {
		guard := singleinst.New(cfg.InstanceID, func(app host.App, _ []string, _ string) {
			// Launch arguments and working directory of the second
			// instance are intentionally discarded: duplicate launches
			// only refocus the running window.
			events.Log(eventlog.KindSecondInstance, "")
			focusMain(app)
		})
		if err := b.Register(guard); err != nil {
			return err
		}
	}

	b.OnSetup(func(app host.App) error {
		if !desktop {
			return nil
		}

		pos := positioner.New(statePath)
		if err := pos.Install(app); err != nil {
			// Position memory is a comfort feature; losing it must not
			// block startup.
			fmt.Fprintf(os.Stderr, "perch: positioner: %v\n", err)
		}

		if err := app.NewTray(func(ev host.TrayEvent) {
			events.Log(eventlog.KindTray, ev.Kind.String())
			pos.OnTrayEvent(app, ev)
		}); err != nil {
			events.Log(eventlog.KindSetupError, err.Error())
			return fmt.Errorf("build tray icon: %w", err)
		}

		// Tray-resident app: no dock/taskbar presence.
		app.SetActivationPolicy(host.PolicyAccessory)
		return nil
	})

	links := deeplink.New(cfg.Scheme, args)
	if err := b.Register(links); err != nil {
		return err
	}
	for _, l := range links.Links() {
		events.Log(eventlog.KindDeepLink, l.Raw)
	}

	if err := b.Register(opener.New()); err != nil {
		return err
	}

	// No app-level commands are exposed to the frontend yet; the
	// integrations bind their own services.
	b.Commands(nil)

	if err := b.Run(); err != nil {
		return fmt.Errorf("running application: %w", err)
	}
	return nil
}

// focusMain locates the main window and gives it input focus. A duplicate
// launch arriving before the main window exists is a construction defect,
// not a recoverable race, so the missing-window path crashes.
func focusMain(app host.App) {
	w, ok := app.Window(host.MainWindow)
	if !ok {
		panic("no main window")
	}
	_ = w.Focus()
}
