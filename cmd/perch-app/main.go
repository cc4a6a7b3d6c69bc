package main

import (
	"fmt"
	"os"

	"github.com/perchhq/perch/internal/bootstrap"
	"github.com/perchhq/perch/internal/config"
	"github.com/perchhq/perch/internal/deeplink"
	"github.com/perchhq/perch/internal/eventlog"
	"github.com/perchhq/perch/internal/paths"
	"github.com/perchhq/perch/internal/platform"
	"github.com/perchhq/perch/internal/wailshost"
)

// Set via -ldflags at release time.
var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	configPath := ""
	doRegister := false
	doUnregister := false

	args := os.Args[1:]
	rest := args[:0]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--config", "-c":
			if i+1 < len(args) {
				configPath = args[i+1]
				i++
			}
		case "--register-url-scheme":
			doRegister = true
		case "--unregister-url-scheme":
			doUnregister = true
		case "--version", "-v":
			fmt.Printf("perch %s (built %s)\n", version, buildDate)
			return
		default:
			rest = append(rest, args[i])
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "perch: %v\n", err)
		os.Exit(1)
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "perch: %v\n", err)
		os.Exit(1)
	}

	// Maintenance flags run after config load so the scheme name comes
	// from the same file the app itself would use.
	if doRegister || doUnregister {
		if err := maintainScheme(cfg.Scheme, doRegister); err != nil {
			fmt.Fprintf(os.Stderr, "perch: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var events *eventlog.Store
	if cfg.EventLog {
		events, err = eventlog.Open(paths.EventDBPath())
		if err != nil {
			// Degraded but usable: the app runs without a history.
			fmt.Fprintf(os.Stderr, "perch: event log: %v\n", err)
		}
		defer events.Close()
	}
	events.Log(eventlog.KindStart, version)

	// Keep the URL-scheme handler pointing at the current binary so
	// deep links survive the app being moved or updated. Best effort;
	// an elevated install may own the registration instead.
	if platform.Desktop {
		if exe, err := os.Executable(); err == nil {
			_ = deeplink.RegisterScheme(cfg.Scheme, exe)
		}
	}

	if err := bootstrap.Run(wailshost.New(cfg), cfg, rest, events); err != nil {
		fmt.Fprintf(os.Stderr, "perch: %v\n", err)
		os.Exit(1)
	}
}

// maintainScheme registers or removes the OS handler for cfg.Scheme and
// reports what it did on stdout.
func maintainScheme(scheme string, register bool) error {
	if !register {
		if err := deeplink.UnregisterScheme(scheme); err != nil {
			return err
		}
		fmt.Printf("removed %s:// handler\n", scheme)
		return nil
	}
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolving executable path: %w", err)
	}
	if err := deeplink.RegisterScheme(scheme, exe); err != nil {
		return err
	}
	fmt.Printf("registered %s:// handler for %s\n", scheme, exe)
	return nil
}
