//go:build !windows

package deeplink

import "fmt"

// RegisterScheme registers the scheme:// URI handler with the OS.
// Not supported outside Windows; macOS and Linux take the scheme from the
// application bundle / .desktop file at install time.
func RegisterScheme(scheme, exePath string) error {
	return fmt.Errorf("runtime scheme registration is only supported on Windows")
}

// UnregisterScheme removes the scheme:// URI handler.
// Not supported outside Windows.
func UnregisterScheme(scheme string) error {
	return fmt.Errorf("runtime scheme registration is only supported on Windows")
}

// IsSchemeRegistered checks whether the scheme:// handler is registered.
// Always returns false outside Windows.
func IsSchemeRegistered(scheme string) bool { return false }
