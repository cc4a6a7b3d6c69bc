//go:build windows

package deeplink

import (
	"fmt"

	"golang.org/x/sys/windows/registry"
)

func schemeKey(scheme string) string {
	return `Software\Classes\` + scheme
}

// RegisterScheme registers the scheme:// URI handler in the current
// user's registry. When Windows activates such a URI, it launches exePath
// with the URI as an argument.
func RegisterScheme(scheme, exePath string) error {
	// Create the scheme key with the URL Protocol marker.
	k, _, err := registry.CreateKey(registry.CURRENT_USER, schemeKey(scheme), registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("create scheme key: %w", err)
	}
	if err := k.SetStringValue("", fmt.Sprintf("URL:%s Protocol", scheme)); err != nil {
		k.Close()
		return fmt.Errorf("set description: %w", err)
	}
	if err := k.SetStringValue("URL Protocol", ""); err != nil {
		k.Close()
		return fmt.Errorf("set URL Protocol: %w", err)
	}
	k.Close()

	// Create the shell\open\command key with the launch command.
	cmdKey, _, err := registry.CreateKey(registry.CURRENT_USER, schemeKey(scheme)+`\shell\open\command`, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("create command key: %w", err)
	}
	defer cmdKey.Close()

	cmd := fmt.Sprintf(`"%s" "%%1"`, exePath)
	if err := cmdKey.SetStringValue("", cmd); err != nil {
		return fmt.Errorf("set command: %w", err)
	}
	return nil
}

// UnregisterScheme removes the scheme:// URI handler from the current
// user's registry.
func UnregisterScheme(scheme string) error {
	return registry.DeleteKey(registry.CURRENT_USER, schemeKey(scheme))
}

// IsSchemeRegistered checks whether the scheme:// handler is registered
// in the current user's registry.
func IsSchemeRegistered(scheme string) bool {
	k, err := registry.OpenKey(registry.CURRENT_USER, schemeKey(scheme)+`\shell\open\command`, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	k.Close()
	return true
}
