//go:build ios || android

package platform

// Desktop reports whether this build targets a desktop execution context.
const Desktop = false
