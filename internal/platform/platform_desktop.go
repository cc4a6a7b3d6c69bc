//go:build !ios && !android

package platform

// Desktop reports whether this build targets a desktop execution context.
// Resolved at build time so the bootstrapper's conditionals compile away.
const Desktop = true
