//go:build darwin

// Package darwin provides macOS focus observation and border overlays using
// AppKit and the Accessibility API.
// All functionality requires CGo (Objective-C frameworks).
// When CGo is disabled, the package compiles as a no-op stub.
package darwin
