//go:build windows

// Package windows provides Windows focus observation through WinEvent hooks.
// It uses syscall directly and needs no cgo. Border overlays are not
// available on Windows.
package windows
