//go:build windows

package main

import _ "github.com/mj1618/focus-border/internal/platform/windows"
