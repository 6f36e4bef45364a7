//go:build darwin

package main

import _ "github.com/mj1618/focus-border/internal/platform/darwin"
