package main

import (
	"runtime"

	"github.com/mj1618/focus-border/cmd"
)

// The macOS focus source pumps the process main run loop, which only works
// from the main thread. Locking here pins the main goroutine to it before
// cobra runs any command.
func init() {
	runtime.LockOSThread()
}

func main() {
	cmd.Execute()
}
