// Package goroutineid identifies the calling goroutine. The bridge uses it to
// recognise a Stop issued from inside its own dispatch goroutine.
package goroutineid

import (
	"bytes"
	"runtime"
	"strconv"
)

// Get returns the goroutine ID of the caller, parsed from the
// "goroutine 123 [running]:" header of runtime.Stack.
func Get() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	id, _ := strconv.ParseUint(string(b), 10, 64)
	return id
}
