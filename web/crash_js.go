//go:build wasm

package web

import (
	"fmt"
	"runtime/debug"
	"syscall/js"
)

// LogCrash writes a recovered panic and its stack to the browser console,
// then re-panics; execution does not continue past a crash. Nil values
// pass through without logging
func LogCrash(r any) {
	if r == nil {
		return
	}

	console := js.Global().Get("console")
	console.Call("error", fmt.Sprintf("CRASH: %v", r))
	console.Call("error", fmt.Sprintf("Stack:\n%s", debug.Stack()))

	panic(r)
}
