//go:build debug

// Package debug provides build-tag gated invariant assertions. With the
// "debug" build tag present, each Assert panics on failure instead of
// being compiled away. No package of this module calls these
// assertions yet.
package debug

import "fmt"

func ON() bool { return true }

func Assert(cond bool, args ...any) {
	if cond {
		return
	}
	panic(fmt.Sprintf("assertion failed: %v", args))
}

func AssertFunc(f func() bool, args ...any) {
	if f() {
		return
	}
	panic(fmt.Sprintf("assertion failed: %v", args))
}

func AssertNoErr(err error) {
	if err == nil {
		return
	}
	panic(fmt.Sprintf("assertion failed: unexpected error: %v", err))
}

func Assertf(cond bool, format string, args ...any) {
	if cond {
		return
	}
	panic(fmt.Sprintf("assertion failed: "+format, args...))
}
