//go:build !debug

// Package debug provides build-tag gated invariant assertions. With the
// "debug" build tag absent (the default), every call here is a no-op and
// compiles away to nothing.
package debug

func ON() bool { return false }

func Assert(_ bool, _ ...any)            {}
func AssertFunc(_ func() bool, _ ...any) {}
func AssertNoErr(_ error)                {}
func Assertf(_ bool, _ string, _ ...any) {}
