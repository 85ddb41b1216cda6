package cos

import "unsafe"

// UnsafeB casts a string to a []byte without an allocation. The result
// must not be mutated, and must not outlive the string it came from.
func UnsafeB(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// UnsafeS casts a []byte to a string without an allocation. The caller
// must not mutate b after this call.
func UnsafeS(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}
