// Package must contains simple functions that panic on errors.
//
// It should only be used in tests and the rare places where an error is
// provably impossible.
package must

import "os"

// OK panics if err is not nil. It is intended for functions that return just
// an error.
func OK(err error) {
	if err != nil {
		panic(err)
	}
}

// OK1 panics if err is not nil, and returns the other value otherwise. It is
// intended for functions that return one value and an error.
func OK1[T any](v T, err error) T {
	OK(err)
	return v
}

// OK2 panics if err is not nil, and returns the other two values otherwise.
// It is intended for functions that return two values and an error.
func OK2[T1, T2 any](v1 T1, v2 T2, err error) (T1, T2) {
	OK(err)
	return v1, v2
}

// Pipe wraps os.Pipe.
func Pipe() (*os.File, *os.File) {
	return OK2(os.Pipe())
}

// WriteFile wraps os.WriteFile, using 0o644 for the permission bits.
func WriteFile(name, data string) {
	OK(os.WriteFile(name, []byte(data), 0o644))
}

// MkdirAll wraps os.MkdirAll, using 0o700 for the permission bits.
func MkdirAll(name string) {
	OK(os.MkdirAll(name, 0o700))
}
