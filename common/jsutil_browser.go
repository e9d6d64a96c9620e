//go:build js
// +build js

package common

import (
	"fmt"

	"github.com/gopherjs/gopherjs/js"
)

// Try runs fn and converts a thrown JavaScript exception (or Go panic) into
// an error so capability probes can fail safe.
func Try(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if jsErr, ok := r.(*js.Error); ok {
				err = fmt.Errorf("js exception: %s", jsErr.Error())
				return
			}
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	fn()
	return nil
}

// Defined reports whether a JS value is neither null nor undefined.
func Defined(v *js.Object) bool {
	return v != nil && v != js.Undefined
}
