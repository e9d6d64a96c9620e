//go:build js
// +build js

package policy

import (
	"github.com/gopherjs/gopherjs/js"

	"github.com/codelinechef/portfolio-fx/common"
)

// WatchVisibility mirrors document.visibilityState into visible until the
// returned function is called.
func WatchVisibility(visible *common.Subject[bool]) func() {
	doc := js.Global.Get("document")
	read := func() bool { return doc.Get("visibilityState").String() != "hidden" }
	visible.Set(read())
	handler := func() { visible.Set(read()) }
	doc.Call("addEventListener", "visibilitychange", handler)
	return func() { doc.Call("removeEventListener", "visibilitychange", handler) }
}
