//go:build js
// +build js

package equalizer

import (
	"fmt"

	"github.com/gopherjs/gopherjs/js"

	"github.com/codelinechef/portfolio-fx/common"
)

// Mount fills the element with one div per bar and keeps their heights in
// step with b. The returned function removes the bars.
func Mount(b *Bars, elementID string) func() {
	doc := js.Global.Get("document")
	host := doc.Call("getElementById", elementID)
	if !common.Defined(host) {
		return func() {}
	}
	bars := make([]*js.Object, len(b.heights))
	for i := range bars {
		el := doc.Call("createElement", "div")
		el.Set("className", "eq-bar")
		el.Get("style").Set("height", "0%")
		host.Call("appendChild", el)
		bars[i] = el
	}
	b.OnChange = func(h []float64) {
		for i, el := range bars {
			if i < len(h) {
				el.Get("style").Set("height", fmt.Sprintf("%.1f%%", h[i]))
			}
		}
	}
	return func() {
		b.OnChange = nil
		for _, el := range bars {
			host.Call("removeChild", el)
		}
	}
}
