//go:build js
// +build js

package page

import (
	"github.com/gopherjs/gopherjs/js"

	"github.com/codelinechef/portfolio-fx/common"
	"github.com/codelinechef/portfolio-fx/sequence"
)

// Element id suffixes the DOM view writes into, after the view's prefix.
// Missing elements are skipped.
const (
	IDTransition = "transition"
	IDStatus     = "status"
	IDFeatures   = "features"
	IDLogs       = "logs"
	IDLocation   = "location"
	IDSignature  = "signature"
	IDCountdown  = "countdown"
	IDExit       = "exit"
)

// Id prefixes of the two places the reveal runs.
const (
	RedZonePrefix = "rz"
	FYIPrefix     = "fyi"
)

// DOMView renders the page into prefixed element ids, e.g. "rz-status".
type DOMView struct {
	doc    *js.Object
	prefix string
}

// NewDOMView binds to the current document.
func NewDOMView(prefix string) *DOMView {
	return &DOMView{doc: js.Global.Get("document"), prefix: prefix}
}

func (v *DOMView) el(id string) *js.Object {
	e := v.doc.Call("getElementById", v.prefix+"-"+id)
	if !common.Defined(e) {
		return nil
	}
	return e
}

func (v *DOMView) text(id, s string) {
	if e := v.el(id); e != nil {
		e.Set("textContent", s)
	}
}

func (v *DOMView) show(id string) {
	if e := v.el(id); e != nil {
		e.Get("classList").Call("remove", "hidden")
	}
}

func (v *DOMView) SetTransition(message string) {
	v.show(IDTransition)
	v.text(IDTransition, message)
}

func (v *DOMView) SetStatus(text string, caret bool) {
	if caret {
		text += sequence.Caret
	}
	if e := v.el(IDTransition); e != nil {
		e.Get("classList").Call("add", "hidden")
	}
	v.text(IDStatus, text)
}

func (v *DOMView) ShowFeatures(rows []FeatureRow, gpu bool) {
	host := v.el(IDFeatures)
	if host == nil {
		return
	}
	active, idle := 1, 2
	if !gpu {
		active, idle = 2, 1
	}
	for _, r := range rows {
		tr := v.doc.Call("createElement", "tr")
		for i, cell := range []string{r.Feature, r.GPU, r.CPU} {
			td := v.doc.Call("createElement", "td")
			td.Set("textContent", cell)
			switch i {
			case active:
				td.Get("classList").Call("add", "active")
			case idle:
				td.Get("classList").Call("add", "idle")
			}
			tr.Call("appendChild", td)
		}
		host.Call("appendChild", tr)
	}
	v.show(IDFeatures)
}

func (v *DOMView) ShowLogs() { v.show(IDLogs) }

func (v *DOMView) AppendLog(line LogLine) {
	host := v.el(IDLogs)
	if host == nil {
		return
	}
	row := v.doc.Call("createElement", "div")
	tag := v.doc.Call("createElement", "span")
	tag.Set("className", "log-"+line.Type)
	tag.Set("textContent", "["+line.Type+"] ")
	msg := v.doc.Call("createElement", "span")
	msg.Set("textContent", line.Message)
	row.Call("appendChild", tag)
	row.Call("appendChild", msg)
	host.Call("appendChild", row)
}

func (v *DOMView) ShowLocation(lines []string) {
	host := v.el(IDLocation)
	if host == nil {
		return
	}
	for _, l := range lines {
		p := v.doc.Call("createElement", "p")
		p.Set("textContent", l)
		host.Call("appendChild", p)
	}
	v.show(IDLocation)
}

func (v *DOMView) ShowSignature(text string) {
	v.text(IDSignature, text)
	v.show(IDSignature)
}

func (v *DOMView) SetCountdown(text string) { v.text(IDCountdown, text) }

func (v *DOMView) ShowExit() { v.show(IDExit) }

// BindExit wires the exit control to p and returns the unbind function.
func (v *DOMView) BindExit(p *Page) func() {
	btn := v.el(IDExit)
	if btn == nil {
		return func() {}
	}
	onClick := func() { p.Exit() }
	btn.Call("addEventListener", "click", onClick)
	return func() { btn.Call("removeEventListener", "click", onClick) }
}
