//go:build js
// +build js

package audio

import (
	"strings"

	"github.com/gopherjs/gopherjs/js"

	"github.com/codelinechef/portfolio-fx/common"
)

// WebAudio is the browser backend. Music beds stream through media elements
// routed into the audio graph; synthesized one-shots are decoded into
// buffers and replayed from a fresh buffer source each time.
type WebAudio struct {
	ctx        *js.Object
	masterGain *js.Object
}

// NewWebAudio returns an unopened Web Audio backend.
func NewWebAudio() *WebAudio {
	return &WebAudio{}
}

// Open creates the AudioContext.
func (w *WebAudio) Open() error {
	if w.ctx != nil {
		return nil
	}
	audioCtx := js.Global.Get("AudioContext")
	if !common.Defined(audioCtx) {
		audioCtx = js.Global.Get("webkitAudioContext")
	}
	if !common.Defined(audioCtx) {
		return ErrUnavailable
	}
	return common.Try(func() {
		w.ctx = audioCtx.New()
		w.masterGain = w.ctx.Call("createGain")
		w.masterGain.Call("connect", w.ctx.Get("destination"))
	})
}

// resume wakes a context the browser left suspended until a user gesture.
func (w *WebAudio) resume() {
	if w.ctx != nil && w.ctx.Get("state").String() == "suspended" {
		w.ctx.Call("resume")
	}
}

// Load implements Backend.
func (w *WebAudio) Load(name, src string, loop bool) (Channel, error) {
	if w.ctx == nil {
		return nil, ErrUnavailable
	}
	var ch Channel
	err := common.Try(func() {
		gain := w.ctx.Call("createGain")
		panner := w.ctx.Call("createStereoPanner")
		gain.Call("connect", panner)
		panner.Call("connect", w.masterGain)
		if strings.HasPrefix(src, "data:") && !loop {
			b := &bufferChannel{w: w, name: name, gain: gain, panner: panner}
			b.fetch(src)
			ch = b
			return
		}
		el := js.Global.Get("Audio").New(src)
		el.Set("loop", loop)
		el.Set("crossOrigin", "anonymous")
		el.Set("preload", "auto")
		w.ctx.Call("createMediaElementSource", el).Call("connect", gain)
		ch = &streamChannel{w: w, name: name, el: el, gain: gain, panner: panner}
	})
	return ch, err
}

// Analyse implements Backend.
func (w *WebAudio) Analyse(ch Channel, fftSize int) (Analyser, error) {
	sc, ok := ch.(*streamChannel)
	if !ok || w.ctx == nil {
		return nil, ErrUnavailable
	}
	var a *analyser
	err := common.Try(func() {
		node := w.ctx.Call("createAnalyser")
		node.Set("fftSize", fftSize)
		sc.panner.Call("connect", node)
		bins := node.Get("frequencyBinCount").Int()
		a = &analyser{node: node, buf: js.Global.Get("Uint8Array").New(bins), bins: bins}
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Suspend implements Backend.
func (w *WebAudio) Suspend() {
	if w.ctx != nil {
		_ = common.Try(func() { w.ctx.Call("suspend") })
	}
}

// Resume implements Backend.
func (w *WebAudio) Resume() {
	if w.ctx != nil {
		_ = common.Try(func() { w.ctx.Call("resume") })
	}
}

// Close implements Backend.
func (w *WebAudio) Close() {
	if w.ctx != nil {
		_ = common.Try(func() { w.ctx.Call("close") })
		w.ctx = nil
	}
}

type streamChannel struct {
	w       *WebAudio
	name    string
	el      *js.Object
	gain    *js.Object
	panner  *js.Object
	playing bool
}

func (c *streamChannel) Play() {
	c.w.resume()
	c.playing = true
	p := c.el.Call("play")
	if common.Defined(p) {
		p.Call("catch", func(err *js.Object) {
			// Autoplay policy: wait for the next gesture.
			c.playing = false
			log := common.Component("audio")
			log.Debug().Str("channel", c.name).Str("err", err.String()).Msg("play rejected")
		})
	}
}

func (c *streamChannel) Restart() {
	c.el.Set("currentTime", 0)
	c.Play()
}

func (c *streamChannel) Pause() {
	c.playing = false
	c.el.Call("pause")
}

func (c *streamChannel) Playing() bool       { return c.playing }
func (c *streamChannel) SetVolume(v float64) { c.gain.Get("gain").Set("value", v) }
func (c *streamChannel) SetPan(p float64)    { c.panner.Get("pan").Set("value", clamp(p, -1, 1)) }

type bufferChannel struct {
	w      *WebAudio
	name   string
	buffer *js.Object
	source *js.Object
	gain   *js.Object
	panner *js.Object
}

// fetch decodes a data URL into the channel's buffer.
func (c *bufferChannel) fetch(dataURL string) {
	js.Global.Call("fetch", dataURL).Call("then", func(response *js.Object) *js.Object {
		return response.Call("arrayBuffer")
	}).Call("then", func(arrayBuffer *js.Object) *js.Object {
		return c.w.ctx.Call("decodeAudioData", arrayBuffer)
	}).Call("then", func(audioBuffer *js.Object) {
		c.buffer = audioBuffer
	}).Call("catch", func(err *js.Object) {
		log := common.Component("audio")
		log.Debug().Str("channel", c.name).Str("err", err.String()).Msg("decode failed")
	})
}

func (c *bufferChannel) Play() { c.Restart() }

func (c *bufferChannel) Restart() {
	if c.buffer == nil || c.w.ctx == nil {
		return
	}
	c.w.resume()
	c.stop()
	source := c.w.ctx.Call("createBufferSource")
	source.Set("buffer", c.buffer)
	source.Call("connect", c.gain)
	source.Call("start", 0)
	c.source = source
}

func (c *bufferChannel) stop() {
	if c.source != nil {
		_ = common.Try(func() { c.source.Call("stop") })
		c.source = nil
	}
}

func (c *bufferChannel) Pause()              { c.stop() }
func (c *bufferChannel) Playing() bool       { return false }
func (c *bufferChannel) SetVolume(v float64) { c.gain.Get("gain").Set("value", v) }
func (c *bufferChannel) SetPan(p float64)    { c.panner.Get("pan").Set("value", clamp(p, -1, 1)) }

type analyser struct {
	node *js.Object
	buf  *js.Object
	bins int
}

func (a *analyser) Bins() int { return a.bins }

func (a *analyser) Read(dst []uint8) {
	a.node.Call("getByteFrequencyData", a.buf)
	for i := 0; i < len(dst) && i < a.bins; i++ {
		dst[i] = uint8(a.buf.Index(i).Int())
	}
}
