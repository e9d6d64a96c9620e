//go:build !js
// +build !js

// Command termsim previews the effect engine in a terminal. It simulates a
// device from flags and shows the policy decision, the equalizer and the
// hidden page's reveal sequence as they run.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/codelinechef/portfolio-fx/capability"
	"github.com/codelinechef/portfolio-fx/common"
)

func run(screen tcell.Screen, p *Preview) {
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					return
				}
				if ev.Key() == tcell.KeyRune && !p.Key(ev.Rune()) {
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			p.Step()
			p.Draw(screen)
		}
	}
}

func main() {
	cores := flag.Int("cores", 8, "simulated logical core count")
	memory := flag.Float64("memory", 8, "simulated device memory in GB")
	gpu := flag.Bool("gpu", true, "simulate WebGL support")
	reduced := flag.Bool("reduced", false, "start with reduced motion")
	disable := flag.Bool("disable", false, "start with all effects disabled")
	debug := flag.Bool("debug", false, "debug logging to termsim.log")
	flag.Parse()

	if *debug {
		f, err := os.Create("termsim.log")
		if err == nil {
			defer f.Close()
			common.SetLogOutput(f)
			common.SetDebug(true)
		}
	} else {
		common.SetLogOutput(io.Discard)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "termsim: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "termsim: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	p := NewPreview(Options{
		Env:           capability.StaticEnv{Graphics: *gpu, CoreCount: *cores, Memory: *memory, NativeDPR: 2},
		ReducedMotion: *reduced,
		DisableAll:    *disable,
	})
	defer p.Close()
	run(screen, p)
}
