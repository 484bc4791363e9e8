package binding

import (
	"log"
	"os/exec"

	"github.com/tbeaumont/gestured/internal/config"
	"github.com/tbeaumont/gestured/internal/event"
	"github.com/tbeaumont/gestured/internal/geometry"
)

// shapeSamples is the fixed length both angle signatures are resampled to
// before comparison, so traces of different densities compare fairly.
const shapeSamples = 32

// Runner launches a matched command. The default runner detaches the child
// so a slow command never stalls the input-hook thread.
type Runner func(argv []string)

// Resolver matches classified click events against the active bindings and
// launches the command of the first match. It reports whether the original
// OS event should propagate: a match consumes the event.
type Resolver struct {
	run     Runner
	verbose bool
}

// NewResolver creates a resolver using the detached-spawn runner.
func NewResolver(verbose bool) *Resolver {
	return &Resolver{run: spawnDetached, verbose: verbose}
}

// NewResolverWithRunner creates a resolver with a custom runner.
func NewResolverWithRunner(run Runner) *Resolver {
	return &Resolver{run: run}
}

// Resolve implements grab.Resolver.
func (r *Resolver) Resolve(cfg *config.Config, ev event.ClickEvent) bool {
	for i := range cfg.Bindings {
		b := &cfg.Bindings[i]
		if !Matches(&b.Event, ev, cfg.ShapeThreshold) {
			continue
		}
		if r.verbose {
			log.Printf("binding matched: %s -> %v", b.Comment, b.Cmd)
		}
		r.run(b.Cmd)
		return false
	}
	return true
}

// Matches reports whether a classified event satisfies a binding pattern.
// Edges and modifiers compare as sets; a pattern with shapes requires a
// signature within threshold of one of them.
func Matches(pattern *config.EventPattern, ev event.ClickEvent, threshold float64) bool {
	if pattern.EventType != ev.EventType {
		return false
	}
	if pattern.Button != ev.Button {
		return false
	}
	if !sameEdgeSet(pattern.Edges, ev.Edges) {
		return false
	}
	if !sameModifierSet(pattern.Modifiers, ev.Modifiers) {
		return false
	}

	if len(pattern.ShapesAngles) == 0 {
		// A shapeless binding only matches a shapeless event, otherwise a
		// plain-click binding would swallow every drawn gesture.
		return len(ev.ShapeAngles) == 0
	}

	if len(ev.ShapeAngles) == 0 {
		return false
	}
	for _, signature := range pattern.ShapesAngles {
		if shapeMatches(signature, ev.ShapeAngles, threshold) {
			return true
		}
	}
	return false
}

func sameEdgeSet(a []event.Edge, b []event.Edge) bool {
	if len(a) != len(b) {
		return false
	}
	for _, e := range a {
		found := false
		for _, o := range b {
			if e == o {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func sameModifierSet(a []event.Modifier, b []event.Modifier) bool {
	if len(a) != len(b) {
		return false
	}
	for _, m := range a {
		found := false
		for _, o := range b {
			if m == o {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// shapeMatches resamples both signatures to a fixed length and compares the
// mean wrapped angular difference against the threshold.
func shapeMatches(want, got []float64, threshold float64) bool {
	if len(want) == 0 || len(got) == 0 {
		return false
	}

	total := 0.0
	for i := 0; i < shapeSamples; i++ {
		a := sampleAt(want, i)
		b := sampleAt(got, i)
		total += geometry.AngleDiff(a, b)
	}
	return total/shapeSamples <= threshold
}

// sampleAt picks the signature entry covering resample position i of
// shapeSamples, so each entry gets a share of samples proportional to the
// segment it represents.
func sampleAt(signature []float64, i int) float64 {
	return signature[i*len(signature)/shapeSamples]
}

// spawnDetached starts argv and reaps it in the background. The resolver
// returns before the child does anything, keeping the hook thread
// responsive.
func spawnDetached(argv []string) {
	if len(argv) == 0 {
		return
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to start command %v: %v", argv, err)
		return
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			log.Printf("Command %v exited: %v", argv, err)
		}
	}()
}
