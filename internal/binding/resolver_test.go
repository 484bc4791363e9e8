package binding

import (
	"math"
	"testing"

	"github.com/tbeaumont/gestured/internal/config"
	"github.com/tbeaumont/gestured/internal/event"
	"github.com/tbeaumont/gestured/internal/geometry"
)

func testConfig(bindings ...config.Binding) *config.Config {
	return &config.Config{
		ShapeButton:    event.ButtonRight,
		ShapeThreshold: 0.35,
		Bindings:       bindings,
	}
}

func TestResolveRunsFirstMatch(t *testing.T) {
	var ran [][]string
	r := NewResolverWithRunner(func(argv []string) { ran = append(ran, argv) })

	cfg := testConfig(
		config.Binding{
			Comment: "first",
			Event:   config.EventPattern{Button: event.ButtonLeft, EventType: event.Press},
			Cmd:     config.CmdLine{"first-cmd"},
		},
		config.Binding{
			Comment: "shadowed",
			Event:   config.EventPattern{Button: event.ButtonLeft, EventType: event.Press},
			Cmd:     config.CmdLine{"second-cmd"},
		},
	)

	propagate := r.Resolve(cfg, event.ClickEvent{Button: event.ButtonLeft, EventType: event.Press})

	if propagate {
		t.Error("Resolve() = true on a match, want false (consume)")
	}
	if len(ran) != 1 || ran[0][0] != "first-cmd" {
		t.Errorf("ran = %v, want only first-cmd", ran)
	}
}

func TestResolveNoMatchPropagates(t *testing.T) {
	var ran [][]string
	r := NewResolverWithRunner(func(argv []string) { ran = append(ran, argv) })

	cfg := testConfig(config.Binding{
		Event: config.EventPattern{Button: event.ButtonMiddle, EventType: event.Press},
		Cmd:   config.CmdLine{"never"},
	})

	propagate := r.Resolve(cfg, event.ClickEvent{Button: event.ButtonLeft, EventType: event.Press})

	if !propagate {
		t.Error("Resolve() = false without a match, want true")
	}
	if len(ran) != 0 {
		t.Errorf("ran = %v, want nothing", ran)
	}
}

func TestMatchesEdgeAndModifierSets(t *testing.T) {
	pattern := &config.EventPattern{
		Button:    event.ButtonLeft,
		Edges:     []event.Edge{event.EdgeTop, event.EdgeLeft},
		Modifiers: []event.Modifier{event.ModControlLeft},
		EventType: event.Press,
	}

	cases := []struct {
		name string
		ev   event.ClickEvent
		want bool
	}{
		{
			"exact",
			event.ClickEvent{
				Button:    event.ButtonLeft,
				Edges:     []event.Edge{event.EdgeTop, event.EdgeLeft},
				Modifiers: []event.Modifier{event.ModControlLeft},
				EventType: event.Press,
			},
			true,
		},
		{
			"edges order-insensitive",
			event.ClickEvent{
				Button:    event.ButtonLeft,
				Edges:     []event.Edge{event.EdgeLeft, event.EdgeTop},
				Modifiers: []event.Modifier{event.ModControlLeft},
				EventType: event.Press,
			},
			true,
		},
		{
			"missing edge",
			event.ClickEvent{
				Button:    event.ButtonLeft,
				Edges:     []event.Edge{event.EdgeTop},
				Modifiers: []event.Modifier{event.ModControlLeft},
				EventType: event.Press,
			},
			false,
		},
		{
			"extra modifier",
			event.ClickEvent{
				Button:    event.ButtonLeft,
				Edges:     []event.Edge{event.EdgeTop, event.EdgeLeft},
				Modifiers: []event.Modifier{event.ModControlLeft, event.ModAlt},
				EventType: event.Press,
			},
			false,
		},
		{
			"wrong phase",
			event.ClickEvent{
				Button:    event.ButtonLeft,
				Edges:     []event.Edge{event.EdgeTop, event.EdgeLeft},
				Modifiers: []event.Modifier{event.ModControlLeft},
				EventType: event.Release,
			},
			false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Matches(pattern, tc.ev, 0.35); got != tc.want {
				t.Errorf("Matches() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMatchesShapeSignature(t *testing.T) {
	// An L shape: right then down.
	trace := config.Trace{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 50}, {X: 100, Y: 100}}
	pattern := &config.EventPattern{
		Button:       event.ButtonRight,
		EventType:    event.Release,
		ShapesXY:     []config.Trace{trace},
		ShapesAngles: [][]float64{geometry.Angles(trace)},
	}

	same := geometry.Angles([]geometry.Point{
		{X: 10, Y: 10}, {X: 110, Y: 10}, {X: 210, Y: 10}, {X: 210, Y: 110}, {X: 210, Y: 210},
	})
	ev := event.ClickEvent{Button: event.ButtonRight, EventType: event.Release, ShapeAngles: same}
	if !Matches(pattern, ev, 0.35) {
		t.Error("translated+scaled copy of the shape did not match")
	}

	// The mirror image (right then up) has a different signature.
	mirror := geometry.Angles([]geometry.Point{
		{X: 0, Y: 100}, {X: 50, Y: 100}, {X: 100, Y: 100}, {X: 100, Y: 50}, {X: 100, Y: 0},
	})
	ev.ShapeAngles = mirror
	if Matches(pattern, ev, 0.35) {
		t.Error("mirrored shape matched")
	}
}

func TestShapeBindingRequiresShape(t *testing.T) {
	trace := config.Trace{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}}
	pattern := &config.EventPattern{
		Button:       event.ButtonRight,
		EventType:    event.Release,
		ShapesAngles: [][]float64{geometry.Angles(trace)},
	}

	ev := event.ClickEvent{Button: event.ButtonRight, EventType: event.Release}
	if Matches(pattern, ev, 0.35) {
		t.Error("shapeless release matched a shape binding")
	}
}

func TestShapelessBindingIgnoresGestures(t *testing.T) {
	pattern := &config.EventPattern{Button: event.ButtonRight, EventType: event.Release}

	ev := event.ClickEvent{
		Button:      event.ButtonRight,
		EventType:   event.Release,
		ShapeAngles: []float64{0, math.Pi / 2},
	}
	if Matches(pattern, ev, 0.35) {
		t.Error("drawn gesture matched a plain-click binding")
	}
}

func TestShapeMatchesDifferentDensities(t *testing.T) {
	// The same path sampled coarsely and densely should still match.
	coarse := geometry.Angles([]geometry.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}})

	var densePoints []geometry.Point
	for x := 0; x <= 100; x += 10 {
		densePoints = append(densePoints, geometry.Point{X: x, Y: 0})
	}
	for y := 10; y <= 100; y += 10 {
		densePoints = append(densePoints, geometry.Point{X: 100, Y: y})
	}
	dense := geometry.Angles(densePoints)

	if !shapeMatches(coarse, dense, 0.35) {
		t.Error("same path at different densities did not match")
	}
}
