package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
	"time"

	shellwords "github.com/mattn/go-shellwords"

	"github.com/tbeaumont/gestured/internal/binding"
	"github.com/tbeaumont/gestured/internal/config"
	"github.com/tbeaumont/gestured/internal/device"
	"github.com/tbeaumont/gestured/internal/event"
	"github.com/tbeaumont/gestured/internal/grab"
	"github.com/tbeaumont/gestured/internal/hook"
	"github.com/tbeaumont/gestured/internal/screen"
	"github.com/tbeaumont/gestured/internal/trace"
	"github.com/tbeaumont/gestured/internal/ui"
)

const Version = "0.1.0"

func main() {
	// Check for subcommands first
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "trace":
			runTrace(os.Args[2:])
			return
		case "record":
			runRecord(os.Args[2:])
			return
		case "list-bindings":
			runListBindings(os.Args[2:])
			return
		case "list-devices":
			runListDevices(os.Args[2:])
			return
		case "set-shape-button":
			runSetShapeButton(os.Args[2:])
			return
		case "open-config":
			runOpenConfig(os.Args[2:])
			return
		case "help", "-h", "--help":
			printUsage()
			os.Exit(0)
		}
	}

	// Main command flags
	configPath := flag.String("config", config.DefaultPath(), "path to configuration file")
	noListen := flag.Bool("no-listen", false, "poll the cursor instead of consuming motion events")
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	version := flag.Bool("version", false, "print version and exit")

	flag.Usage = printUsage
	flag.Parse()

	if *version {
		ui.PrintVersion(Version)
		os.Exit(0)
	}

	if err := config.InitIfMissing(*configPath); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	app, err := newApp(*configPath, *noListen, *verbose)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	go func() {
		<-sigChan
		if *verbose {
			log.Println("Received shutdown signal")
		}
		cancel()
	}()

	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("Application error: %v", err)
	}

	if *verbose {
		log.Println("Shutdown complete")
	}
}

func printUsage() {
	ui.PrintUsage(Version)
}

type App struct {
	verbose  bool
	noListen bool
	watcher  *config.Watcher
	display  *screen.X11
	edges    *screen.EdgeMapper
	grabCtx  *grab.Context
}

func newApp(configPath string, noListen, verbose bool) (*App, error) {
	app := &App{
		verbose:  verbose,
		noListen: noListen,
	}

	watcher, err := config.NewWatcher(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.watcher = watcher

	display, err := screen.NewX11()
	if err != nil {
		watcher.Stop()
		return nil, err
	}
	app.display = display

	cfg := watcher.Store().Get()
	app.edges = screen.NewEdgeMapper(display, cfg.EdgeMarginPx)
	watcher.OnReload(func(cfg *config.Config) {
		app.edges.SetMargin(cfg.EdgeMarginPx)
	})

	resolver := binding.NewResolver(verbose)

	opts := []grab.Option{}
	if verbose {
		opts = append(opts, grab.WithVerbose())
	}
	if noListen {
		opts = append(opts, grab.WithCursorTracker())
	}
	app.grabCtx = grab.NewContext(watcher.Store(), resolver, app.edges, opts...)

	if verbose {
		log.Printf("Loaded configuration from %s", configPath)
		log.Printf("Shape button: %s, %d binding(s)", cfg.ShapeButton, len(cfg.Bindings))
	}

	return app, nil
}

func (a *App) Run(ctx context.Context) error {
	a.watcher.Start()
	defer a.watcher.Stop()

	if a.noListen {
		tracker := screen.NewCursorTracker(a.display, a.grabCtx.SetLastPoint)
		tracker.Start(ctx)
	}

	return hook.Run(ctx, a.grabCtx.HandleEvent)
}

// runTrace handles the trace subcommand: the full classification pipeline
// runs, but instead of launching commands every classified event is printed,
// and each drawn gesture is rendered to a PNG next to the config file.
func runTrace(args []string) {
	fs := flag.NewFlagSet("trace", flag.ExitOnError)
	configPath := fs.String("config", config.DefaultPath(), "path to configuration file")
	noListen := fs.Bool("no-listen", false, "poll the cursor instead of consuming motion events")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if err := config.InitIfMissing(*configPath); err != nil {
		ui.PrintFatalError("Failed to initialize config", err.Error())
		os.Exit(1)
	}

	watcher, err := config.NewWatcher(*configPath)
	if err != nil {
		ui.PrintFatalError("Failed to load config", err.Error())
		os.Exit(1)
	}
	defer watcher.Stop()
	watcher.Start()

	display, err := screen.NewX11()
	if err != nil {
		ui.PrintFatalError("Failed to connect to display", err.Error())
		os.Exit(1)
	}

	cfg := watcher.Store().Get()
	edges := screen.NewEdgeMapper(display, cfg.EdgeMarginPx)
	watcher.OnReload(func(cfg *config.Config) {
		edges.SetMargin(cfg.EdgeMarginPx)
	})

	tracePrefix := strings.TrimSuffix(*configPath, ".yaml")
	printer := grab.ResolverFunc(func(cfg *config.Config, ev event.ClickEvent) bool {
		fmt.Println(formatClickEvent(ev))
		if len(ev.ShapeXY) > 1 {
			path := fmt.Sprintf("%s-trace-%s.png", tracePrefix, time.Now().Format("20060102-150405"))
			r := trace.NewRenderer(512, 512)
			r.DrawTrace(ev.ShapeXY)
			r.Annotate(fmt.Sprintf("%d points, %d angles", len(ev.ShapeXY), len(ev.ShapeAngles)))
			if err := r.WriteFile(path); err != nil {
				ui.PrintError(err.Error())
			} else {
				fmt.Println(ui.Muted("  trace written to " + path))
			}
		}
		return true
	})

	opts := []grab.Option{}
	if *noListen {
		opts = append(opts, grab.WithCursorTracker())
	}
	grabCtx := grab.NewContext(watcher.Store(), printer, edges, opts...)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *noListen {
		tracker := screen.NewCursorTracker(display, grabCtx.SetLastPoint)
		tracker.Start(ctx)
	}

	fmt.Println(ui.Muted("Tracing input events, ctrl-c to stop."))
	if err := hook.Run(ctx, grabCtx.HandleEvent); err != nil && ctx.Err() == nil {
		ui.PrintFatalError("Hook failed", err.Error())
		os.Exit(1)
	}
}

// runRecord handles the record subcommand: capture the next gesture drawn
// with the shape button, then prompt for the binding details and append it to
// the config file.
func runRecord(args []string) {
	fs := flag.NewFlagSet("record", flag.ExitOnError)
	configPath := fs.String("config", config.DefaultPath(), "path to configuration file")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if err := config.InitIfMissing(*configPath); err != nil {
		ui.PrintFatalError("Failed to initialize config", err.Error())
		os.Exit(1)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		ui.PrintFatalError("Failed to load config", err.Error())
		os.Exit(1)
	}

	display, err := screen.NewX11()
	if err != nil {
		ui.PrintFatalError("Failed to connect to display", err.Error())
		os.Exit(1)
	}
	edges := screen.NewEdgeMapper(display, cfg.EdgeMarginPx)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	captured := make(chan event.ClickEvent, 1)
	catcher := grab.ResolverFunc(func(cfg *config.Config, ev event.ClickEvent) bool {
		if ev.EventType == event.Release && len(ev.ShapeXY) > 1 {
			select {
			case captured <- ev:
				cancel()
			default:
			}
		}
		return true
	})

	store := config.NewStore(cfg)
	grabCtx := grab.NewContext(store, catcher, edges)

	fmt.Println(ui.Muted(fmt.Sprintf("Hold %s and draw the gesture, ctrl-c to cancel.", cfg.ShapeButton)))
	if err := hook.Run(ctx, grabCtx.HandleEvent); err != nil && ctx.Err() == nil {
		ui.PrintFatalError("Hook failed", err.Error())
		os.Exit(1)
	}

	var ev event.ClickEvent
	select {
	case ev = <-captured:
	default:
		fmt.Println(ui.Muted("No gesture captured"))
		os.Exit(0)
	}

	trigger := fmt.Sprintf("%s %s gesture (%d points)", ev.EventType, ev.Button, len(ev.ShapeXY))
	answer, err := ui.PromptBinding(trigger)
	if err != nil {
		ui.PrintFatalError("Prompt failed", err.Error())
		os.Exit(1)
	}
	if answer == nil {
		fmt.Println(ui.Muted("Cancelled, nothing saved"))
		os.Exit(0)
	}

	argv, err := shellwords.Parse(answer.Cmd)
	if err != nil {
		ui.PrintFatalError("Invalid command", err.Error())
		os.Exit(1)
	}

	cfg.Bindings = append(cfg.Bindings, config.Binding{
		Comment: answer.Comment,
		Event: config.EventPattern{
			Button:    ev.Button,
			Edges:     ev.Edges,
			Modifiers: ev.Modifiers,
			EventType: event.Release,
			ShapesXY:  []config.Trace{config.Trace(ev.ShapeXY)},
		},
		Cmd: argv,
	})

	if err := config.Save(cfg, *configPath); err != nil {
		ui.PrintFatalError("Failed to save config", err.Error())
		os.Exit(1)
	}

	ui.PrintBindingSaved(*configPath, trigger, answer.Cmd)
}

// runListBindings handles the list-bindings subcommand
func runListBindings(args []string) {
	fs := flag.NewFlagSet("list-bindings", flag.ExitOnError)
	configPath := fs.String("config", config.DefaultPath(), "path to configuration file")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		ui.PrintFatalError("Failed to load config", err.Error())
		os.Exit(1)
	}

	infos := make([]ui.BindingInfo, len(cfg.Bindings))
	for i, b := range cfg.Bindings {
		infos[i] = ui.BindingInfo{
			Trigger: formatTrigger(b.Event),
			Cmd:     strings.Join(b.Cmd, " "),
			Comment: b.Comment,
		}
	}
	ui.PrintBindingList(infos)
}

// runListDevices handles the list-devices subcommand
func runListDevices(args []string) {
	fs := flag.NewFlagSet("list-devices", flag.ExitOnError)
	all := fs.Bool("all", false, "list every HID device, not just pointing devices")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	list := device.ListPointers
	if *all {
		list = device.List
	}

	devices, err := list()
	if err != nil {
		ui.PrintFatalError("Failed to list devices", err.Error())
		os.Exit(1)
	}

	uiDevices := make([]ui.DeviceInfo, len(devices))
	for i, d := range devices {
		uiDevices[i] = ui.DeviceInfo{
			VendorID:     d.VendorID,
			ProductID:    d.ProductID,
			Manufacturer: d.Manufacturer,
			Product:      d.Product,
		}
	}
	ui.PrintDeviceList(uiDevices)
}

// runSetShapeButton handles the set-shape-button subcommand
func runSetShapeButton(args []string) {
	fs := flag.NewFlagSet("set-shape-button", flag.ExitOnError)
	configPath := fs.String("config", config.DefaultPath(), "path to configuration file")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if err := config.InitIfMissing(*configPath); err != nil {
		ui.PrintFatalError("Failed to initialize config", err.Error())
		os.Exit(1)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		ui.PrintFatalError("Failed to load config", err.Error())
		os.Exit(1)
	}

	var chosen event.MouseButton
	if remaining := fs.Args(); len(remaining) > 0 {
		chosen = event.MouseButton(remaining[0])
		if !isKnownButton(chosen) {
			ui.PrintFatalError("Unknown button", fmt.Sprintf("%q is not one of %v", remaining[0], event.Buttons()))
			os.Exit(1)
		}
	} else {
		options := make([]string, 0, len(event.Buttons()))
		for _, b := range event.Buttons() {
			options = append(options, string(b))
		}
		selected, err := ui.SelectShapeButton(options, string(cfg.ShapeButton))
		if err != nil {
			ui.PrintFatalError("Selection failed", err.Error())
			os.Exit(1)
		}
		if selected == "" {
			fmt.Println(ui.Muted("No button selected"))
			os.Exit(0)
		}
		chosen = event.MouseButton(selected)
	}

	cfg.ShapeButton = chosen
	if err := config.Save(cfg, *configPath); err != nil {
		ui.PrintFatalError("Failed to save config", err.Error())
		os.Exit(1)
	}

	ui.PrintShapeButtonUpdated(*configPath, string(chosen))
}

// runOpenConfig handles the open-config subcommand
func runOpenConfig(args []string) {
	fs := flag.NewFlagSet("open-config", flag.ExitOnError)
	configPath := fs.String("config", config.DefaultPath(), "path to configuration file")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if err := config.InitIfMissing(*configPath); err != nil {
		ui.PrintFatalError("Failed to initialize config", err.Error())
		os.Exit(1)
	}

	cmd := exec.Command("xdg-open", *configPath)
	if err := cmd.Start(); err != nil {
		ui.PrintFatalError("Failed to open config", err.Error())
		os.Exit(1)
	}
	go cmd.Wait()

	fmt.Println(ui.Muted("Opened " + *configPath))
}

func isKnownButton(b event.MouseButton) bool {
	for _, known := range event.Buttons() {
		if b == known {
			return true
		}
	}
	return false
}

// formatTrigger renders a binding's match pattern for listings.
func formatTrigger(p config.EventPattern) string {
	parts := []string{string(p.EventType), string(p.Button)}
	if n := len(p.ShapesXY); n == 1 {
		parts = append(parts, "shape")
	} else if n > 1 {
		parts = append(parts, fmt.Sprintf("%d shapes", n))
	}
	for _, e := range p.Edges {
		parts = append(parts, "@"+string(e))
	}
	for _, m := range p.Modifiers {
		parts = append(parts, "+"+string(m))
	}
	return strings.Join(parts, " ")
}

// formatClickEvent renders a classified event for trace output.
func formatClickEvent(ev event.ClickEvent) string {
	parts := []string{string(ev.EventType), string(ev.Button)}
	if len(ev.ShapeXY) > 0 {
		parts = append(parts, fmt.Sprintf("shape(%d points)", len(ev.ShapeXY)))
	}
	for _, e := range ev.Edges {
		parts = append(parts, "@"+string(e))
	}
	for _, m := range ev.Modifiers {
		parts = append(parts, "+"+string(m))
	}
	return strings.Join(parts, " ")
}
