package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"moviespot/internal/config"
	"moviespot/internal/eventbus"
	"moviespot/internal/location"
	"moviespot/internal/omdb"
	"moviespot/internal/search"
	"moviespot/internal/ui"
)

// Version is set at build time
var Version = "dev"

// uiEvents are the bus events the screen reacts to
var uiEvents = []eventbus.EventType{
	eventbus.EventSearchStarted,
	eventbus.EventMovieFound,
	eventbus.EventSearchFailed,
	eventbus.EventLocationStateChanged,
	eventbus.EventPermissionPrompt,
	eventbus.EventLocationFixed,
	eventbus.EventLocationFailed,
	eventbus.EventConfigLoaded,
}

// droppable events only feed the status line
var droppable = map[eventbus.EventType]bool{
	eventbus.EventConfigLoaded: true,
}

// Run starts the application and returns the process exit code
func Run(args []string) int {
	opts, err := ParseFlags(args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if opts.ShowVersion {
		fmt.Printf("moviespot %s\n", Version)
		return 0
	}

	// Set up logging
	logFile, err := openLog(opts.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
		log.SetOutput(io.Discard)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	bus := eventbus.New()
	defer bus.Close()

	// Subscribe before loading config so the load event reaches the screen
	eventChan := make(chan eventbus.DomainEvent, 100)
	unsubscribe := forwardEvents(bus, eventChan, ctx.Done())
	defer unsubscribe()

	configSvc := config.NewConfigServiceWithBus(opts.ConfigPath, bus)
	cfg, err := configSvc.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}
	log.Printf("[config] loaded %s", configSvc.Path())

	if err := config.LoadEnv(cfg, opts.EnvFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	opts.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid settings: %v\n", err)
		return 2
	}
	if opts.Save {
		if err := configSvc.Save(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
			return 1
		}
		log.Printf("[config] saved %s", configSvc.Path())
	}
	if cfg.OMDb.APIKey == "" {
		log.Printf("[config] no OMDb API key set; set %s or use -api-key", config.EnvAPIKey)
	}

	searchFlow, locationFlow, err := buildFlows(cfg, bus)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	uiModel := ui.NewModel(ctx, cfg, searchFlow, locationFlow)
	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Start forwarding events to UI in background
	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		return 1
	}
	log.Printf("UI exited normally")
	return 0
}

// buildFlows wires the lookup client and the location services from cfg
func buildFlows(cfg *config.Config, bus eventbus.EventBus) (*search.Flow, *location.Flow, error) {
	client := omdb.NewClient(cfg.OMDb.BaseURL, cfg.OMDb.APIKey, time.Duration(cfg.OMDb.TimeoutSeconds)*time.Second)

	permission, err := location.NewPermissionService(cfg.Location.Permission, bus)
	if err != nil {
		return nil, nil, err
	}
	position, err := location.NewPositionService(cfg.Location)
	if err != nil {
		return nil, nil, err
	}

	return search.NewFlow(client, bus), location.NewFlow(permission, position, bus), nil
}

// forwardEvents copies the screen's events from the bus into ch. Flow events
// wait for room until done is closed; the rest are dropped when ch is full.
func forwardEvents(bus eventbus.EventBus, ch chan<- eventbus.DomainEvent, done <-chan struct{}) func() {
	forward := func(e eventbus.DomainEvent) {
		if droppable[e.Type()] {
			select {
			case ch <- e:
			default:
				log.Println("Event channel full, dropping event")
			}
			return
		}
		select {
		case ch <- e:
		case <-done:
		}
	}

	unsubs := make([]func(), 0, len(uiEvents))
	for _, t := range uiEvents {
		unsubs = append(unsubs, bus.Subscribe(t, forward))
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// openLog opens the log file, creating its directory
func openLog(path string) (*os.File, error) {
	if path == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			dir = os.TempDir()
		}
		path = filepath.Join(dir, "moviespot", "moviespot.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}
