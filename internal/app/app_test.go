package app

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviespot/internal/config"
	"moviespot/internal/domain"
	"moviespot/internal/eventbus"
)

func TestParseFlagsDefaults(t *testing.T) {
	opts, err := ParseFlags(nil, io.Discard)
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	opts.Apply(cfg)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestFlagsOverrideConfig(t *testing.T) {
	opts, err := ParseFlags([]string{
		"-api-key", "k123",
		"-omdb-url", "http://127.0.0.1:9/",
		"-permission", "Granted",
		"-lat", "48.85",
		"-lon", "2.35",
	}, io.Discard)
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	opts.Apply(cfg)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "k123", cfg.OMDb.APIKey)
	assert.Equal(t, "http://127.0.0.1:9/", cfg.OMDb.BaseURL)
	assert.Equal(t, "granted", cfg.Location.Permission)
	assert.Equal(t, config.ProviderStatic, cfg.Location.Provider)
	assert.Equal(t, 48.85, cfg.Location.Latitude)
	assert.Equal(t, 2.35, cfg.Location.Longitude)
}

func TestZeroCoordinatesStillSelectStatic(t *testing.T) {
	opts, err := ParseFlags([]string{"-lat", "0", "-lon", "0"}, io.Discard)
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	opts.Apply(cfg)
	assert.Equal(t, config.ProviderStatic, cfg.Location.Provider)
}

func TestParseFlagsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"lat without lon", []string{"-lat", "1"}},
		{"unknown flag", []string{"-nope"}},
		{"positional", []string{"alien"}},
		{"bad number", []string{"-lat", "north", "-lon", "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFlags(tt.args, io.Discard)
			assert.Error(t, err)
		})
	}
}

func TestBuildFlowsRejectsUnknownPolicy(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	cfg := config.DefaultConfig()
	cfg.Location.Permission = "sometimes"
	_, _, err := buildFlows(cfg, bus)
	assert.Error(t, err)

	cfg = config.DefaultConfig()
	s, l, err := buildFlows(cfg, bus)
	require.NoError(t, err)
	assert.NotNil(t, s)
	assert.NotNil(t, l)
}

func TestForwardEventsDeliversScreenEvents(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	ch := make(chan eventbus.DomainEvent, 4)
	unsubscribe := forwardEvents(bus, ch, nil)

	bus.Publish(eventbus.SearchStartedEvent{RequestID: "1", Query: "Alien"})
	bus.Publish(eventbus.ConfigSavedEvent{Path: "x"})

	select {
	case e := <-ch:
		assert.Equal(t, eventbus.EventSearchStarted, e.Type())
	case <-time.After(2 * time.Second):
		t.Fatal("event not forwarded")
	}

	// saved-config events are not for the screen
	select {
	case e := <-ch:
		t.Fatalf("unexpected event %v", e.Type())
	case <-time.After(100 * time.Millisecond):
	}

	unsubscribe()
	bus.Publish(eventbus.SearchStartedEvent{RequestID: "2"})
	select {
	case e := <-ch:
		t.Fatalf("event after unsubscribe: %v", e.Type())
	case <-time.After(100 * time.Millisecond):
	}
}

func TestForwardEventsDropsStatusOnlyEventsWhenFull(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	ch := make(chan eventbus.DomainEvent, 1)
	defer forwardEvents(bus, ch, nil)()

	bus.Publish(eventbus.ConfigLoadedEvent{Path: "1"})
	bus.Publish(eventbus.ConfigLoadedEvent{Path: "2"})
	bus.Publish(eventbus.ConfigLoadedEvent{Path: "3"})

	require.Eventually(t, func() bool { return len(ch) == 1 }, 2*time.Second, 10*time.Millisecond)
	e := <-ch
	assert.Equal(t, "1", e.(eventbus.ConfigLoadedEvent).Path)
}

func TestForwardEventsNeverDropsFlowEvents(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	done := make(chan struct{})
	defer close(done)

	ch := make(chan eventbus.DomainEvent, 1)
	defer forwardEvents(bus, ch, done)()

	reply := make(chan domain.PermissionStatus, 1)
	bus.Publish(eventbus.SearchStartedEvent{RequestID: "1"})
	bus.Publish(eventbus.MovieFoundEvent{RequestID: "1"})
	bus.Publish(eventbus.PermissionPromptEvent{RequestID: "p", Reply: reply})

	// the consumer is slower than the producer
	var got []eventbus.EventType
	for len(got) < 3 {
		select {
		case e := <-ch:
			got = append(got, e.Type())
			time.Sleep(20 * time.Millisecond)
		case <-time.After(2 * time.Second):
			t.Fatalf("only %v forwarded", got)
		}
	}
	assert.Equal(t, []eventbus.EventType{
		eventbus.EventSearchStarted, eventbus.EventMovieFound, eventbus.EventPermissionPrompt,
	}, got)
}

func TestForwardEventsReleasedByDone(t *testing.T) {
	bus := eventbus.New()

	done := make(chan struct{})
	ch := make(chan eventbus.DomainEvent) // nobody reads
	unsubscribe := forwardEvents(bus, ch, done)

	bus.Publish(eventbus.MovieFoundEvent{RequestID: "1"})
	close(done)

	closed := make(chan struct{})
	go func() {
		unsubscribe()
		bus.Close()
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("dispatcher stuck on a blocked forward")
	}
}

func TestOpenLogCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "moviespot.log")
	f, err := openLog(path)
	require.NoError(t, err)
	defer f.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestRunVersion(t *testing.T) {
	assert.Equal(t, 0, Run([]string{"-version"}))
	assert.Equal(t, 2, Run([]string{"-lat", "1"}))
}
