package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviespot/internal/domain"
	"moviespot/internal/eventbus"
	"moviespot/internal/omdb"
)

type fakeLookup struct {
	mu    sync.Mutex
	calls []string
	resp  *omdb.Response
	err   error
}

func (f *fakeLookup) Lookup(ctx context.Context, title string) (*omdb.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, title)
	return f.resp, f.err
}

// recordingBus captures events synchronously
type recordingBus struct {
	mu     sync.Mutex
	events []domain.DomainEvent
}

func (b *recordingBus) Publish(e eventbus.DomainEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *recordingBus) PublishWait(_ context.Context, e eventbus.DomainEvent) error {
	b.Publish(e)
	return nil
}

func (b *recordingBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() { return func() {} }
func (b *recordingBus) Close()                                                     {}

func (b *recordingBus) types() []domain.EventType {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]domain.EventType, 0, len(b.events))
	for _, e := range b.events {
		out = append(out, e.Type())
	}
	return out
}

func TestSearchEmptyQueryMakesNoCall(t *testing.T) {
	for name, q := range map[string]string{"empty": "", "space": " ", "tab newline": "\t\n", "mixed": " \t \r\n "} {
		t.Run(name, func(t *testing.T) {
			lookup := &fakeLookup{}
			bus := &recordingBus{}

			_, err := NewFlow(lookup, bus).Search(context.Background(), q)
			require.ErrorIs(t, err, domain.ErrEmptyQuery)
			assert.Empty(t, lookup.calls)
			assert.Equal(t, []domain.EventType{domain.EventSearchFailed}, bus.types())
		})
	}
}

func TestSearchFoundCopiesFields(t *testing.T) {
	lookup := &fakeLookup{resp: &omdb.Response{
		Response: "True",
		Title:    "Alien",
		Year:     "1979",
		Genre:    "Horror, Sci-Fi",
		Director: "Ridley Scott",
		Awards:   "Won 1 Oscar",
		Plot:     "In space no one can hear you scream.",
	}}
	bus := &recordingBus{}

	movie, err := NewFlow(lookup, bus).Search(context.Background(), "  Alien ")
	require.NoError(t, err)

	assert.Equal(t, []string{"Alien"}, lookup.calls, "query is trimmed before use")
	assert.Equal(t, "Alien", movie.Title)
	assert.Equal(t, "1979", movie.Year)
	assert.Equal(t, "Horror, Sci-Fi", movie.Genre)
	assert.Equal(t, "Ridley Scott", movie.Director)
	assert.Equal(t, "Won 1 Oscar", movie.Awards)
	assert.Equal(t, "In space no one can hear you scream.", movie.Plot)

	assert.Equal(t, []domain.EventType{domain.EventSearchStarted, domain.EventMovieFound}, bus.types())
	found := bus.events[1].(domain.MovieFoundEvent)
	assert.Equal(t, movie, found.Movie)
	assert.Equal(t, bus.events[0].(domain.SearchStartedEvent).RequestID, found.RequestID)
}

func TestSearchNotFound(t *testing.T) {
	tests := []struct {
		name string
		resp *omdb.Response
	}{
		{"explicit false", &omdb.Response{Response: "False", Error: "Movie not found!"}},
		{"lowercase true is not the marker", &omdb.Response{Response: "true", Title: "X"}},
		{"missing field", &omdb.Response{Title: "X"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := &recordingBus{}
			_, err := NewFlow(&fakeLookup{resp: tt.resp}, bus).Search(context.Background(), "x")
			require.ErrorIs(t, err, domain.ErrNotFound)
			assert.False(t, errors.Is(err, domain.ErrTransport))
			assert.Equal(t, "NotFound", domain.ErrorKind(err))
			assert.Equal(t, []domain.EventType{domain.EventSearchStarted, domain.EventSearchFailed}, bus.types())
		})
	}
}

func TestSearchTransportError(t *testing.T) {
	cause := errors.New("connection refused")
	_, err := NewFlow(&fakeLookup{err: cause}, nil).Search(context.Background(), "x")

	require.ErrorIs(t, err, domain.ErrTransport)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, "TransportError", domain.ErrorKind(err))
}

func TestSearchAgainstFakeOMDb(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("t") {
		case "Heat":
			_, _ = w.Write([]byte(`{"Response":"True","Title":"Heat","Year":"1995","Genre":"Action, Crime, Drama","Director":"Michael Mann","Awards":"14 nominations"}`))
		case "broken":
			_, _ = w.Write([]byte(`{"Response":`))
		case "locked":
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"Response":"False","Error":"Invalid API key!"}`))
		case "down":
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			_, _ = w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
		}
	}))
	defer server.Close()

	flow := NewFlow(omdb.NewClient(server.URL, "key", time.Second), nil)

	movie, err := flow.Search(context.Background(), "Heat")
	require.NoError(t, err)
	assert.Equal(t, domain.MovieRecord{
		Title: "Heat", Year: "1995", Genre: "Action, Crime, Drama", Director: "Michael Mann", Awards: "14 nominations",
	}, movie)

	_, err = flow.Search(context.Background(), "nothing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = flow.Search(context.Background(), "broken")
	assert.ErrorIs(t, err, domain.ErrTransport)

	// a rejected key still carries an OMDb body, so it reads as a miss
	_, err = flow.Search(context.Background(), "locked")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = flow.Search(context.Background(), "down")
	assert.ErrorIs(t, err, domain.ErrTransport)
}
