package search

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"

	"moviespot/internal/domain"
	"moviespot/internal/eventbus"
	"moviespot/internal/omdb"
)

// Lookup is the remote title lookup the flow depends on
type Lookup interface {
	Lookup(ctx context.Context, title string) (*omdb.Response, error)
}

// Flow runs one title search per call. Overlapping calls are not guarded;
// each publishes its own result and the last one to arrive wins.
type Flow struct {
	lookup Lookup
	bus    eventbus.EventBus
}

// NewFlow creates a search flow; bus may be nil
func NewFlow(lookup Lookup, bus eventbus.EventBus) *Flow {
	return &Flow{lookup: lookup, bus: bus}
}

// Search validates the query, performs a single lookup and reports the outcome
func (f *Flow) Search(ctx context.Context, query string) (domain.MovieRecord, error) {
	id := uuid.NewString()
	title := strings.TrimSpace(query)

	if title == "" {
		f.fail(id, query, domain.ErrEmptyQuery)
		return domain.MovieRecord{}, domain.ErrEmptyQuery
	}

	f.publish(domain.SearchStartedEvent{RequestID: id, Query: title})

	resp, err := f.lookup.Lookup(ctx, title)
	if err != nil {
		log.Printf("[search %s] lookup %q failed: %v", id, title, err)
		terr := &domain.TransportError{Err: err}
		f.fail(id, title, terr)
		return domain.MovieRecord{}, terr
	}

	if !resp.Found() {
		nf := &domain.NotFoundError{Reason: resp.Error}
		f.fail(id, title, nf)
		return domain.MovieRecord{}, nf
	}

	movie := toRecord(resp)
	log.Printf("[search %s] found %q (%s)", id, movie.Title, movie.Year)
	f.publish(domain.MovieFoundEvent{RequestID: id, Movie: movie})
	return movie, nil
}

func (f *Flow) fail(id, query string, err error) {
	log.Printf("[search %s] %s for %q", id, domain.ErrorKind(err), query)
	f.publish(domain.SearchFailedEvent{RequestID: id, Query: query, Err: err})
}

// publish waits for room on the bus: the screen tracks in-flight work from
// these events, so none may be dropped. Only a closed bus stops it.
func (f *Flow) publish(e domain.DomainEvent) {
	if f.bus == nil {
		return
	}
	if err := f.bus.PublishWait(context.Background(), e); err != nil {
		log.Printf("[search] %s not delivered: %v", e.Type(), err)
	}
}

func toRecord(r *omdb.Response) domain.MovieRecord {
	return domain.MovieRecord{
		Title:      r.Title,
		Year:       r.Year,
		Genre:      r.Genre,
		Director:   r.Director,
		Awards:     r.Awards,
		Plot:       r.Plot,
		Actors:     r.Actors,
		Runtime:    r.Runtime,
		Rated:      r.Rated,
		ImdbRating: r.ImdbRating,
		ImdbID:     r.ImdbID,
		Poster:     r.Poster,
	}
}
