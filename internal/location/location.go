package location

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"moviespot/internal/domain"
	"moviespot/internal/eventbus"
)

// PermissionService answers a foreground location permission request
type PermissionService interface {
	RequestForeground(ctx context.Context) (domain.PermissionStatus, error)
}

// PositionService reads a single current position
type PositionService interface {
	CurrentPosition(ctx context.Context) (domain.Coordinates, error)
}

// Flow asks for permission and then reads one fix.
//
//	Idle -> PermissionRequested -> Granted -> Fetching -> Fixed
//	                            -> Denied -> Idle
//
// A failed fix returns to Idle. Calls are not serialized; each call walks
// its own path through the machine and State reports the latest transition.
type Flow struct {
	permission PermissionService
	position   PositionService
	bus        eventbus.EventBus

	mu    sync.Mutex
	state domain.LocationState
}

// NewFlow creates a location flow; bus may be nil
func NewFlow(permission PermissionService, position PositionService, bus eventbus.EventBus) *Flow {
	return &Flow{
		permission: permission,
		position:   position,
		bus:        bus,
		state:      domain.LocationIdle,
	}
}

// State returns the most recent state any call moved to
func (f *Flow) State() domain.LocationState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Locate runs the flow once
func (f *Flow) Locate(ctx context.Context) (domain.Coordinates, error) {
	r := &run{flow: f, id: uuid.NewString(), state: domain.LocationIdle}

	r.move(domain.LocationPermissionRequested)
	status, err := f.permission.RequestForeground(ctx)
	if err != nil {
		log.Printf("[location %s] permission request failed: %v", r.id, err)
	}
	if err != nil || status != domain.PermissionGranted {
		r.move(domain.LocationDenied)
		r.move(domain.LocationIdle)
		derr := domain.ErrPermissionDenied
		if err != nil {
			derr = fmt.Errorf("%w: %w", domain.ErrPermissionDenied, err)
		}
		f.publish(domain.LocationFailedEvent{RequestID: r.id, Err: derr})
		return domain.Coordinates{}, derr
	}

	r.move(domain.LocationGranted)
	r.move(domain.LocationFetching)

	coords, err := f.position.CurrentPosition(ctx)
	if err != nil {
		log.Printf("[location %s] fix unavailable: %v", r.id, err)
		r.move(domain.LocationIdle)
		ferr := fmt.Errorf("%w: %w", domain.ErrFixUnavailable, err)
		f.publish(domain.LocationFailedEvent{RequestID: r.id, Err: ferr})
		return domain.Coordinates{}, ferr
	}

	r.move(domain.LocationFixed)
	log.Printf("[location %s] fixed at %.6f, %.6f (%s)", r.id, coords.Latitude, coords.Longitude, coords.Source)
	f.publish(domain.LocationFixedEvent{RequestID: r.id, Coordinates: coords})
	return coords, nil
}

// publish waits for room on the bus: the screen tracks in-flight work from
// these events, so none may be dropped. Only a closed bus stops it.
func (f *Flow) publish(e domain.DomainEvent) {
	if f.bus == nil {
		return
	}
	if err := f.bus.PublishWait(context.Background(), e); err != nil {
		log.Printf("[location] %s not delivered: %v", e.Type(), err)
	}
}

// run is one pass through the state machine
type run struct {
	flow  *Flow
	id    string
	state domain.LocationState
}

func (r *run) move(to domain.LocationState) {
	from := r.state
	r.state = to

	r.flow.mu.Lock()
	r.flow.state = to
	r.flow.mu.Unlock()

	r.flow.publish(domain.LocationStateChangedEvent{RequestID: r.id, From: from, To: to})
}
