package location

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"moviespot/internal/config"
	"moviespot/internal/domain"
	"moviespot/internal/eventbus"
)

// ErrNoPrompter is returned when nobody can answer a consent prompt
var ErrNoPrompter = errors.New("no consent prompter available")

// PolicyPermission answers every request with a fixed status
type PolicyPermission struct {
	status domain.PermissionStatus
}

func NewPolicyPermission(status domain.PermissionStatus) *PolicyPermission {
	return &PolicyPermission{status: status}
}

func (p *PolicyPermission) RequestForeground(ctx context.Context) (domain.PermissionStatus, error) {
	if err := ctx.Err(); err != nil {
		return domain.PermissionUndetermined, err
	}
	return p.status, nil
}

// PromptPermission asks the user through a PermissionPromptEvent and waits
// for the answer. A grant is kept for the rest of the session; a denial is not,
// so the next request asks again.
type PromptPermission struct {
	bus eventbus.EventBus

	mu      sync.Mutex
	granted bool
}

func NewPromptPermission(bus eventbus.EventBus) *PromptPermission {
	return &PromptPermission{bus: bus}
}

func (p *PromptPermission) RequestForeground(ctx context.Context) (domain.PermissionStatus, error) {
	p.mu.Lock()
	granted := p.granted
	p.mu.Unlock()
	if granted {
		return domain.PermissionGranted, nil
	}
	if p.bus == nil {
		return domain.PermissionUndetermined, ErrNoPrompter
	}

	reply := make(chan domain.PermissionStatus, 1)
	// The flow blocks on the reply, so the prompt must not be dropped
	if err := p.bus.PublishWait(ctx, domain.PermissionPromptEvent{RequestID: uuid.NewString(), Reply: reply}); err != nil {
		return domain.PermissionUndetermined, err
	}

	select {
	case status := <-reply:
		if status == domain.PermissionGranted {
			p.mu.Lock()
			p.granted = true
			p.mu.Unlock()
		}
		return status, nil
	case <-ctx.Done():
		return domain.PermissionUndetermined, ctx.Err()
	}
}

// NewPermissionService builds the service for a config policy
func NewPermissionService(policy string, bus eventbus.EventBus) (PermissionService, error) {
	switch policy {
	case config.PermissionGranted:
		return NewPolicyPermission(domain.PermissionGranted), nil
	case config.PermissionDenied:
		return NewPolicyPermission(domain.PermissionDenied), nil
	case config.PermissionAsk, "":
		return NewPromptPermission(bus), nil
	default:
		return nil, fmt.Errorf("unknown permission policy %q", policy)
	}
}
