package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mantonx/paradiso/internal/logger"
)

// EventBus is the interface modules publish and subscribe through
type EventBus interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Publish(ctx context.Context, event Event) error
	PublishAsync(event Event) error
	Subscribe(filter EventFilter, handler EventHandler) *Subscription
	Unsubscribe(subscriptionID string)
}

// eventBus implements the EventBus interface
type eventBus struct {
	config EventBusConfig

	mu            sync.RWMutex
	subscriptions map[string]*Subscription
	eventChannel  chan Event
	running       bool
	stopCh        chan struct{}
	wg            sync.WaitGroup
}

// NewEventBus creates a new event bus instance
func NewEventBus(config EventBusConfig) EventBus {
	return &eventBus{
		config:        config,
		subscriptions: make(map[string]*Subscription),
		eventChannel:  make(chan Event, config.BufferSize),
		stopCh:        make(chan struct{}),
	}
}

// Start starts the event bus
func (eb *eventBus) Start(ctx context.Context) error {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.running {
		return fmt.Errorf("event bus is already running")
	}

	eb.running = true
	eb.stopCh = make(chan struct{})

	eb.wg.Add(1)
	go eb.processEvents()

	logger.Info("Event bus started (buffer_size=%d)", eb.config.BufferSize)
	return nil
}

// Stop stops the event bus gracefully
func (eb *eventBus) Stop(ctx context.Context) error {
	eb.mu.Lock()
	if !eb.running {
		eb.mu.Unlock()
		return nil
	}
	eb.running = false
	eb.mu.Unlock()

	// The event channel is never closed: a publish racing this shutdown
	// may still be sending, and a send on a closed channel panics. The
	// dispatcher drains and exits via stopCh instead.
	close(eb.stopCh)

	done := make(chan struct{})
	go func() {
		eb.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("Event bus stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.Warn("Event bus stop timed out")
		return ctx.Err()
	}
}

// Publish publishes an event to the event bus
func (eb *eventBus) Publish(ctx context.Context, event Event) error {
	eb.mu.RLock()
	if !eb.running {
		eb.mu.RUnlock()
		return fmt.Errorf("event bus is not running")
	}
	eb.mu.RUnlock()

	eb.stampEvent(&event)

	select {
	case eb.eventChannel <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		logger.Warn("Event channel full, dropping event (type=%s id=%s)", event.Type, event.ID)
		return fmt.Errorf("event channel full")
	}
}

// PublishAsync publishes an event without blocking; full channel drops the event
func (eb *eventBus) PublishAsync(event Event) error {
	eb.mu.RLock()
	if !eb.running {
		eb.mu.RUnlock()
		return fmt.Errorf("event bus is not running")
	}
	eb.mu.RUnlock()

	eb.stampEvent(&event)

	select {
	case eb.eventChannel <- event:
		return nil
	default:
		logger.Warn("Event channel full, dropping event (type=%s id=%s)", event.Type, event.ID)
		return fmt.Errorf("event channel full")
	}
}

// Subscribe subscribes to events matching the filter
func (eb *eventBus) Subscribe(filter EventFilter, handler EventHandler) *Subscription {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	subscription := &Subscription{
		ID:      uuid.NewString(),
		Filter:  filter,
		Handler: handler,
		Created: time.Now(),
	}

	eb.subscriptions[subscription.ID] = subscription
	return subscription
}

// Unsubscribe removes a subscription
func (eb *eventBus) Unsubscribe(subscriptionID string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	delete(eb.subscriptions, subscriptionID)
}

func (eb *eventBus) stampEvent(event *Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
}

func (eb *eventBus) processEvents() {
	defer eb.wg.Done()

	for {
		select {
		case event := <-eb.eventChannel:
			eb.dispatch(event)
		case <-eb.stopCh:
			// Drain whatever was buffered before the stop signal
			for {
				select {
				case event := <-eb.eventChannel:
					eb.dispatch(event)
				default:
					return
				}
			}
		}
	}
}

func (eb *eventBus) dispatch(event Event) {
	eb.mu.RLock()
	matching := make([]*Subscription, 0, len(eb.subscriptions))
	for _, sub := range eb.subscriptions {
		if sub.Filter.Matches(event) {
			matching = append(matching, sub)
		}
	}
	eb.mu.RUnlock()

	for _, sub := range matching {
		if err := sub.Handler(event); err != nil {
			logger.Warn("Event handler failed (type=%s subscription=%s): %v", event.Type, sub.ID, err)
		}
		eb.mu.Lock()
		sub.TriggerCount++
		eb.mu.Unlock()
	}
}

// Matches reports whether the event passes the filter. An empty filter
// matches everything.
func (f EventFilter) Matches(event Event) bool {
	if len(f.Types) > 0 {
		found := false
		for _, t := range f.Types {
			if t == event.Type {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(f.Sources) > 0 {
		found := false
		for _, s := range f.Sources {
			if s == event.Source {
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
