package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Event is something that happened on a map surface, e.g. a single click.
type Event struct {
	Type      string
	Payload   any
	Timestamp time.Time
}

// HandlerFunc processes an event.
type HandlerFunc func(Event) error

// Logger interface for pluggable logging.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Option configures handler registration.
type Option func(*config)

type config struct {
	logged bool
	once   bool
}

// Logged adds debug logging to the handler.
func Logged() Option {
	return func(c *config) {
		c.logged = true
	}
}

// Once removes the handler after its first invocation.
func Once() Option {
	return func(c *config) {
		c.once = true
	}
}

type listener struct {
	id   uint64
	h    HandlerFunc
	once bool
}

// Dispatcher routes events to the handlers registered for their type.
// Handlers run synchronously on the dispatching goroutine, in registration order.
type Dispatcher struct {
	logger Logger

	// OTEL metrics
	processed metric.Int64Counter
	unhandled metric.Int64Counter

	mu       sync.RWMutex
	nextID   uint64
	handlers map[string][]listener
}

// New creates a new Dispatcher with the given logger.
// Uses the global OTel meter for metrics (no-op if not configured).
func New(logger Logger) (*Dispatcher, error) {
	d := &Dispatcher{
		handlers: make(map[string][]listener),
		logger:   logger,
	}

	m := otel.Meter("github.com/OCAP2/markermap/internal/dispatcher")

	var err error

	d.processed, err = m.Int64Counter(
		"mapengine.events.processed",
		metric.WithDescription("Total map events delivered to at least one handler"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating processed counter: %w", err)
	}

	d.unhandled, err = m.Int64Counter(
		"mapengine.events.unhandled",
		metric.WithDescription("Total map events with no registered handler"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating unhandled counter: %w", err)
	}

	return d, nil
}

// Register adds a handler for the given event type with optional configuration.
// It returns a key that can be passed to Unregister.
func (d *Dispatcher) Register(eventType string, h HandlerFunc, opts ...Option) uint64 {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	handler := h
	if cfg.logged {
		handler = d.withLogging(eventType, handler)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	d.handlers[eventType] = append(d.handlers[eventType], listener{id: d.nextID, h: handler, once: cfg.once})
	return d.nextID
}

// Unregister removes the handler registered under key. Unknown keys are ignored.
func (d *Dispatcher) Unregister(key uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for eventType, ls := range d.handlers {
		for i, l := range ls {
			if l.id == key {
				d.handlers[eventType] = append(ls[:i:i], ls[i+1:]...)
				return
			}
		}
	}
}

// Dispatch delivers an event to every handler registered for its type.
// Events without handlers are counted and dropped. Handler errors are joined.
func (d *Dispatcher) Dispatch(e Event) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	typeAttr := metric.WithAttributes(attribute.String("type", e.Type))

	d.mu.Lock()
	ls := d.handlers[e.Type]
	if len(ls) == 0 {
		d.mu.Unlock()
		d.unhandled.Add(context.Background(), 1, typeAttr)
		return nil
	}
	// snapshot so handlers may register or unregister while running
	snapshot := make([]listener, len(ls))
	copy(snapshot, ls)
	kept := ls[:0:0]
	for _, l := range ls {
		if !l.once {
			kept = append(kept, l)
		}
	}
	d.handlers[e.Type] = kept
	d.mu.Unlock()

	var errs []error
	for _, l := range snapshot {
		if err := l.h(e); err != nil {
			errs = append(errs, err)
		}
	}
	d.processed.Add(context.Background(), 1, typeAttr)
	return errors.Join(errs...)
}

// HasHandler returns true if at least one handler is registered for the event type.
func (d *Dispatcher) HasHandler(eventType string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.handlers[eventType]) > 0
}

func (d *Dispatcher) withLogging(eventType string, h HandlerFunc) HandlerFunc {
	return func(e Event) error {
		start := time.Now()
		d.logger.Debug("handling event", "type", eventType)

		err := h(e)

		if err != nil {
			d.logger.Error("event failed", "type", eventType, "duration", time.Since(start), "error", err)
		} else {
			d.logger.Debug("event complete", "type", eventType, "duration", time.Since(start))
		}

		return err
	}
}
