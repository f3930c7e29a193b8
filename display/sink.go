package display

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sort"

	"github.com/theoremus-urban-solutions/mbta-board/arrivals"
	"github.com/theoremus-urban-solutions/mbta-board/config"
	"github.com/theoremus-urban-solutions/mbta-board/epd"
)

// Sink is an output surface for boards
type Sink interface {
	Open() error
	Write(ctx context.Context, b arrivals.Board) error
	Close() error
}

// Factory constructs an unopened Sink
type Factory func() (Sink, error)

// ErrUnknownDisplay is returned by Lookup for unregistered names
var ErrUnknownDisplay = errors.New("unknown display")

// Registry maps display names to factories
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

// Register adds or replaces a named factory
func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

// Lookup constructs the sink registered under name
func (r *Registry) Lookup(name string) (Sink, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownDisplay, name, r.Names())
	}
	return f()
}

// Names lists registered names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry registers every sink the configuration and host support.
// pi needs an SPI port; redis and amqp need their addresses configured.
func DefaultRegistry(cfg config.AppConfig, stdout io.Writer) *Registry {
	r := NewRegistry()
	r.Register("stdout", func() (Sink, error) { return NewTextSink(stdout), nil })
	r.Register("pillow", func() (Sink, error) { return NewBitmapSink(cfg.Display.PreviewPath), nil })
	if epd.Available() {
		r.Register("pi", func() (Sink, error) { return NewPanelSink(OpenWaveshare), nil })
	} else if cfg.Logging.Debug {
		log.Printf("No SPI port found, pi display unavailable")
	}
	if cfg.Redis.Addr != "" {
		r.Register("redis", func() (Sink, error) { return NewRedisSink(cfg.Redis), nil })
	}
	if cfg.AMQP.URL != "" {
		r.Register("amqp", func() (Sink, error) { return NewAMQPSink(cfg.AMQP), nil })
	}
	return r
}
