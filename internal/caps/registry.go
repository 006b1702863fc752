package caps

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/smazurov/mediacaps/internal/logging"
	"github.com/smazurov/mediacaps/internal/sku"
)

// Factory creates an uninitialized capability object.
type Factory func(ctx *Context) (Caps, error)

// Registry maps platforms to capability factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[sku.Platform]Factory
	logger    *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = logging.GetLogger("caps")
	}
	return &Registry{
		factories: make(map[sku.Platform]Factory),
		logger:    logger,
	}
}

// Register adds a factory for a platform. The first registration wins;
// later ones return ErrDuplicateGeneration.
func (r *Registry) Register(platform sku.Platform, factory Factory) error {
	if !platform.Valid() || factory == nil {
		return NewError(StatusInvalidParameter, "Register", platform.String())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[platform]; exists {
		r.logger.Warn("Capabilities already registered", "platform", platform.String())
		return fmt.Errorf("%w: %s", ErrDuplicateGeneration, platform)
	}
	r.factories[platform] = factory
	r.logger.Debug("Registered capabilities", "platform", platform.String())
	return nil
}

// Create builds the capability object for ctx.Platform. Init is left to the caller.
func (r *Registry) Create(ctx *Context) (Caps, error) {
	if ctx == nil {
		return nil, NewError(StatusInvalidParameter, "Create", "nil context")
	}

	r.mu.RLock()
	factory, ok := r.factories[ctx.Platform]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGeneration, ctx.Platform)
	}
	return factory(ctx)
}

// Platforms returns the registered platforms in enumeration order.
func (r *Registry) Platforms() []sku.Platform {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]sku.Platform, 0, len(r.factories))
	for p := range r.factories {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

// GenerationFactory returns a factory building MediaCaps for gen.
func GenerationFactory(gen *Generation) Factory {
	return func(ctx *Context) (Caps, error) {
		c, err := NewMediaCaps(gen, ctx)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

// Generations returns the built-in generation records.
func Generations() []*Generation {
	return []*Generation{Gen9(), Gen10(), Gen11()}
}

// RegisterBuiltins registers every built-in generation for each of its platforms.
func RegisterBuiltins(r *Registry) error {
	for _, gen := range Generations() {
		factory := GenerationFactory(gen)
		for _, p := range gen.Platforms {
			if err := r.Register(p, factory); err != nil {
				return fmt.Errorf("failed to register %s: %w", gen.Name, err)
			}
		}
	}
	return nil
}
