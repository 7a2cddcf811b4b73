// Package registry resolves type signatures to Type instances.
//
// A Registry holds leaf types and parametric descriptors keyed by base name.
// Resolving a signature parses it, resolves its parameters recursively and asks
// the descriptor for the composite type. Every resolved Type is interned under
// its canonical signature, so a signature always resolves to the same instance.
//
// Registration is expected at start-up. Seal ends the registration phase;
// resolution is safe for concurrent use before and after sealing.
package registry

import (
	"context"
	"sort"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/ajitpratap0/coltype/pkg/errors"
	"github.com/ajitpratap0/coltype/pkg/logger"
	"github.com/ajitpratap0/coltype/pkg/metrics"
	stringpool "github.com/ajitpratap0/coltype/pkg/strings"
	"github.com/ajitpratap0/coltype/pkg/types"
)

const tracerName = "github.com/ajitpratap0/coltype/pkg/registry"

// Registry maps type names to leaf types and parametric descriptors
type Registry struct {
	mu         sync.RWMutex
	leaves     map[string]types.Type
	parametric map[string]types.ParametricType
	interned   map[string]types.Type // canonical signature -> instance
	sealed     bool

	// serialises construction per canonical signature
	group singleflight.Group

	logger  *zap.Logger
	metrics *metrics.RegistryMetrics
	tracer  trace.Tracer
}

// Option configures a Registry
type Option func(*Registry)

// WithLogger sets the registry logger
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics records resolutions and constructions to m
func WithMetrics(m *metrics.RegistryMetrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// WithTracer sets the tracer used by ResolveContext
func WithTracer(t trace.Tracer) Option {
	return func(r *Registry) {
		if t != nil {
			r.tracer = t
		}
	}
}

// New creates an empty registry
func New(opts ...Option) *Registry {
	r := &Registry{
		leaves:     make(map[string]types.Type),
		parametric: make(map[string]types.ParametricType),
		interned:   make(map[string]types.Type),
		logger:     logger.Named("type_registry"),
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewWithStandardTypes creates a registry holding the built-in leaf types and
// digest descriptors
func NewWithStandardTypes(opts ...Option) *Registry {
	r := New(opts...)
	for _, t := range types.StandardTypes() {
		r.MustRegisterType(t)
	}
	for _, p := range types.StandardParametricTypes() {
		r.MustRegisterParametricType(p)
	}
	return r
}

// RegisterType registers a leaf type under its signature base
func (r *Registry) RegisterType(t types.Type) error {
	if t == nil {
		return errors.New(errors.ErrorTypeValidation, "cannot register a nil type")
	}
	sig := t.Signature()
	if sig.IsParametric() {
		return errors.Newf(errors.ErrorTypeValidation,
			"type %s has parameters; register its descriptor instead", sig).
			WithDetail("signature", sig.String())
	}
	if err := validateName(sig.Base); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkRegisterable(sig.Base); err != nil {
		return err
	}
	r.leaves[sig.Base] = t
	r.interned[sig.String()] = t
	r.metrics.SetRegistered("leaf", len(r.leaves))

	r.logger.Info("type registered", zap.String("name", sig.Base), zap.Stringer("shape", t.Shape()))
	return nil
}

// RegisterParametricType registers a descriptor under its name
func (r *Registry) RegisterParametricType(p types.ParametricType) error {
	if p == nil {
		return errors.New(errors.ErrorTypeValidation, "cannot register a nil parametric type")
	}
	name := p.Name()
	if err := validateName(name); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkRegisterable(name); err != nil {
		return err
	}
	r.parametric[name] = p
	r.metrics.SetRegistered("parametric", len(r.parametric))

	r.logger.Info("parametric type registered", zap.String("name", name))
	return nil
}

// MustRegisterType is RegisterType that panics on error
func (r *Registry) MustRegisterType(t types.Type) {
	if err := r.RegisterType(t); err != nil {
		panic(err)
	}
}

// MustRegisterParametricType is RegisterParametricType that panics on error
func (r *Registry) MustRegisterParametricType(p types.ParametricType) {
	if err := r.RegisterParametricType(p); err != nil {
		panic(err)
	}
}

// checkRegisterable must be called with mu held
func (r *Registry) checkRegisterable(name string) error {
	if r.sealed {
		return errors.Newf(errors.ErrorTypeConfig, "registry is sealed, cannot register %s", name).
			WithDetail("name", name)
	}
	_, leaf := r.leaves[name]
	_, parametric := r.parametric[name]
	if leaf || parametric {
		return errors.Newf(errors.ErrorTypeConfig, "type %s already registered", name).
			WithDetail("name", name)
	}
	return nil
}

// validateName accepts names that parse as a bare, canonical signature
func validateName(name string) error {
	sig, err := types.ParseSignature(name)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeValidation, "invalid type name").WithDetail("name", name)
	}
	if sig.IsParametric() || sig.Base != name {
		return errors.Newf(errors.ErrorTypeValidation, "invalid type name %q", name).WithDetail("name", name)
	}
	return nil
}

// Seal ends the registration phase. It is idempotent.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return
	}
	r.sealed = true
	r.logger.Info("registry sealed",
		zap.Int("types", len(r.leaves)),
		zap.Int("parametric_types", len(r.parametric)))
}

// Sealed reports whether Seal has been called
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Types returns the sorted names of registered leaf types
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.leaves)
}

// ParametricTypes returns the sorted names of registered descriptors
func (r *Registry) ParametricTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.parametric)
}

// Interned returns the sorted canonical signatures resolved so far, leaf types included
func (r *Registry) Interned() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.interned)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Resolve parses signature and returns its Type
func (r *Registry) Resolve(signature string) (types.Type, error) {
	return r.ResolveContext(context.Background(), signature)
}

// MustResolve is Resolve that panics on error
func (r *Registry) MustResolve(signature string) types.Type {
	t, err := r.Resolve(signature)
	if err != nil {
		panic(err)
	}
	return t
}

// ResolveContext parses signature and returns its Type. The resolution is
// recorded as a child span of the span in ctx.
func (r *Registry) ResolveContext(ctx context.Context, signature string) (types.Type, error) {
	return r.traced(ctx, signature, func(ctx context.Context) (types.Type, string, error) {
		sig, err := types.ParseSignature(signature)
		if err != nil {
			return nil, "", err
		}
		return r.resolve(ctx, sig)
	})
}

// ResolveSignature returns the Type of an already parsed signature
func (r *Registry) ResolveSignature(sig types.TypeSignature) (types.Type, error) {
	sig = sig.Canonical()
	return r.traced(context.Background(), sig.String(), func(ctx context.Context) (types.Type, string, error) {
		return r.resolve(ctx, sig)
	})
}

// Preload resolves each signature, stopping at the first failure
func (r *Registry) Preload(ctx context.Context, signatures ...string) error {
	for _, s := range signatures {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, errors.ErrorTypeInternal, "preload cancelled")
		}
		if _, err := r.ResolveContext(ctx, s); err != nil {
			return errors.Wrap(err, errors.TypeOf(err), "preload failed").WithDetail("signature", s)
		}
	}
	return nil
}

func (r *Registry) traced(ctx context.Context, signature string, fn func(context.Context) (types.Type, string, error)) (types.Type, error) {
	ctx, span := r.tracer.Start(ctx, "registry.Resolve",
		trace.WithAttributes(attribute.String("coltype.signature", signature)))
	defer span.End()

	timer := metrics.NewTimer()
	t, result, err := fn(ctx)
	if err != nil {
		r.metrics.ObserveResolution(metrics.ResultError, timer.Elapsed())
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.WithContext(ctx, r.logger).Warn("type resolution failed",
			zap.String("signature", signature),
			zap.Error(err))
		return nil, err
	}

	r.metrics.ObserveResolution(result, timer.Elapsed())
	span.SetAttributes(
		attribute.String("coltype.result", result),
		attribute.String("coltype.type", t.DisplayName()))
	return t, nil
}

// resolve returns the interned instance for sig, constructing it on first use
func (r *Registry) resolve(ctx context.Context, sig types.TypeSignature) (types.Type, string, error) {
	key := sig.String()

	r.mu.RLock()
	t, ok := r.interned[key]
	_, leaf := r.leaves[sig.Base]
	descriptor, parametric := r.parametric[sig.Base]
	r.mu.RUnlock()
	if ok {
		return t, metrics.ResultHit, nil
	}
	if leaf {
		return nil, "", errors.Newf(errors.ErrorTypeArity,
			"%s expects 0 type parameters, got %d", sig.Base, len(sig.Parameters)).
			WithDetail("signature", key).
			WithDetail("expected", 0).
			WithDetail("actual", len(sig.Parameters))
	}
	if !parametric {
		return nil, "", errors.Newf(errors.ErrorTypeNotFound, "unknown type %s", sig.Base).
			WithDetail("signature", key).
			WithDetail("name", sig.Base)
	}

	// only the caller whose function ran reports the construction
	leader := false
	v, err, _ := r.group.Do(key, func() (interface{}, error) {
		leader = true
		return r.construct(ctx, key, sig, descriptor)
	})
	if err != nil {
		return nil, "", err
	}
	c := v.(construction)
	if !leader || !c.fresh {
		return c.t, metrics.ResultHit, nil
	}
	return c.t, metrics.ResultConstructed, nil
}

// construction is the value shared by callers of one singleflight key.
// fresh is false when the type was already interned.
type construction struct {
	t     types.Type
	fresh bool
}

// construct runs inside the singleflight group for key. Errors are fully
// decorated before they are shared with other callers.
func (r *Registry) construct(ctx context.Context, key string, sig types.TypeSignature, descriptor types.ParametricType) (construction, error) {
	r.mu.RLock()
	existing, ok := r.interned[key]
	r.mu.RUnlock()
	if ok {
		return construction{t: existing}, nil
	}

	parameters := make([]types.Type, len(sig.Parameters))
	for i, p := range sig.Parameters {
		t, _, err := r.resolve(ctx, p)
		if err != nil {
			return construction{}, errors.Wrap(err, errors.TypeOf(err),
				stringpool.Sprintf("cannot resolve parameter %d of %s", i, key)).
				WithDetail("signature", key).
				WithDetail("parameter", p.String())
		}
		parameters[i] = t
	}

	t, err := descriptor.Type(parameters)
	if err != nil {
		return construction{}, withSignature(err, key)
	}
	if t == nil {
		return construction{}, errors.Newf(errors.ErrorTypeInternal, "%s returned no type", descriptor.Name()).
			WithDetail("signature", key)
	}
	if !t.Signature().Equal(sig) {
		return construction{}, errors.Newf(errors.ErrorTypeInternal,
			"%s built type %s for signature %s", descriptor.Name(), t.Signature(), key).
			WithDetail("signature", key)
	}

	r.mu.Lock()
	if existing, ok := r.interned[key]; ok {
		r.mu.Unlock()
		return construction{t: existing}, nil
	}
	r.interned[key] = t
	r.mu.Unlock()

	r.metrics.IncConstructions(sig.Base)
	r.logger.Debug("type constructed", zap.String("signature", key))
	return construction{t: t, fresh: true}, nil
}

// withSignature attaches the requested signature to a descriptor error
func withSignature(err error, signature string) error {
	var e *errors.Error
	if !errors.As(err, &e) {
		return errors.Wrap(err, errors.ErrorTypeInternal, "parametric construction failed").
			WithDetail("signature", signature)
	}
	if _, ok := e.Detail("signature"); !ok {
		e.WithDetail("signature", signature)
	}
	return err
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the process-wide registry holding the standard types. It is
// created on first use and never sealed.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewWithStandardTypes()
	})
	return defaultRegistry
}

// Resolve resolves signature against the default registry
func Resolve(signature string) (types.Type, error) {
	return Default().Resolve(signature)
}
