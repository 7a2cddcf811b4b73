package types

import (
	"sort"
	"sync"

	"github.com/ajitpratap0/coltype/pkg/errors"
)

// ParametricType is a named factory for a family of composite types.
//
// Type validates its own arity and parameter types; a registry passes the
// resolved parameters through unchecked. Implementations must be safe for
// concurrent use and must return the same instance for the same parameters.
type ParametricType interface {
	Name() string
	Type(parameters []Type) (Type, error)
}

// digestParametricType builds statistical digest types over one element type.
//
// Instances are memoised by element identity with sync.Map.LoadOrStore:
// concurrent first requests may each construct a candidate, but only the
// stored one is ever returned.
type digestParametricType struct {
	name      string
	supported map[string]struct{}
	instances sync.Map // Type -> *DigestType
}

func newDigestParametricType(name string, supportedElements ...string) *digestParametricType {
	supported := make(map[string]struct{}, len(supportedElements))
	for _, e := range supportedElements {
		supported[e] = struct{}{}
	}
	return &digestParametricType{name: name, supported: supported}
}

func (p *digestParametricType) Name() string { return p.name }

func (p *digestParametricType) Type(parameters []Type) (Type, error) {
	if len(parameters) != 1 {
		return nil, errors.Newf(errors.ErrorTypeArity,
			"%s expects 1 type parameter, got %d", p.name, len(parameters)).
			WithDetail("type", p.name).
			WithDetail("expected", 1).
			WithDetail("actual", len(parameters))
	}

	element := parameters[0]
	if element == nil {
		return nil, errors.Newf(errors.ErrorTypeSignature, "%s parameter is not a resolved type", p.name).
			WithDetail("type", p.name)
	}

	if existing, ok := p.instances.Load(element); ok {
		return existing.(*DigestType), nil
	}

	if _, ok := p.supported[element.DisplayName()]; !ok {
		return nil, errors.Newf(errors.ErrorTypeSignature,
			"%s does not support element type %s", p.name, element.DisplayName()).
			WithDetail("type", p.name).
			WithDetail("element", element.DisplayName()).
			WithDetail("supported", p.SupportedElements())
	}

	actual, _ := p.instances.LoadOrStore(element, newDigestType(p.name, element))
	return actual.(*DigestType), nil
}

// SupportedElements lists the element types the descriptor accepts
func (p *digestParametricType) SupportedElements() []string {
	names := make([]string, 0, len(p.supported))
	for name := range p.supported {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
