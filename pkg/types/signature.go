package types

import (
	"strings"

	"github.com/ajitpratap0/coltype/pkg/errors"
	stringpool "github.com/ajitpratap0/coltype/pkg/strings"
)

// maxSignatureDepth bounds parameter nesting accepted by ParseSignature
const maxSignatureDepth = 32

// TypeSignature identifies a type: a base name plus zero or more type parameters.
// Base names match case-insensitively and render lowercase. A signature
// without parameters has nil Parameters.
type TypeSignature struct {
	Base       string
	Parameters []TypeSignature
}

// NewTypeSignature builds a signature, lowercasing base
func NewTypeSignature(base string, parameters ...TypeSignature) TypeSignature {
	return TypeSignature{
		Base:       strings.ToLower(base),
		Parameters: parameters,
	}
}

// IsParametric reports whether the signature carries parameters
func (s TypeSignature) IsParametric() bool {
	return len(s.Parameters) > 0
}

// Equal reports whether two signatures are structurally identical
func (s TypeSignature) Equal(other TypeSignature) bool {
	if !strings.EqualFold(s.Base, other.Base) || len(s.Parameters) != len(other.Parameters) {
		return false
	}
	for i := range s.Parameters {
		if !s.Parameters[i].Equal(other.Parameters[i]) {
			return false
		}
	}
	return true
}

// Canonical returns a copy with every base name lowercased
func (s TypeSignature) Canonical() TypeSignature {
	out := TypeSignature{Base: strings.ToLower(s.Base)}
	if len(s.Parameters) > 0 {
		out.Parameters = make([]TypeSignature, len(s.Parameters))
		for i, p := range s.Parameters {
			out.Parameters[i] = p.Canonical()
		}
	}
	return out
}

// String renders the canonical form: base or base(p1,p2,...)
func (s TypeSignature) String() string {
	if !s.IsParametric() {
		return strings.ToLower(s.Base)
	}
	return stringpool.BuildString(len(s.Base)*4, s.render)
}

func (s TypeSignature) render(b *stringpool.Builder) {
	b.WriteString(strings.ToLower(s.Base))
	if !s.IsParametric() {
		return
	}
	_ = b.WriteByte('(')
	for i, p := range s.Parameters {
		if i > 0 {
			_ = b.WriteByte(',')
		}
		p.render(b)
	}
	_ = b.WriteByte(')')
}

// ParseSignature parses `name` or `name(param, ...)` where every param is itself
// a signature. Whitespace around tokens is ignored and base names are lowercased,
// so ParseSignature(s.String()) always yields a signature Equal to s.
func ParseSignature(signature string) (TypeSignature, error) {
	p := &signatureParser{input: signature}

	sig, err := p.parseSignature(0)
	if err != nil {
		return TypeSignature{}, err
	}

	p.skipSpace()
	if p.pos != len(p.input) {
		return TypeSignature{}, p.errorf("unexpected %q", p.input[p.pos])
	}
	return sig, nil
}

// MustParseSignature is ParseSignature for literals known to be valid
func MustParseSignature(signature string) TypeSignature {
	sig, err := ParseSignature(signature)
	if err != nil {
		panic(err)
	}
	return sig
}

type signatureParser struct {
	input string
	pos   int
}

func (p *signatureParser) parseSignature(depth int) (TypeSignature, error) {
	if depth > maxSignatureDepth {
		return TypeSignature{}, p.errorf("parameters nested deeper than %d", maxSignatureDepth)
	}

	p.skipSpace()
	name := p.identifier()
	if name == "" {
		if p.pos >= len(p.input) {
			return TypeSignature{}, p.errorf("expected type name, found end of input")
		}
		return TypeSignature{}, p.errorf("expected type name, found %q", p.input[p.pos])
	}

	p.skipSpace()
	if !p.consume('(') {
		return NewTypeSignature(name), nil
	}

	var parameters []TypeSignature
	for {
		param, err := p.parseSignature(depth + 1)
		if err != nil {
			return TypeSignature{}, err
		}
		parameters = append(parameters, param)

		p.skipSpace()
		if p.consume(',') {
			continue
		}
		if p.consume(')') {
			break
		}
		if p.pos >= len(p.input) {
			return TypeSignature{}, p.errorf("unterminated parameter list for %s", name)
		}
		return TypeSignature{}, p.errorf("expected ',' or ')', found %q", p.input[p.pos])
	}

	return NewTypeSignature(name, parameters...), nil
}

func (p *signatureParser) identifier() string {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if isLetter(c) || c == '_' || (p.pos > start && isDigit(c)) {
			p.pos++
			continue
		}
		break
	}
	return p.input[start:p.pos]
}

func (p *signatureParser) consume(c byte) bool {
	if p.pos < len(p.input) && p.input[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *signatureParser) skipSpace() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *signatureParser) errorf(format string, args ...interface{}) error {
	return errors.Newf(errors.ErrorTypeSignature, "invalid type signature %q at offset %d: %s",
		p.input, p.pos, stringpool.Sprintf(format, args...)).
		WithDetail("signature", p.input).
		WithDetail("offset", p.pos)
}

func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
