// Package service defines the declaration surface for remotely callable
// services: a service is declared exactly once as a named set of methods,
// each with an ordered parameter list (names plus optional default values),
// and compiled into an immutable Descriptor.
//
// The Descriptor is the single source of truth consumed by both the client
// proxy generator and the server dispatcher. It is built once at setup time
// and is read-only afterwards, so it can be shared across goroutines without
// synchronization.
package service

import "context"

// Handler is the implementation slot referenced by a declared method.
// It receives the bound, ordered argument set for one call and returns the
// logical result (pre-serialization) or an error.
type Handler func(ctx context.Context, args *Arguments) (any, error)

// Parameter describes one declared parameter: its name and, if present, its
// default value. Position is implied by declaration order.
type Parameter struct {
	Name       string
	HasDefault bool
	Default    any
}

// Method is the immutable description of one remotely callable method.
type Method struct {
	name    string
	exposed string
	params  []Parameter
	index   map[string]int // parameter name → position
	handler Handler
}

// Name returns the declared method name.
func (m *Method) Name() string { return m.name }

// ExposedName returns the name used on the wire. It equals Name unless the
// declaration overrode it.
func (m *Method) ExposedName() string { return m.exposed }

// NumParams returns the number of declared parameters.
func (m *Method) NumParams() int { return len(m.params) }

// Param returns the parameter at the given declaration position.
func (m *Method) Param(i int) Parameter { return m.params[i] }

// ParamIndex returns the declaration position of the named parameter.
func (m *Method) ParamIndex(name string) (int, bool) {
	i, ok := m.index[name]
	return i, ok
}

// Handler returns the handler attached at declaration time, or nil if the
// declaration is interface-only (client side).
func (m *Method) Handler() Handler { return m.handler }

// Descriptor is the immutable, ordered description of a service's remotely
// callable methods.
type Descriptor struct {
	name    string
	methods []*Method
	byName  map[string]*Method // keyed by exposed name
}

// Name returns the service name.
func (d *Descriptor) Name() string { return d.name }

// Methods returns the declared methods in declaration order.
func (d *Descriptor) Methods() []*Method {
	out := make([]*Method, len(d.methods))
	copy(out, d.methods)
	return out
}

// Method looks up a method by its exposed name.
func (d *Descriptor) Method(exposed string) (*Method, bool) {
	m, ok := d.byName[exposed]
	return m, ok
}

// ParamSpec declares one parameter of a method.
type ParamSpec struct {
	Name       string
	HasDefault bool
	Default    any
}

// Param declares a required parameter.
func Param(name string) ParamSpec {
	return ParamSpec{Name: name}
}

// ParamDefault declares an optional parameter with a default value.
func ParamDefault(name string, def any) ParamSpec {
	return ParamSpec{Name: name, HasDefault: true, Default: def}
}

// MethodSpec declares one remotely callable method. Methods not declared are
// simply not part of the service — there is no runtime tagging to scan for.
type MethodSpec struct {
	Name    string
	Exposed string // wire name override; empty means use Name
	Handler Handler
	Params  []ParamSpec
}

// NewMethod declares a method with the given handler and parameters.
// The handler may be nil for interface-only declarations consumed by the
// client proxy; the server dispatcher requires one (either here or supplied
// with the implementation).
func NewMethod(name string, h Handler, params ...ParamSpec) MethodSpec {
	return MethodSpec{Name: name, Handler: h, Params: params}
}

// WithExposedName overrides the name the method is exposed under on the wire.
func (m MethodSpec) WithExposedName(exposed string) MethodSpec {
	m.Exposed = exposed
	return m
}

// New compiles a service declaration into a Descriptor.
//
// Method order and parameter order follow declaration order and are stable
// across repeated compilation of the same declaration. New fails with a
// *DeclarationError if two methods share an exposed name, a method declares
// two parameters with the same name, or a required parameter follows a
// defaulted one.
func New(name string, methods ...MethodSpec) (*Descriptor, error) {
	if name == "" {
		return nil, &DeclarationError{Reason: "service name must not be empty"}
	}
	d := &Descriptor{
		name:    name,
		methods: make([]*Method, 0, len(methods)),
		byName:  make(map[string]*Method, len(methods)),
	}
	for _, spec := range methods {
		if spec.Name == "" {
			return nil, &DeclarationError{Service: name, Reason: "method name must not be empty"}
		}
		exposed := spec.Exposed
		if exposed == "" {
			exposed = spec.Name
		}
		if _, dup := d.byName[exposed]; dup {
			return nil, &DeclarationError{Service: name, Method: exposed, Reason: "duplicate method name"}
		}
		m := &Method{
			name:    spec.Name,
			exposed: exposed,
			params:  make([]Parameter, 0, len(spec.Params)),
			index:   make(map[string]int, len(spec.Params)),
			handler: spec.Handler,
		}
		seenDefault := false
		for i, p := range spec.Params {
			if p.Name == "" {
				return nil, &DeclarationError{Service: name, Method: exposed, Reason: "parameter name must not be empty"}
			}
			if _, dup := m.index[p.Name]; dup {
				return nil, &DeclarationError{
					Service: name, Method: exposed,
					Reason: "duplicate parameter name: " + p.Name,
				}
			}
			if p.HasDefault {
				seenDefault = true
			} else if seenDefault {
				return nil, &DeclarationError{
					Service: name, Method: exposed,
					Reason: "required parameter after defaulted parameter: " + p.Name,
				}
			}
			m.params = append(m.params, Parameter{Name: p.Name, HasDefault: p.HasDefault, Default: p.Default})
			m.index[p.Name] = i
		}
		d.methods = append(d.methods, m)
		d.byName[exposed] = m
	}
	return d, nil
}
