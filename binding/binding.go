// Package binding implements the argument-binding algorithm shared by the
// client proxy and the server dispatcher: given a method descriptor and a
// call expressed as positional and keyword values, produce the canonical
// ordered argument set, exactly as a direct local call would.
package binding

import (
	"sort"

	"sigrpc/service"
)

// Bind reconciles a call against the method's declared parameter list.
//
// Rules, in precedence order:
//  1. Each positional value binds to the parameter at the same index.
//  2. Each keyword value binds to the parameter with the matching name.
//  3. Any parameter still unbound takes its default value.
//
// Bind fails with a *Error when the positional count exceeds the parameter
// count, a keyword names no declared parameter, a parameter is supplied both
// positionally and by keyword (duplicate binding is a hard failure, never
// last-write-wins), or a required parameter is left unsupplied.
//
// Bind is deterministic and side-effect-free: the same (method, call) pair
// always yields the same result, regardless of kwargs iteration order, and
// the resulting Arguments always lists parameters in declaration order.
func Bind(m *service.Method, args []any, kwargs map[string]any) (*service.Arguments, error) {
	n := m.NumParams()
	if len(args) > n {
		return nil, &Error{Method: m.ExposedName(), Reason: ReasonTooManyPositional}
	}

	values := make([]any, n)
	bound := make([]bool, n)

	for i, v := range args {
		values[i] = v
		bound[i] = true
	}

	// Sorted so that a call with more than one keyword mistake always
	// reports the same failure.
	names := make([]string, 0, len(kwargs))
	for name := range kwargs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		i, ok := m.ParamIndex(name)
		if !ok {
			return nil, &Error{Method: m.ExposedName(), Reason: ReasonUnexpectedKeyword, Param: name}
		}
		if bound[i] {
			return nil, &Error{Method: m.ExposedName(), Reason: ReasonDuplicateBinding, Param: name}
		}
		values[i] = kwargs[name]
		bound[i] = true
	}

	for i := 0; i < n; i++ {
		if bound[i] {
			continue
		}
		p := m.Param(i)
		if !p.HasDefault {
			return nil, &Error{Method: m.ExposedName(), Reason: ReasonMissingRequired, Param: p.Name}
		}
		values[i] = p.Default
	}

	out := service.NewArguments(n)
	for i := 0; i < n; i++ {
		out.Set(m.Param(i).Name, values[i])
	}
	return out, nil
}
