package jsonrpc

import (
	"bytes"
	"encoding/json"
)

// DecodeParams splits a raw params member into positional and named values.
//
// A JSON array yields positional values, a JSON object yields named values,
// and null or an absent member yields neither. Anything else is an
// invalid-params *Error. A proxy always sends named params, but remote
// callers are free to send either shape.
func DecodeParams(raw json.RawMessage) ([]any, map[string]any, *Error) {
	if len(raw) == 0 {
		return nil, nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, &Error{Code: CodeInvalidParams, Message: "invalid params", Data: err.Error()}
	}
	if tok == nil {
		// JSON null
		return nil, nil, nil
	}
	if d, ok := tok.(json.Delim); ok {
		switch d.String() {
		case "[":
			var args []any
			if err := json.Unmarshal(raw, &args); err != nil {
				return nil, nil, &Error{Code: CodeInvalidParams, Message: "invalid params", Data: err.Error()}
			}
			return args, nil, nil
		case "{":
			var kwargs map[string]any
			if err := json.Unmarshal(raw, &kwargs); err != nil {
				return nil, nil, &Error{Code: CodeInvalidParams, Message: "invalid params", Data: err.Error()}
			}
			return nil, kwargs, nil
		}
	}
	return nil, nil, &Error{Code: CodeInvalidParams, Message: "invalid params", Data: "params must be an array, an object, or null"}
}
