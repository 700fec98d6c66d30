package jsonrpc

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestRequestRoundTrip(t *testing.T) {
	req, err := NewRequest("bar", map[string]any{"x": 1}, 7)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}

	decoded, rpcErr := DecodeRequest(data)
	if rpcErr != nil {
		t.Fatalf("DecodeRequest failed: %v", rpcErr)
	}
	if decoded.Method != "bar" || decoded.ID != 7 || decoded.Version != Version {
		t.Errorf("unexpected request: %+v", decoded)
	}
}

func TestDecodeRequestFailures(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		wantCode int
	}{
		{"not json", `{nope`, CodeParse},
		{"wrong version", `{"jsonrpc":"1.0","method":"m","id":1}`, CodeInvalidRequest},
		{"missing method", `{"jsonrpc":"2.0","id":1}`, CodeInvalidRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, rpcErr := DecodeRequest([]byte(tc.body))
			if rpcErr == nil {
				t.Fatal("expected an error")
			}
			if rpcErr.Code != tc.wantCode {
				t.Errorf("code: got %d, want %d", rpcErr.Code, tc.wantCode)
			}
		})
	}
}

func TestDecodeResponseResult(t *testing.T) {
	resp, err := NewResultResponse(3, map[string]any{"v": 11})
	if err != nil {
		t.Fatal(err)
	}
	data, _ := json.Marshal(resp)

	result, err := DecodeResponse(data, 3)
	if err != nil {
		t.Fatalf("DecodeResponse failed: %v", err)
	}
	want := map[string]any{"v": float64(11)}
	if !reflect.DeepEqual(result, want) {
		t.Errorf("result: got %v, want %v", result, want)
	}
}

func TestDecodeResponseError(t *testing.T) {
	resp := NewErrorResponse(3, &Error{Code: CodeApplication, Message: "boom"})
	data, _ := json.Marshal(resp)

	_, err := DecodeResponse(data, 3)
	var rpcErr *Error
	if !errors.As(err, &rpcErr) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if rpcErr.Code != CodeApplication || rpcErr.Message != "boom" {
		t.Errorf("unexpected error: %+v", rpcErr)
	}
}

func TestDecodeResponseProtocolErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"not json", `{`},
		{"wrong version", `{"jsonrpc":"1.0","result":1,"id":3}`},
		{"id mismatch", `{"jsonrpc":"2.0","result":1,"id":4}`},
		{"neither result nor error", `{"jsonrpc":"2.0","id":3}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeResponse([]byte(tc.body), 3)
			var pe *ProtocolError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ProtocolError, got %T: %v", err, err)
			}
		})
	}
}

func TestDecodeParams(t *testing.T) {
	args, kwargs, err := DecodeParams(json.RawMessage(`[1,"two"]`))
	if err != nil {
		t.Fatalf("array params: %v", err)
	}
	if kwargs != nil {
		t.Error("array params should not produce kwargs")
	}
	if !reflect.DeepEqual(args, []any{float64(1), "two"}) {
		t.Errorf("args: got %v", args)
	}

	args, kwargs, err = DecodeParams(json.RawMessage(`{"x":1}`))
	if err != nil {
		t.Fatalf("object params: %v", err)
	}
	if args != nil {
		t.Error("object params should not produce args")
	}
	if !reflect.DeepEqual(kwargs, map[string]any{"x": float64(1)}) {
		t.Errorf("kwargs: got %v", kwargs)
	}

	for _, raw := range []json.RawMessage{nil, json.RawMessage(`null`)} {
		args, kwargs, err = DecodeParams(raw)
		if err != nil || args != nil || kwargs != nil {
			t.Errorf("empty params %q: got %v %v %v", raw, args, kwargs, err)
		}
	}

	if _, _, err = DecodeParams(json.RawMessage(`42`)); err == nil {
		t.Error("scalar params must be rejected")
	} else if err.Code != CodeInvalidParams {
		t.Errorf("scalar params: got code %d, want %d", err.Code, CodeInvalidParams)
	}
}
