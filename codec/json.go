package codec

import "encoding/json"

// JSON normalizes values through a JSON round trip on both directions.
//
// Useful when the caller wants local and remote results to carry identical
// dynamic types: after normalization a value looks exactly as it will after
// crossing a JSON transport (numbers as float64, maps as map[string]any),
// whether or not the call actually left the process.
type JSON struct{}

func (JSON) Serialize(method string, data any) (any, error)   { return roundTrip(data) }
func (JSON) Deserialize(method string, data any) (any, error) { return roundTrip(data) }

func roundTrip(data any) (any, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
