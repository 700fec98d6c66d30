package codec

// Passthrough is the standard serializer: values go on the wire exactly as
// the JSON encoding of the transport represents them. Serialize and
// Deserialize are exact inverses (both the identity), which makes a full
// client→dispatcher→client round trip lossless up to JSON value types.
type Passthrough struct{}

func (Passthrough) Serialize(method string, data any) (any, error)   { return data, nil }
func (Passthrough) Deserialize(method string, data any) (any, error) { return data, nil }
