// Package codec defines the pluggable serialization boundary between logical
// call values and their wire representation.
package codec

// Serializer transforms a method's logical values (its parameter map on the
// way out, its result on the way back) into wire-ready data and back.
//
// Both directions must be pure functions of their inputs: repeated
// application to the same (method, data) pair yields the same output, with
// no dependence on call order. Implementations holding mutable state (a
// reusable buffer, a connection) are responsible for their own concurrency
// discipline.
type Serializer interface {
	Serialize(method string, data any) (any, error)
	Deserialize(method string, data any) (any, error)
}
