package api

import "math"

// float32bits and float32frombits convert ESPHome's float-typed fields to
// and from the uint32 bit pattern wire.AppendFixed32Field/Reader.Fixed32
// carry, matching protobuf's fixed32 wire encoding for float fields.
func float32bits(f float32) uint32 {
	return math.Float32bits(f)
}

func float32frombits(v uint32) float32 {
	return math.Float32frombits(v)
}
