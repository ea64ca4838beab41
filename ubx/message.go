package ubx

import "fmt"

// Message is a single decoded UBX frame.
type Message struct {
	Class   byte
	ID      byte
	RawData []byte
	Body    interface{}
}

// UnknownBody preserves the raw payload of a (class, id) pair with no
// registered decoder, so re-encoding stays lossless.
type UnknownBody struct {
	Class   byte
	ID      byte
	Payload []byte
}

type decoderFunc func(payload []byte) (interface{}, error)

var registry = map[key]decoderFunc{}

func register(class, id byte, fn decoderFunc) {
	registry[key{class, id}] = fn
}

func decodeBody(class, id byte, payload []byte) (interface{}, error) {
	fn, ok := registry[key{class, id}]
	if !ok {
		return &UnknownBody{Class: class, ID: id, Payload: payload}, nil
	}
	return fn(payload)
}

func requireLength(payload []byte, n int, what string) error {
	if len(payload) < n {
		return fmt.Errorf("ubx: %s payload is %d bytes, need at least %d", what, len(payload), n)
	}
	return nil
}
