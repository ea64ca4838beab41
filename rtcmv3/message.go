package rtcmv3

import "github.com/goblimey/go-gnss-codec/bitreader"

// Message is a single decoded RTCM v3 frame. RawData is the complete wire
// frame including the leader and CRC. Body holds the typed value produced
// by the registered decoder for this message's type, or an *UnknownBody
// if no decoder is registered.
type Message struct {
	MessageType int
	RawData     []byte
	Body        interface{}
}

// UnknownBody preserves the raw payload bytes of a message type with no
// registered decoder, so that encoding stays lossless even for types this
// module doesn't otherwise understand. Payload is the full frame payload
// (the bytes between the 3-byte leader and the 3-byte CRC), including the
// leading 12-bit type field, so it can be written back out verbatim.
type UnknownBody struct {
	Type    int
	Payload []byte
}

// bodyWriter is implemented by registered message bodies that can
// re-render themselves onto the wire. Every registered body implements it;
// Encode rejects a body that is neither a bodyWriter nor an *UnknownBody.
type bodyWriter interface {
	messageType() int
	writeBody(w *bitreader.Writer) error
}

func decodeBody(payload []byte) (int, interface{}, error) {
	r := bitreader.New(payload)
	msgType64, err := r.ReadU(12)
	if err != nil {
		return 0, nil, err
	}
	msgType := int(msgType64)

	decoder, ok := registry[msgType]
	if !ok {
		raw := make([]byte, len(payload))
		copy(raw, payload)
		return msgType, &UnknownBody{Type: msgType, Payload: raw}, nil
	}

	body, err := decoder(r)
	return msgType, body, err
}
