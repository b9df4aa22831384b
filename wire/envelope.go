// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wire

// Encode frames payload behind id's one-byte tag, using Codec to
// serialize the body.
func Encode(id MessageID, payload interface{}) ([]byte, error) {
	body, err := Codec.Marshal(CodecVersion, payload)
	if err != nil {
		return nil, err
	}
	if len(body)+1 > MaxMessageSize {
		return nil, ErrMessageTooLarge
	}
	out := make([]byte, 0, len(body)+1)
	out = append(out, byte(id))
	out = append(out, body...)
	return out, nil
}

// DecodeID reads a frame's message ID and returns the remaining body,
// without attempting to decode the body itself.
func DecodeID(raw []byte) (MessageID, []byte, error) {
	if len(raw) > MaxMessageSize {
		return 0, nil, ErrMessageTooLarge
	}
	if len(raw) < 1 {
		return 0, nil, ErrShortMessage
	}
	id := MessageID(raw[0])
	if id > maxMessageID {
		return 0, nil, ErrUnknownMessageID
	}
	return id, raw[1:], nil
}

// Decode unmarshals body into out, which must be a pointer to the type
// registered for id's payload.
func Decode(body []byte, out interface{}) error {
	_, err := Codec.Unmarshal(body, out)
	return err
}
