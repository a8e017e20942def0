package protocol

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
)

// ErrMalformed marks an inbound message that could not be decoded. The
// handler skips the cycle and waits for the next message; the connection
// stays up.
var ErrMalformed = errors.New("protocol: malformed message")

// StreamCodec frames JSON values over an unframed byte stream. The wire
// carries no length prefix or delimiter, so a message may arrive split or
// coalesced across reads; a streaming json.Decoder reassembles exactly one
// complete value per Decode regardless. Writes emit one bare JSON object
// (plus a trailing newline, which any JSON peer tolerates as whitespace).
type StreamCodec struct {
	r   *bufio.Reader
	dec *json.Decoder
	enc *json.Encoder
}

func NewStreamCodec(rw io.ReadWriter) *StreamCodec {
	br := bufio.NewReader(rw)
	return &StreamCodec{
		r:   br,
		dec: json.NewDecoder(br),
		enc: json.NewEncoder(rw),
	}
}

// Decode reads the next complete JSON value into v. Syntactically broken
// input yields ErrMalformed and the codec resyncs; any data the decoder
// had buffered past the bad value is dropped with it. Valid JSON whose
// fields have the wrong type decodes as far as possible and is treated as
// an empty message, the way a lenient peer handles it, so the request
// still gets an answer. Transport errors pass through unchanged.
func (c *StreamCodec) Decode(v any) error {
	err := c.dec.Decode(v)
	if err == nil {
		return nil
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		io.Copy(io.Discard, c.dec.Buffered())
		c.dec = json.NewDecoder(c.r)
		return ErrMalformed
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		// The decoder is still in sync; mismatched fields stay zero.
		return nil
	}
	return err
}

func (c *StreamCodec) Encode(v any) error {
	return c.enc.Encode(v)
}
