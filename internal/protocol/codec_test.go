package protocol

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

// chunkReader hands out exactly one predefined chunk per Read call,
// simulating TCP segmentation that splits or coalesces messages.
type chunkReader struct {
	chunks [][]byte
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.chunks[0])
	r.chunks[0] = r.chunks[0][n:]
	if len(r.chunks[0]) == 0 {
		r.chunks = r.chunks[1:]
	}
	return n, nil
}

type testConn struct {
	io.Reader
	io.Writer
}

func newChunkCodec(chunks ...string) *StreamCodec {
	cr := &chunkReader{}
	for _, c := range chunks {
		cr.chunks = append(cr.chunks, []byte(c))
	}
	return NewStreamCodec(testConn{Reader: cr, Writer: io.Discard})
}

func TestCodecReassemblesSplitMessage(t *testing.T) {
	c := newChunkCodec(`{"direc`, `tion":"`, `UP"}`)
	var in Intent
	if err := c.Decode(&in); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if in.Direction == nil || *in.Direction != "UP" {
		t.Fatalf("direction = %v, want UP", in.Direction)
	}
}

func TestCodecSplitsCoalescedMessages(t *testing.T) {
	c := newChunkCodec(`{"direction":"UP"}{"direction":"DOWN"}`)
	for _, want := range []string{"UP", "DOWN"} {
		var in Intent
		if err := c.Decode(&in); err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if in.Direction == nil || *in.Direction != want {
			t.Fatalf("direction = %v, want %s", in.Direction, want)
		}
	}
}

func TestCodecNullAndMissingDirection(t *testing.T) {
	c := newChunkCodec(`{"direction":null}{}`)
	for i := 0; i < 2; i++ {
		var in Intent
		if err := c.Decode(&in); err != nil {
			t.Fatalf("Decode %d: %v", i, err)
		}
		if in.Direction != nil {
			t.Fatalf("Decode %d: direction = %q, want nil", i, *in.Direction)
		}
	}
}

func TestCodecResyncsAfterGarbage(t *testing.T) {
	c := newChunkCodec(`@@@@`, `{"direction":"LEFT"}`)
	var in Intent
	if err := c.Decode(&in); !errors.Is(err, ErrMalformed) {
		t.Fatalf("Decode garbage: %v, want ErrMalformed", err)
	}
	if err := c.Decode(&in); err != nil {
		t.Fatalf("Decode after resync: %v", err)
	}
	if in.Direction == nil || *in.Direction != "LEFT" {
		t.Fatalf("direction = %v, want LEFT", in.Direction)
	}
}

func TestCodecWrongShapeDecodesAsEmpty(t *testing.T) {
	c := newChunkCodec(`{"direction":5}{"direction":"UP"}`)
	var in Intent
	if err := c.Decode(&in); err != nil {
		t.Fatalf("Decode wrong shape: %v, want empty message", err)
	}
	if in.Direction != nil {
		t.Fatalf("direction = %q, want nil for a non-string value", *in.Direction)
	}
	if err := c.Decode(&in); err != nil {
		t.Fatalf("Decode next message: %v", err)
	}
	if in.Direction == nil || *in.Direction != "UP" {
		t.Fatalf("direction = %v, want UP", in.Direction)
	}
}

func TestCodecPassesTransportErrors(t *testing.T) {
	c := newChunkCodec()
	var in Intent
	if err := c.Decode(&in); !errors.Is(err, io.EOF) {
		t.Fatalf("Decode on closed stream: %v, want EOF", err)
	}
}

func TestCodecEncode(t *testing.T) {
	var buf bytes.Buffer
	c := NewStreamCodec(testConn{Reader: &chunkReader{}, Writer: &buf})
	if err := c.Encode(Hello{Letter: "A"}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got := buf.String(); got != "{\"letter\":\"A\"}\n" {
		t.Fatalf("encoded = %q", got)
	}
}
