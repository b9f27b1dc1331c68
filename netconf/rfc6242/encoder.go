package rfc6242

import (
	"io"
	"strconv"
)

// EncoderOption configures an Encoder.
type EncoderOption func(*Encoder)

// WithMaxChunkSize limits the size of the chunks written in chunked framing mode.
func WithMaxChunkSize(n uint32) EncoderOption {
	return func(e *Encoder) {
		e.maxChunk = n
	}
}

// Encoder frames messages written to an underlying writer.
//
// In end-of-message mode writes pass straight through and EndOfMessage appends the ]]>]]>
// delimiter. In chunked mode each write becomes one or more chunks and EndOfMessage writes the
// end-of-chunks marker.
type Encoder struct {
	w        io.Writer
	chunked  bool
	maxChunk uint32
}

// NewEncoder creates an encoder writing framed output to w.
func NewEncoder(w io.Writer, options ...EncoderOption) *Encoder {
	e := &Encoder{w: w, maxChunk: maxChunkSize}
	for _, option := range options {
		option(e)
	}
	return e
}

// Write frames b onto the underlying writer.
func (e *Encoder) Write(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	if !e.chunked {
		return e.w.Write(b)
	}

	n := 0
	for n < len(b) {
		size := len(b) - n
		if e.maxChunk > 0 && uint64(size) > uint64(e.maxChunk) {
			size = int(e.maxChunk)
		}
		if _, err := io.WriteString(e.w, "\n#"+strconv.Itoa(size)+"\n"); err != nil {
			return n, err
		}
		wn, err := e.w.Write(b[n : n+size])
		n += wn
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// EndOfMessage terminates the message written since the last call.
func (e *Encoder) EndOfMessage() error {
	var err error
	if e.chunked {
		_, err = e.w.Write(tokenEndOfChunks)
	} else {
		_, err = e.w.Write(tokenEOM)
	}
	return err
}

// SetChunkedFraming switches any non-nil decoders and encoders passed to it to chunked
// framing, as required once both peers have advertised base:1.1.
func SetChunkedFraming(objects ...interface{}) {
	for _, obj := range objects {
		switch obj := obj.(type) {
		case *Decoder:
			if obj != nil {
				obj.chunked = true
			}
		case *Encoder:
			if obj != nil {
				obj.chunked = true
			}
		}
	}
}
