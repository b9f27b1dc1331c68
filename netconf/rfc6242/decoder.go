// Package rfc6242 implements the NETCONF over SSH message framing defined by RFC6242: the
// base:1.0 end-of-message delimiter and the base:1.1 chunked encoding.
package rfc6242

import (
	"bufio"
	"bytes"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

const (
	// maxChunkSize is the largest chunk-size RFC6242 section 4.2 permits.
	maxChunkSize = 4294967295
	// maxChunkSizeDigits is the length of maxChunkSize in decimal digits.
	maxChunkSizeDigits = 10
	// defaultMaxMessageSize bounds the size of a single decoded message.
	defaultMaxMessageSize = 1024 * 1024
)

var (
	tokenEOM         = []byte("]]>]]>")
	tokenEndOfChunks = []byte("\n##\n")
)

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithMaxMessageSize limits the size of a message the decoder will buffer.
func WithMaxMessageSize(n int) DecoderOption {
	return func(d *Decoder) {
		d.maxSize = n
	}
}

// WithChunkedFraming starts the decoder in chunked framing mode.
func WithChunkedFraming() DecoderOption {
	return func(d *Decoder) {
		d.chunked = true
	}
}

// Decoder splits an RFC6242 framed input stream into individual messages, with the framing
// removed.
//
// A Decoder starts in end-of-message mode. SetChunkedFraming switches it to chunked mode, taking
// effect from the message following the one most recently returned by Decode.
//
// Decoder is not safe for concurrent use.
type Decoder struct {
	s       *bufio.Scanner
	chunked bool
	maxSize int
}

// NewDecoder creates a decoder reading framed messages from input.
func NewDecoder(input io.Reader, options ...DecoderOption) *Decoder {
	d := &Decoder{maxSize: defaultMaxMessageSize}
	for _, option := range options {
		option(d)
	}
	initial := 4096
	if d.maxSize < initial {
		initial = d.maxSize
	}
	d.s = bufio.NewScanner(input)
	d.s.Buffer(make([]byte, 0, initial), d.maxSize)
	d.s.Split(d.split)
	return d
}

// Decode delivers the next message from the input.
// It returns io.EOF when the input ends cleanly between messages, and io.ErrUnexpectedEOF if it
// ends part way through one.
func (d *Decoder) Decode() ([]byte, error) {
	if d.s.Scan() {
		return append([]byte(nil), d.s.Bytes()...), nil
	}
	if err := d.s.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

func (d *Decoder) split(data []byte, atEOF bool) (int, []byte, error) {
	if d.chunked {
		return splitChunked(data, atEOF)
	}
	return splitEndOfMessage(data, atEOF)
}

func splitEndOfMessage(data []byte, atEOF bool) (int, []byte, error) {
	if i := bytes.Index(data, tokenEOM); i >= 0 {
		return i + len(tokenEOM), data[:i], nil
	}
	if atEOF {
		if len(bytes.TrimSpace(data)) == 0 {
			return len(data), nil, nil
		}
		return 0, nil, io.ErrUnexpectedEOF
	}
	return 0, nil, nil
}

// splitChunked delivers the payload of a complete chunked message, i.e. a sequence of
// \n#<size>\n<data> chunks terminated by \n##\n.
func splitChunked(data []byte, atEOF bool) (int, []byte, error) {
	var msg []byte
	p := 0
	for {
		rest := data[p:]
		switch {
		case p == 0 && len(bytes.TrimSpace(rest)) == 0:
			if atEOF {
				return len(data), nil, nil
			}
			return 0, nil, nil
		case len(rest) == 0:
			return more(atEOF)
		case rest[0] != '\n':
			return 0, nil, errors.New("invalid chunk header")
		case len(rest) < 2:
			return more(atEOF)
		case rest[1] != '#':
			return 0, nil, errors.New("invalid chunk header")
		case len(rest) < 3:
			return more(atEOF)
		}

		if rest[2] == '#' {
			if len(rest) < len(tokenEndOfChunks) {
				return more(atEOF)
			}
			if rest[3] != '\n' {
				return 0, nil, errors.New("invalid end of chunks marker")
			}
			if msg == nil {
				msg = []byte{}
			}
			return p + len(tokenEndOfChunks), msg, nil
		}

		eol := bytes.IndexByte(rest[2:], '\n')
		digits := rest[2:]
		if eol >= 0 {
			digits = digits[:eol]
		}
		if bytes.IndexFunc(digits, notDigit) >= 0 {
			return 0, nil, errors.New("invalid chunk header")
		}
		if eol < 0 {
			if len(digits) > maxChunkSizeDigits {
				return 0, nil, errors.New("no valid chunk-size detected")
			}
			return more(atEOF)
		}
		size, err := chunkSize(digits)
		if err != nil {
			return 0, nil, err
		}
		start := 2 + eol + 1
		if uint64(len(rest)-start) < size {
			return more(atEOF)
		}
		end := start + int(size)
		msg = append(msg, rest[start:end]...)
		p += end
	}
}

func notDigit(r rune) bool {
	return r < '0' || r > '9'
}

func chunkSize(b []byte) (uint64, error) {
	if len(b) == 0 || len(b) > maxChunkSizeDigits || b[0] == '0' {
		return 0, errors.Errorf("no valid chunk-size detected in %q", b)
	}
	size, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "no valid chunk-size detected")
	}
	if size > maxChunkSize {
		return 0, errors.Errorf("chunk size larger than maximum (%d)", size)
	}
	return size, nil
}

// more asks the scanner for more input, failing if there is none.
func more(atEOF bool) (int, []byte, error) {
	if atEOF {
		return 0, nil, io.ErrUnexpectedEOF
	}
	return 0, nil, nil
}
