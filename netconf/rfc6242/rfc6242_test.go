package rfc6242

import (
	"bytes"
	"io"
	"strings"
	"testing"

	assert "github.com/stretchr/testify/require"
)

var eom = string(tokenEOM)

func decodeAll(d *Decoder) ([]string, error) {
	var msgs []string
	for {
		msg, err := d.Decode()
		if err != nil {
			return msgs, err
		}
		msgs = append(msgs, string(msg))
	}
}

func TestEndOfMessageDecoding(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msgs  []string
		err   error
	}{
		{"SingleMessage", "<hello/>" + eom, []string{"<hello/>"}, io.EOF},
		{"MultipleMessages", "<hello/>" + eom + "\n<rpc/>" + eom, []string{"<hello/>", "\n<rpc/>"}, io.EOF},
		{"PartialDelimiter", "1234]]>]]XYZ" + eom, []string{"1234]]>]]XYZ"}, io.EOF},
		{"TrailingWhitespace", "<rpc/>" + eom + "\n", []string{"<rpc/>"}, io.EOF},
		{"Empty", "", nil, io.EOF},
		{"Truncated", "<rpc/>" + eom + "<rpc", []string{"<rpc/>"}, io.ErrUnexpectedEOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs, err := decodeAll(NewDecoder(strings.NewReader(tt.input)))
			assert.Equal(t, tt.msgs, msgs)
			assert.Equal(t, tt.err, err)
		})
	}
}

func TestChunkedDecoding(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msgs  []string
		err   string
	}{
		{"SingleChunk", "\n#6\n<rpc/>\n##\n", []string{"<rpc/>"}, "EOF"},
		{"MultipleChunks", "\n#4\n<rpc\n#2\n/>\n##\n\n#3\nabc\n##\n", []string{"<rpc/>", "abc"}, "EOF"},
		{"EndOfChunksWithoutChunks", "\n##\n", []string{""}, "EOF"},
		{"InvalidChunkHeader", "\n#A", nil, "invalid chunk header"},
		{"HeaderWithoutNewline", "X", nil, "invalid chunk header"},
		{"HeaderWithoutHash", "\nX", nil, "invalid chunk header"},
		{"ChunkSizeTooLarge", "\n#4294967297\n<rpc/>\n##\n", nil, "chunk size larger than maximum"},
		{"ChunkSizeTooLong", "\n#42949672978", nil, "no valid chunk-size detected"},
		{"ZeroChunkSize", "\n#0\n\n##\n", nil, "no valid chunk-size detected"},
		{"BadEndOfChunks", "\n#6\n<rpc/>\n##X", nil, "invalid end of chunks marker"},
		{"TruncatedChunk", "\n#10\n<rpc/>", nil, "unexpected EOF"},
		{"MissingEndOfChunks", "\n#6\n<rpc/>", nil, "unexpected EOF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs, err := decodeAll(NewDecoder(strings.NewReader(tt.input), WithChunkedFraming()))
			assert.Equal(t, tt.msgs, msgs)
			assert.Contains(t, err.Error(), tt.err)
		})
	}
}

func TestDecoderMessageTooLong(t *testing.T) {
	d := NewDecoder(strings.NewReader(strings.Repeat("x", 64)+eom), WithMaxMessageSize(16))
	_, err := d.Decode()
	assert.EqualError(t, err, "bufio.Scanner: token too long")
}

func TestDecoderSwitchesAfterHello(t *testing.T) {
	// The chunked message arrives in the same read as the hello.
	input := "<hello/>" + eom + "\n#6\n<rpc/>\n##\n"

	d := NewDecoder(strings.NewReader(input))
	msg, err := d.Decode()
	assert.NoError(t, err)
	assert.Equal(t, "<hello/>", string(msg))

	SetChunkedFraming(d)

	msg, err = d.Decode()
	assert.NoError(t, err)
	assert.Equal(t, "<rpc/>", string(msg))

	_, err = d.Decode()
	assert.Equal(t, io.EOF, err)
}

func TestDecoderSplitWrites(t *testing.T) {
	pr, pw := io.Pipe()
	defer pr.Close() // nolint: errcheck, gosec
	go func() {
		for _, s := range []string{"\n#6", "\n<rpc/>\n#", "#\n", "<hel", "lo/>"} {
			pw.Write([]byte(s)) // nolint: errcheck, gosec
		}
		pw.Close() // nolint: errcheck, gosec
	}()

	d := NewDecoder(pr, WithChunkedFraming())
	msg, err := d.Decode()
	assert.NoError(t, err)
	assert.Equal(t, "<rpc/>", string(msg))

	_, err = d.Decode()
	assert.EqualError(t, err, "invalid chunk header")
}

func TestEncoderEndOfMessage(t *testing.T) {
	var buf bytes.Buffer
	e := NewEncoder(&buf)

	_, err := e.Write([]byte("<hello/>"))
	assert.NoError(t, err)
	assert.NoError(t, e.EndOfMessage())
	assert.Equal(t, "<hello/>"+eom, buf.String())
}

func TestEncoderChunked(t *testing.T) {
	var buf bytes.Buffer
	e := NewEncoder(&buf, WithMaxChunkSize(4))
	SetChunkedFraming(e, (*Decoder)(nil))

	n, err := e.Write([]byte("<rpc-reply/>"))
	assert.NoError(t, err)
	assert.Equal(t, 12, n)
	n, err = e.Write(nil)
	assert.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, e.EndOfMessage())
	assert.Equal(t, "\n#4\n<rpc\n#4\n-rep\n#4\nly/>\n##\n", buf.String())
}

func TestEncoderDecoderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	e := NewEncoder(&buf, WithMaxChunkSize(3))

	_, err := e.Write([]byte("<hello/>"))
	assert.NoError(t, err)
	assert.NoError(t, e.EndOfMessage())
	SetChunkedFraming(e)

	for _, msg := range []string{`<rpc message-id="1"/>`, `<rpc message-id="2"/>`} {
		_, err = e.Write([]byte(msg))
		assert.NoError(t, err)
		assert.NoError(t, e.EndOfMessage())
	}

	d := NewDecoder(&buf)
	hello, err := d.Decode()
	assert.NoError(t, err)
	assert.Equal(t, "<hello/>", string(hello))
	SetChunkedFraming(d)

	msgs, err := decodeAll(d)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, []string{`<rpc message-id="1"/>`, `<rpc message-id="2"/>`}, msgs)
}
