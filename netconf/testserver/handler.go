package testserver

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"slices"
	"sync"

	"github.com/Juniper/go-netconf/netconf"
	assert "github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"

	"github.com/damianoneill/nos/netconf/common"
	"github.com/damianoneill/nos/netconf/rfc6242"
)

// DefaultCapabilities are advertised by the server unless overridden by WithCapabilities.
var DefaultCapabilities = []string{common.CapBase10}

// RPCRequest represents an RPC request from a client, where the element type of the
// request body is unknown.
type RPCRequest struct {
	XMLName   xml.Name
	MessageID string    `xml:"message-id,attr"`
	Operation Operation `xml:",any"`
}

// Operation is the single child of an rpc element.
type Operation struct {
	XMLName xml.Name
	Body    string `xml:",innerxml"`
}

// RPCReplyMessage represents an rpc-reply message that will be sent to a client session, where the
// element type of the reply body (i.e. the content of the data element) is unknown.
type RPCReplyMessage struct {
	XMLName   xml.Name           `xml:"urn:ietf:params:xml:ns:netconf:base:1.0 rpc-reply"`
	MessageID string             `xml:"message-id,attr"`
	Errors    []netconf.RPCError `xml:"rpc-error,omitempty"`
	Data      *ReplyData         `xml:"data"`
	Ok        *struct{}          `xml:"ok"`
}

// ReplyData holds the verbatim content of a reply data element.
type ReplyData struct {
	XMLName xml.Name `xml:"data"`
	Data    string   `xml:",innerxml"`
}

// clientHello is the hello received from a client; its namespace is not checked.
type clientHello struct {
	Capabilities []string `xml:"capabilities>capability"`
}

// RequestHandler is a function type that will be invoked by the session handler to handle an RPC
// request.
type RequestHandler func(h *SessionHandler, req *RPCRequest)

// EchoRequestHandler responds to a request with a reply containing a data element holding
// the body of the request.
var EchoRequestHandler = func(h *SessionHandler, req *RPCRequest) {
	h.Reply(&RPCReplyMessage{MessageID: req.MessageID, Data: &ReplyData{Data: req.Operation.Body}})
}

// OkRequestHandler responds to a request with an ok reply.
var OkRequestHandler = func(h *SessionHandler, req *RPCRequest) {
	h.Reply(&RPCReplyMessage{MessageID: req.MessageID, Ok: &struct{}{}})
}

// FailingRequestHandler replies to a request with an error.
var FailingRequestHandler = func(h *SessionHandler, req *RPCRequest) {
	h.Reply(&RPCReplyMessage{
		MessageID: req.MessageID,
		Errors: []netconf.RPCError{
			{Type: "application", Tag: "operation-failed", Severity: common.SeverityError, Message: "oops"},
		},
	})
}

// CloseRequestHandler closes the transport channel on request receipt.
var CloseRequestHandler = func(h *SessionHandler, req *RPCRequest) {
	h.Close()
}

// DataRequestHandler delivers a handler that replies with a data element holding data.
func DataRequestHandler(data string) RequestHandler {
	return func(h *SessionHandler, req *RPCRequest) {
		h.Reply(&RPCReplyMessage{MessageID: req.MessageID, Data: &ReplyData{Data: data}})
	}
}

// SessionHandler represents the server side of an active netconf SSH session.
type SessionHandler struct {
	// t is the testing context used for handling unexpected errors.
	t assert.TestingT

	server *TestNCServer

	// ch is the underlying transport connection.
	ch ssh.Channel

	// Serialises writes to the channel.
	encLock sync.Mutex
	enc     *rfc6242.Encoder

	// The capabilities advertised to the client.
	capabilities []string
	// The session id to be reported to the client.
	sid uint64
}

func newSessionHandler(t assert.TestingT, server *TestNCServer, sid uint64, caps []string) *SessionHandler {
	return &SessionHandler{t: t, server: server, sid: sid, capabilities: caps}
}

// Handle establishes a Netconf server session on a newly-connected SSH channel.
func (h *SessionHandler) Handle(t assert.TestingT, ch ssh.Channel) {
	h.encLock.Lock()
	h.ch = ch
	h.enc = rfc6242.NewEncoder(ch)
	h.encLock.Unlock()

	// Send server hello to client.
	if err := h.encode(&netconf.HelloMessage{Capabilities: h.capabilities, SessionID: int(h.sid)}); err != nil {
		return
	}

	dec := rfc6242.NewDecoder(ch)
	for {
		msg, err := dec.Decode()
		if err != nil {
			return
		}
		if err = h.handleMessage(dec, msg); err != nil {
			t.Errorf("Failed to handle message: %v", err)
			return
		}
	}
}

// Reply sends an rpc-reply to the client.
func (h *SessionHandler) Reply(reply *RPCReplyMessage) {
	err := h.encode(reply)
	assert.NoError(h.t, err, "Failed to encode response")
}

// Close initiates session tear-down by closing the underlying transport channel.
func (h *SessionHandler) Close() {
	h.encLock.Lock()
	defer h.encLock.Unlock()
	if h.ch != nil {
		h.ch.Close() // nolint: errcheck, gosec
	}
}

func (h *SessionHandler) handleMessage(dec *rfc6242.Decoder, msg []byte) error {
	xdec := xml.NewDecoder(bytes.NewReader(msg))
	for {
		token, err := xdec.Token()
		if err != nil {
			return err
		}
		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "hello":
			hello := &clientHello{}
			if err := xdec.DecodeElement(hello, &start); err != nil {
				return err
			}
			if slices.Contains(hello.Capabilities, common.CapBase11) && slices.Contains(h.capabilities, common.CapBase11) {
				h.encLock.Lock()
				rfc6242.SetChunkedFraming(dec, h.enc)
				h.encLock.Unlock()
			}
			return nil
		case "rpc":
			req := &RPCRequest{}
			if err := xdec.DecodeElement(req, &start); err != nil {
				return err
			}
			h.server.received(req)(h, req)
			return nil
		default:
			return fmt.Errorf("unexpected message element %s", start.Name.Local)
		}
	}
}

func (h *SessionHandler) encode(m interface{}) error {
	b, err := xml.Marshal(m)
	if err != nil {
		return err
	}

	h.encLock.Lock()
	defer h.encLock.Unlock()
	if _, err = h.enc.Write(append([]byte(xml.Header), b...)); err != nil {
		return err
	}
	return h.enc.EndOfMessage()
}
