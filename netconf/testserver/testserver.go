// Package testserver provides a netconf server that can be used for 'on-board' testing of client sessions.
package testserver

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	assert "github.com/stretchr/testify/require"

	"github.com/damianoneill/nos/testutil"
)

// Defines credentials used for test sessions.
const (
	TestUserName = "testUser"
	TestPassword = "testPassword"
)

// TestNCServer represents a Netconf Server that can be used for 'on-board' testing.
// It encapsulates a transport connection to an SSH server, and a netconf session handler that will
// be invoked to handle netconf messages.
type TestNCServer struct {
	*testutil.SSHServer

	mu          sync.Mutex
	handlers    []*SessionHandler
	reqHandlers []RequestHandler
	requests    []*RPCRequest
	caps        []string
	nextSid     uint64
	tctx        assert.TestingT
}

// NewTestNetconfServer creates a new TestNCServer that will accept Netconf localhost connections on an ephemeral port (available
// via Port(), with credentials defined by TestUserName and TestPassword.
// tctx will be used for handling failures; if the supplied value is nil, a default test context will be used.
// The behaviour of the Netconf session handler can be configured using the WithCapabilities and
// WithRequestHandler methods.
func NewTestNetconfServer(tctx assert.TestingT) *TestNCServer {
	ncs := &TestNCServer{caps: DefaultCapabilities}

	if tctx == nil {
		// Default test context to built-in implementation.
		tctx = ncs
	}
	ncs.tctx = tctx

	ncs.SSHServer = testutil.NewSSHServerHandler(tctx, TestUserName, TestPassword, ncs.newFactory())

	return ncs
}

func (ncs *TestNCServer) newFactory() testutil.HandlerFactory {
	return func(t assert.TestingT) testutil.SSHHandler {
		sid := atomic.AddUint64(&ncs.nextSid, 1)
		ncs.mu.Lock()
		defer ncs.mu.Unlock()
		sess := newSessionHandler(t, ncs, sid, ncs.caps)
		ncs.handlers = append(ncs.handlers, sess)
		return sess
	}
}

// WithRequestHandler adds a request handler to the queue used to reply to requests.
// Each handler serves one request, in the order added; once the queue is empty requests are
// processed by the EchoRequestHandler.
func (ncs *TestNCServer) WithRequestHandler(rh RequestHandler) *TestNCServer {
	ncs.mu.Lock()
	defer ncs.mu.Unlock()
	ncs.reqHandlers = append(ncs.reqHandlers, rh)
	return ncs
}

// WithCapabilities define the capabilities that the server will advertise when a netconf client connects.
func (ncs *TestNCServer) WithCapabilities(caps []string) *TestNCServer {
	ncs.mu.Lock()
	defer ncs.mu.Unlock()
	ncs.caps = caps
	return ncs
}

// Requests delivers the rpc requests received by the server, across all sessions, in order of receipt.
func (ncs *TestNCServer) Requests() []*RPCRequest {
	ncs.mu.Lock()
	defer ncs.mu.Unlock()
	return append([]*RPCRequest(nil), ncs.requests...)
}

// LastRequest delivers the most recently received rpc request, or nil if none has been received.
func (ncs *TestNCServer) LastRequest() *RPCRequest {
	ncs.mu.Lock()
	defer ncs.mu.Unlock()
	if len(ncs.requests) == 0 {
		return nil
	}
	return ncs.requests[len(ncs.requests)-1]
}

// Close closes any active transport to the test server and prevents subsequent connections.
func (ncs *TestNCServer) Close() {
	ncs.mu.Lock()
	handlers := ncs.handlers
	ncs.handlers = nil
	ncs.mu.Unlock()

	for _, h := range handlers {
		h.Close()
	}
	ncs.SSHServer.Close()
}

// Errorf provides testing.T compatibility if a test context is not provided when the test server is
// created.
func (ncs *TestNCServer) Errorf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// FailNow provides testing.T compatibility if a test context is not provided when the test server is
// created.
func (ncs *TestNCServer) FailNow() {
	runtime.Goexit()
}

// received records a request and selects the handler that will reply to it.
func (ncs *TestNCServer) received(req *RPCRequest) RequestHandler {
	ncs.mu.Lock()
	defer ncs.mu.Unlock()
	ncs.requests = append(ncs.requests, req)
	if len(ncs.reqHandlers) == 0 {
		return EchoRequestHandler
	}
	rh := ncs.reqHandlers[0]
	ncs.reqHandlers = ncs.reqHandlers[1:]
	return rh
}
