package testutil

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"net"

	assert "github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

// SSHHandler serves a single accepted SSH channel.
type SSHHandler interface {
	Handle(t assert.TestingT, ch ssh.Channel)
}

// HandlerFactory delivers a new handler for each accepted channel.
type HandlerFactory func(t assert.TestingT) SSHHandler

// SSHServer represents a test SSH Server
type SSHServer struct {
	listener net.Listener
}

// NewSSHServerHandler delivers a new test SSH Server, with a handler factory that will be used to
// serve each channel opened on the server.
// The server implements password authentication with the given credentials.
func NewSSHServerHandler(t assert.TestingT, uname, password string, factory HandlerFactory) *SSHServer {
	listener, err := net.Listen("tcp", "localhost:0")
	assert.NoError(t, err, "Listen failed")

	server := &SSHServer{listener: listener}
	go server.acceptConnections(t, newSSHServerConfig(t, uname, password), factory)

	return server
}

// Port delivers the tcp port number on which the server is listening.
func (ts *SSHServer) Port() int {
	return ts.listener.Addr().(*net.TCPAddr).Port
}

// Address delivers the host:port address on which the server is listening.
func (ts *SSHServer) Address() string {
	return fmt.Sprintf("localhost:%d", ts.Port())
}

// Close closes any resources used by the server.
func (ts *SSHServer) Close() {
	// nolint: gosec, errcheck
	ts.listener.Close()
}

func (ts *SSHServer) acceptConnections(t assert.TestingT, config *ssh.ServerConfig, factory HandlerFactory) {
	for {
		nConn, err := ts.listener.Accept()
		if err != nil {
			return
		}
		go serveConnection(t, nConn, config, factory)
	}
}

func serveConnection(t assert.TestingT, nConn net.Conn, config *ssh.ServerConfig, factory HandlerFactory) {
	_, chch, reqch, err := ssh.NewServerConn(nConn, config)
	if err != nil {
		// nolint: gosec, errcheck
		nConn.Close()
		return
	}

	go ssh.DiscardRequests(reqch)

	// Service the incoming Channel channel.
	for newChannel := range chch {
		if newChannel.ChannelType() != "session" {
			// nolint: gosec, errcheck
			newChannel.Reject(ssh.UnknownChannelType, "unknown channel type")
			continue
		}
		ch, requests, err := newChannel.Accept()
		if err != nil {
			return
		}

		// Handle the "subsystem" request.
		go func(in <-chan *ssh.Request) {
			for req := range in {
				if req.WantReply {
					// nolint: gosec, errcheck
					req.Reply(req.Type == "subsystem", nil)
				}
			}
		}(requests)

		go func(ch ssh.Channel) {
			// nolint: gosec, errcheck
			defer ch.Close()
			factory(t).Handle(t, ch)
		}(ch)
	}
}

func newSSHServerConfig(t assert.TestingT, uname, password string) *ssh.ServerConfig {
	config := &ssh.ServerConfig{
		PasswordCallback: func(c ssh.ConnMetadata, pass []byte) (*ssh.Permissions, error) {
			if c.User() == uname && string(pass) == password {
				return nil, nil
			}
			return nil, fmt.Errorf("password rejected for %q", c.User())
		},
	}

	config.AddHostKey(generateHostKey(t))
	return config
}

func generateHostKey(t assert.TestingT) (hostkey ssh.Signer) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	assert.NoError(t, err, "Failed to generate host key")

	hostkey, err = ssh.ParsePrivateKey(encodePrivateKeyToPEM(key))
	assert.NoError(t, err, "Failed to parse host key")
	return
}

func encodePrivateKeyToPEM(privateKey *rsa.PrivateKey) []byte {
	// Get ASN.1 DER format
	privDER := x509.MarshalPKCS1PrivateKey(privateKey)

	// pem.Block
	privBlock := pem.Block{
		Type:    "RSA PRIVATE KEY",
		Headers: nil,
		Bytes:   privDER,
	}

	// Private key in PEM format
	return pem.EncodeToMemory(&privBlock)
}
