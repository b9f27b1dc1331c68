package ops

import (
	"context"
	"time"

	"github.com/Juniper/go-netconf/netconf"
	"github.com/imdario/mergo"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh"
)

// Defines a factory method for instantiating netconf sessions.

// dial establishes the wire session; replaced in tests.
var dial = func(target string, sshcfg *ssh.ClientConfig, timeout time.Duration) (Executor, error) {
	s, err := netconf.DialSSHTimeout(target, sshcfg, timeout)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// NewSession connects to the  target using the ssh configuration, and establishes
// a netconf session with default configuration.
func NewSession(ctx context.Context, sshcfg *ssh.ClientConfig, target string) (s OpSession, err error) {
	return NewSessionWithConfig(ctx, sshcfg, target, DefaultConfig)
}

// NewSessionWithConfig connects to the  target using the ssh configuration, and establishes
// a netconf session with the client configuration.
func NewSessionWithConfig(ctx context.Context, sshcfg *ssh.ClientConfig, target string, cfg *Config) (s OpSession, err error) {
	resolved := &Config{}
	if cfg != nil {
		*resolved = *cfg
	}
	_ = mergo.Merge(resolved, DefaultConfig)

	trace := ContextClientTrace(ctx)

	trace.DialStart(sshcfg, target)
	begin := time.Now()
	ex, err := dial(target, sshcfg, resolved.Timeout)
	trace.DialDone(sshcfg, target, err, time.Since(begin))
	if err != nil {
		trace.Error("Dial failed", target, err)
		return nil, errors.Wrapf(err, "failed to establish netconf session with %s", target)
	}

	return &sImpl{ex: ex, trace: trace, target: target}, nil
}

// NewSessionWithExecutor establishes an operations session over an existing wire session.
func NewSessionWithExecutor(ctx context.Context, ex Executor, target string) OpSession {
	return &sImpl{ex: ex, trace: ContextClientTrace(ctx), target: target}
}
