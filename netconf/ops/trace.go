package ops

import (
	"context"
	"time"

	"github.com/Juniper/go-netconf/netconf"
	"github.com/imdario/mergo"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"

	"github.com/damianoneill/nos/netconf/common"
)

// unique type to prevent assignment.
type clientEventContextKey struct{}

// ContextClientTrace returns the Trace associated with the
// provided context. If none, it returns a trace whose hooks do nothing.
// Hooks missing from the associated trace are filled with no-op hooks; the associated trace is not modified.
func ContextClientTrace(ctx context.Context) *ClientTrace {
	trace, _ := ctx.Value(clientEventContextKey{}).(*ClientTrace)
	if trace == nil {
		return NoOpLoggingHooks
	}
	resolved := *trace
	_ = mergo.Merge(&resolved, NoOpLoggingHooks)
	return &resolved
}

// WithClientTrace returns a new context based on the provided parent
// ctx. Netconf client requests made with the returned context will use
// the provided trace hooks
func WithClientTrace(ctx context.Context, trace *ClientTrace) context.Context {
	ctx = context.WithValue(ctx, clientEventContextKey{}, trace)
	return ctx
}

// ClientTrace defines a structure for handling trace events
//nolint: golint
type ClientTrace struct {
	// DialStart is called when starting to dial a remote server.
	DialStart func(clientConfig *ssh.ClientConfig, target string)

	// DialDone is called when dial completes, including the hello exchange.
	DialDone func(clientConfig *ssh.ClientConfig, target string, err error, d time.Duration)

	// ConnectionClosed is called after a transport connection has been closed, with
	// err indicating any error condition.
	ConnectionClosed func(target string, err error)

	// Error is called after an error condition has been detected.
	Error func(context, target string, err error)

	// ExecuteStart is called before the execution of an rpc request.
	// id correlates the start with the matching ExecuteDone.
	ExecuteStart func(id string, req common.Request)

	// ExecuteDone is called after the execution of an rpc request.
	ExecuteDone func(id string, req common.Request, res *netconf.RPCReply, err error, d time.Duration)
}

// DefaultLoggingHooks provides a default logging hook to report errors.
var DefaultLoggingHooks = &ClientTrace{
	Error: func(context, target string, err error) {
		log.WithFields(log.Fields{"context": context, "target": target}).WithError(err).Error("NETCONF-Error")
	},
}

// MetricLoggingHooks provides a set of hooks that will log network metrics.
var MetricLoggingHooks = &ClientTrace{
	DialDone: func(clientConfig *ssh.ClientConfig, target string, err error, d time.Duration) {
		log.WithFields(log.Fields{"target": target, "user": clientConfig.User, "took": d.Milliseconds()}).
			WithError(err).Info("NETCONF-DialDone")
	},

	Error: DefaultLoggingHooks.Error,

	ExecuteDone: func(id string, req common.Request, res *netconf.RPCReply, err error, d time.Duration) {
		log.WithFields(log.Fields{"id": id, "took": d.Milliseconds()}).WithError(err).Info("NETCONF-ExecuteDone")
	},
}

// DiagnosticLoggingHooks provides a set of default diagnostic hooks
var DiagnosticLoggingHooks = &ClientTrace{
	DialStart: func(clientConfig *ssh.ClientConfig, target string) {
		log.WithFields(log.Fields{"target": target, "user": clientConfig.User}).Debug("NETCONF-DialStart")
	},
	DialDone: MetricLoggingHooks.DialDone,
	ConnectionClosed: func(target string, err error) {
		log.WithField("target", target).WithError(err).Debug("NETCONF-ConnectionClosed")
	},

	Error: DefaultLoggingHooks.Error,

	ExecuteStart: func(id string, req common.Request) {
		log.WithFields(log.Fields{"id": id, "req": req}).Debug("NETCONF-ExecuteStart")
	},
	ExecuteDone: func(id string, req common.Request, res *netconf.RPCReply, err error, d time.Duration) {
		fields := log.Fields{"id": id, "took": d.Milliseconds()}
		if res != nil {
			fields["reply"] = res.RawReply
		}
		log.WithFields(fields).WithError(err).Debug("NETCONF-ExecuteDone")
	},
}

// NoOpLoggingHooks provides set of hooks that do nothing.
var NoOpLoggingHooks = &ClientTrace{
	DialStart:        func(clientConfig *ssh.ClientConfig, target string) {},
	DialDone:         func(clientConfig *ssh.ClientConfig, target string, err error, d time.Duration) {},
	ConnectionClosed: func(target string, err error) {},
	Error:            func(context, target string, err error) {},
	ExecuteStart:     func(id string, req common.Request) {},
	ExecuteDone:      func(id string, req common.Request, res *netconf.RPCReply, err error, d time.Duration) {},
}
