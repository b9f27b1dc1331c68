// Package device binds the configuration facades of a device to a single callback or netconf session.
package device

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"

	"github.com/damianoneill/nos/netconf/ops"
	"github.com/damianoneill/nos/nos"
	"github.com/damianoneill/nos/nos/hwvtep"
	"github.com/damianoneill/nos/nos/iface"
	"github.com/damianoneill/nos/nos/nsx"
	"github.com/damianoneill/nos/nos/vcenter"
)

// Device holds the facades of a device.
type Device struct {
	HWVTEP    *hwvtep.HWVTEP
	NSX       *nsx.NSX
	Vcenter   *vcenter.Vcenter
	Interface *iface.Interface

	session ops.OpSession
}

type options struct {
	logger        log.FieldLogger
	sessionConfig *ops.Config
	callbackOpts  []nos.CallbackOption
}

// Option configures a Device.
type Option func(*options)

// WithLogger sets the logger used by every facade.
func WithLogger(l log.FieldLogger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithSessionConfig sets the netconf session configuration used by Dial.
func WithSessionConfig(cfg *ops.Config) Option {
	return func(o *options) {
		o.sessionConfig = cfg
	}
}

// WithCallbackOptions sets the options of the session callback used by Dial.
func WithCallbackOptions(opts ...nos.CallbackOption) Option {
	return func(o *options) {
		o.callbackOpts = append(o.callbackOpts, opts...)
	}
}

func resolve(opts []Option) *options {
	o := &options{logger: log.StandardLogger(), sessionConfig: ops.DefaultConfig}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// New delivers a Device whose facades apply configuration through cb.
func New(cb nos.Callback, opts ...Option) *Device {
	return newDevice(cb, resolve(opts))
}

func newDevice(cb nos.Callback, o *options) *Device {
	return &Device{
		HWVTEP:    hwvtep.New(cb, hwvtep.WithLogger(o.logger.WithField("facade", "hwvtep"))),
		NSX:       nsx.New(cb, nsx.WithLogger(o.logger.WithField("facade", "nsx"))),
		Vcenter:   vcenter.New(cb, vcenter.WithLogger(o.logger.WithField("facade", "vcenter"))),
		Interface: iface.New(cb, iface.WithLogger(o.logger.WithField("facade", "interface"))),
	}
}

// Dial establishes a netconf session with target and delivers a Device bound to it.
func Dial(ctx context.Context, sshcfg *ssh.ClientConfig, target string, opts ...Option) (*Device, error) {
	o := resolve(opts)
	s, err := ops.NewSessionWithConfig(ctx, sshcfg, target, o.sessionConfig)
	if err != nil {
		return nil, errors.Wrap(err, "failed to dial device")
	}
	return WithSession(s, opts...), nil
}

// WithSession delivers a Device bound to an established netconf session.
func WithSession(s ops.OpSession, opts ...Option) *Device {
	o := resolve(opts)
	d := newDevice(nos.SessionCallback(s, o.callbackOpts...), o)
	d.session = s
	return d
}

// Close releases the netconf session, if any.
func (d *Device) Close() {
	if d.session != nil {
		d.session.Close()
		d.session = nil
	}
}
