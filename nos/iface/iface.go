// Package iface configures the port-profile mode of device interfaces.
package iface

import (
	log "github.com/sirupsen/logrus"

	"github.com/damianoneill/nos/nos"
	"github.com/damianoneill/nos/nos/yang/interfaces"
)

// Interface is the interface facade.
type Interface struct {
	callback nos.Callback
	builder  interfaces.Builder
	log      log.FieldLogger
}

// Option configures the facade.
type Option func(*Interface)

// WithLogger sets the logger used by the facade.
func WithLogger(l log.FieldLogger) Option {
	return func(i *Interface) {
		i.log = l
	}
}

// WithBuilder replaces the brocade-interface builder.
func WithBuilder(b interfaces.Builder) Option {
	return func(i *Interface) {
		i.builder = b
	}
}

// New delivers an interface facade that applies configuration through cb.
func New(cb nos.Callback, opts ...Option) *Interface {
	i := &Interface{
		callback: cb,
		builder:  interfaces.DefaultBuilder(),
		log:      log.WithField("facade", "interface"),
	}
	for _, o := range opts {
		o(i)
	}
	return i
}

// PortProfileArgs identifies the port and the mode to apply.
type PortProfileArgs struct {
	// InterType is the interface type, e.g. gigabitethernet, tengigabitethernet; required.
	InterType string
	// Inter is the interface name, e.g. 225/0/38; required.
	Inter string
	// Enable defaults to true; false removes port-profile mode.
	Enable *bool
}

// PortProfilePort enables or disables port-profile mode on an interface, reporting whether the
// device accepted the change. A missing argument is returned as an error; a device failure is
// logged and reported as false.
func (i *Interface) PortProfilePort(args PortProfileArgs) (bool, error) {
	const op = "PortProfilePort"
	if err := nos.Required(op, "inter_type", args.InterType); err != nil {
		return false, err
	}
	if err := nos.Required(op, "inter", args.Inter); err != nil {
		return false, err
	}

	enable := args.Enable == nil || *args.Enable
	config := i.builder.PortProfilePort(args.InterType, args.Inter, enable)
	i.log.WithFields(log.Fields{"op": op, "enable": enable}).Debug(config)
	if _, err := i.callback(config, nos.EditConfig); err != nil {
		i.log.WithFields(log.Fields{"interface": args.InterType + " " + args.Inter}).WithError(err).Error(op)
		return false, nil
	}
	return true, nil
}
