// Package vcenter configures the vCenter registration of a device.
package vcenter

import (
	"encoding/xml"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/damianoneill/nos/nos"
	"github.com/damianoneill/nos/nos/yang/vswitch"
)

// Vcenter is the vCenter facade.
type Vcenter struct {
	callback nos.Callback
	builder  vswitch.Builder
	log      log.FieldLogger
}

// Option configures the facade.
type Option func(*Vcenter)

// WithLogger sets the logger used by the facade.
func WithLogger(l log.FieldLogger) Option {
	return func(v *Vcenter) {
		v.log = l
	}
}

// WithBuilder replaces the brocade-vswitch builder.
func WithBuilder(b vswitch.Builder) Option {
	return func(v *Vcenter) {
		v.builder = b
	}
}

// New delivers a vCenter facade that applies configuration through cb.
func New(cb nos.Callback, opts ...Option) *Vcenter {
	v := &Vcenter{
		callback: cb,
		builder:  vswitch.DefaultBuilder(),
		log:      log.WithField("facade", "vcenter"),
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

// AddArgs registers a vCenter.
type AddArgs struct {
	// ID of the vCenter; required.
	ID string
	// URL of the vCenter; required.
	URL string
	// Username used to log into the vCenter; required.
	Username string
	// Password used to log into the vCenter; required.
	Password string
}

// ActivateArgs activates or deactivates a vCenter.
type ActivateArgs struct {
	// Name is the vCenter id; required.
	Name string
	// Activate defaults to true; false removes the activation.
	Activate *bool
}

// Info is the configured state of a vCenter.
type Info struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	IsActive bool   `yaml:"isactive"`
}

// AddVcenter registers a vCenter, reporting whether the device accepted it.
// A missing argument is returned as an error; a device failure is logged and reported as false.
func (v *Vcenter) AddVcenter(args AddArgs) (bool, error) {
	const op = "AddVcenter"
	for _, a := range []struct{ name, value string }{
		{"id", args.ID}, {"url", args.URL}, {"username", args.Username}, {"password", args.Password},
	} {
		if err := nos.Required(op, a.name, a.value); err != nil {
			return false, err
		}
	}

	config := v.builder.VcenterCredentials(args.ID, args.URL, args.Username, args.Password)
	if _, err := v.callback(config, nos.EditConfig); err != nil {
		v.log.WithField("id", args.ID).WithError(err).Error(op)
		return false, nil
	}
	return true, nil
}

// ActivateVcenter activates, or when Activate is false deactivates, a vCenter.
func (v *Vcenter) ActivateVcenter(args ActivateArgs) (string, error) {
	const op = "ActivateVcenter"
	if err := nos.Required(op, "name", args.Name); err != nil {
		return "", err
	}

	config := v.builder.VcenterActivate(args.Name)
	if args.Activate != nil && !*args.Activate {
		config = v.builder.VcenterDeactivate(args.Name)
	}
	v.log.WithField("op", op).Debug(config)
	res, err := v.callback(config, nos.EditConfig)
	if err != nil {
		return "", errors.Wrap(err, op)
	}
	return res, nil
}

// GetVcenter delivers the configured vCenters in document order.
func (v *Vcenter) GetVcenter() ([]Info, error) {
	text, err := v.callback(vswitch.VcenterFilter(), nos.GetConfig)
	if err != nil {
		return nil, errors.Wrap(err, "GetVcenter")
	}

	var result []Info
	err = nos.Each(text, vswitch.VcenterElement, func(dec *xml.Decoder, start *xml.StartElement) error {
		vc := &vswitch.Vcenter{}
		if err := dec.DecodeElement(vc, start); err != nil {
			return err
		}
		info := Info{Name: vc.ID, IsActive: vc.Activate != nil}
		if vc.Credentials != nil {
			info.URL = vc.Credentials.URL
		}
		result = append(result, info)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
