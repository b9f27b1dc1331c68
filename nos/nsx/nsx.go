// Package nsx configures the NSX controller registration of a device.
package nsx

import (
	"encoding/xml"
	"net"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/damianoneill/nos/nos"
	"github.com/damianoneill/nos/nos/yang/tunnels"
)

// NSX is the NSX controller facade.
type NSX struct {
	callback nos.Callback
	builder  tunnels.Builder
	log      log.FieldLogger
}

// Option configures the facade.
type Option func(*NSX)

// WithLogger sets the logger used by the facade.
func WithLogger(l log.FieldLogger) Option {
	return func(n *NSX) {
		n.log = l
	}
}

// WithBuilder replaces the brocade-tunnels builder.
func WithBuilder(b tunnels.Builder) Option {
	return func(n *NSX) {
		n.builder = b
	}
}

// New delivers an NSX controller facade that applies configuration through cb.
func New(cb nos.Callback, opts ...Option) *NSX {
	n := &NSX{
		callback: cb,
		builder:  tunnels.DefaultBuilder(),
		log:      log.WithField("facade", "nsx"),
	}
	for _, o := range opts {
		o(n)
	}
	return n
}

// NameArgs identifies an NSX controller.
type NameArgs struct {
	// Name of the controller; required.
	Name string
	// Get fetches the named controller instead of creating it.
	Get bool
}

// IPArgs sets the controller address.
type IPArgs struct {
	// Name of the controller; required.
	Name string
	// IPAddr is an IPv4 address, optionally in interface form e.g. 10.0.0.1/24; required.
	IPAddr string
}

// PortArgs sets the controller port.
type PortArgs struct {
	// Name of the controller; required.
	Name string
	// Port is the controller tcp port; required.
	Port int
}

// NsxController is the configured state of an NSX controller.
type NsxController struct {
	Name     string  `yaml:"name"`
	Activate bool    `yaml:"activate"`
	Port     *string `yaml:"port"`
	Address  *string `yaml:"address"`
}

// NsxControllerName creates the named controller, or fetches it when Get is set.
func (n *NSX) NsxControllerName(args NameArgs) (string, error) {
	const op = "NsxControllerName"
	if err := nos.Required(op, "name", args.Name); err != nil {
		return "", err
	}
	handler := nos.EditConfig
	if args.Get {
		handler = nos.GetConfig
	}
	return n.do(op, n.builder.NsxControllerName(args.Name), handler)
}

// SetNsxControllerIP sets the controller address, which must be IPv4.
func (n *NSX) SetNsxControllerIP(args IPArgs) (string, error) {
	const op = "SetNsxControllerIP"
	if err := nos.Required(op, "name", args.Name); err != nil {
		return "", err
	}
	if err := nos.Required(op, "ip_addr", args.IPAddr); err != nil {
		return "", err
	}
	address, err := ipv4(op, args.IPAddr)
	if err != nil {
		return "", err
	}
	return n.do(op, n.builder.NsxControllerConnectionAddrAddress(args.Name, address), nos.EditConfig)
}

// ActivateNsxController activates the controller.
func (n *NSX) ActivateNsxController(args NameArgs) (string, error) {
	if err := nos.Required("ActivateNsxController", "name", args.Name); err != nil {
		return "", err
	}
	return n.do("ActivateNsxController", n.builder.NsxControllerActivate(args.Name), nos.EditConfig)
}

// DeactivateNsxController removes the activation of the controller.
func (n *NSX) DeactivateNsxController(args NameArgs) (string, error) {
	if err := nos.Required("DeactivateNsxController", "name", args.Name); err != nil {
		return "", err
	}
	return n.do("DeactivateNsxController", n.builder.NsxControllerDeactivate(args.Name), nos.EditConfig)
}

// SetNsxControllerPort sets the controller port.
func (n *NSX) SetNsxControllerPort(args PortArgs) (string, error) {
	const op = "SetNsxControllerPort"
	if err := nos.Required(op, "name", args.Name); err != nil {
		return "", err
	}
	if err := nos.RequiredID(op, "port", args.Port); err != nil {
		return "", err
	}
	return n.do(op, n.builder.NsxControllerConnectionAddrPort(args.Name, strconv.Itoa(args.Port)), nos.EditConfig)
}

// GetNsxController delivers the configured controller, or nil if none is configured.
func (n *NSX) GetNsxController() (*NsxController, error) {
	text, err := n.callback(tunnels.NsxControllerFilter(), nos.GetConfig)
	if err != nil {
		return nil, errors.Wrap(err, "GetNsxController")
	}

	var result *NsxController
	err = nos.Each(text, tunnels.NsxControllerElement, func(dec *xml.Decoder, start *xml.StartElement) error {
		c := &tunnels.NsxController{}
		if err := dec.DecodeElement(c, start); err != nil {
			return err
		}
		result = toNsxController(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func toNsxController(c *tunnels.NsxController) *NsxController {
	result := &NsxController{Name: c.Name, Activate: c.Activate != nil}
	if c.ConnectionAddr != nil {
		if c.ConnectionAddr.Port != "" {
			port := c.ConnectionAddr.Port
			result.Port = &port
		}
		if c.ConnectionAddr.Address != "" {
			address := c.ConnectionAddr.Address
			result.Address = &address
		}
	}
	return result
}

// ipv4 validates s as an IPv4 address or interface, delivering the address as supplied.
// An interface may carry a prefix length, a netmask or a hostmask, e.g. 10.0.0.1/24, 10.0.0.1/255.255.255.0.
func ipv4(op, s string) (string, error) {
	addr, mask, isInterface := strings.Cut(s, "/")
	ip := net.ParseIP(addr)
	if ip == nil {
		return "", &nos.ValidationError{Op: op, Value: s, Reason: "not an IP address"}
	}
	if ip.To4() == nil || strings.Contains(addr, ":") {
		return "", &nos.ValidationError{Op: op, Value: s, Reason: "not an IPv4 address"}
	}
	if isInterface && !validMask(mask) {
		return "", &nos.ValidationError{Op: op, Value: s, Reason: "not an IP interface"}
	}
	return s, nil
}

func validMask(mask string) bool {
	if n, err := strconv.Atoi(mask); err == nil {
		return n >= 0 && n <= 32 && mask == strconv.Itoa(n)
	}
	m := net.ParseIP(mask).To4()
	if m == nil || strings.Contains(mask, ":") {
		return false
	}
	if _, bits := net.IPMask(m).Size(); bits != 0 {
		return true
	}
	// hostmask, e.g. 0.0.0.255
	inverted := make(net.IPMask, len(m))
	for i, b := range m {
		inverted[i] = ^b
	}
	_, bits := inverted.Size()
	return bits != 0
}

func (n *NSX) do(op string, config *nos.Config, handler nos.Handler) (string, error) {
	n.log.WithFields(log.Fields{"op": op, "handler": handler}).Debug(config)
	res, err := n.callback(config, handler)
	if err != nil {
		return "", errors.Wrap(err, op)
	}
	return res, nil
}
