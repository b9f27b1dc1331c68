// Package hwvtep configures the overlay gateway (hardware VTEP) of a device.
package hwvtep

import (
	"encoding/xml"
	"strconv"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/damianoneill/nos/nos"
	"github.com/damianoneill/nos/nos/yang/tunnels"
)

// HWVTEP is the overlay gateway facade.
type HWVTEP struct {
	callback nos.Callback
	builder  tunnels.Builder
	log      log.FieldLogger
}

// Option configures the facade.
type Option func(*HWVTEP)

// WithLogger sets the logger used by the facade.
func WithLogger(l log.FieldLogger) Option {
	return func(h *HWVTEP) {
		h.log = l
	}
}

// WithBuilder replaces the brocade-tunnels builder.
func WithBuilder(b tunnels.Builder) Option {
	return func(h *HWVTEP) {
		h.builder = b
	}
}

// New delivers an overlay gateway facade that applies configuration through cb.
func New(cb nos.Callback, opts ...Option) *HWVTEP {
	h := &HWVTEP{
		callback: cb,
		builder:  tunnels.DefaultBuilder(),
		log:      log.WithField("facade", "hwvtep"),
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// NameArgs identifies an overlay gateway.
type NameArgs struct {
	// Name of the overlay gateway; required.
	Name string
}

// TypeArgs sets the gateway type.
type TypeArgs struct {
	// Name of the overlay gateway; required.
	Name string
	// Type of the gateway, e.g. layer2-extension; required.
	Type string
}

// RbridgeArgs attaches rbridges to the gateway.
type RbridgeArgs struct {
	// Name of the overlay gateway; required.
	Name string
	// RbRange is a single rbridge id or a range, e.g. "1-2"; required.
	RbRange string
}

// LoopbackArgs sets the loopback interface of the gateway.
type LoopbackArgs struct {
	// Name of the overlay gateway; required.
	Name string
	// IntID is the loopback interface id; required.
	IntID int
}

// VeArgs sets the ve interface of the gateway.
type VeArgs struct {
	// Name of the overlay gateway; required.
	Name string
	// VeID is the ve interface id; required.
	VeID int
	// VrrpID is the VRRP extended group; required.
	VrrpID int
}

// VlanArgs attaches a VLAN to the gateway.
type VlanArgs struct {
	// Name of the overlay gateway; required.
	Name string
	// Mac address to associate with the VLAN; optional.
	Mac string
	// Vlan id or range; required.
	Vlan string
}

// OverlayGateway is the configured state of an overlay gateway.
type OverlayGateway struct {
	Name              string   `yaml:"name"`
	Activate          bool     `yaml:"activate"`
	GwType            *string  `yaml:"gw_type"`
	AttachedRbridgeID *string  `yaml:"attached_rbridge_id"`
	AttachedVlans     []string `yaml:"attached_vlans"`
}

// SetOverlayGatewayName creates an overlay gateway.
func (h *HWVTEP) SetOverlayGatewayName(args NameArgs) (string, error) {
	if err := nos.Required("SetOverlayGatewayName", "name", args.Name); err != nil {
		return "", err
	}
	return h.edit("SetOverlayGatewayName", h.builder.OverlayGatewayName(args.Name))
}

// SetOverlayGatewayType sets the type of an overlay gateway.
func (h *HWVTEP) SetOverlayGatewayType(args TypeArgs) (string, error) {
	const op = "SetOverlayGatewayType"
	if err := nos.Required(op, "name", args.Name); err != nil {
		return "", err
	}
	if err := nos.Required(op, "type", args.Type); err != nil {
		return "", err
	}
	return h.edit(op, h.builder.OverlayGatewayGwType(args.Name, args.Type))
}

// AddRbridgeID attaches rbridges to an overlay gateway.
func (h *HWVTEP) AddRbridgeID(args RbridgeArgs) (string, error) {
	const op = "AddRbridgeID"
	if err := nos.Required(op, "name", args.Name); err != nil {
		return "", err
	}
	if err := nos.Required(op, "rb_range", args.RbRange); err != nil {
		return "", err
	}
	return h.edit(op, h.builder.OverlayGatewayAttachRbridgeIDRbAdd(args.Name, args.RbRange))
}

// AddLoopbackInterface sets the loopback interface of an overlay gateway.
func (h *HWVTEP) AddLoopbackInterface(args LoopbackArgs) (string, error) {
	const op = "AddLoopbackInterface"
	if err := nos.Required(op, "name", args.Name); err != nil {
		return "", err
	}
	if err := nos.RequiredID(op, "int_id", args.IntID); err != nil {
		return "", err
	}
	return h.edit(op, h.builder.OverlayGatewayIPInterfaceLoopbackLoopbackID(args.Name, strconv.Itoa(args.IntID)))
}

// AddVeInterface sets the ve interface of an overlay gateway, followed by its VRRP extended group.
// The result is that of the second request.
func (h *HWVTEP) AddVeInterface(args VeArgs) (string, error) {
	const op = "AddVeInterface"
	if err := nos.Required(op, "name", args.Name); err != nil {
		return "", err
	}
	if err := nos.RequiredID(op, "ve_id", args.VeID); err != nil {
		return "", err
	}
	if err := nos.RequiredID(op, "vrrp_id", args.VrrpID); err != nil {
		return "", err
	}
	if _, err := h.edit(op, h.builder.OverlayGatewayIPInterfaceVeVeID(args.Name, strconv.Itoa(args.VeID))); err != nil {
		return "", err
	}
	return h.edit(op, h.builder.OverlayGatewayIPInterfaceVeVrrpExtendedGroup(args.Name, strconv.Itoa(args.VrrpID)))
}

// ActivateHwvtep activates an overlay gateway.
func (h *HWVTEP) ActivateHwvtep(args NameArgs) (string, error) {
	if err := nos.Required("ActivateHwvtep", "name", args.Name); err != nil {
		return "", err
	}
	return h.edit("ActivateHwvtep", h.builder.OverlayGatewayActivate(args.Name))
}

// DeactivateHwvtep removes the activation of an overlay gateway.
func (h *HWVTEP) DeactivateHwvtep(args NameArgs) (string, error) {
	if err := nos.Required("DeactivateHwvtep", "name", args.Name); err != nil {
		return "", err
	}
	return h.edit("DeactivateHwvtep", h.builder.OverlayGatewayDeactivate(args.Name))
}

// AttachVlanVid attaches a VLAN, with an optional mac address, to an overlay gateway.
func (h *HWVTEP) AttachVlanVid(args VlanArgs) (string, error) {
	const op = "AttachVlanVid"
	if err := nos.Required(op, "name", args.Name); err != nil {
		return "", err
	}
	if err := nos.Required(op, "vlan", args.Vlan); err != nil {
		return "", err
	}
	return h.edit(op, h.builder.OverlayGatewayAttachVlanMac(args.Name, args.Vlan, args.Mac))
}

// GetOverlayGateway delivers the configured overlay gateway, or nil if none is configured.
// The device supports a single gateway; when several are reported the last is delivered.
func (h *HWVTEP) GetOverlayGateway() (*OverlayGateway, error) {
	text, err := h.callback(tunnels.OverlayGatewayFilter(), nos.GetConfig)
	if err != nil {
		return nil, errors.Wrap(err, "GetOverlayGateway")
	}

	var result *OverlayGateway
	err = nos.Each(text, tunnels.OverlayGatewayElement, func(dec *xml.Decoder, start *xml.StartElement) error {
		gw := &tunnels.OverlayGateway{}
		if err := dec.DecodeElement(gw, start); err != nil {
			return err
		}
		result = toOverlayGateway(gw)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func toOverlayGateway(gw *tunnels.OverlayGateway) *OverlayGateway {
	result := &OverlayGateway{Name: gw.Name, Activate: gw.Activate != nil}
	if gw.GwType != "" {
		gwType := gw.GwType
		result.GwType = &gwType
	}
	if gw.Attach != nil {
		if gw.Attach.RbridgeID != nil {
			rbAdd := gw.Attach.RbridgeID.RbAdd
			result.AttachedRbridgeID = &rbAdd
		}
		for _, v := range gw.Attach.Vlans {
			result.AttachedVlans = append(result.AttachedVlans, v.Vid)
		}
	}
	return result
}

func (h *HWVTEP) edit(op string, config *nos.Config) (string, error) {
	h.log.WithField("op", op).Debug(config)
	res, err := h.callback(config, nos.EditConfig)
	if err != nil {
		return "", errors.Wrap(err, op)
	}
	return res, nil
}
