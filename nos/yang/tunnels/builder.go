package tunnels

import "github.com/damianoneill/nos/nos"

// Builder builds the overlay-gateway and nsx-controller leaves, one method per leaf.
type Builder interface {
	OverlayGatewayName(name string) *nos.Config
	OverlayGatewayGwType(name, gwType string) *nos.Config
	OverlayGatewayAttachRbridgeIDRbAdd(name, rbAdd string) *nos.Config
	OverlayGatewayIPInterfaceLoopbackLoopbackID(name, loopbackID string) *nos.Config
	OverlayGatewayIPInterfaceVeVeID(name, veID string) *nos.Config
	OverlayGatewayIPInterfaceVeVrrpExtendedGroup(name, group string) *nos.Config
	OverlayGatewayActivate(name string) *nos.Config
	OverlayGatewayDeactivate(name string) *nos.Config
	OverlayGatewayAttachVlanMac(name, vid, mac string) *nos.Config

	NsxControllerName(name string) *nos.Config
	NsxControllerConnectionAddrAddress(name, address string) *nos.Config
	NsxControllerConnectionAddrPort(name, port string) *nos.Config
	NsxControllerActivate(name string) *nos.Config
	NsxControllerDeactivate(name string) *nos.Config
}

type builder struct{}

// DefaultBuilder delivers the Builder for the brocade-tunnels model.
func DefaultBuilder() Builder {
	return builder{}
}

func gateway(name string) *OverlayGateway {
	return &OverlayGateway{XMLName: OverlayGatewayElement, Name: name}
}

func controller(name string) *NsxController {
	return &NsxController{XMLName: NsxControllerElement, Name: name}
}

func (builder) OverlayGatewayName(name string) *nos.Config {
	return nos.NewConfig(gateway(name))
}

func (builder) OverlayGatewayGwType(name, gwType string) *nos.Config {
	gw := gateway(name)
	gw.GwType = gwType
	return nos.NewConfig(gw)
}

func (builder) OverlayGatewayAttachRbridgeIDRbAdd(name, rbAdd string) *nos.Config {
	gw := gateway(name)
	gw.Attach = &Attach{RbridgeID: &RbridgeID{RbAdd: rbAdd}}
	return nos.NewConfig(gw)
}

func (builder) OverlayGatewayIPInterfaceLoopbackLoopbackID(name, loopbackID string) *nos.Config {
	gw := gateway(name)
	gw.IP = &IP{Interface: &IPInterface{Loopback: &Loopback{LoopbackID: loopbackID}}}
	return nos.NewConfig(gw)
}

func (builder) OverlayGatewayIPInterfaceVeVeID(name, veID string) *nos.Config {
	gw := gateway(name)
	gw.IP = &IP{Interface: &IPInterface{Ve: &Ve{VeID: veID}}}
	return nos.NewConfig(gw)
}

func (builder) OverlayGatewayIPInterfaceVeVrrpExtendedGroup(name, group string) *nos.Config {
	gw := gateway(name)
	gw.IP = &IP{Interface: &IPInterface{Ve: &Ve{VrrpExtendedGroup: group}}}
	return nos.NewConfig(gw)
}

func (builder) OverlayGatewayActivate(name string) *nos.Config {
	gw := gateway(name)
	gw.Activate = nos.Present()
	return nos.NewConfig(gw)
}

func (builder) OverlayGatewayDeactivate(name string) *nos.Config {
	gw := gateway(name)
	gw.Activate = nos.Deleted()
	return nos.NewConfig(gw)
}

func (builder) OverlayGatewayAttachVlanMac(name, vid, mac string) *nos.Config {
	gw := gateway(name)
	gw.Attach = &Attach{Vlans: []Vlan{{Vid: vid, Mac: mac}}}
	return nos.NewConfig(gw)
}

func (builder) NsxControllerName(name string) *nos.Config {
	return nos.NewConfig(controller(name))
}

func (builder) NsxControllerConnectionAddrAddress(name, address string) *nos.Config {
	c := controller(name)
	c.ConnectionAddr = &ConnectionAddr{Address: address}
	return nos.NewConfig(c)
}

func (builder) NsxControllerConnectionAddrPort(name, port string) *nos.Config {
	c := controller(name)
	c.ConnectionAddr = &ConnectionAddr{Port: port}
	return nos.NewConfig(c)
}

func (builder) NsxControllerActivate(name string) *nos.Config {
	c := controller(name)
	c.Activate = nos.Present()
	return nos.NewConfig(c)
}

func (builder) NsxControllerDeactivate(name string) *nos.Config {
	c := controller(name)
	c.Activate = nos.Deleted()
	return nos.NewConfig(c)
}
