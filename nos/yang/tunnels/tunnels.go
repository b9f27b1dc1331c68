// Package tunnels builds elements of the brocade-tunnels data model: overlay gateways and NSX controllers.
package tunnels

import (
	"encoding/xml"

	"github.com/damianoneill/nos/nos"
)

// Element names.
var (
	OverlayGatewayElement = xml.Name{Space: nos.TunnelsNS, Local: "overlay-gateway"}
	NsxControllerElement  = xml.Name{Space: nos.TunnelsNS, Local: "nsx-controller"}
)

// OverlayGateway is the overlay-gateway container.
type OverlayGateway struct {
	XMLName  xml.Name
	Name     string        `xml:"name,omitempty"`
	GwType   string        `xml:"gw-type,omitempty"`
	IP       *IP           `xml:"ip,omitempty"`
	Attach   *Attach       `xml:"attach,omitempty"`
	Activate *nos.Presence `xml:"activate,omitempty"`
}

// IP holds the source interface of a gateway tunnel.
type IP struct {
	Interface *IPInterface `xml:"interface,omitempty"`
}

// IPInterface selects either a loopback or a ve interface.
type IPInterface struct {
	Loopback *Loopback `xml:"loopback,omitempty"`
	Ve       *Ve       `xml:"ve,omitempty"`
}

// Loopback is a loopback source interface.
type Loopback struct {
	LoopbackID string `xml:"loopback-id,omitempty"`
}

// Ve is a virtual ethernet source interface and its VRRP-E group.
type Ve struct {
	VeID              string `xml:"ve-id,omitempty"`
	VrrpExtendedGroup string `xml:"vrrp-extended-group,omitempty"`
}

// Attach lists the rbridges and vlans attached to a gateway.
type Attach struct {
	RbridgeID *RbridgeID `xml:"rbridge-id,omitempty"`
	Vlans     []Vlan     `xml:"vlan,omitempty"`
}

// RbridgeID holds an rbridge range such as "1,2".
type RbridgeID struct {
	RbAdd string `xml:"rb-add,omitempty"`
}

// Vlan is an attached vlan, optionally restricted to one mac.
type Vlan struct {
	Vid string `xml:"vid"`
	Mac string `xml:"mac,omitempty"`
}

// NsxController is the nsx-controller container.
type NsxController struct {
	XMLName        xml.Name
	Name           string          `xml:"name,omitempty"`
	ConnectionAddr *ConnectionAddr `xml:"connection-addr,omitempty"`
	Activate       *nos.Presence   `xml:"activate,omitempty"`
}

// ConnectionAddr is the controller address and port.
type ConnectionAddr struct {
	Address string `xml:"address,omitempty"`
	Port    string `xml:"port,omitempty"`
}

// OverlayGatewayFilter selects every overlay gateway.
func OverlayGatewayFilter() *nos.Config {
	return nos.NewConfig(&OverlayGateway{XMLName: OverlayGatewayElement})
}

// NsxControllerFilter selects every NSX controller.
func NsxControllerFilter() *nos.Config {
	return nos.NewConfig(&NsxController{XMLName: NsxControllerElement})
}
