package tunnels

import (
	"testing"

	assert "github.com/stretchr/testify/require"
)

const gw = `<overlay-gateway xmlns="urn:brocade.com:mgmt:brocade-tunnels">`
const nsx = `<nsx-controller xmlns="urn:brocade.com:mgmt:brocade-tunnels">`

func TestOverlayGatewayBuilders(t *testing.T) {
	b := DefaultBuilder()
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"name", b.OverlayGatewayName("Gw1").String(),
			`<config>` + gw + `<name>Gw1</name></overlay-gateway></config>`},
		{"gw-type", b.OverlayGatewayGwType("Gw1", "layer2-extension").String(),
			`<config>` + gw + `<name>Gw1</name><gw-type>layer2-extension</gw-type></overlay-gateway></config>`},
		{"rb-add", b.OverlayGatewayAttachRbridgeIDRbAdd("Gw1", "1-2").String(),
			`<config>` + gw + `<name>Gw1</name><attach><rbridge-id><rb-add>1-2</rb-add></rbridge-id></attach></overlay-gateway></config>`},
		{"loopback-id", b.OverlayGatewayIPInterfaceLoopbackLoopbackID("Gw1", "10").String(),
			`<config>` + gw + `<name>Gw1</name><ip><interface><loopback><loopback-id>10</loopback-id></loopback></interface></ip></overlay-gateway></config>`},
		{"ve-id", b.OverlayGatewayIPInterfaceVeVeID("Gw1", "20").String(),
			`<config>` + gw + `<name>Gw1</name><ip><interface><ve><ve-id>20</ve-id></ve></interface></ip></overlay-gateway></config>`},
		{"vrrp-extended-group", b.OverlayGatewayIPInterfaceVeVrrpExtendedGroup("Gw1", "5").String(),
			`<config>` + gw + `<name>Gw1</name><ip><interface><ve><vrrp-extended-group>5</vrrp-extended-group></ve></interface></ip></overlay-gateway></config>`},
		{"activate", b.OverlayGatewayActivate("Gw1").String(),
			`<config>` + gw + `<name>Gw1</name><activate></activate></overlay-gateway></config>`},
		{"deactivate", b.OverlayGatewayDeactivate("Gw1").String(),
			`<config>` + gw + `<name>Gw1</name><activate operation="delete"></activate></overlay-gateway></config>`},
		{"vlan-mac", b.OverlayGatewayAttachVlanMac("Gw1", "10", "0011.2233.4455").String(),
			`<config>` + gw + `<name>Gw1</name><attach><vlan><vid>10</vid><mac>0011.2233.4455</mac></vlan></attach></overlay-gateway></config>`},
		{"filter", OverlayGatewayFilter().String(),
			`<config>` + gw + `</overlay-gateway></config>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.got)
		})
	}
}

func TestNsxControllerBuilders(t *testing.T) {
	b := DefaultBuilder()
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"name", b.NsxControllerName("Nsx1").String(),
			`<config>` + nsx + `<name>Nsx1</name></nsx-controller></config>`},
		{"address", b.NsxControllerConnectionAddrAddress("Nsx1", "10.0.0.1").String(),
			`<config>` + nsx + `<name>Nsx1</name><connection-addr><address>10.0.0.1</address></connection-addr></nsx-controller></config>`},
		{"port", b.NsxControllerConnectionAddrPort("Nsx1", "6632").String(),
			`<config>` + nsx + `<name>Nsx1</name><connection-addr><port>6632</port></connection-addr></nsx-controller></config>`},
		{"activate", b.NsxControllerActivate("Nsx1").String(),
			`<config>` + nsx + `<name>Nsx1</name><activate></activate></nsx-controller></config>`},
		{"deactivate", b.NsxControllerDeactivate("Nsx1").String(),
			`<config>` + nsx + `<name>Nsx1</name><activate operation="delete"></activate></nsx-controller></config>`},
		{"filter", NsxControllerFilter().String(),
			`<config>` + nsx + `</nsx-controller></config>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.got)
		})
	}
}
