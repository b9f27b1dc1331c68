// Package interfaces builds elements of the brocade-interface data model.
package interfaces

import (
	"encoding/xml"

	"github.com/damianoneill/nos/nos"
)

// Element names.
var (
	InterfaceElement       = xml.Name{Space: nos.InterfaceNS, Local: "interface"}
	PortProfilePortElement = xml.Name{Space: nos.PortProfileNS, Local: "port-profile-port"}
)

// Interface is the interface container; Port is named by the interface type, e.g. tengigabitethernet.
type Interface struct {
	XMLName xml.Name
	Port    *Port
}

// Port is an interface of a given type, e.g. tengigabitethernet, in the brocade-interface namespace.
type Port struct {
	XMLName         xml.Name
	Name            string `xml:"name"`
	PortProfilePort *PortProfilePort
}

// PortProfilePort enables port-profile mode on the port; it is removed with the delete operation.
type PortProfilePort struct {
	XMLName   xml.Name
	Operation string `xml:"operation,attr,omitempty"`
}

// Builder builds the interface leaves.
type Builder interface {
	PortProfilePort(interType, name string, enable bool) *nos.Config
}

type builder struct{}

// DefaultBuilder delivers the Builder for the brocade-interface model.
func DefaultBuilder() Builder {
	return builder{}
}

func (builder) PortProfilePort(interType, name string, enable bool) *nos.Config {
	ppp := &PortProfilePort{XMLName: PortProfilePortElement}
	if !enable {
		ppp.Operation = nos.OperationDelete
	}
	return nos.NewConfig(&Interface{
		XMLName: InterfaceElement,
		Port: &Port{
			XMLName:         xml.Name{Space: nos.InterfaceNS, Local: interType},
			Name:            name,
			PortProfilePort: ppp,
		},
	})
}
