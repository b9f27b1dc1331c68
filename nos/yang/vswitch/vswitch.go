// Package vswitch builds elements of the brocade-vswitch data model.
package vswitch

import (
	"encoding/xml"

	"github.com/damianoneill/nos/nos"
)

// VcenterElement names the vcenter list.
var VcenterElement = xml.Name{Space: nos.VswitchNS, Local: "vcenter"}

// Vcenter is the vcenter list entry, keyed by id.
type Vcenter struct {
	XMLName     xml.Name
	ID          string        `xml:"id,omitempty"`
	Credentials *Credentials  `xml:"credentials,omitempty"`
	Activate    *nos.Presence `xml:"activate,omitempty"`
}

// Credentials are used by the switch to log in to the vCenter.
type Credentials struct {
	URL      string `xml:"url,omitempty"`
	Username string `xml:"username,omitempty"`
	Password string `xml:"password,omitempty"`
}

// VcenterFilter selects every vcenter.
func VcenterFilter() *nos.Config {
	return nos.NewConfig(&Vcenter{XMLName: VcenterElement})
}

// Builder builds the vcenter leaves.
type Builder interface {
	VcenterActivate(id string) *nos.Config
	VcenterDeactivate(id string) *nos.Config
	VcenterCredentials(id, url, username, password string) *nos.Config
}

type builder struct{}

// DefaultBuilder delivers the Builder for the brocade-vswitch model.
func DefaultBuilder() Builder {
	return builder{}
}

func (builder) VcenterActivate(id string) *nos.Config {
	return nos.NewConfig(&Vcenter{XMLName: VcenterElement, ID: id, Activate: nos.Present()})
}

func (builder) VcenterDeactivate(id string) *nos.Config {
	return nos.NewConfig(&Vcenter{XMLName: VcenterElement, ID: id, Activate: nos.Deleted()})
}

func (builder) VcenterCredentials(id, url, username, password string) *nos.Config {
	return nos.NewConfig(&Vcenter{
		XMLName:     VcenterElement,
		ID:          id,
		Credentials: &Credentials{URL: url, Username: username, Password: password},
	})
}
