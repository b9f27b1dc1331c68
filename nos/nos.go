// Package nos defines the contract shared by the configuration facades of a Brocade Network OS device.
//
// A facade assembles a configuration element tree rooted at a Config and hands it to a Callback,
// which delivers it to the device and returns either a confirmation (edit) or the XML text of the
// matching configuration (get). SessionCallback binds a Callback to a netconf operations session.
package nos

import (
	"encoding/xml"

	"github.com/pkg/errors"
)

// Namespaces of the device data models.
const (
	TunnelsNS     = "urn:brocade.com:mgmt:brocade-tunnels"
	VswitchNS     = "urn:brocade.com:mgmt:brocade-vswitch"
	InterfaceNS   = "urn:brocade.com:mgmt:brocade-interface"
	PortProfileNS = "urn:brocade.com:mgmt:brocade-port-profile"
)

// OperationDelete is the value of the operation attribute that removes an element.
const OperationDelete = "delete"

// Handler selects how a callback delivers a configuration.
type Handler int

const (
	// EditConfig applies the configuration.
	EditConfig Handler = iota
	// GetConfig fetches the configuration matching the element tree.
	GetConfig
)

func (h Handler) String() string {
	switch h {
	case EditConfig:
		return "edit-config"
	case GetConfig:
		return "get-config"
	default:
		return "unknown"
	}
}

// Callback performs the RPC for a configuration, returning an opaque confirmation for
// EditConfig or the XML text of the matching configuration for GetConfig.
type Callback func(config *Config, handler Handler) (string, error)

// Config is the root config element; Body holds a single entity fragment.
type Config struct {
	XMLName xml.Name `xml:"config"`
	Body    interface{}
}

// NewConfig wraps body in a config element.
func NewConfig(body interface{}) *Config {
	return &Config{Body: body}
}

// Marshal renders the configuration as XML text.
func (c *Config) Marshal() (string, error) {
	b, err := xml.Marshal(c)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal config")
	}
	return string(b), nil
}

func (c *Config) String() string {
	s, err := c.Marshal()
	if err != nil {
		return err.Error()
	}
	return s
}

// Presence is an empty container whose presence carries meaning, e.g. activate.
// Setting Operation to OperationDelete removes it.
type Presence struct {
	Operation string `xml:"operation,attr,omitempty"`
}

// Present delivers a presence container.
func Present() *Presence {
	return &Presence{}
}

// Deleted delivers a presence container marked for removal.
func Deleted() *Presence {
	return &Presence{Operation: OperationDelete}
}
