// Package netconf groups the NETCONF operation layer used to deliver configuration
// built by the nos facades.
//
// The Network Configuration Protocol (NETCONF)
// provides mechanisms to install, manipulate, and delete the
// configuration of network devices.  It uses an Extensible Markup
// Language (XML)-based data encoding for the configuration data as well
// as the protocol messages.  The NETCONF protocol operations are
// realized as remote procedure calls (RPCs).
//
// The wire session (SSH subsystem, hello exchange, message framing) is provided by
// github.com/Juniper/go-netconf; package ops layers the get-config and edit-config
// operations on top of it.
package netconf
