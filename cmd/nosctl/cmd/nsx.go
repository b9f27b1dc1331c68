package cmd

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/damianoneill/nos/nos/device"
	"github.com/damianoneill/nos/nos/nsx"
)

func newNsxCommand(o *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "nsx",
		Short: "Configure the NSX controller",
	}

	edit := func(use, short string, args cobra.PositionalArgs, fn func(n *nsx.NSX, args []string) (string, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  args,
			RunE: func(cmd *cobra.Command, args []string) error {
				return o.withDevice(cmd, func(d *device.Device) error {
					res, err := fn(d.NSX, args)
					if err != nil {
						return err
					}
					printResult(cmd, res)
					return nil
				})
			},
		}
	}

	c.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Show the NSX controller",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return o.withDevice(cmd, func(d *device.Device) error {
					ctrl, err := d.NSX.GetNsxController()
					if err != nil {
						return err
					}
					return printYAML(cmd, ctrl)
				})
			},
		},
		edit("set-name NAME", "Create the controller", cobra.ExactArgs(1),
			func(n *nsx.NSX, args []string) (string, error) {
				return n.NsxControllerName(nsx.NameArgs{Name: args[0]})
			}),
		edit("set-ip NAME ADDRESS", "Set the controller IPv4 address", cobra.ExactArgs(2),
			func(n *nsx.NSX, args []string) (string, error) {
				return n.SetNsxControllerIP(nsx.IPArgs{Name: args[0], IPAddr: args[1]})
			}),
		edit("set-port NAME PORT", "Set the controller port", cobra.ExactArgs(2),
			func(n *nsx.NSX, args []string) (string, error) {
				port, err := strconv.Atoi(args[1])
				if err != nil {
					return "", errors.Wrapf(err, "invalid port %s", args[1])
				}
				return n.SetNsxControllerPort(nsx.PortArgs{Name: args[0], Port: port})
			}),
		edit("activate NAME", "Activate the controller", cobra.ExactArgs(1),
			func(n *nsx.NSX, args []string) (string, error) {
				return n.ActivateNsxController(nsx.NameArgs{Name: args[0]})
			}),
		edit("deactivate NAME", "Deactivate the controller", cobra.ExactArgs(1),
			func(n *nsx.NSX, args []string) (string, error) {
				return n.DeactivateNsxController(nsx.NameArgs{Name: args[0]})
			}),
	)
	return c
}
