package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/damianoneill/nos/nos/device"
	"github.com/damianoneill/nos/nos/iface"
)

func newInterfaceCommand(o *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "interface",
		Short: "Configure interfaces",
	}

	var disable bool
	ppp := &cobra.Command{
		Use:   "port-profile-port TYPE NAME",
		Short: "Enable port-profile mode on an interface",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withDevice(cmd, func(d *device.Device) error {
				enable := !disable
				ok, err := d.Interface.PortProfilePort(iface.PortProfileArgs{InterType: args[0], Inter: args[1], Enable: &enable})
				if err != nil {
					return err
				}
				if !ok {
					return errors.Errorf("failed to set port-profile mode on %s %s", args[0], args[1])
				}
				return nil
			})
		},
	}
	ppp.Flags().BoolVar(&disable, "disable", false, "remove port-profile mode")

	c.AddCommand(ppp)
	return c
}
