package cmd

import (
	"github.com/spf13/cobra"

	"github.com/damianoneill/nos/nos/device"
	"github.com/damianoneill/nos/nos/hwvtep"
)

func newOverlayGatewayCommand(o *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:     "overlay-gateway",
		Aliases: []string{"hwvtep"},
		Short:   "Configure the overlay gateway",
	}

	// edit builds a command that applies a single overlay gateway edit.
	edit := func(use, short string, args cobra.PositionalArgs, fn func(h *hwvtep.HWVTEP, args []string) (string, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  args,
			RunE: func(cmd *cobra.Command, args []string) error {
				return o.withDevice(cmd, func(d *device.Device) error {
					res, err := fn(d.HWVTEP, args)
					if err != nil {
						return err
					}
					printResult(cmd, res)
					return nil
				})
			},
		}
	}

	var loopbackID, veID, vrrpID int
	var mac string

	addLoopback := edit("add-loopback NAME", "Set the loopback interface of the gateway", cobra.ExactArgs(1),
		func(h *hwvtep.HWVTEP, args []string) (string, error) {
			return h.AddLoopbackInterface(hwvtep.LoopbackArgs{Name: args[0], IntID: loopbackID})
		})
	addLoopback.Flags().IntVar(&loopbackID, "id", 0, "loopback interface id")

	addVe := edit("add-ve NAME", "Set the ve interface and VRRP extended group of the gateway", cobra.ExactArgs(1),
		func(h *hwvtep.HWVTEP, args []string) (string, error) {
			return h.AddVeInterface(hwvtep.VeArgs{Name: args[0], VeID: veID, VrrpID: vrrpID})
		})
	addVe.Flags().IntVar(&veID, "ve-id", 0, "ve interface id")
	addVe.Flags().IntVar(&vrrpID, "vrrp-id", 0, "VRRP extended group")

	attachVlan := edit("attach-vlan NAME VLAN", "Attach a VLAN to the gateway", cobra.ExactArgs(2),
		func(h *hwvtep.HWVTEP, args []string) (string, error) {
			return h.AttachVlanVid(hwvtep.VlanArgs{Name: args[0], Vlan: args[1], Mac: mac})
		})
	attachVlan.Flags().StringVar(&mac, "mac", "", "mac address associated with the VLAN")

	c.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Show the overlay gateway",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return o.withDevice(cmd, func(d *device.Device) error {
					gw, err := d.HWVTEP.GetOverlayGateway()
					if err != nil {
						return err
					}
					return printYAML(cmd, gw)
				})
			},
		},
		edit("set-name NAME", "Create the gateway", cobra.ExactArgs(1),
			func(h *hwvtep.HWVTEP, args []string) (string, error) {
				return h.SetOverlayGatewayName(hwvtep.NameArgs{Name: args[0]})
			}),
		edit("set-type NAME TYPE", "Set the gateway type", cobra.ExactArgs(2),
			func(h *hwvtep.HWVTEP, args []string) (string, error) {
				return h.SetOverlayGatewayType(hwvtep.TypeArgs{Name: args[0], Type: args[1]})
			}),
		edit("add-rbridge NAME RANGE", "Attach rbridges to the gateway", cobra.ExactArgs(2),
			func(h *hwvtep.HWVTEP, args []string) (string, error) {
				return h.AddRbridgeID(hwvtep.RbridgeArgs{Name: args[0], RbRange: args[1]})
			}),
		addLoopback,
		addVe,
		attachVlan,
		edit("activate NAME", "Activate the gateway", cobra.ExactArgs(1),
			func(h *hwvtep.HWVTEP, args []string) (string, error) {
				return h.ActivateHwvtep(hwvtep.NameArgs{Name: args[0]})
			}),
		edit("deactivate NAME", "Deactivate the gateway", cobra.ExactArgs(1),
			func(h *hwvtep.HWVTEP, args []string) (string, error) {
				return h.DeactivateHwvtep(hwvtep.NameArgs{Name: args[0]})
			}),
	)
	return c
}
