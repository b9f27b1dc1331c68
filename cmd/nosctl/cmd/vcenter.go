package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/damianoneill/nos/nos/device"
	"github.com/damianoneill/nos/nos/vcenter"
)

func newVcenterCommand(o *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "vcenter",
		Short: "Configure vCenter registration",
	}

	var url, username, password string
	add := &cobra.Command{
		Use:   "add ID",
		Short: "Register a vCenter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withDevice(cmd, func(d *device.Device) error {
				ok, err := d.Vcenter.AddVcenter(vcenter.AddArgs{ID: args[0], URL: url, Username: username, Password: password})
				if err != nil {
					return err
				}
				if !ok {
					return errors.Errorf("failed to add vcenter %s", args[0])
				}
				return nil
			})
		},
	}
	add.Flags().StringVar(&url, "url", "", "vCenter url")
	add.Flags().StringVar(&username, "vc-username", "", "vCenter username")
	add.Flags().StringVar(&password, "vc-password", "", "vCenter password")

	activate := func(use, short string, enable bool) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return o.withDevice(cmd, func(d *device.Device) error {
					res, err := d.Vcenter.ActivateVcenter(vcenter.ActivateArgs{Name: args[0], Activate: &enable})
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
			Short: "Show the registered vCenters",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return o.withDevice(cmd, func(d *device.Device) error {
					vcs, err := d.Vcenter.GetVcenter()
					if err != nil {
						return err
					}
					return printYAML(cmd, vcs)
				})
			},
		},
		add,
		activate("activate ID", "Activate a vCenter", true),
		activate("deactivate ID", "Deactivate a vCenter", false),
	)
	return c
}
