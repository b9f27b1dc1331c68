// Package cmd implements the nosctl commands.
package cmd

import (
	"context"
	"fmt"
	stdlog "log"

	"github.com/Juniper/go-netconf/netconf"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/crypto/ssh"
	"gopkg.in/yaml.v3"

	"github.com/damianoneill/nos/netconf/ops"
	"github.com/damianoneill/nos/nos"
	"github.com/damianoneill/nos/nos/device"
)

// newDevice connects to the device described by cfg; replaced in tests.
var newDevice = func(ctx context.Context, cfg *DeviceConfig) (*device.Device, error) {
	sshcfg := &ssh.ClientConfig{
		User:            cfg.Username,
		Auth:            []ssh.AuthMethod{ssh.Password(cfg.Password)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // nolint: gosec
		Timeout:         cfg.Timeout,
	}

	cbOpts := []nos.CallbackOption{nos.WithTarget(cfg.Target)}
	if cfg.Commit {
		cbOpts = append(cbOpts, nos.WithCommit())
	}

	return device.Dial(ctx, sshcfg, cfg.Address,
		device.WithSessionConfig(&ops.Config{Timeout: cfg.Timeout}),
		device.WithCallbackOptions(cbOpts...),
	)
}

type rootOptions struct {
	deviceFile string
	flags      DeviceConfig
	debug      bool
	metrics    bool
}

func (o *rootOptions) addFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.deviceFile, "device", "d", "", "YAML file describing the device")
	fs.StringVarP(&o.flags.Address, "address", "a", "", "device address, host:port")
	fs.StringVarP(&o.flags.Username, "username", "u", "", "device username")
	fs.StringVarP(&o.flags.Password, "password", "p", "", "device password (or "+PasswordEnv+")")
	fs.DurationVar(&o.flags.Timeout, "timeout", 0, "connection timeout")
	fs.StringVar(&o.flags.Target, "target", "", "datastore written by edits: running or candidate")
	fs.BoolVar(&o.flags.Commit, "commit", false, "commit the target datastore after each edit")
	fs.BoolVar(&o.debug, "debug", false, "log netconf exchanges")
	fs.BoolVar(&o.metrics, "metrics", false, "log netconf dial and request timings")
}

// clientTrace selects the netconf trace hooks for the logging flags.
func (o *rootOptions) clientTrace() *ops.ClientTrace {
	switch {
	case o.debug:
		return ops.DiagnosticLoggingHooks
	case o.metrics:
		return ops.MetricLoggingHooks
	default:
		return ops.DefaultLoggingHooks
	}
}

// withDevice runs fn against a connected device, closing it afterwards.
func (o *rootOptions) withDevice(cmd *cobra.Command, fn func(d *device.Device) error) error {
	cfg, err := resolveDeviceConfig(o.flags, o.deviceFile)
	if err != nil {
		return err
	}
	// an explicit --commit=false is indistinguishable from unset once merged
	if cmd.Flags().Changed("commit") {
		cfg.Commit = o.flags.Commit
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = ops.WithClientTrace(ctx, o.clientTrace())

	d, err := newDevice(ctx, cfg)
	if err != nil {
		return err
	}
	defer d.Close()
	return fn(d)
}

// NewRootCommand delivers the nosctl command tree.
func NewRootCommand() *cobra.Command {
	o := &rootOptions{}
	root := &cobra.Command{
		Use:           "nosctl",
		Short:         "Configure overlay gateway, NSX controller, vCenter and port-profile mode on a Network OS device",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if o.debug {
				log.SetLevel(log.DebugLevel)
				netconf.SetLog(netconf.NewStdLog(stdlog.New(log.StandardLogger().WriterLevel(log.DebugLevel), "netconf ", 0), netconf.LogDebug))
			}
		},
	}
	o.addFlags(root.PersistentFlags())

	root.AddCommand(
		newOverlayGatewayCommand(o),
		newNsxCommand(o),
		newVcenterCommand(o),
		newInterfaceCommand(o),
	)
	return root
}

// printYAML writes v to the command output as YAML.
func printYAML(cmd *cobra.Command, v interface{}) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// printResult writes the confirmation of an edit.
func printResult(cmd *cobra.Command, res string) {
	fmt.Fprintln(cmd.OutOrStdout(), res)
}
