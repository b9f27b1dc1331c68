package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	assert "github.com/stretchr/testify/require"

	"github.com/damianoneill/nos/netconf/ops"
	"github.com/damianoneill/nos/nos"
	"github.com/damianoneill/nos/nos/device"
)

type recorder struct {
	configs  []string
	handlers []nos.Handler
	reply    string
}

func (r *recorder) callback(config *nos.Config, handler nos.Handler) (string, error) {
	r.configs = append(r.configs, config.String())
	r.handlers = append(r.handlers, handler)
	if handler == nos.GetConfig {
		return r.reply, nil
	}
	return nos.Ok, nil
}

func withFakeDevice(t *testing.T, r *recorder) *DeviceConfig {
	resolved := &DeviceConfig{}
	saved := newDevice
	newDevice = func(ctx context.Context, cfg *DeviceConfig) (*device.Device, error) {
		*resolved = *cfg
		return device.New(r.callback), nil
	}
	t.Cleanup(func() { newDevice = saved })
	return resolved
}

func run(t *testing.T, args ...string) (string, error) {
	root := NewRootCommand()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeDeviceFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "device.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestResolveDeviceConfigDefaults(t *testing.T) {
	cfg, err := resolveDeviceConfig(DeviceConfig{Address: "10.0.0.1:830"}, "")
	assert.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "running", cfg.Target)
	assert.False(t, cfg.Commit)
}

func TestResolveDeviceConfigFile(t *testing.T) {
	path := writeDeviceFile(t, `
address: 10.0.0.1:830
username: admin
password: secret
timeout: 5s
target: candidate
commit: true
`)

	cfg, err := resolveDeviceConfig(DeviceConfig{Username: "operator"}, path)
	assert.NoError(t, err)
	assert.Equal(t, "10.0.0.1:830", cfg.Address)
	assert.Equal(t, "operator", cfg.Username, "flags take precedence over the device file")
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "candidate", cfg.Target)
	assert.True(t, cfg.Commit)
}

func TestResolveDeviceConfigPasswordEnv(t *testing.T) {
	t.Setenv(PasswordEnv, "fromenv")

	cfg, err := resolveDeviceConfig(DeviceConfig{Address: "10.0.0.1:830", Password: "fromflag"}, "")
	assert.NoError(t, err)
	assert.Equal(t, "fromenv", cfg.Password)
}

func TestResolveDeviceConfigFailures(t *testing.T) {
	_, err := resolveDeviceConfig(DeviceConfig{}, "")
	assert.EqualError(t, err, "device address is required")

	_, err = resolveDeviceConfig(DeviceConfig{}, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = resolveDeviceConfig(DeviceConfig{}, writeDeviceFile(t, "address: [unterminated"))
	assert.Error(t, err)
}

func TestOverlayGatewaySetName(t *testing.T) {
	r := &recorder{}
	resolved := withFakeDevice(t, r)

	out, err := run(t, "-a", "10.0.0.1:830", "overlay-gateway", "set-name", "Gw1")
	assert.NoError(t, err)
	assert.Equal(t, "<ok/>\n", out)
	assert.Equal(t, "10.0.0.1:830", resolved.Address)
	assert.Equal(t, []nos.Handler{nos.EditConfig}, r.handlers)
	assert.Equal(t, `<config><overlay-gateway xmlns="urn:brocade.com:mgmt:brocade-tunnels"><name>Gw1</name></overlay-gateway></config>`, r.configs[0])
}

func TestOverlayGatewayAddVe(t *testing.T) {
	r := &recorder{}
	withFakeDevice(t, r)

	_, err := run(t, "-a", "10.0.0.1:830", "hwvtep", "add-ve", "Gw1", "--ve-id", "10", "--vrrp-id", "20")
	assert.NoError(t, err)
	assert.Len(t, r.configs, 2)
}

func TestOverlayGatewayArgs(t *testing.T) {
	r := &recorder{}
	withFakeDevice(t, r)

	_, err := run(t, "-a", "10.0.0.1:830", "overlay-gateway", "set-type", "Gw1")
	assert.Error(t, err)
	assert.Empty(t, r.configs)
}

func TestOverlayGatewayGet(t *testing.T) {
	r := &recorder{reply: `<data><overlay-gateway xmlns="urn:brocade.com:mgmt:brocade-tunnels"><name>Gw1</name><gw-type>layer2-extension</gw-type><activate/></overlay-gateway></data>`}
	withFakeDevice(t, r)

	out, err := run(t, "-a", "10.0.0.1:830", "overlay-gateway", "get")
	assert.NoError(t, err)
	assert.Contains(t, out, "name: Gw1\n")
	assert.Contains(t, out, "activate: true\n")
	assert.Contains(t, out, "gw_type: layer2-extension\n")
	assert.Equal(t, []nos.Handler{nos.GetConfig}, r.handlers)
}

func TestNsxSetPort(t *testing.T) {
	r := &recorder{}
	withFakeDevice(t, r)

	_, err := run(t, "-a", "10.0.0.1:830", "nsx", "set-port", "Nsx1", "6632")
	assert.NoError(t, err)
	assert.Contains(t, r.configs[0], "<port>6632</port>")

	_, err = run(t, "-a", "10.0.0.1:830", "nsx", "set-port", "Nsx1", "port")
	assert.Error(t, err)
	assert.Len(t, r.configs, 1)
}

func TestNsxSetIPInvalid(t *testing.T) {
	r := &recorder{}
	withFakeDevice(t, r)

	_, err := run(t, "-a", "10.0.0.1:830", "nsx", "set-ip", "Nsx1", "fe80::1")
	assert.Error(t, err)
	assert.Empty(t, r.configs)
}

func TestVcenterAdd(t *testing.T) {
	r := &recorder{}
	withFakeDevice(t, r)

	_, err := run(t, "-a", "10.0.0.1:830", "vcenter", "add", "vc1",
		"--url", "https://10.0.0.2", "--vc-username", "admin", "--vc-password", "secret")
	assert.NoError(t, err)
	assert.Len(t, r.configs, 1)

	_, err = run(t, "-a", "10.0.0.1:830", "vcenter", "add", "vc1")
	assert.EqualError(t, err, "AddVcenter: required argument url not found")
	assert.Len(t, r.configs, 1)
}

func TestVcenterDeactivate(t *testing.T) {
	r := &recorder{}
	withFakeDevice(t, r)

	out, err := run(t, "-a", "10.0.0.1:830", "vcenter", "deactivate", "vc1")
	assert.NoError(t, err)
	assert.Equal(t, "<ok/>\n", out)
	assert.Contains(t, r.configs[0], `operation="delete"`)
}

func TestInterfacePortProfilePort(t *testing.T) {
	r := &recorder{}
	withFakeDevice(t, r)

	_, err := run(t, "-a", "10.0.0.1:830", "interface", "port-profile-port", "tengigabitethernet", "1/0/1", "--disable")
	assert.NoError(t, err)
	assert.Contains(t, r.configs[0], `operation="delete"`)
	assert.Contains(t, r.configs[0], "<name>1/0/1</name>")
}

func TestCommitFlagOverridesDeviceFile(t *testing.T) {
	path := writeDeviceFile(t, `
address: 10.0.0.1:830
target: candidate
commit: true
`)
	r := &recorder{}
	resolved := withFakeDevice(t, r)

	_, err := run(t, "-d", path, "--commit=false", "overlay-gateway", "activate", "Gw1")
	assert.NoError(t, err)
	assert.Equal(t, "candidate", resolved.Target)
	assert.False(t, resolved.Commit, "Expecting explicit flag to win over the device file")

	_, err = run(t, "-d", path, "overlay-gateway", "activate", "Gw1")
	assert.NoError(t, err)
	assert.True(t, resolved.Commit)
}

func TestClientTraceSelection(t *testing.T) {
	assert.Same(t, ops.DefaultLoggingHooks, (&rootOptions{}).clientTrace())
	assert.Same(t, ops.MetricLoggingHooks, (&rootOptions{metrics: true}).clientTrace())
	assert.Same(t, ops.DiagnosticLoggingHooks, (&rootOptions{debug: true, metrics: true}).clientTrace())
}

func TestMissingAddress(t *testing.T) {
	r := &recorder{}
	withFakeDevice(t, r)

	_, err := run(t, "overlay-gateway", "activate", "Gw1")
	assert.EqualError(t, err, "device address is required")
}
