package device

import (
	"context"
	"testing"
	"time"

	assert "github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"

	"github.com/damianoneill/nos/netconf/mocks"
	"github.com/damianoneill/nos/netconf/ops"
	"github.com/damianoneill/nos/netconf/testserver"
	"github.com/damianoneill/nos/nos"
	"github.com/damianoneill/nos/nos/hwvtep"
	"github.com/damianoneill/nos/nos/nsx"
)

func sshConfig() *ssh.ClientConfig {
	return &ssh.ClientConfig{
		User:            testserver.TestUserName,
		Auth:            []ssh.AuthMethod{ssh.Password(testserver.TestPassword)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // nolint: gosec
	}
}

func TestNewSharesCallback(t *testing.T) {
	calls := 0
	d := New(func(config *nos.Config, handler nos.Handler) (string, error) {
		calls++
		return nos.Ok, nil
	})

	_, err := d.HWVTEP.SetOverlayGatewayName(hwvtep.NameArgs{Name: "Gw1"})
	assert.NoError(t, err)
	_, err = d.NSX.ActivateNsxController(nsx.NameArgs{Name: "Nsx1"})
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestWithSessionClose(t *testing.T) {
	ms := &mocks.OpSession{}
	ms.On("Close").Return()

	d := WithSession(ms)
	d.Close()
	d.Close()
	ms.AssertNumberOfCalls(t, "Close", 1)
}

func TestDialFailure(t *testing.T) {
	ts := testserver.NewTestNetconfServer(t)
	address := ts.Address()
	ts.Close()

	d, err := Dial(context.Background(), sshConfig(), address, WithSessionConfig(&ops.Config{Timeout: time.Second}))
	assert.Error(t, err)
	assert.Nil(t, d)
}

func TestDialEndToEnd(t *testing.T) {
	ts := testserver.NewTestNetconfServer(t)
	defer ts.Close()
	ts.WithRequestHandler(testserver.OkRequestHandler).
		WithRequestHandler(testserver.DataRequestHandler(
			`<overlay-gateway xmlns="urn:brocade.com:mgmt:brocade-tunnels"><name>Gw1</name><activate/>` +
				`<attach><vlan><vid>10</vid></vlan><vlan><vid>20</vid></vlan></attach></overlay-gateway>`))

	d, err := Dial(context.Background(), sshConfig(), ts.Address())
	assert.NoError(t, err)
	defer d.Close()

	res, err := d.HWVTEP.SetOverlayGatewayName(hwvtep.NameArgs{Name: "Gw1"})
	assert.NoError(t, err)
	assert.Equal(t, nos.Ok, res)
	edit := ts.LastRequest()
	assert.Equal(t, "edit-config", edit.Operation.XMLName.Local)
	assert.Contains(t, edit.Operation.Body,
		`<config><overlay-gateway xmlns="urn:brocade.com:mgmt:brocade-tunnels"><name>Gw1</name></overlay-gateway></config>`)

	gw, err := d.HWVTEP.GetOverlayGateway()
	assert.NoError(t, err)
	assert.Equal(t, "Gw1", gw.Name)
	assert.True(t, gw.Activate)
	assert.Equal(t, []string{"10", "20"}, gw.AttachedVlans)
	assert.Equal(t, "get-config", ts.LastRequest().Operation.XMLName.Local)
}
