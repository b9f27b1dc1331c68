package nsx

import (
	"errors"
	"testing"

	assert "github.com/stretchr/testify/require"

	"github.com/damianoneill/nos/nos"
)

const nsx = `<nsx-controller xmlns="urn:brocade.com:mgmt:brocade-tunnels">`

type fakeCallback struct {
	configs  []string
	handlers []nos.Handler
	reply    string
	err      error
}

func (f *fakeCallback) callback(config *nos.Config, handler nos.Handler) (string, error) {
	f.configs = append(f.configs, config.String())
	f.handlers = append(f.handlers, handler)
	return f.reply, f.err
}

func TestNsxControllerName(t *testing.T) {
	f := &fakeCallback{reply: "<ok/>"}
	res, err := New(f.callback).NsxControllerName(NameArgs{Name: "Nsx1"})
	assert.NoError(t, err)
	assert.Equal(t, "<ok/>", res)
	assert.Equal(t, []string{`<config>` + nsx + `<name>Nsx1</name></nsx-controller></config>`}, f.configs)
	assert.Equal(t, []nos.Handler{nos.EditConfig}, f.handlers)
}

func TestNsxControllerNameGet(t *testing.T) {
	f := &fakeCallback{reply: "<data/>"}
	res, err := New(f.callback).NsxControllerName(NameArgs{Name: "Nsx1", Get: true})
	assert.NoError(t, err)
	assert.Equal(t, "<data/>", res)
	assert.Equal(t, []nos.Handler{nos.GetConfig}, f.handlers)
}

func TestSetNsxControllerIP(t *testing.T) {
	for _, addr := range []string{"10.0.0.1", "10.0.0.1/24", "10.0.0.1/255.255.255.0", "10.0.0.1/0.0.0.255"} {
		f := &fakeCallback{reply: "<ok/>"}
		_, err := New(f.callback).SetNsxControllerIP(IPArgs{Name: "Nsx1", IPAddr: addr})
		assert.NoError(t, err, addr)
		assert.Equal(t, []string{`<config>` + nsx + `<name>Nsx1</name><connection-addr><address>` + addr + `</address></connection-addr></nsx-controller></config>`}, f.configs)
	}
}

func TestSetNsxControllerIPRejectsNonIPv4(t *testing.T) {
	for _, addr := range []string{"2001:db8::1", "::ffff:10.0.0.1", "2001:db8::1/64", "10.0.0", "controller", "10.0.0.1/99", "10.0.0.1/255.0.255.0", "10.0.0.1/"} {
		f := &fakeCallback{}
		_, err := New(f.callback).SetNsxControllerIP(IPArgs{Name: "Nsx1", IPAddr: addr})
		assert.IsType(t, &nos.ValidationError{}, err, addr)
		assert.Empty(t, f.configs, "Expecting no callback invocation")
	}
}

func TestSetNsxControllerPort(t *testing.T) {
	f := &fakeCallback{reply: "<ok/>"}
	_, err := New(f.callback).SetNsxControllerPort(PortArgs{Name: "Nsx1", Port: 6632})
	assert.NoError(t, err)
	assert.Equal(t, []string{`<config>` + nsx + `<name>Nsx1</name><connection-addr><port>6632</port></connection-addr></nsx-controller></config>`}, f.configs)
}

func TestActivateDeactivate(t *testing.T) {
	f := &fakeCallback{reply: "<ok/>"}
	n := New(f.callback)
	_, err := n.ActivateNsxController(NameArgs{Name: "Nsx1"})
	assert.NoError(t, err)
	_, err = n.DeactivateNsxController(NameArgs{Name: "Nsx1"})
	assert.NoError(t, err)
	assert.Equal(t, []string{
		`<config>` + nsx + `<name>Nsx1</name><activate></activate></nsx-controller></config>`,
		`<config>` + nsx + `<name>Nsx1</name><activate operation="delete"></activate></nsx-controller></config>`,
	}, f.configs)
}

func TestMissingArguments(t *testing.T) {
	f := &fakeCallback{}
	n := New(f.callback)

	_, err := n.NsxControllerName(NameArgs{})
	assert.IsType(t, &nos.ArgumentError{}, err)
	_, err = n.SetNsxControllerIP(IPArgs{Name: "Nsx1"})
	assert.IsType(t, &nos.ArgumentError{}, err)
	_, err = n.SetNsxControllerPort(PortArgs{Name: "Nsx1"})
	assert.IsType(t, &nos.ArgumentError{}, err)
	_, err = n.ActivateNsxController(NameArgs{})
	assert.IsType(t, &nos.ArgumentError{}, err)
	assert.Empty(t, f.configs)
}

func TestCallbackFailure(t *testing.T) {
	f := &fakeCallback{err: errors.New("failed")}
	_, err := New(f.callback).SetNsxControllerPort(PortArgs{Name: "Nsx1", Port: 6632})
	assert.Error(t, err)
}

func TestGetNsxController(t *testing.T) {
	f := &fakeCallback{reply: `<data>` + nsx + `<name>Nsx1</name><connection-addr><address>10.0.0.1</address><port>6632</port></connection-addr><activate/></nsx-controller></data>`}
	res, err := New(f.callback).GetNsxController()
	assert.NoError(t, err)
	assert.Equal(t, []nos.Handler{nos.GetConfig}, f.handlers)
	assert.Equal(t, "Nsx1", res.Name)
	assert.True(t, res.Activate)
	assert.Equal(t, "6632", *res.Port)
	assert.Equal(t, "10.0.0.1", *res.Address)
}

func TestGetNsxControllerWithoutConnection(t *testing.T) {
	f := &fakeCallback{reply: `<data>` + nsx + `<name>Nsx1</name></nsx-controller></data>`}
	res, err := New(f.callback).GetNsxController()
	assert.NoError(t, err)
	assert.False(t, res.Activate)
	assert.Nil(t, res.Port)
	assert.Nil(t, res.Address)
}

func TestGetNsxControllerWithoutAddress(t *testing.T) {
	f := &fakeCallback{reply: `<data>` + nsx + `<name>Nsx1</name><connection-addr><port>6632</port></connection-addr></nsx-controller></data>`}
	res, err := New(f.callback).GetNsxController()
	assert.NoError(t, err)
	assert.Equal(t, "6632", *res.Port)
	assert.Nil(t, res.Address)
}

func TestGetNsxControllerNone(t *testing.T) {
	f := &fakeCallback{reply: `<data></data>`}
	res, err := New(f.callback).GetNsxController()
	assert.NoError(t, err)
	assert.Nil(t, res)
}
