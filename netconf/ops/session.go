package ops

import (
	"encoding/xml"
	"io"
	"strings"
	"time"

	"github.com/Juniper/go-netconf/netconf"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/damianoneill/nos/netconf/common"
)

// Executor is the wire session used to run RPCs; *netconf.Session satisfies it.
type Executor interface {
	Exec(methods ...netconf.RPCMethod) (*netconf.RPCReply, error)
	Close() error
}

// OpSession represents a Netconf Operations OpSession
type OpSession interface {
	// GetConfigSubtree issues a GET-CONFIG request, with the supplied subtree filter and source, and stores the
	// response in the result, which should be the address of either:
	// - a string, in which case it will hold the content of the data element,
	// - a netconf.RPCReply, in which case it will hold the whole reply, or
	// - a struct with xml tags.
	GetConfigSubtree(filter interface{}, source string, result interface{}) error

	// EditConfig issues an edit-config request defined by config to be applied to the target configuration.
	// EditOptions can be added to qualify the operation.
	// config will be defined by Cfg(cfg), where cfg is
	// - an xml string, in which case it will be used verbatim as the content of the <config> element.
	// - a struct with xml tags that will be marshalled as the child of the <config> element.
	EditConfig(target string, config ConfigOption, options ...EditOption) error

	// EditConfigCfg issues an edit-config request defined by config to be applied to the target configuration.
	// Convenience method to avoid complications with function arguments when using EditConfig() with a mock object
	EditConfigCfg(target string, config interface{}, options ...EditOption) error

	// Lock issues a lock request on the target configuration.
	Lock(target string) error

	// Unlock issues an unlock request on the target configuration.
	Unlock(target string) error

	// Discard issues a discard changes request.
	Discard() error

	// Commit commits the candidate configuration.
	Commit() error

	// Close closes the session and releases any associated resources.
	Close()
}

type sImpl struct {
	ex     Executor
	trace  *ClientTrace
	target string
}

func (s *sImpl) Close() {
	err := s.ex.Close()
	s.trace.ConnectionClosed(s.target, err)
	if err != nil {
		s.trace.Error("Session close failed", s.target, err)
	}
}

func (s *sImpl) GetConfigSubtree(filter interface{}, source string, result interface{}) error {
	return s.handleGetRequest(createGetConfigSubtreeRequest(filter, source), result)
}

func (s *sImpl) EditConfig(target string, config ConfigOption, options ...EditOption) error {
	_, err := s.execute(createEditConfigRequest(target, config, options...))
	return err
}

func (s *sImpl) EditConfigCfg(target string, config interface{}, options ...EditOption) error {
	return s.EditConfig(target, Cfg(config), options...)
}

func (s *sImpl) Lock(target string) error {
	_, err := s.execute(createLockRequest(target))
	return err
}

func (s *sImpl) Unlock(target string) error {
	_, err := s.execute(createUnlockRequest(target))
	return err
}

func (s *sImpl) Discard() error {
	_, err := s.execute(createDiscardRequest())
	return err
}

func (s *sImpl) Commit() error {
	_, err := s.execute(createCommitRequest())
	return err
}

// Request structs.

type Filter struct {
	XMLName xml.Name `xml:"filter"`
	Type    string   `xml:"type,attr"`
	*common.Union
}

// ConfigElem is the config element of an edit-config request.
type ConfigElem struct {
	XMLName xml.Name `xml:"config"`
	*common.Union
}

// ConfigType names a datastore.
type ConfigType struct {
	Type string `xml:",innerxml"`
}

type GetConfigReq struct {
	XMLName xml.Name    `xml:"get-config"`
	Source  *ConfigType `xml:"source"`
	Filter  *Filter
}

type EditConfigReq struct {
	XMLName          xml.Name    `xml:"edit-config"`
	Target           *ConfigType `xml:"target"`
	DefaultOperation string      `xml:"default-operation,omitempty"`
	TestOption       string      `xml:"test-option,omitempty"`
	ErrorOption      string      `xml:"error-option,omitempty"`
	Config           *ConfigElem
}

type LockReq struct {
	XMLName xml.Name    `xml:"lock"`
	Target  *ConfigType `xml:"target"`
}

type UnlockReq struct {
	XMLName xml.Name    `xml:"unlock"`
	Target  *ConfigType `xml:"target"`
}

type DiscardReq struct {
	XMLName xml.Name `xml:"discard-changes"`
}

type CommitReq struct {
	XMLName xml.Name `xml:"commit"`
}

// ConfigOption defines the configuration to be applied by an edit config operation
type ConfigOption func(*EditConfigReq)

// Cfg defines the configuration as an xml string or a value with xml tags.
func Cfg(cfg interface{}) ConfigOption {
	return func(req *EditConfigReq) {
		req.Config = &ConfigElem{Union: common.GetUnion(cfg)}
	}
}

// EditOption configures an edit config operation.
type EditOption func(*EditConfigReq)

func DefaultOperation(oper string) EditOption {
	return func(req *EditConfigReq) {
		req.DefaultOperation = oper
	}
}

func TestOption(opt string) EditOption {
	return func(req *EditConfigReq) {
		req.TestOption = opt
	}
}

func ErrorOption(opt string) EditOption {
	return func(req *EditConfigReq) {
		req.ErrorOption = opt
	}
}

func (r *EditConfigReq) applyOpts(options ...EditOption) {
	for _, opt := range options {
		opt(r)
	}
}

func datastore(name string) *ConfigType {
	// xml Marshaller will not create self-closing tags (and some devices require it)...
	return &ConfigType{Type: "<" + name + "/>"}
}

func createGetConfigSubtreeRequest(s interface{}, source string) common.Request {
	req := &GetConfigReq{Source: datastore(source)}
	if s != nil {
		req.Filter = &Filter{Type: "subtree", Union: common.GetUnion(s)}
	}
	return req
}

func createEditConfigRequest(target string, cfgOpt ConfigOption, options ...EditOption) *EditConfigReq {
	req := &EditConfigReq{Target: datastore(target)}
	req.applyOpts(options...)
	cfgOpt(req)
	return req
}

func createLockRequest(target string) *LockReq {
	return &LockReq{Target: datastore(target)}
}

func createUnlockRequest(target string) *UnlockReq {
	return &UnlockReq{Target: datastore(target)}
}

func createDiscardRequest() *DiscardReq {
	return &DiscardReq{}
}

func createCommitRequest() *CommitReq {
	return &CommitReq{}
}

// marshalMethod renders a request as the raw body of an <rpc> element.
func marshalMethod(req common.Request) (netconf.RawMethod, error) {
	switch r := req.(type) {
	case string:
		return netconf.RawMethod(r), nil
	default:
		b, err := xml.Marshal(r)
		if err != nil {
			return "", errors.Wrap(err, "failed to marshal request")
		}
		return netconf.RawMethod(b), nil
	}
}

func (s *sImpl) execute(req common.Request) (reply *netconf.RPCReply, err error) {
	id := uuid.New().String()
	s.trace.ExecuteStart(id, req)
	defer func(begin time.Time) {
		s.trace.ExecuteDone(id, req, reply, err, time.Since(begin))
	}(time.Now())

	method, err := marshalMethod(req)
	if err != nil {
		return nil, err
	}

	reply, err = s.ex.Exec(method)
	if err != nil {
		s.trace.Error("Exec failed", s.target, err)
		return reply, err
	}
	return reply, mapError(reply)
}

func (s *sImpl) handleGetRequest(req common.Request, result interface{}) error {
	reply, err := s.execute(req)
	if err != nil {
		return err
	}

	switch target := result.(type) {
	case *netconf.RPCReply:
		*target = *reply
		return nil
	case *string:
		data := &rawData{}
		err = decodeData(reply.Data, data)
		*target = data.Content
	default:
		err = decodeData(reply.Data, &Data{Body: result})
	}
	return errors.Wrap(err, "failed to decode reply data")
}

// decodeData decodes the data element of a reply body into v; a reply without a data element leaves v untouched.
func decodeData(body string, v interface{}) error {
	dec := xml.NewDecoder(strings.NewReader(body))
	for {
		token, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if start, ok := token.(xml.StartElement); ok {
			if start.Name.Local == "data" {
				return dec.DecodeElement(v, &start)
			}
			if err = dec.Skip(); err != nil {
				return err
			}
		}
	}
}

// Map an RPC reply to an error, if the reply is either null or contains any RPC error.
func mapError(r *netconf.RPCReply) (err error) {
	if r == nil {
		return io.ErrUnexpectedEOF
	}
	for i := 0; i < len(r.Errors); i++ {
		rpcErr := r.Errors[i]
		if rpcErr.Severity == common.SeverityError {
			return &rpcErr
		}
	}
	return nil
}
