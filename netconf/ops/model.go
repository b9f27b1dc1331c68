package ops

import "encoding/xml"

const (
	// Configuration Datastores
	RunningCfg   = "running"
	CandidateCfg = "candidate"
	StartupCfg   = "startup"

	// Edit Config Error Options
	StopOnErrorErrOpt     = "stop-on-error"
	ContinueOnErrorErrOpt = "continue-on-error"
	RollbackOnErrorErrOpt = "rollback-on-error"

	// Edit Config Operation Types
	MergeOp   = "merge"
	ReplaceOp = "replace"
	NoneOp    = "none"

	// Edit Config Test Options
	TestThenSetOpt = "test-then-set"
	SetOpt         = "set"
	TestOnlyOpt    = "test-only"
)

// Data is the <data> element of a get or get-config reply.
type Data struct {
	XMLName xml.Name    `xml:"data"`
	Body    interface{} `xml:",any"`
}

// rawData captures the content of a <data> element verbatim.
type rawData struct {
	XMLName xml.Name `xml:"data"`
	Content string   `xml:",innerxml"`
}
