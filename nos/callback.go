package nos

import (
	"github.com/Juniper/go-netconf/netconf"
	"github.com/pkg/errors"

	"github.com/damianoneill/nos/netconf/ops"
)

// Ok is the confirmation returned by a session callback for a successful edit.
const Ok = "<ok/>"

type callbackOptions struct {
	source      string
	target      string
	commit      bool
	editOptions []ops.EditOption
}

// CallbackOption configures a session callback.
type CallbackOption func(*callbackOptions)

// WithSource sets the datastore read by GetConfig; the default is running.
func WithSource(source string) CallbackOption {
	return func(o *callbackOptions) {
		o.source = source
	}
}

// WithTarget sets the datastore written by EditConfig; the default is running.
func WithTarget(target string) CallbackOption {
	return func(o *callbackOptions) {
		o.target = target
	}
}

// WithCommit commits the candidate datastore after each successful EditConfig.
func WithCommit() CallbackOption {
	return func(o *callbackOptions) {
		o.commit = true
	}
}

// WithEditOptions qualifies each edit-config request.
func WithEditOptions(options ...ops.EditOption) CallbackOption {
	return func(o *callbackOptions) {
		o.editOptions = append(o.editOptions, options...)
	}
}

// SessionCallback delivers configurations over the netconf session s.
// EditConfig returns Ok on success. An edit of the candidate datastore holds the candidate lock for its
// duration and discards the candidate changes if the edit or commit fails.
// GetConfig returns the text of the whole reply, keeping the namespace declarations the data relies on.
func SessionCallback(s ops.OpSession, options ...CallbackOption) Callback {
	opts := &callbackOptions{source: ops.RunningCfg, target: ops.RunningCfg}
	for _, o := range options {
		o(opts)
	}

	return func(config *Config, handler Handler) (string, error) {
		switch handler {
		case GetConfig:
			var reply netconf.RPCReply
			if err := s.GetConfigSubtree(config.Body, opts.source, &reply); err != nil {
				return "", errors.Wrap(err, "get-config failed")
			}
			if reply.RawReply != "" {
				return reply.RawReply, nil
			}
			return "<rpc-reply>" + reply.Data + "</rpc-reply>", nil
		case EditConfig:
			if opts.target == ops.CandidateCfg {
				return editCandidate(s, config, opts)
			}
			if err := s.EditConfigCfg(opts.target, config.Body, opts.editOptions...); err != nil {
				return "", errors.Wrap(err, "edit-config failed")
			}
			if opts.commit {
				if err := s.Commit(); err != nil {
					return "", errors.Wrap(err, "commit failed")
				}
			}
			return Ok, nil
		default:
			return "", errors.Errorf("unsupported handler %d", handler)
		}
	}
}

func editCandidate(s ops.OpSession, config *Config, opts *callbackOptions) (res string, err error) {
	if err = s.Lock(ops.CandidateCfg); err != nil {
		return "", errors.Wrap(err, "lock failed")
	}
	defer func() {
		if uerr := s.Unlock(ops.CandidateCfg); uerr != nil && err == nil {
			res, err = "", errors.Wrap(uerr, "unlock failed")
		}
	}()

	if err = s.EditConfigCfg(ops.CandidateCfg, config.Body, opts.editOptions...); err != nil {
		err = errors.Wrap(err, "edit-config failed")
	} else if opts.commit {
		if err = s.Commit(); err != nil {
			err = errors.Wrap(err, "commit failed")
		}
	}
	if err != nil {
		if derr := s.Discard(); derr != nil {
			err = errors.Wrapf(err, "discard failed: %v", derr)
		}
		return "", err
	}
	return Ok, nil
}
