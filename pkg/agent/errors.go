package agent

import "errors"

// ErrAgent wraps every failure of the language model endpoint, including
// answers that cannot be parsed.
var ErrAgent = errors.New("agent error")

// ErrDisabled is returned by an Agent built from a config with Enabled unset.
var ErrDisabled = errors.New("agent disabled")
