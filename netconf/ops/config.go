package ops

import "time"

// Defines structs describing netconf configuration.

// Config defines properties that configure netconf session behaviour.
type Config struct {
	// Defines the time that the client will wait to establish the ssh connection.
	Timeout time.Duration
}

var DefaultConfig = &Config{
	Timeout: 30 * time.Second,
}
