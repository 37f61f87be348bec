package config

// ResolverConfig contains the query engine settings.
type ResolverConfig struct {
	// Nameserver is host or host:port. When empty the first nameserver of
	// ResolvConf is used.
	Nameserver          string `yaml:"nameserver"`
	ResolvConf          string `yaml:"resolv_conf"`
	Timeout             string `yaml:"timeout"`   // Wait bound for a reply (e.g., "5s")
	RecvSize            int    `yaml:"recv_size"` // Receive buffer size in bytes
	VerifyResponse      bool   `yaml:"verify_response"`
	SocketReceiveBuffer int    `yaml:"socket_receive_buffer"` // SO_RCVBUF; 0 keeps the OS default
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level            string            `yaml:"level"`
	Structured       bool              `yaml:"structured"`
	StructuredFormat string            `yaml:"structured_format"`
	IncludePID       bool              `yaml:"include_pid"`
	ExtraFields      map[string]string `yaml:"extra_fields,omitempty"`
}

// Config is the root configuration structure.
type Config struct {
	Resolver ResolverConfig `yaml:"resolver"`
	Logging  LoggingConfig  `yaml:"logging"`
}
