package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the YAML layout for an endpoint list, for callers that prefer a
// checked-in file over arguments:
//
//	timeout: 60
//	endpoints:
//	  - address: tcp://db:5432
//	  - address: tcp://cache:6379
//	    timeout: 10
//	  - address: unix:///run/app.sock
type File struct {
	Timeout   int            `yaml:"timeout"` // seconds; 0 means the default
	Quiet     bool           `yaml:"quiet"`
	Endpoints []FileEndpoint `yaml:"endpoints"`
}

// FileEndpoint is one entry of the endpoint list. A non-zero Timeout
// overrides the invocation-wide budget for just this endpoint.
type FileEndpoint struct {
	Address string `yaml:"address"`
	Timeout int    `yaml:"timeout"` // seconds; 0 means the invocation default
}

// LoadFile reads and validates a YAML endpoint list. A bad file is a startup
// precondition failure: the caller must abort before any polling begins.
func LoadFile(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if f.Timeout < 0 {
		return nil, fmt.Errorf("config %s: negative timeout %d", path, f.Timeout)
	}
	for i, ep := range f.Endpoints {
		if ep.Address == "" {
			return nil, fmt.Errorf("config %s: endpoints[%d] has no address", path, i)
		}
		if ep.Timeout < 0 {
			return nil, fmt.Errorf("config %s: endpoints[%d] has negative timeout %d", path, i, ep.Timeout)
		}
	}
	return &f, nil
}
