package config

import (
	"runtime"
)

// Config contains the checker configuration.
type Config struct {
	Includes []string
	Excludes []string

	Concurrency int // number of files checked concurrently; default is the number of CPUs

	WarnMixedDescriptors bool // report srcsets mixing width and density descriptors

	Rewrite         bool   // write relinked copies of the documents
	BaseURL         string // the URL at which the checked root directory is published
	OutputDirectory string // where rewritten documents are written
}

func (c *Config) SensibleDefaults() {
	if c.Concurrency < 1 {
		c.Concurrency = runtime.NumCPU()
	}

	if c.Rewrite && c.OutputDirectory == "" {
		c.OutputDirectory = "."
	}

	if c.BaseURL == "" {
		c.BaseURL = "http://localhost/"
	}
}
