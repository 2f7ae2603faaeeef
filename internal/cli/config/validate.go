package config

import (
	"fmt"
	"slices"
	"strings"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !slices.Contains(OutputModes, c.Output) {
		return fmt.Errorf("invalid output %q (want one of %s)", c.Output, strings.Join(OutputModes, ", "))
	}
	if c.Prompt == "" {
		return fmt.Errorf("prompt must not be empty")
	}
	return nil
}
