// SPDX-License-Identifier: MIT
package lexer

import (
	"github.com/sirupsen/logrus"
)

type (
	// Config defines configuration options for the Lexer's operations.
	Config struct {
		Logger    logrus.FieldLogger
		EndMarker rune
		Splitter  rune
	}
)

const (
	// DefaultEndMarker is the `rune` closing a node's children in
	// serialization output.
	DefaultEndMarker = ')'

	// DefaultSplitter is the `rune` separating serialized entries.
	DefaultSplitter = ','

	// PairMarker separates a node id from its value within one entry.
	PairMarker = ':'

	emptyRune rune = 0
)

// DefaultConfig creates a Config populated with defaults.
func DefaultConfig() *Config {
	return &Config{
		EndMarker: DefaultEndMarker,
		Splitter:  DefaultSplitter,
		Logger:    logrus.New(),
	}
}

// Validate populates missing Config entries with defaults.
func (c *Config) Validate() {
	if c.EndMarker == emptyRune {
		c.EndMarker = DefaultEndMarker
	}
	if c.Splitter == emptyRune {
		c.Splitter = DefaultSplitter
	}
	if c.Logger == nil {
		c.Logger = logrus.New()
	}
}
