package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/screa/npub-miner/internal/crypto"
	"github.com/screa/npub-miner/pkg/types"
)

// DefaultDifficulty is used when no target at all is configured
const DefaultDifficulty = 10

// Errors
var (
	ErrInvalidWorkers     = errors.New("number of cores must be positive")
	ErrInvalidDifficulty  = errors.New("difficulty must be between 0 and 255")
	ErrInvalidHexPrefix   = errors.New("hex prefix may only contain lowercase hex characters")
	ErrPrefixTooLong      = errors.New("pattern is longer than the encoded key")
	ErrInvalidNpubPattern = errors.New("npub prefixes and suffixes may only contain bech32 characters")
	ErrInvalidWordCount   = crypto.ErrInvalidWordCount
)

// Max pattern lengths: 64 hex chars for the x-only key, 58 data chars after "npub1"
const (
	maxHexPrefixLen = 2 * crypto.XOnlyPubKeyLen
	maxNpubDataLen  = 58
)

// Config holds the application configuration
type Config struct {
	Difficulty   int
	HexPrefix    string
	NpubPrefixes []string
	NpubSuffixes []string
	Workers      int

	WordCount  int // 0 disables mnemonic mode
	Passphrase string
	Mnemonic   string // restore mode: print keys for this phrase and exit

	Verbose     bool
	LogFile     string
	LogInterval int // Logging interval in seconds
	Progress    bool
	NoColor     bool
	NoBenchmark bool
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		Workers:     runtime.NumCPU(),
		LogInterval: 5, // Default 5 seconds
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidWorkers, c.Workers)
	}
	if c.Difficulty < 0 || c.Difficulty > 255 {
		return fmt.Errorf("%w: got %d", ErrInvalidDifficulty, c.Difficulty)
	}
	if c.WordCount != 0 {
		if _, err := crypto.EntropyBits(c.WordCount); err != nil {
			return err
		}
	}

	if len(c.HexPrefix) > maxHexPrefixLen {
		return fmt.Errorf("%w: hex prefix %q", ErrPrefixTooLong, c.HexPrefix)
	}
	for _, ch := range c.HexPrefix {
		if !(ch >= '0' && ch <= '9' || ch >= 'a' && ch <= 'f') {
			return fmt.Errorf("%w: %q", ErrInvalidHexPrefix, c.HexPrefix)
		}
	}

	for _, p := range append(c.cleanPrefixes(), c.cleanSuffixes()...) {
		if len(p) > maxNpubDataLen {
			return fmt.Errorf("%w: npub pattern %q", ErrPrefixTooLong, p)
		}
		if !crypto.IsBech32(p) {
			return fmt.Errorf("%w: %q (allowed: %s)", ErrInvalidNpubPattern, p, crypto.Charset)
		}
	}
	return nil
}

// Target resolves the single active target. Priority: hex prefix, npub prefix
// and suffix, npub prefix, npub suffix, difficulty.
func (c *Config) Target() (*types.Target, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	prefixes := c.cleanPrefixes()
	suffixes := c.cleanSuffixes()
	t := &types.Target{Threshold: uint8(c.Difficulty)}

	switch {
	case c.HexPrefix != "":
		t.Mode = types.ModeHexPrefix
		t.HexPrefix = c.HexPrefix
		t.EstimatedPow = estimatePow(len(c.HexPrefix))
	case len(prefixes) > 0 && len(suffixes) > 0:
		t.Mode = types.ModeNpubPrefixSuffix
		t.NpubPrefixes = prefixes
		t.NpubSuffixes = suffixes
		t.EstimatedPow = estimatePow(shortest(prefixes) + shortest(suffixes))
	case len(prefixes) > 0:
		t.Mode = types.ModeNpubPrefix
		t.NpubPrefixes = prefixes
		t.EstimatedPow = estimatePow(shortest(prefixes))
	case len(suffixes) > 0:
		t.Mode = types.ModeNpubSuffix
		t.NpubSuffixes = suffixes
		t.EstimatedPow = estimatePow(shortest(suffixes))
	default:
		t.Mode = types.ModeDifficulty
		if t.Threshold == 0 {
			t.Threshold = DefaultDifficulty
		}
		t.EstimatedPow = t.Threshold
	}

	// the register starts at the estimate for vanity modes too; it is only
	// consulted in difficulty mode
	if t.Mode != types.ModeDifficulty {
		t.Threshold = t.EstimatedPow
	}
	return t, nil
}

// UsesMnemonic reports whether keys are derived from generated phrases
func (c *Config) UsesMnemonic() bool {
	return c.WordCount > 0
}

func (c *Config) cleanPrefixes() []string {
	return nonEmpty(c.NpubPrefixes)
}

func (c *Config) cleanSuffixes() []string {
	return nonEmpty(c.NpubSuffixes)
}

// nonEmpty drops blank entries left by "a,,b" style flag values
func nonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func shortest(patterns []string) int {
	n := len(patterns[0])
	for _, p := range patterns[1:] {
		if len(p) < n {
			n = len(p)
		}
	}
	return n
}

// estimatePow counts 4 bits per pattern character
func estimatePow(chars int) uint8 {
	bits := chars * 4
	if bits > 255 {
		return 255
	}
	return uint8(bits)
}
