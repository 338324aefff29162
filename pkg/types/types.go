package types

import (
	"fmt"
	"strings"
)

// Mode identifies which kind of target is active for a run
type Mode int

const (
	ModeDifficulty Mode = iota
	ModeHexPrefix
	ModeNpubPrefix
	ModeNpubSuffix
	ModeNpubPrefixSuffix
)

func (m Mode) String() string {
	switch m {
	case ModeDifficulty:
		return "difficulty"
	case ModeHexPrefix:
		return "hex-prefix"
	case ModeNpubPrefix:
		return "npub-prefix"
	case ModeNpubSuffix:
		return "npub-suffix"
	case ModeNpubPrefixSuffix:
		return "npub-prefix-suffix"
	}
	return "unknown"
}

// Target describes what counts as a match. It is resolved once before any
// worker starts and is only read afterwards.
type Target struct {
	Mode Mode

	// Threshold is the initial value of the best-difficulty register.
	Threshold uint8

	HexPrefix    string
	NpubPrefixes []string
	NpubSuffixes []string

	// EstimatedPow is informational: 4 bits per pattern character for
	// vanity modes, the threshold itself for difficulty mode.
	EstimatedPow uint8
}

// IsNpub reports whether the target matches against the bech32 encoding
func (t *Target) IsNpub() bool {
	return t.Mode == ModeNpubPrefix || t.Mode == ModeNpubSuffix || t.Mode == ModeNpubPrefixSuffix
}

// Describe returns a human-readable description of the target
func (t *Target) Describe() string {
	switch t.Mode {
	case ModeHexPrefix:
		return fmt.Sprintf("vanity hex prefix '%s' (estimated pow: %d)", t.HexPrefix, t.EstimatedPow)
	case ModeNpubPrefixSuffix:
		return fmt.Sprintf("vanity bech32 prefix[es] 'npub1[%s]' and suffix[es] '...[%s]' (estimated pow: %d)",
			strings.Join(t.NpubPrefixes, ","), strings.Join(t.NpubSuffixes, ","), t.EstimatedPow)
	case ModeNpubPrefix:
		return fmt.Sprintf("vanity bech32 prefix[es] 'npub1[%s]' (estimated pow: %d)",
			strings.Join(t.NpubPrefixes, ","), t.EstimatedPow)
	case ModeNpubSuffix:
		return fmt.Sprintf("vanity bech32 suffix[es] '...[%s]' (estimated pow: %d)",
			strings.Join(t.NpubSuffixes, ","), t.EstimatedPow)
	}
	return fmt.Sprintf("difficulty of %d leading zero bits", t.Threshold)
}

// MatchResult is the outcome of evaluating one candidate
type MatchResult struct {
	Matched         bool
	LeadingZeroBits int
	VanityLabel     string
}

// Stats are throughput figures derived from the shared iteration counter
type Stats struct {
	Iterations     int64
	ElapsedSeconds int64
	Rate           int64 // iterations per second, elapsed floored at one second
}

// Report is handed to the output collaborator on every match
type Report struct {
	WorkerID        int
	SecretKeyHex    string
	Nsec            string
	PublicKeyHex    string
	Npub            string
	VanityLabel     string
	LeadingZeroBits int
	Mnemonic        string
	Stats           Stats
}

// Reporter receives matches and periodic progress. Implementations are called
// concurrently from every worker.
type Reporter interface {
	Found(r *Report)
	Progress(s Stats)
}
