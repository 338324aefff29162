package worker

import (
	"strings"

	"github.com/screa/npub-miner/internal/crypto"
	"github.com/screa/npub-miner/pkg/types"
)

// Evaluator decides whether a candidate satisfies the run's target
type Evaluator struct {
	target *types.Target
	best   *Ratchet
}

// NewEvaluator creates an evaluator sharing the given ratchet
func NewEvaluator(target *types.Target, best *Ratchet) *Evaluator {
	return &Evaluator{target: target, best: best}
}

// Evaluate checks key against the target. In difficulty mode a match raises
// the shared ratchet.
func (e *Evaluator) Evaluate(key *crypto.CandidateKey) (types.MatchResult, error) {
	res := types.MatchResult{LeadingZeroBits: crypto.LeadingZeroBits(key.XOnly[:])}

	switch e.target.Mode {
	case types.ModeHexPrefix:
		res.Matched = MatchHexPrefix(key.PublicHex, e.target.HexPrefix)
	case types.ModeNpubPrefix, types.ModeNpubSuffix, types.ModeNpubPrefixSuffix:
		npub, err := key.Npub()
		if err != nil {
			return res, err
		}
		res.VanityLabel, res.Matched = MatchNpub(npub, e.target.NpubPrefixes, e.target.NpubSuffixes)
	default:
		res.Matched = e.best.Offer(res.LeadingZeroBits)
	}
	return res, nil
}

// MatchHexPrefix is a case-sensitive prefix test on the hex public key
func MatchHexPrefix(hexKey, prefix string) bool {
	return strings.HasPrefix(hexKey, prefix)
}

// MatchNpub tests an encoded key against ordered prefix and suffix sets and
// returns the label of the first satisfying pattern. With both sets the scan
// is prefix-major and the label is "prefix...suffix".
func MatchNpub(npub string, prefixes, suffixes []string) (string, bool) {
	switch {
	case len(prefixes) > 0 && len(suffixes) > 0:
		for _, p := range prefixes {
			if !strings.HasPrefix(npub, crypto.NpubPrefix+p) {
				continue
			}
			for _, s := range suffixes {
				if strings.HasSuffix(npub, s) {
					return p + "..." + s, true
				}
			}
		}
	case len(prefixes) > 0:
		for _, p := range prefixes {
			if strings.HasPrefix(npub, crypto.NpubPrefix+p) {
				return p, true
			}
		}
	case len(suffixes) > 0:
		for _, s := range suffixes {
			if strings.HasSuffix(npub, s) {
				return s, true
			}
		}
	}
	return "", false
}
