package crypto

import (
	"fmt"
	"math/bits"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

const (
	// Human readable parts for NIP-19 encoded keys
	NpubHRP = "npub"
	NsecHRP = "nsec"

	// NpubPrefix is what every encoded public key starts with
	NpubPrefix = NpubHRP + "1"

	// XOnlyPubKeyLen is the size of a BIP-340 x-only public key
	XOnlyPubKeyLen = 32
)

// Charset lists the characters that can appear in the data part of a bech32 string
const Charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

// LeadingZeroBits counts consecutive zero bits from the most significant bit
// of data[0]. An all-zero slice yields 8*len(data).
func LeadingZeroBits(data []byte) int {
	var n int
	for _, b := range data {
		if b == 0 {
			n += 8
			continue
		}
		return n + bits.LeadingZeros8(b)
	}
	return n
}

// EncodeNpub encodes a 32-byte x-only public key as an npub string
func EncodeNpub(xonly []byte) (string, error) {
	return encode(NpubHRP, xonly)
}

// EncodeNsec encodes a 32-byte secret key as an nsec string
func EncodeNsec(secret []byte) (string, error) {
	return encode(NsecHRP, secret)
}

// DecodeNpub decodes an npub string back to the 32-byte x-only public key
func DecodeNpub(npub string) ([]byte, error) {
	hrp, data, err := bech32.DecodeToBase256(npub)
	if err != nil {
		return nil, fmt.Errorf("decode npub: %w", err)
	}
	if hrp != NpubHRP {
		return nil, fmt.Errorf("decode npub: unexpected prefix %q", hrp)
	}
	if len(data) != XOnlyPubKeyLen {
		return nil, fmt.Errorf("decode npub: got %d bytes, want %d", len(data), XOnlyPubKeyLen)
	}
	return data, nil
}

// IsBech32 reports whether every character of s belongs to the bech32 charset
func IsBech32(s string) bool {
	for i := 0; i < len(s); i++ {
		found := false
		for j := 0; j < len(Charset); j++ {
			if s[i] == Charset[j] {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func encode(hrp string, data []byte) (string, error) {
	conv, err := bech32.ConvertBits(data, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("convert bits: %w", err)
	}
	s, err := bech32.Encode(hrp, conv)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", hrp, err)
	}
	return s, nil
}
