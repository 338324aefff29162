package crypto

import (
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/unicode/norm"
)

// NIP-06 derivation path m/44'/1237'/0'/0/0
var nip06Path = []uint32{
	hdkeychain.HardenedKeyStart + 44,
	hdkeychain.HardenedKeyStart + 1237,
	hdkeychain.HardenedKeyStart + 0,
	0,
	0,
}

// Errors
var (
	ErrInvalidWordCount = errors.New("mnemonic word count must be one of 12, 15, 18, 21 or 24")
	ErrInvalidMnemonic  = errors.New("invalid mnemonic phrase")
)

// CandidateKey is a freshly generated key pair. It belongs to the worker that
// generated it.
type CandidateKey struct {
	Secret     *secp256k1.PrivateKey
	Public     *secp256k1.PublicKey
	Compressed []byte               // 33-byte SEC1 compressed public key
	XOnly      [XOnlyPubKeyLen]byte // BIP-340 x-only public key
	PublicHex  string               // lowercase hex of XOnly

	Mnemonic   string
	Passphrase string
}

// NewCandidateKey builds the serializations of priv's public key
func NewCandidateKey(priv *secp256k1.PrivateKey) *CandidateKey {
	pub := priv.PubKey()
	k := &CandidateKey{
		Secret:     priv,
		Public:     pub,
		Compressed: pub.SerializeCompressed(),
	}
	copy(k.XOnly[:], schnorr.SerializePubKey(pub))
	k.PublicHex = hex.EncodeToString(k.XOnly[:])
	return k
}

// SecretHex returns the 32-byte secret key as lowercase hex
func (k *CandidateKey) SecretHex() string {
	return hex.EncodeToString(k.Secret.Serialize())
}

// Npub returns the bech32 encoding of the x-only public key
func (k *CandidateKey) Npub() (string, error) {
	return EncodeNpub(k.XOnly[:])
}

// Nsec returns the bech32 encoding of the secret key
func (k *CandidateKey) Nsec() (string, error) {
	return EncodeNsec(k.Secret.Serialize())
}

// KeyGenerator produces one independent candidate per call. A generator is
// owned by a single worker and is not safe for concurrent use.
type KeyGenerator interface {
	Generate() (*CandidateKey, error)
}

// DirectGenerator draws private keys straight from its random source
type DirectGenerator struct {
	rand io.Reader
}

// NewDirectGenerator creates a generator reading from r, or crypto/rand when r is nil
func NewDirectGenerator(r io.Reader) *DirectGenerator {
	if r == nil {
		r = rand.Reader
	}
	return &DirectGenerator{rand: r}
}

// Generate implements KeyGenerator
func (g *DirectGenerator) Generate() (*CandidateKey, error) {
	priv, err := secp256k1.GeneratePrivateKeyFromRand(g.rand)
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return NewCandidateKey(priv), nil
}

// MnemonicGenerator creates a fresh BIP-39 phrase per call and derives the
// NIP-06 key from it
type MnemonicGenerator struct {
	rand       io.Reader
	passphrase string
	entropy    []byte
}

// NewMnemonicGenerator creates a generator producing phrases of the given word count
func NewMnemonicGenerator(r io.Reader, words int, passphrase string) (*MnemonicGenerator, error) {
	bitSize, err := EntropyBits(words)
	if err != nil {
		return nil, err
	}
	if r == nil {
		r = rand.Reader
	}
	return &MnemonicGenerator{
		rand:       r,
		passphrase: passphrase,
		entropy:    make([]byte, bitSize/8),
	}, nil
}

// Generate implements KeyGenerator
func (g *MnemonicGenerator) Generate() (*CandidateKey, error) {
	if _, err := io.ReadFull(g.rand, g.entropy); err != nil {
		return nil, fmt.Errorf("read entropy: %w", err)
	}
	phrase, err := bip39.NewMnemonic(g.entropy)
	if err != nil {
		return nil, fmt.Errorf("generate mnemonic: %w", err)
	}
	return deriveFromMnemonic(phrase, g.passphrase)
}

// NewGenerator selects the key sourcing strategy: direct when words is 0,
// mnemonic-derived otherwise. Each call returns a generator with its own
// crypto/rand backed source.
func NewGenerator(words int, passphrase string) (KeyGenerator, error) {
	if words == 0 {
		return NewDirectGenerator(nil), nil
	}
	return NewMnemonicGenerator(nil, words, passphrase)
}

// KeysFromMnemonic restores the NIP-06 key for an existing phrase
func KeysFromMnemonic(phrase, passphrase string) (*CandidateKey, error) {
	if !bip39.IsMnemonicValid(phrase) {
		return nil, ErrInvalidMnemonic
	}
	return deriveFromMnemonic(phrase, passphrase)
}

// EntropyBits maps a BIP-39 word count to its entropy size in bits
func EntropyBits(words int) (int, error) {
	switch words {
	case 12, 15, 18, 21, 24:
		return words * 32 / 3, nil
	}
	return 0, fmt.Errorf("%w: got %d", ErrInvalidWordCount, words)
}

// deriveFromMnemonic builds the BIP-39 seed from the NFKD forms of phrase and
// passphrase. The returned key keeps the caller's spelling of both.
func deriveFromMnemonic(phrase, passphrase string) (*CandidateKey, error) {
	origPhrase, origPassphrase := phrase, passphrase
	phrase = norm.NFKD.String(phrase)
	passphrase = norm.NFKD.String(passphrase)
	seed := pbkdf2.Key([]byte(phrase), []byte("mnemonic"+passphrase), 2048, 64, sha512.New)

	key, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("derive master key: %w", err)
	}
	for _, idx := range nip06Path {
		key, err = key.Derive(idx)
		if err != nil {
			return nil, fmt.Errorf("derive child %d: %w", idx, err)
		}
	}
	priv, err := key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("derive private key: %w", err)
	}

	k := NewCandidateKey(priv)
	k.Mnemonic = origPhrase
	k.Passphrase = origPassphrase
	return k, nil
}
