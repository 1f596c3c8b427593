package crypto

import (
	"crypto/ecdsa"
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

const (
	KeyTypeSecp256k1 = "secp256k1"

	// SignatureLength is the length of a [R || S || V] signature
	SignatureLength = ethcrypto.SignatureLength

	// legacy offset of the recovery id in Ethereum signatures
	recoveryIDOffset = 27
)

var (
	ErrInvalidSignatureLength = errors.New("secp256k1: invalid signature length")
	ErrInvalidRecoveryID      = errors.New("secp256k1: invalid signature recovery id")
	ErrInvalidSignatureValues = errors.New("secp256k1: invalid signature r, s values")
	ErrInvalidHashLength      = errors.New("secp256k1: invalid hash length")
)

type Secp256k1PrivateKey struct {
	PrivateKey *ecdsa.PrivateKey
}

func GenerateSecp256k1PrivateKey() (*Secp256k1PrivateKey, error) {
	key, err := ethcrypto.GenerateKey()
	if err != nil {
		return nil, errors.Wrap(err, "secp256k1: failed to generate private key")
	}
	return &Secp256k1PrivateKey{PrivateKey: key}, nil
}

func ParseSecp256k1PrivateKey(hexKey string) (*Secp256k1PrivateKey, error) {
	raw, err := hexutil.Decode(ensure0x(hexKey))
	if err != nil {
		return nil, errors.Wrap(err, "secp256k1: decode private key")
	}
	k := &Secp256k1PrivateKey{}
	if err := k.Unmarshal(raw); err != nil {
		return nil, err
	}
	return k, nil
}

// Sign signs a 32 byte digest and returns a [R || S || V] signature with V in {27, 28}
func (k *Secp256k1PrivateKey) Sign(digest []byte) ([]byte, error) {
	if len(digest) != ethcommon.HashLength {
		return nil, ErrInvalidHashLength
	}
	sig, err := ethcrypto.Sign(digest, k.PrivateKey)
	if err != nil {
		return nil, errors.Wrap(err, "secp256k1: sign")
	}
	sig[64] += recoveryIDOffset
	return sig, nil
}

func (k *Secp256k1PrivateKey) Address() ethcommon.Address {
	return ethcrypto.PubkeyToAddress(k.PrivateKey.PublicKey)
}

func (k *Secp256k1PrivateKey) Type() string {
	return KeyTypeSecp256k1
}

func (k *Secp256k1PrivateKey) String() string {
	return hexutil.Encode(ethcrypto.FromECDSA(k.PrivateKey))
}

func (k *Secp256k1PrivateKey) Marshal() ([]byte, error) {
	return ethcrypto.FromECDSA(k.PrivateKey), nil
}

func (k *Secp256k1PrivateKey) Unmarshal(raw []byte) error {
	if IsZeroBytes(raw) {
		return errors.New("secp256k1: private key is zero")
	}
	key, err := ethcrypto.ToECDSA(raw)
	if err != nil {
		return errors.Wrap(err, "secp256k1: bad private key")
	}
	k.PrivateKey = key
	return nil
}

func (k *Secp256k1PrivateKey) PublicKey() *Secp256k1PublicKey {
	return &Secp256k1PublicKey{PublicKey: &k.PrivateKey.PublicKey}
}

type Secp256k1PublicKey struct {
	PublicKey *ecdsa.PublicKey
}

func (p *Secp256k1PublicKey) Address() ethcommon.Address {
	return ethcrypto.PubkeyToAddress(*p.PublicKey)
}

func (p *Secp256k1PublicKey) Type() string {
	return KeyTypeSecp256k1
}

func (p *Secp256k1PublicKey) String() string {
	return hexutil.Encode(ethcrypto.CompressPubkey(p.PublicKey))
}

func (p *Secp256k1PublicKey) Marshal() ([]byte, error) {
	return ethcrypto.CompressPubkey(p.PublicKey), nil
}

func (p *Secp256k1PublicKey) Unmarshal(raw []byte) error {
	pub, err := ethcrypto.DecompressPubkey(raw)
	if err != nil {
		return errors.Wrap(err, "secp256k1: bad public key")
	}
	p.PublicKey = pub
	return nil
}

// RecoverAddress returns the address whose key produced sig over digest.
// sig is [R || S || V], V may be 0/1 or 27/28. Malleable signatures with
// s in the upper half of the curve order are rejected.
func RecoverAddress(digest []byte, sig []byte) (ethcommon.Address, error) {
	if len(digest) != ethcommon.HashLength {
		return ethcommon.Address{}, ErrInvalidHashLength
	}
	if len(sig) != SignatureLength {
		return ethcommon.Address{}, ErrInvalidSignatureLength
	}

	v := sig[64]
	if v >= recoveryIDOffset {
		v -= recoveryIDOffset
	}
	if v > 1 {
		return ethcommon.Address{}, ErrInvalidRecoveryID
	}
	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:64])
	if !ethcrypto.ValidateSignatureValues(v, r, s, true) {
		return ethcommon.Address{}, ErrInvalidSignatureValues
	}

	normalized := make([]byte, SignatureLength)
	copy(normalized, sig[:64])
	normalized[64] = v
	pub, err := ethcrypto.SigToPub(digest, normalized)
	if err != nil {
		return ethcommon.Address{}, errors.Wrap(err, "secp256k1: recover public key")
	}
	return ethcrypto.PubkeyToAddress(*pub), nil
}

// RecoverSigner is RecoverAddress restricted to V in {27, 28}, the form ecrecover accepts
func RecoverSigner(digest []byte, sig []byte) (ethcommon.Address, error) {
	if len(sig) == SignatureLength && sig[64] < recoveryIDOffset {
		return ethcommon.Address{}, ErrInvalidRecoveryID
	}
	return RecoverAddress(digest, sig)
}

// JoinSignature packs the (v, r, s) triple used by ABI callers into [R || S || V]
func JoinSignature(v uint8, r, s [32]byte) []byte {
	sig := make([]byte, 0, SignatureLength)
	sig = append(sig, r[:]...)
	sig = append(sig, s[:]...)
	return append(sig, v)
}

// SplitSignature is the inverse of JoinSignature
func SplitSignature(sig []byte) (v uint8, r, s [32]byte, err error) {
	if len(sig) != SignatureLength {
		return 0, r, s, ErrInvalidSignatureLength
	}
	copy(r[:], sig[:32])
	copy(s[:], sig[32:64])
	return sig[64], r, s, nil
}

func ensure0x(s string) string {
	if len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X") {
		return s
	}
	return "0x" + s
}
