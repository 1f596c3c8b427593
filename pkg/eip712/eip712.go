package eip712

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/pkg/errors"
)

const (
	DomainType = "EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)"
	PermitType = "Permit(address owner,address spender,uint256 value,uint256 nonce,uint256 deadline)"

	PermitPrimaryType = "Permit"
)

var (
	DomainTypeHash = crypto.Keccak256Hash([]byte(DomainType))
	PermitTypeHash = crypto.Keccak256Hash([]byte(PermitType))

	ErrNegativeValue = errors.New("eip712: negative uint256 value")
	ErrValueTooLarge = errors.New("eip712: value exceeds uint256")
)

// Domain binds a signed message to one token deployment
type Domain struct {
	Name              string
	Version           string
	ChainID           *big.Int
	VerifyingContract common.Address
}

// Permit is the EIP-2612 approval message. It is never persisted.
type Permit struct {
	Owner    common.Address
	Spender  common.Address
	Value    *big.Int
	Nonce    *big.Int
	Deadline *big.Int
}

// Separator returns hashStruct(EIP712Domain)
func (d *Domain) Separator() (common.Hash, error) {
	chainID, err := word(d.ChainID)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "chain id")
	}
	return crypto.Keccak256Hash(
		DomainTypeHash.Bytes(),
		crypto.Keccak256([]byte(d.Name)),
		crypto.Keccak256([]byte(d.Version)),
		chainID,
		addressWord(d.VerifyingContract),
	), nil
}

// StructHash returns hashStruct(Permit)
func (p *Permit) StructHash() (common.Hash, error) {
	value, err := word(p.Value)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "value")
	}
	nonce, err := word(p.Nonce)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "nonce")
	}
	deadline, err := word(p.Deadline)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "deadline")
	}
	return crypto.Keccak256Hash(
		PermitTypeHash.Bytes(),
		addressWord(p.Owner),
		addressWord(p.Spender),
		value,
		nonce,
		deadline,
	), nil
}

// TypedDataHash returns keccak256("\x19\x01" ‖ domainSeparator ‖ structHash)
func TypedDataHash(domainSeparator common.Hash, structHash common.Hash) common.Hash {
	return crypto.Keccak256Hash([]byte{0x19, 0x01}, domainSeparator.Bytes(), structHash.Bytes())
}

// PermitDigest is the 32 byte digest the owner signs
func (d *Domain) PermitDigest(p *Permit) (common.Hash, error) {
	separator, err := d.Separator()
	if err != nil {
		return common.Hash{}, err
	}
	structHash, err := p.StructHash()
	if err != nil {
		return common.Hash{}, err
	}
	return TypedDataHash(separator, structHash), nil
}

// TypedData renders the permit in the eth_signTypedData_v4 layout wallets expect
func (d *Domain) TypedData(p *Permit) apitypes.TypedData {
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": []apitypes.Type{
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			PermitPrimaryType: []apitypes.Type{
				{Name: "owner", Type: "address"},
				{Name: "spender", Type: "address"},
				{Name: "value", Type: "uint256"},
				{Name: "nonce", Type: "uint256"},
				{Name: "deadline", Type: "uint256"},
			},
		},
		PrimaryType: PermitPrimaryType,
		Domain: apitypes.TypedDataDomain{
			Name:              d.Name,
			Version:           d.Version,
			ChainId:           (*math.HexOrDecimal256)(orZero(d.ChainID)),
			VerifyingContract: d.VerifyingContract.Hex(),
		},
		Message: apitypes.TypedDataMessage{
			"owner":    p.Owner.Hex(),
			"spender":  p.Spender.Hex(),
			"value":    orZero(p.Value).String(),
			"nonce":    orZero(p.Nonce).String(),
			"deadline": orZero(p.Deadline).String(),
		},
	}
}

func word(v *big.Int) ([]byte, error) {
	if v == nil {
		return make([]byte, 32), nil
	}
	if v.Sign() < 0 {
		return nil, ErrNegativeValue
	}
	if v.BitLen() > 256 {
		return nil, ErrValueTooLarge
	}
	return math.U256Bytes(new(big.Int).Set(v)), nil
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}

func addressWord(addr common.Address) []byte {
	return common.LeftPadBytes(addr.Bytes(), 32)
}
