package token

import (
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	daapcrypto "github.com/daap-network/daap-ledger/pkg/crypto"
	"github.com/daap-network/daap-ledger/pkg/eip712"
)

// Domain is the EIP-712 domain permits for this deployment are signed under
func (d *DAAP) Domain() *eip712.Domain {
	meta := d.getMetadata()
	return &eip712.Domain{
		Name:              meta.Name,
		Version:           meta.Version,
		ChainID:           new(big.Int).SetUint64(meta.ChainID),
		VerifyingContract: d.Address,
	}
}

func (d *DAAP) DomainSeparator() [32]byte {
	separator, err := d.Domain().Separator()
	if err != nil {
		d.Logger.Errorf("compute domain separator failed: %v", err)
	}
	return separator
}

func (d *DAAP) Nonces(owner ethcommon.Address) *big.Int {
	return d.nonces.Get(owner).ToBig()
}

func (d *DAAP) Permit(owner, spender ethcommon.Address, value, deadline *big.Int, v uint8, r, s [32]byte) error {
	return d.PermitWithSignature(owner, spender, value, deadline, daapcrypto.JoinSignature(v, r, s))
}

// PermitWithSignature sets the allowance of spender over owner's tokens from an off-chain EIP-712 signature.
// The nonce of owner is consumed together with the allowance write.
func (d *DAAP) PermitWithSignature(owner, spender ethcommon.Address, value, deadline *big.Int, signature []byte) error {
	return d.nonReentrant(func() error {
		if deadline == nil || deadline.Sign() < 0 {
			return errors.Wrap(ErrExpired, "negative deadline")
		}
		if deadline.IsUint64() && d.Ctx.Timestamp > deadline.Uint64() {
			return errors.Wrapf(ErrExpired, "deadline %s, now %d", deadline, d.Ctx.Timestamp)
		}
		amount, err := toAmount(value)
		if err != nil {
			return err
		}

		nonce := d.nonces.Get(owner)
		digest, err := d.Domain().PermitDigest(&eip712.Permit{
			Owner:    owner,
			Spender:  spender,
			Value:    amount.ToBig(),
			Nonce:    nonce.ToBig(),
			Deadline: deadline,
		})
		if err != nil {
			return errors.Wrap(ErrInvalidSignature, err.Error())
		}

		signer, err := daapcrypto.RecoverSigner(digest.Bytes(), signature)
		if err != nil {
			return errors.Wrap(ErrInvalidSignature, err.Error())
		}
		if signer == (ethcommon.Address{}) || signer != owner {
			return errors.Wrapf(ErrInvalidSignature, "recovered signer %s, expected %s", signer, owner)
		}

		next, overflow := new(uint256.Int).AddOverflow(nonce, uint256.NewInt(1))
		if overflow {
			return errors.Wrapf(ErrOverflow, "nonce of %s", owner)
		}
		if spender == (ethcommon.Address{}) {
			return errors.Wrap(ErrZeroAddress, "approve to the zero address")
		}

		d.nonces.Put(owner, next)
		return d.approve(owner, spender, amount)
	})
}
