package token

import (
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/daap-network/daap-ledger/internal/executor/system/access"
)

func (d *DAAP) vestingGateEnabled() bool {
	_, enabled, err := d.vestingEnabled.Get()
	if err != nil {
		d.Logger.Errorf("read vesting switch failed: %v", err)
	}
	return enabled
}

func (d *DAAP) ReleaseTime(account ethcommon.Address) *big.Int {
	return d.releaseTimes.Get(account).ToBig()
}

// IsUnlockedAt reports whether account may spend at the given block time.
// An account without a schedule is always unlocked.
func (d *DAAP) IsUnlockedAt(account ethcommon.Address, now uint64) bool {
	if !d.vestingGateEnabled() {
		return true
	}
	releaseTime := d.releaseTimes.Get(account)
	if !releaseTime.IsUint64() {
		return false
	}
	return now >= releaseTime.Uint64()
}

func (d *DAAP) IsUnlocked(account ethcommon.Address) bool {
	return d.IsUnlockedAt(account, d.Ctx.Timestamp)
}

func (d *DAAP) SetReleaseTime(account ethcommon.Address, releaseTime *big.Int) error {
	return d.nonReentrant(func() error {
		if err := d.CheckRole(access.AdminRole); err != nil {
			return err
		}
		if account == (ethcommon.Address{}) {
			return errors.Wrap(ErrZeroAddress, "vesting account")
		}
		if releaseTime == nil || releaseTime.Sign() < 0 {
			return errors.Wrap(ErrUnderflow, "release time")
		}
		if !releaseTime.IsUint64() {
			return errors.Wrapf(ErrOverflow, "release time %s", releaseTime)
		}
		d.releaseTimes.Put(account, uint256.NewInt(releaseTime.Uint64()))
		return d.EmitEvent(&EventReleaseTimeUpdated{
			Account:     account,
			ReleaseTime: new(big.Int).Set(releaseTime),
		})
	})
}
