package access

import (
	"sort"

	"github.com/ethereum/go-ethereum/accounts/abi"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"golang.org/x/crypto/sha3"

	"github.com/daap-network/daap-ledger/internal/executor/system/common"
	"github.com/daap-network/daap-ledger/pkg/packer"
)

const roleMembersStorageKey = "roleMembers"

// Role identifies a permission set, it is the keccak256 hash of the role name
type Role [32]byte

// RoleID hashes a role name with legacy keccak256
func RoleID(name string) Role {
	var role Role
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(name))
	copy(role[:], h.Sum(nil))
	return role
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return ethcommon.Hash(r).Hex()
}

var (
	// AdminRole may grant and revoke every role and change the fee configuration
	AdminRole  = Role{}
	MinterRole = RoleID("MINTER_ROLE")
	BurnerRole = RoleID("BURNER_ROLE")

	roleNames = map[Role]string{
		AdminRole:  "DEFAULT_ADMIN_ROLE",
		MinterRole: "MINTER_ROLE",
		BurnerRole: "BURNER_ROLE",
	}
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnknownRole  = errors.New("unknown role")
)

// ParseRole accepts a role name or its 32 byte hex hash
func ParseRole(s string) (Role, error) {
	for role, name := range roleNames {
		if name == s {
			return role, nil
		}
	}
	if s == "ADMIN_ROLE" {
		return AdminRole, nil
	}
	raw := ethcommon.FromHex(s)
	if len(raw) != 32 {
		return Role{}, errors.Wrapf(ErrUnknownRole, "%q", s)
	}
	role := Role(ethcommon.BytesToHash(raw))
	if _, ok := roleNames[role]; !ok {
		return Role{}, errors.Wrapf(ErrUnknownRole, "%s", ethcommon.Hash(role).Hex())
	}
	return role, nil
}

type EventRoleGranted struct {
	Role    [32]byte
	Account ethcommon.Address
	Sender  ethcommon.Address
}

func (e *EventRoleGranted) Pack(abi abi.ABI) (*types.Log, error) {
	return packer.PackEvent(e, abi.Events["RoleGranted"])
}

type EventRoleRevoked struct {
	Role    [32]byte
	Account ethcommon.Address
	Sender  ethcommon.Address
}

func (e *EventRoleRevoked) Pack(abi abi.ABI) (*types.Log, error) {
	return packer.PackEvent(e, abi.Events["RoleRevoked"])
}

// AccessControl keeps role membership in the state of the contract that embeds it
type AccessControl struct {
	base    *common.SystemContractBase
	members *common.VMMap[Role, []ethcommon.Address]
}

func New(base *common.SystemContractBase) *AccessControl {
	return &AccessControl{base: base}
}

// Bind must be called after the owning contract received its context
func (ac *AccessControl) Bind() {
	ac.members = common.NewVMMap[Role, []ethcommon.Address](ac.base.StateAccount, roleMembersStorageKey, func(key Role) string {
		return ethcommon.Hash(key).Hex()
	})
}

// GenesisInit grants ADMIN to admin and the other roles to the given accounts without events
func (ac *AccessControl) GenesisInit(admin ethcommon.Address, minters, burners []ethcommon.Address) error {
	if admin == (ethcommon.Address{}) {
		return errors.New("genesis admin must not be zero")
	}
	if err := ac.grant(AdminRole, admin); err != nil {
		return err
	}
	for _, m := range minters {
		if err := ac.grant(MinterRole, m); err != nil {
			return err
		}
	}
	for _, b := range burners {
		if err := ac.grant(BurnerRole, b); err != nil {
			return err
		}
	}
	return nil
}

func (ac *AccessControl) HasRole(role Role, account ethcommon.Address) bool {
	return lo.Contains(ac.GetRoleMembers(role), account)
}

// CheckRole fails with ErrUnauthorized unless the caller holds role
func (ac *AccessControl) CheckRole(role Role) error {
	return ac.checkRole(role, ac.base.Ctx.From)
}

func (ac *AccessControl) checkRole(role Role, account ethcommon.Address) error {
	if !ac.HasRole(role, account) {
		return errors.Wrapf(ErrUnauthorized, "AccessControl: account %s is missing role %s", account.Hex(), ethcommon.Hash(role).Hex())
	}
	return nil
}

// GetRoleMembers returns the members of role sorted by address
func (ac *AccessControl) GetRoleMembers(role Role) []ethcommon.Address {
	if !ac.members.Has(role) {
		return []ethcommon.Address{}
	}
	members, err := ac.members.MustGet(role)
	if err != nil {
		ac.base.Logger.Errorf("read members of role %s failed: %v", ethcommon.Hash(role).Hex(), err)
		return []ethcommon.Address{}
	}
	if members == nil {
		return []ethcommon.Address{}
	}
	return members
}

func (ac *AccessControl) GrantRole(role Role, account ethcommon.Address) error {
	if err := ac.CheckRole(AdminRole); err != nil {
		return err
	}
	if _, ok := roleNames[role]; !ok {
		return errors.Wrapf(ErrUnknownRole, "%s", ethcommon.Hash(role).Hex())
	}
	if ac.HasRole(role, account) {
		return nil
	}
	if err := ac.grant(role, account); err != nil {
		return err
	}
	return ac.base.EmitEvent(&EventRoleGranted{
		Role:    role,
		Account: account,
		Sender:  ac.base.Ctx.From,
	})
}

func (ac *AccessControl) RevokeRole(role Role, account ethcommon.Address) error {
	if err := ac.CheckRole(AdminRole); err != nil {
		return err
	}
	if _, ok := roleNames[role]; !ok {
		return errors.Wrapf(ErrUnknownRole, "%s", ethcommon.Hash(role).Hex())
	}
	return ac.revoke(role, account)
}

// RenounceRole lets the caller drop one of its own roles
func (ac *AccessControl) RenounceRole(role Role, account ethcommon.Address) error {
	if account != ac.base.Ctx.From {
		return errors.Wrap(ErrUnauthorized, "AccessControl: can only renounce roles for self")
	}
	if _, ok := roleNames[role]; !ok {
		return errors.Wrapf(ErrUnknownRole, "%s", ethcommon.Hash(role).Hex())
	}
	return ac.revoke(role, account)
}

func (ac *AccessControl) grant(role Role, account ethcommon.Address) error {
	members := ac.GetRoleMembers(role)
	if lo.Contains(members, account) {
		return nil
	}
	members = append(members, account)
	sort.Slice(members, func(i, j int) bool {
		return members[i].Cmp(members[j]) < 0
	})
	return ac.members.Put(role, members)
}

func (ac *AccessControl) revoke(role Role, account ethcommon.Address) error {
	members := ac.GetRoleMembers(role)
	if !lo.Contains(members, account) {
		return nil
	}
	// the last member leaves no entry behind
	if remaining := lo.Without(members, account); len(remaining) > 0 {
		if err := ac.members.Put(role, remaining); err != nil {
			return err
		}
	} else {
		ac.members.Delete(role)
	}
	return ac.base.EmitEvent(&EventRoleRevoked{
		Role:    role,
		Account: account,
		Sender:  ac.base.Ctx.From,
	})
}
