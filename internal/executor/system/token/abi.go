package token

import (
	_ "embed"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/daap-network/daap-ledger/internal/executor/system/access"
)

//go:embed sol/DAAP.abi
var DAAPABIJson string

var DAAPABI = lo.Must(abi.JSON(strings.NewReader(DAAPABIJson)))

// Method2Sig maps every abi method to its canonical signature
var Method2Sig = lo.MapValues(DAAPABI.Methods, func(m abi.Method, _ string) string {
	return m.Sig
})

var ErrUnknownMethod = errors.New("unknown method of DAAP contract")

// Pack abi encodes a call of method with already typed args
func Pack(method string, args ...any) ([]byte, error) {
	if _, ok := DAAPABI.Methods[method]; !ok {
		return nil, errors.Wrapf(ErrUnknownMethod, "%s", method)
	}
	return DAAPABI.Pack(method, args...)
}

// EncodeCall parses human readable arguments by the abi input types of method and packs the call.
// Amounts are decimal or 0x hex, roles may be given by name.
func EncodeCall(method string, rawArgs []string) ([]byte, error) {
	m, ok := DAAPABI.Methods[method]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownMethod, "%s", method)
	}
	if len(rawArgs) != len(m.Inputs) {
		return nil, errors.Errorf("method %s expects %d args, got %d", m.Sig, len(m.Inputs), len(rawArgs))
	}
	args := make([]any, 0, len(rawArgs))
	for i, input := range m.Inputs {
		arg, err := parseArg(input.Type, rawArgs[i])
		if err != nil {
			return nil, errors.Wrapf(err, "arg %s of %s", input.Name, m.Sig)
		}
		args = append(args, arg)
	}
	return DAAPABI.Pack(method, args...)
}

// DecodeReturn unpacks the return data of method
func DecodeReturn(method string, ret []byte) ([]any, error) {
	m, ok := DAAPABI.Methods[method]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownMethod, "%s", method)
	}
	return m.Outputs.Unpack(ret)
}

// MethodByID resolves the method name from the 4 byte selector of data
func MethodByID(data []byte) (string, error) {
	if len(data) < 4 {
		return "", errors.Wrap(ErrUnknownMethod, "calldata shorter than a selector")
	}
	m, err := DAAPABI.MethodById(data[:4])
	if err != nil {
		return "", errors.Wrap(ErrUnknownMethod, err.Error())
	}
	return m.Name, nil
}

func parseArg(typ abi.Type, raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	switch typ.T {
	case abi.AddressTy:
		if !ethcommon.IsHexAddress(raw) {
			return nil, errors.Errorf("invalid address %q", raw)
		}
		return ethcommon.HexToAddress(raw), nil
	case abi.UintTy:
		v, err := parseUint(raw)
		if err != nil {
			return nil, err
		}
		if v.BitLen() > typ.Size {
			return nil, errors.Errorf("%s exceeds uint%d", raw, typ.Size)
		}
		if typ.Size == 8 {
			return uint8(v.Uint64()), nil
		}
		return v.ToBig(), nil
	case abi.FixedBytesTy:
		if typ.Size != 32 {
			return nil, errors.Errorf("unsupported fixed bytes size %d", typ.Size)
		}
		if !strings.HasPrefix(raw, "0x") {
			role, err := access.ParseRole(raw)
			if err != nil {
				return nil, err
			}
			return [32]byte(role), nil
		}
		b, err := hexutil.Decode(raw)
		if err != nil {
			return nil, err
		}
		if len(b) != 32 {
			return nil, errors.Errorf("expect 32 bytes, got %d", len(b))
		}
		return [32]byte(ethcommon.BytesToHash(b)), nil
	case abi.BytesTy:
		return hexutil.Decode(raw)
	case abi.StringTy:
		return raw, nil
	default:
		return nil, errors.Errorf("unsupported abi type %s", typ.String())
	}
}

func parseUint(raw string) (*uint256.Int, error) {
	v, ok := new(big.Int), false
	if strings.HasPrefix(raw, "0x") {
		v, ok = v.SetString(raw[2:], 16)
	} else {
		v, ok = v.SetString(raw, 10)
	}
	if !ok || v.Sign() < 0 {
		return nil, errors.Errorf("invalid unsigned integer %q", raw)
	}
	u, overflow := uint256.FromBig(v)
	if overflow {
		return nil, errors.Wrapf(ErrOverflow, "%s", raw)
	}
	return u, nil
}
