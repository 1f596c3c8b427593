package main

import (
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/daap-network/daap-ledger/cmd/daap-ledger/common"
	"github.com/daap-network/daap-ledger/pkg/crypto"
	"github.com/daap-network/daap-ledger/pkg/eip712"
	"github.com/daap-network/daap-ledger/pkg/repo"
)

var permitSignArgs = struct {
	Key      string
	Keystore string
	Spender  string
	Value    string
	Nonce    uint64
	Deadline uint64
}{}

var permitCMD = &cli.Command{
	Name:  "permit",
	Usage: "The permit commands",
	Subcommands: []*cli.Command{
		{
			Name:   "sign",
			Usage:  "Sign an approval for the token of the repo genesis",
			Action: signPermitAction,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:        "key",
					Usage:       "Owner private key(hex string)",
					EnvVars:     []string{"DAAP_LEDGER_SIGNER_PRIVATE_KEY"},
					Destination: &permitSignArgs.Key,
					Required:    false,
				},
				&cli.StringFlag{
					Name:        "keystore",
					Usage:       "Owner keystore name under <repo>/keystore, used when --key is empty",
					Destination: &permitSignArgs.Keystore,
					Required:    false,
				},
				common.KeystorePasswordFlag(),
				&cli.StringFlag{
					Name:        "spender",
					Usage:       "Spender address",
					Destination: &permitSignArgs.Spender,
					Required:    true,
				},
				&cli.StringFlag{
					Name:        "value",
					Usage:       "Allowance in the smallest unit",
					Destination: &permitSignArgs.Value,
					Required:    true,
				},
				&cli.Uint64Flag{
					Name:        "nonce",
					Usage:       "Current permit nonce of the owner",
					Destination: &permitSignArgs.Nonce,
					Required:    false,
				},
				&cli.Uint64Flag{
					Name:        "deadline",
					Usage:       "Unix seconds after which the permit expires",
					Destination: &permitSignArgs.Deadline,
					Required:    true,
				},
			},
		},
	},
}

type signedPermit struct {
	Owner     ethcommon.Address `json:"owner"`
	Spender   ethcommon.Address `json:"spender"`
	Value     string            `json:"value"`
	Nonce     uint64            `json:"nonce"`
	Deadline  uint64            `json:"deadline"`
	Digest    ethcommon.Hash    `json:"digest"`
	Signature hexutil.Bytes     `json:"signature"`
	V         uint8             `json:"v"`
	R         ethcommon.Hash    `json:"r"`
	S         ethcommon.Hash    `json:"s"`
}

func signPermitAction(ctx *cli.Context) error {
	r, err := common.PrepareRepo(ctx)
	if err != nil {
		return err
	}

	var key *crypto.Secp256k1PrivateKey
	switch {
	case permitSignArgs.Key != "":
		key, err = crypto.ParseSecp256k1PrivateKey(permitSignArgs.Key)
	case permitSignArgs.Keystore != "":
		var password string
		password, err = common.KeystorePassword(ctx, false)
		if err != nil {
			return err
		}
		key, err = readSignerKey(r.RepoRoot, permitSignArgs.Keystore, password)
	default:
		return errors.New("either --key or --keystore is required")
	}
	if err != nil {
		return err
	}

	value, ok := new(big.Int).SetString(permitSignArgs.Value, 0)
	if !ok {
		return errors.Errorf("invalid value %q", permitSignArgs.Value)
	}
	if !ethcommon.IsHexAddress(permitSignArgs.Spender) {
		return errors.Errorf("invalid spender %q", permitSignArgs.Spender)
	}

	res, err := signPermit(r.GenesisConfig, key, ethcommon.HexToAddress(permitSignArgs.Spender), value, permitSignArgs.Nonce, permitSignArgs.Deadline)
	if err != nil {
		return err
	}
	return common.Pretty(res)
}

// genesisDomain is the permit domain of the token deployed by genesis
func genesisDomain(genesis *repo.GenesisConfig) *eip712.Domain {
	return &eip712.Domain{
		Name:              genesis.Token.Name,
		Version:           genesis.Token.Version,
		ChainID:           new(big.Int).SetUint64(genesis.ChainID),
		VerifyingContract: genesis.ContractAddress(),
	}
}

func signPermit(genesis *repo.GenesisConfig, key *crypto.Secp256k1PrivateKey, spender ethcommon.Address, value *big.Int, nonce uint64, deadline uint64) (*signedPermit, error) {
	digest, err := genesisDomain(genesis).PermitDigest(&eip712.Permit{
		Owner:    key.Address(),
		Spender:  spender,
		Value:    value,
		Nonce:    new(big.Int).SetUint64(nonce),
		Deadline: new(big.Int).SetUint64(deadline),
	})
	if err != nil {
		return nil, err
	}
	sig, err := key.Sign(digest.Bytes())
	if err != nil {
		return nil, errors.Wrap(err, "sign permit digest")
	}
	v, rr, s, err := crypto.SplitSignature(sig)
	if err != nil {
		return nil, err
	}
	return &signedPermit{
		Owner:     key.Address(),
		Spender:   spender,
		Value:     value.String(),
		Nonce:     nonce,
		Deadline:  deadline,
		Digest:    digest,
		Signature: sig,
		V:         v,
		R:         rr,
		S:         s,
	}, nil
}
