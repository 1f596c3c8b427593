package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/daap-network/daap-ledger/cmd/daap-ledger/common"
	"github.com/daap-network/daap-ledger/pkg/crypto"
	"github.com/daap-network/daap-ledger/pkg/repo"
)

var (
	keystoreNameFlagVar       string
	keystorePrivateKeyFlagVar string
)

func keystoreNameFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "name",
		Usage:       "Keystore file name under <repo>/keystore",
		Value:       "signer",
		Destination: &keystoreNameFlagVar,
		Required:    false,
	}
}

var keystoreCMD = &cli.Command{
	Name:  "keystore",
	Usage: "The permit signer keystore manage commands",
	Subcommands: []*cli.Command{
		{
			Name:   "new",
			Usage:  "Generate a secp256k1 signer keystore",
			Action: newKeystore,
			Flags: []cli.Flag{
				keystoreNameFlag(),
				common.KeystorePasswordFlag(),
				&cli.StringFlag{
					Name:        "private-key",
					Usage:       "Signer private key(hex string), if not specified, generate a new one",
					Destination: &keystorePrivateKeyFlagVar,
					EnvVars:     []string{"DAAP_LEDGER_SIGNER_PRIVATE_KEY"},
					Required:    false,
				},
			},
		},
		{
			Name:   "address",
			Usage:  "Show the address of a signer keystore",
			Action: showKeystoreAddress,
			Flags: []cli.Flag{
				keystoreNameFlag(),
			},
		},
	},
}

func newKeystore(ctx *cli.Context) error {
	p, err := common.GetRootPath(ctx)
	if err != nil {
		return err
	}
	if !common.ExistRepo(p) {
		fmt.Println("daap-ledger repo not exist")
		return nil
	}

	password, err := common.KeystorePassword(ctx, true)
	if err != nil {
		return err
	}

	ks, err := writeSignerKeystore(p, keystoreNameFlagVar, keystorePrivateKeyFlagVar, password)
	if err != nil {
		return err
	}
	fmt.Printf("keystore %s generated, address: %s\n", ks.Path, ks.Address)
	return nil
}

func writeSignerKeystore(repoRoot string, name string, privateKey string, password string) (*crypto.Secp256k1Keystore, error) {
	var key *crypto.Secp256k1PrivateKey
	var err error
	if privateKey == "" {
		key, err = crypto.GenerateSecp256k1PrivateKey()
	} else {
		key, err = crypto.ParseSecp256k1PrivateKey(privateKey)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare signer key")
	}

	r := &repo.Repo{RepoRoot: repoRoot}
	path := r.KeystorePath(name)
	if _, err := os.Stat(path); err == nil {
		return nil, errors.Errorf("keystore %s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	ks := crypto.NewSecp256k1Keystore(path, key, password, "permit signer")
	if err := ks.Write(); err != nil {
		return nil, err
	}
	return ks, nil
}

func readSignerKey(repoRoot string, name string, password string) (*crypto.Secp256k1PrivateKey, error) {
	r := &repo.Repo{RepoRoot: repoRoot}
	ks, err := crypto.ReadKeystore[*crypto.Secp256k1PrivateKey, *crypto.Secp256k1PublicKey](r.KeystorePath(name))
	if err != nil {
		return nil, err
	}
	if err := ks.DecryptPrivateKey(password); err != nil {
		return nil, err
	}
	return ks.PrivateKey, nil
}

func showKeystoreAddress(ctx *cli.Context) error {
	p, err := common.GetRootPath(ctx)
	if err != nil {
		return err
	}
	r := &repo.Repo{RepoRoot: p}
	info, err := crypto.ReadKeystoreInfo(r.KeystorePath(keystoreNameFlagVar))
	if err != nil {
		return err
	}
	fmt.Println(info.Address)
	return nil
}
