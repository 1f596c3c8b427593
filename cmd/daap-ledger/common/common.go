package common

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/daap-network/daap-ledger/pkg/loggers"
	"github.com/daap-network/daap-ledger/pkg/repo"
)

var KeystorePasswordFlagVar string

func KeystorePasswordFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "password",
		Usage:       "Keystore password",
		EnvVars:     []string{"DAAP_LEDGER_KEYSTORE_PASSWORD"},
		Destination: &KeystorePasswordFlagVar,
		Aliases:     []string{"pwd"},
		Required:    false,
	}
}

func EnterPassword(needConfirm bool) (string, error) {
	fmt.Println("enter a password for keystore(will use default if input empty):")
	passwordBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", errors.Wrap(err, "can not read password")
	}
	password := strings.ReplaceAll(string(passwordBytes), "\n", "")
	if needConfirm {
		fmt.Println("please re-enter password for keystore:")
		passwordBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return "", errors.Wrap(err, "can not read password")
		}
		confirmedPassword := strings.ReplaceAll(string(passwordBytes), "\n", "")
		if password != confirmedPassword {
			fmt.Println("passwords did not match, please try again")
			return EnterPassword(true)
		}
	}
	return password, nil
}

// KeystorePassword returns the password flag when set, otherwise asks on the terminal
func KeystorePassword(ctx *cli.Context, needConfirm bool) (string, error) {
	password := KeystorePasswordFlagVar
	if !ctx.IsSet(KeystorePasswordFlag().Name) {
		var err error
		password, err = EnterPassword(needConfirm)
		if err != nil {
			return "", err
		}
	}
	if password == "" {
		password = repo.DefaultKeystorePassword
		fmt.Println("keystore password is empty, will use default")
	}
	return password, nil
}

func Pretty(d any) error {
	res, err := json.MarshalIndent(d, "", "\t")
	if err != nil {
		return err
	}
	fmt.Println(string(res))
	return nil
}

func GetRootPath(ctx *cli.Context) (string, error) {
	return repo.LoadRepoRootFromEnv(ctx.String("repo"))
}

func ExistRepo(p string) bool {
	_, err := os.Stat(filepath.Join(p, repo.CfgFileName))
	return err == nil
}

// PrepareRepo loads an existing repo and initializes the module loggers from it
func PrepareRepo(ctx *cli.Context) (*repo.Repo, error) {
	p, err := GetRootPath(ctx)
	if err != nil {
		return nil, err
	}
	if !ExistRepo(p) {
		return nil, errors.Errorf("daap-ledger repo not exist in %s, run `config generate` first", p)
	}

	r, err := repo.Load(p)
	if err != nil {
		return nil, err
	}
	if err := loggers.Initialize(r, false); err != nil {
		return nil, err
	}
	return r, nil
}
