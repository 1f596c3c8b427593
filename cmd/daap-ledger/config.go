package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/daap-network/daap-ledger/cmd/daap-ledger/common"
	"github.com/daap-network/daap-ledger/pkg/repo"
)

var configGenerateForceVar bool

var configCMD = &cli.Command{
	Name:  "config",
	Usage: "The config manage commands",
	Subcommands: []*cli.Command{
		{
			Name:   "generate",
			Usage:  "Generate default config and genesis",
			Action: generate,
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:        "force",
					Aliases:     []string{"f"},
					Usage:       "Overwrite an existing repo",
					Destination: &configGenerateForceVar,
					Required:    false,
				},
			},
		},
		{
			Name:   "show",
			Usage:  "Show the complete config processed by the environment variable",
			Action: show,
		},
		{
			Name:   "show-genesis",
			Usage:  "Show the complete genesis config processed by the environment variable",
			Action: showGenesis,
		},
		{
			Name:   "check",
			Usage:  "Check if the config file is valid",
			Action: check,
		},
	},
}

func generate(ctx *cli.Context) error {
	p, err := common.GetRootPath(ctx)
	if err != nil {
		return err
	}
	if common.ExistRepo(p) && !configGenerateForceVar {
		fmt.Println("daap-ledger repo already exists")
		return nil
	}

	if err := os.MkdirAll(p, 0755); err != nil {
		return err
	}
	if err := repo.Default(p).Flush(); err != nil {
		return err
	}
	fmt.Printf("config successfully generated in %s\n", p)
	return nil
}

func show(ctx *cli.Context) error {
	r, err := loadRepo(ctx)
	if err != nil || r == nil {
		return err
	}
	str, err := repo.MarshalConfig(r.Config)
	if err != nil {
		return err
	}
	fmt.Println(str)
	return nil
}

func showGenesis(ctx *cli.Context) error {
	r, err := loadRepo(ctx)
	if err != nil || r == nil {
		return err
	}
	str, err := repo.MarshalConfig(r.GenesisConfig)
	if err != nil {
		return err
	}
	fmt.Println(str)
	return nil
}

func check(ctx *cli.Context) error {
	r, err := loadRepo(ctx)
	if err != nil {
		fmt.Println("config file format error, please check:", err)
		os.Exit(1)
		return nil
	}
	if r == nil {
		return nil
	}
	if err := r.GenesisConfig.Validate(); err != nil {
		fmt.Println("genesis config invalid, please check:", err)
		os.Exit(1)
		return nil
	}
	r.PrintRepoInfo(func(c string) {
		fmt.Println(c)
	})
	return nil
}

// loadRepo returns nil without error when the repo does not exist
func loadRepo(ctx *cli.Context) (*repo.Repo, error) {
	p, err := common.GetRootPath(ctx)
	if err != nil {
		return nil, err
	}
	if !common.ExistRepo(p) {
		fmt.Println("daap-ledger repo not exist")
		return nil, nil
	}
	return repo.Load(p)
}
