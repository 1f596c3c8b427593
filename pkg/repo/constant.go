package repo

const (
	AppName = "DaapLedger"

	// CfgFileName is the default config name
	CfgFileName = "config.toml"

	genesisCfgFileName = "genesis.toml"

	// defaultRepoRoot is the path to the default config dir location.
	defaultRepoRoot = "~/.daap-ledger"

	// rootPathEnvVar is the environment variable used to change the path root.
	rootPathEnvVar = "DAAP_LEDGER_PATH"

	envPrefix        = "DAAP_LEDGER"
	genesisEnvPrefix = "DAAP_LEDGER_GENESIS"

	LogsDirName = "logs"

	KeystoreDirName = "keystore"

	DefaultKeystorePassword = "2023@daap"
)

const (
	DefaultTokenName     = "DAAP"
	DefaultTokenSymbol   = "DAAP"
	DefaultTokenDecimals = 18
	DefaultTokenVersion  = "1"
	DefaultChainID       = 1337

	DefaultTransferFeePercentage = 1

	// DefaultTokenContractAddress is where the token contract state lives
	DefaultTokenContractAddress = "0x0000000000000000000000000000000000001010"
)

var (
	// DefaultAccountKeys are the well known development keys, index 0 is the genesis admin
	DefaultAccountKeys = []string{
		"0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80",
		"0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d",
		"0x5de4111afa1a4b94908f83103eb1f1706367c2e68ca870fc3fb9a804cdab365a",
		"0x7c852118294e51e653712a81e05800f419141751be58f605c371e15141b007a6",
	}

	DefaultAccountAddrs = []string{
		"0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		"0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
		"0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC",
		"0x90F79bf6EB2c4f870365E785982E1f101E93b906",
	}

	// 1 million DAAP with 18 decimals
	DefaultAdminBalance = "1000000000000000000000000"
)
