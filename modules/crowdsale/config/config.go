package config

import (
	"github.com/gaze-network/crowdsale/internal/postgres"
	"github.com/gaze-network/crowdsale/modules/crowdsale/export"
)

type Config struct {
	Database    string          `mapstructure:"database"` // Database to store sale data. `postgres` | `leveldb`
	Postgres    postgres.Config `mapstructure:"postgres"`
	LevelDB     LevelDBConfig   `mapstructure:"leveldb"`
	APIHandlers []string        `mapstructure:"api_handlers"` // List of API handlers to enable. (e.g. `http`)

	Owner        string `mapstructure:"owner"`
	SaleAddress  string `mapstructure:"sale_address"`
	TokenAddress string `mapstructure:"token_address"`

	// TokenDecimals is the number of decimals of the sale token.
	TokenDecimals uint8 `mapstructure:"token_decimals"`
	// FundDecimals is the number of decimals of the contributed currency. Amounts in
	// Sale and Bonuses are written in whole units of it, e.g. "1.5".
	FundDecimals uint8 `mapstructure:"fund_decimals"`

	// Sale and Bonuses seed an empty storage on start. They are ignored once the sale exists.
	Sale    SaleConfig    `mapstructure:"sale"`
	Bonuses []BonusConfig `mapstructure:"bonuses"`

	Export export.Config `mapstructure:"export"`
}

type LevelDBConfig struct {
	Path     string `mapstructure:"path"`
	InMemory bool   `mapstructure:"in_memory"` // Data is lost on exit. For development only.
}

type SaleConfig struct {
	Start                 string `mapstructure:"start"` // RFC3339
	PeriodDays            uint64 `mapstructure:"period_days"`
	HardCap               string `mapstructure:"hard_cap"`
	Price                 string `mapstructure:"price"` // Contributed currency per whole token
	PercentRate           uint64 `mapstructure:"percent_rate"`
	SecondWalletPercent   uint64 `mapstructure:"second_wallet_percent"`
	FoundersTokensPercent uint64 `mapstructure:"founders_tokens_percent"`
	BountyTokensPercent   uint64 `mapstructure:"bounty_tokens_percent"`
	SecondWallet          string `mapstructure:"second_wallet"`
	MultisigWallet        string `mapstructure:"multisig_wallet"`
	FoundersTokensWallet  string `mapstructure:"founders_tokens_wallet"`
	BountyTokensWallet    string `mapstructure:"bounty_tokens_wallet"`
}

type BonusConfig struct {
	Limit        string `mapstructure:"limit"`
	BonusPercent uint64 `mapstructure:"bonus_percent"`
}
