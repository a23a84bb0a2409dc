package config

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	crowdsaleconfig "github.com/gaze-network/crowdsale/modules/crowdsale/config"
	"github.com/gaze-network/crowdsale/modules/crowdsale/sale"
	"github.com/gaze-network/crowdsale/pkg/logger"
	"github.com/gaze-network/crowdsale/pkg/logger/slogx"
	"github.com/gaze-network/crowdsale/pkg/middleware/requestcontext"
	"github.com/gaze-network/crowdsale/pkg/middleware/requestlogger"
	"github.com/gaze-network/crowdsale/pkg/reportingclient"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	isInit bool
	mu     sync.Mutex
	config = &Config{
		Logger: logger.Config{
			Output: "TEXT",
		},
		HTTPServer: HTTPServerConfig{
			Port: 8080,
		},
		Modules: Modules{
			Crowdsale: crowdsaleconfig.Config{
				Database:      "postgres",
				APIHandlers:   []string{"http"},
				TokenDecimals: sale.DefaultTokenDecimals,
				FundDecimals:  sale.DefaultTokenDecimals,
				Sale: crowdsaleconfig.SaleConfig{
					PercentRate: sale.DefaultPercentRate,
				},
			},
		},
	}
)

type Config struct {
	Logger     logger.Config          `mapstructure:"logger"`
	HTTPServer HTTPServerConfig       `mapstructure:"http_server"`
	Reporting  reportingclient.Config `mapstructure:"reporting"`
	Modules    Modules                `mapstructure:"modules"`
}

type Modules struct {
	Crowdsale crowdsaleconfig.Config `mapstructure:"crowdsale"`
}

type HTTPServerConfig struct {
	Port         int                               `mapstructure:"port"`
	Logger       requestlogger.Config              `mapstructure:"logger"`
	RequestIP    requestcontext.WithClientIPConfig `mapstructure:"request_ip"`
	CallerHeader string                            `mapstructure:"caller_header"` // Header carrying the acting account. Default is X-Caller
}

// Parse parse the configuration from environment variables and the config file.
// configFile is optional, config.yaml in the working directory is used when empty.
func Parse(configFile ...string) Config {
	mu.Lock()
	defer mu.Unlock()
	return parse(configFile...)
}

func parse(configFile ...string) Config {
	ctx := logger.WithContext(context.Background(), slog.String("package", "config"))

	if len(configFile) > 0 && configFile[0] != "" {
		viper.SetConfigFile(configFile[0])
	} else {
		viper.AddConfigPath("./")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := viper.ReadInConfig(); err != nil {
		var errNotfound viper.ConfigFileNotFoundError
		if errors.As(err, &errNotfound) {
			logger.WarnContext(ctx, "Config file not found, use default config value", slogx.Error(err))
		} else {
			logger.PanicContext(ctx, "Invalid config file", slogx.Error(err))
		}
	}

	if err := viper.Unmarshal(&config); err != nil {
		logger.PanicContext(ctx, "Something went wrong, failed to unmarshal config", slogx.Error(err))
	}

	isInit = true
	return *config
}

// Load returns the parsed configuration, parsing it with defaults on first use.
func Load() Config {
	mu.Lock()
	defer mu.Unlock()
	if !isInit {
		return parse()
	}
	return *config
}

// BindPFlag binds a specific key to a pflag (as used by cobra).
func BindPFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		logger.Panic("Something went wrong, failed to bind flag for config", slog.String("package", "config"), slogx.Error(err))
	}
}
