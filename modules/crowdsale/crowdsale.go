package crowdsale

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/crowdsale/common/errs"
	"github.com/gaze-network/crowdsale/internal/config"
	"github.com/gaze-network/crowdsale/internal/postgres"
	crowdsaleapi "github.com/gaze-network/crowdsale/modules/crowdsale/api"
	crowdsaleconfig "github.com/gaze-network/crowdsale/modules/crowdsale/config"
	"github.com/gaze-network/crowdsale/modules/crowdsale/datagateway"
	"github.com/gaze-network/crowdsale/modules/crowdsale/export"
	"github.com/gaze-network/crowdsale/modules/crowdsale/reporter"
	crowdsaleleveldb "github.com/gaze-network/crowdsale/modules/crowdsale/repository/leveldb"
	crowdsalepostgres "github.com/gaze-network/crowdsale/modules/crowdsale/repository/postgres"
	"github.com/gaze-network/crowdsale/modules/crowdsale/sale"
	"github.com/gaze-network/crowdsale/modules/crowdsale/usecase"
	"github.com/gaze-network/crowdsale/pkg/decimals"
	"github.com/gaze-network/crowdsale/pkg/logger"
	"github.com/gaze-network/crowdsale/pkg/logger/slogx"
	"github.com/gaze-network/crowdsale/pkg/reportingclient"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/do/v2"
	"github.com/samber/lo"
	goleveldb "github.com/syndtr/goleveldb/leveldb"
)

const Version = "v0.1.0"

// Crowdsale is a running sale: its coordinator, the storage behind it and the
// exporter reading from that storage.
type Crowdsale struct {
	Usecase     *usecase.Usecase
	DataGateway datagateway.CrowdsaleDataGateway
	Exporter    *export.Exporter

	cleanupFuncs []func(context.Context) error
}

// Open connects to the configured storage and creates the coordinator. It does not seed the sale.
func Open(ctx context.Context, conf crowdsaleconfig.Config, opts ...usecase.Option) (*Crowdsale, error) {
	identity, err := Identity(conf)
	if err != nil {
		return nil, errors.Wrap(err, "invalid crowdsale identity")
	}

	c := &Crowdsale{}
	switch strings.ToLower(conf.Database) {
	case "postgresql", "postgres", "pg":
		pg, err := postgres.NewPool(ctx, conf.Postgres)
		if err != nil {
			if errors.Is(err, errs.InvalidArgument) {
				return nil, errors.Wrap(err, "Invalid Postgres configuration for crowdsale")
			}
			return nil, errors.Wrap(err, "can't create Postgres connection pool")
		}
		c.cleanupFuncs = append(c.cleanupFuncs, func(ctx context.Context) error {
			pg.Close()
			return nil
		})
		c.DataGateway = crowdsalepostgres.NewRepository(pg)
	case "leveldb":
		var db *goleveldb.DB
		switch {
		case conf.LevelDB.InMemory:
			db, err = crowdsaleleveldb.OpenMemory()
		case conf.LevelDB.Path == "":
			return nil, errors.Wrap(errs.InvalidArgument, "leveldb.path is required")
		default:
			db, err = crowdsaleleveldb.Open(conf.LevelDB.Path)
		}
		if err != nil {
			return nil, errors.Wrap(err, "can't open leveldb")
		}
		c.cleanupFuncs = append(c.cleanupFuncs, func(ctx context.Context) error {
			return errors.WithStack(db.Close())
		})
		c.DataGateway = crowdsaleleveldb.NewRepository(db)
	default:
		return nil, errors.Wrapf(errs.Unsupported, "%q database for crowdsale is not supported", conf.Database)
	}

	c.Usecase = usecase.New(c.DataGateway, identity, opts...)
	c.Exporter = export.New(c.DataGateway, conf.TokenDecimals, conf.Export)
	return c, nil
}

// New creates the crowdsale module from the injector: it opens storage, seeds an
// empty sale from config and mounts the enabled API handlers.
func New(injector do.Injector) (*Crowdsale, error) {
	ctx := do.MustInvoke[context.Context](injector)
	conf := do.MustInvoke[config.Config](injector)
	crowdsaleConf := conf.Modules.Crowdsale
	reportingClient := do.MustInvoke[*reportingclient.ReportingClient](injector)

	var opts []usecase.Option
	if reportingClient != nil {
		saleAddress := ethcommon.HexToAddress(crowdsaleConf.SaleAddress)
		opts = append(opts, usecase.WithReporter(reporter.New(reportingClient, saleAddress)))
	}

	c, err := Open(ctx, crowdsaleConf, opts...)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	seed, err := Seed(crowdsaleConf)
	if err != nil {
		_ = c.Shutdown(ctx)
		return nil, errors.Wrap(err, "invalid sale seed")
	}
	seeded, err := c.Usecase.Bootstrap(ctx, seed)
	if err != nil {
		_ = c.Shutdown(ctx)
		return nil, errors.Wrap(err, "can't bootstrap sale")
	}
	if seeded {
		logger.InfoContext(ctx, "Seeded sale from configuration", slogx.Time("start", seed.Config.Start))
	}

	for _, handler := range lo.Uniq(crowdsaleConf.APIHandlers) {
		switch handler {
		case "http":
			httpServer := do.MustInvoke[*fiber.App](injector)
			crowdsaleHTTPHandler := crowdsaleapi.NewHTTPHandler(c.Usecase, crowdsaleConf.TokenDecimals)
			if err := crowdsaleHTTPHandler.Mount(httpServer); err != nil {
				_ = c.Shutdown(ctx)
				return nil, errors.Wrap(err, "can't mount Crowdsale API")
			}
			logger.InfoContext(ctx, "Mounted HTTP handler")
		default:
			_ = c.Shutdown(ctx)
			return nil, errors.Wrapf(errs.Unsupported, "%q API handler is not supported", handler)
		}
	}

	if reportingClient != nil {
		if err := reportingClient.SubmitNodeReport(ctx, "crowdsale", crowdsaleConf.SaleAddress); err != nil {
			logger.WarnContext(ctx, "Failed to submit node report", slogx.Error(err))
		}
	}
	return c, nil
}

// Shutdown releases the storage. It is called by the injector on shutdown.
func (c *Crowdsale) Shutdown(ctx context.Context) error {
	var err error
	for _, cleanup := range c.cleanupFuncs {
		err = errors.CombineErrors(err, cleanup(ctx))
	}
	c.cleanupFuncs = nil
	return errors.WithStack(err)
}

func parseAddress(name, value string) (ethcommon.Address, error) {
	if !ethcommon.IsHexAddress(value) {
		return ethcommon.Address{}, errors.Wrapf(errs.InvalidArgument, "%s: %q is not a valid address", name, value)
	}
	return ethcommon.HexToAddress(value), nil
}

func Identity(conf crowdsaleconfig.Config) (usecase.Identity, error) {
	owner, err := parseAddress("owner", conf.Owner)
	if err != nil {
		return usecase.Identity{}, errors.WithStack(err)
	}
	saleAddress, err := parseAddress("sale_address", conf.SaleAddress)
	if err != nil {
		return usecase.Identity{}, errors.WithStack(err)
	}
	tokenAddress, err := parseAddress("token_address", conf.TokenAddress)
	if err != nil {
		return usecase.Identity{}, errors.WithStack(err)
	}
	oneTokenUnit, err := sale.TokenUnit(conf.TokenDecimals)
	if err != nil {
		return usecase.Identity{}, errors.Wrap(err, "token_decimals")
	}
	return usecase.Identity{
		Owner:        owner,
		SaleAddress:  saleAddress,
		TokenAddress: tokenAddress,
		OneTokenUnit: oneTokenUnit,
	}, nil
}

func Seed(conf crowdsaleconfig.Config) (usecase.Seed, error) {
	s := conf.Sale
	start, err := time.Parse(time.RFC3339, s.Start)
	if err != nil {
		return usecase.Seed{}, errors.Wrapf(errs.InvalidArgument, "sale.start: %v", err)
	}
	hardCap, err := decimals.ParseUint128(s.HardCap, conf.FundDecimals)
	if err != nil {
		return usecase.Seed{}, errors.Wrap(err, "sale.hard_cap")
	}
	price, err := decimals.ParseUint128(s.Price, conf.FundDecimals)
	if err != nil {
		return usecase.Seed{}, errors.Wrap(err, "sale.price")
	}

	wallets := make([]ethcommon.Address, 4)
	for i, w := range []struct{ name, value string }{
		{"sale.second_wallet", s.SecondWallet},
		{"sale.multisig_wallet", s.MultisigWallet},
		{"sale.founders_tokens_wallet", s.FoundersTokensWallet},
		{"sale.bounty_tokens_wallet", s.BountyTokensWallet},
	} {
		if wallets[i], err = parseAddress(w.name, w.value); err != nil {
			return usecase.Seed{}, errors.WithStack(err)
		}
	}

	tiers := make([]sale.BonusTier, 0, len(conf.Bonuses))
	for i, b := range conf.Bonuses {
		limit, err := decimals.ParseUint128(b.Limit, conf.FundDecimals)
		if err != nil {
			return usecase.Seed{}, errors.Wrapf(err, "bonuses[%d].limit", i)
		}
		tiers = append(tiers, sale.BonusTier{Limit: limit, BonusPercent: b.BonusPercent})
	}

	return usecase.Seed{
		Config: sale.SaleConfig{
			Start:                 start,
			PeriodDays:            s.PeriodDays,
			HardCap:               hardCap,
			Price:                 price,
			PercentRate:           s.PercentRate,
			SecondWalletPercent:   s.SecondWalletPercent,
			FoundersTokensPercent: s.FoundersTokensPercent,
			BountyTokensPercent:   s.BountyTokensPercent,
			SecondWallet:          wallets[0],
			MultisigWallet:        wallets[1],
			FoundersTokensWallet:  wallets[2],
			BountyTokensWallet:    wallets[3],
		},
		BonusTiers: tiers,
	}, nil
}
