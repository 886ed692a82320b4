package internal

import (
	"strings"

	"github.com/qjawe/broker/internal/api"
	"github.com/qjawe/broker/internal/db"
	"github.com/qjawe/broker/internal/engine"
	"github.com/qjawe/broker/internal/exchange"
	"github.com/qjawe/broker/internal/funding"
	"github.com/qjawe/broker/internal/logger"
	"github.com/qjawe/broker/internal/market"
	"github.com/qjawe/broker/internal/relayer"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var log *zap.SugaredLogger

func init() {
	log = logger.Logger.Named("start")
}

func Start() {
	relayerUrl := stringFlag("relayer-url")

	if relayerUrl == "" {
		log.Panic("no relayer URL configured")
	}

	engines := engine.NewRegistry()

	for symbol := range viper.GetStringMap("engines") {
		sub := viper.Sub("engines." + symbol)

		if sub == nil {
			log.Panicw("missing engine configuration", "symbol", symbol)
		}

		quantums, err := decimal.NewFromString(sub.GetString("quantums-per-common"))

		if err != nil {
			log.Panicw("mal-formed quantums-per-common", "symbol", symbol, "err", err.Error())
		}

		maxBalance, err := decimal.NewFromString(sub.GetString("max-channel-balance"))

		if err != nil {
			log.Panicw("mal-formed max-channel-balance", "symbol", symbol, "err", err.Error())
		}

		lnd, err := engine.NewLND(&engine.LNDConfig{
			Symbol:            strings.ToUpper(symbol),
			Host:              sub.GetString("host"),
			Port:              sub.GetString("port"),
			CertFile:          sub.GetString("cert-file"),
			MacaroonFile:      sub.GetString("macaroon-file"),
			PublicHost:        sub.GetString("public-host"),
			QuantumsPerCommon: quantums,
			MaxChannelBalance: maxBalance,
		})

		if err != nil {
			log.Panicw("failed to connect engine", "symbol", symbol, "err", err.Error())
		}

		engines.Add(lnd)
	}

	if len(engines.Symbols()) == 0 {
		log.Panic("no engines configured")
	}

	markets := market.NewRegistry()

	for _, name := range viper.GetStringSlice("markets") {
		mkt, err := market.Parse(name)

		if err != nil {
			log.Panicw("mal-formed market", "market", name, "err", err.Error())
		}

		markets.Track(mkt)
	}

	rates := exchange.NewRateTable()

	for pair, rate := range viper.GetStringMapString("rates") {
		mkt, err := market.Parse(strings.ToUpper(pair))

		if err != nil {
			log.Panicw("mal-formed rate pair", "pair", pair, "err", err.Error())
		}

		rateDec, err := decimal.NewFromString(rate)

		if err != nil {
			log.Panicw("mal-formed rate", "pair", pair, "err", err.Error())
		}

		if err := rates.SetRate(mkt.BaseSymbol, mkt.CounterSymbol, rateDec); err != nil {
			log.Panicw("failed to set rate", "pair", pair, "err", err.Error())
		}
	}

	var journal db.Commits

	databaseUrl := stringFlag("database-url")

	if databaseUrl == "" {
		log.Info("no database configured, commit attempts will not be journaled")
		journal = &db.NoopCommits{}
	} else {
		database, err := db.NewDB(databaseUrl)

		if err != nil {
			log.Panicw("failed to open database connection", "err", err.Error())
		}

		if err := database.Connect(); err != nil {
			log.Panicw("failed to connect to the database", "err", err.Error())
		}

		journal = database.Commits
	}

	minFunding := stringFlag("min-funding-balance")

	if minFunding == "" {
		minFunding = funding.DefaultMinFundingBalance
	}

	minFundingDec, err := decimal.NewFromString(minFunding)

	if err != nil {
		log.Panicw("mal-formed min-funding-balance", "err", err.Error())
	}

	coordinator := funding.NewCoordinator(
		relayer.NewClient(relayerUrl),
		engines,
		markets,
		rates,
		funding.NewPolicy(minFundingDec),
		journal,
	)

	container := &api.ServiceContainer{
		WalletService: api.NewWalletService(coordinator),
		AdminService:  api.NewAdminService(rates, markets),
	}

	go (func() {
		api.Start(container, stringFlag("rpc-ip"), stringFlag("rpc-port"))
	})()

	log.Infow("started",
		"engines", engines.Symbols(),
		"markets", markets.Names(),
	)

	select {}
}

func stringFlag(name string) string {
	return viper.GetString(name)
}
