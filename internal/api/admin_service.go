package api

import (
	"net/http"

	"github.com/qjawe/broker/internal/exchange"
	"github.com/qjawe/broker/internal/logger"
	"github.com/qjawe/broker/internal/market"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var asLog *zap.SugaredLogger

func init() {
	asLog = logger.Logger.Named("admin-service")
}

type AdminService struct {
	rates   *exchange.RateTable
	markets *market.Registry
}

func NewAdminService(rates *exchange.RateTable, markets *market.Registry) *AdminService {
	return &AdminService{
		rates:   rates,
		markets: markets,
	}
}

type SetRateArgs struct {
	From string
	To   string
	Rate string
}

type SetRateReply struct {
	Status string
}

// SetRate replaces the exchange rate used to size inbound channels.
func (a *AdminService) SetRate(r *http.Request, args *SetRateArgs, reply *SetRateReply) error {
	asLog.Infow("received set rate request",
		"from", args.From,
		"to", args.To,
		"rate", args.Rate,
	)

	rate, err := decimal.NewFromString(args.Rate)

	if err != nil {
		return err
	}

	if err := a.rates.SetRate(args.From, args.To, rate); err != nil {
		return err
	}

	reply.Status = StatusOk
	return nil
}

type ListMarketsArgs struct{}

type ListMarketsReply struct {
	Markets []string
}

func (a *AdminService) ListMarkets(r *http.Request, args *ListMarketsArgs, reply *ListMarketsReply) error {
	reply.Markets = a.markets.Names()
	return nil
}
