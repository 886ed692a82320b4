package funding

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/qjawe/broker/internal/conv"
	"github.com/qjawe/broker/internal/db"
	"github.com/qjawe/broker/internal/engine"
	"github.com/qjawe/broker/internal/exchange"
	"github.com/qjawe/broker/internal/logger"
	"github.com/qjawe/broker/internal/market"
	"github.com/qjawe/broker/internal/relayer"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var log *zap.SugaredLogger

func init() {
	log = logger.Logger.Named("funding")
}

// CommitRequest asks the broker to commit a balance to a market. Balance is
// a decimal string in the common unit of Symbol, which must be one of the
// market's two legs.
type CommitRequest struct {
	Balance string
	Symbol  string
	Market  string
}

// EmptyResponse is the successful result of a commit. The resulting channel
// pair is tracked by the engines and the relayer, not by the broker.
type EmptyResponse struct{}

// Coordinator drives the two-sided channel creation behind a commit: it
// validates the request, applies the balance policy, opens the outbound
// channel on the local engine and asks the relayer for the matching inbound
// channel on the inverse asset's ledger. It holds no locks and no channel
// registry; idempotency is re-derived from fresh engine reads on every call.
type Coordinator struct {
	relayer   relayer.PaymentChannelNetworkService
	engines   *engine.Registry
	markets   *market.Registry
	converter exchange.Converter
	policy    *Policy
	journal   db.Commits
}

func NewCoordinator(
	relayer relayer.PaymentChannelNetworkService,
	engines *engine.Registry,
	markets *market.Registry,
	converter exchange.Converter,
	policy *Policy,
	journal db.Commits,
) *Coordinator {
	if journal == nil {
		journal = &db.NoopCommits{}
	}

	return &Coordinator{
		relayer:   relayer,
		engines:   engines,
		markets:   markets,
		converter: converter,
		policy:    policy,
		journal:   journal,
	}
}

// Commit either opens both channels or fails with a classified *Error. A
// failure after the outbound channel was opened is flagged partial and left
// for operator reconciliation; there is no automatic rollback.
func (c *Coordinator) Commit(ctx context.Context, req *CommitRequest) (*EmptyResponse, error) {
	log.Infow("received commit request",
		"balance", req.Balance,
		"symbol", req.Symbol,
		"market", req.Market,
	)

	attemptId := uuid.NewString()

	if err := c.journal.RecordAttempt(&db.CommitAttempt{
		ID:        attemptId,
		Market:    req.Market,
		Symbol:    req.Symbol,
		Balance:   req.Balance,
		CreatedAt: time.Now(),
	}); err != nil {
		log.Errorw("failed to journal commit attempt", "err", err.Error())
	}

	mkt, ok := c.markets.Get(req.Market)

	if !ok {
		return nil, c.reject(attemptId, newError(CodeInvalidMarket, fmt.Sprintf(
			"%s is not being tracked as a market.", req.Market)))
	}

	localEngine, ok := c.engines.Get(req.Symbol)

	if !ok {
		return nil, c.reject(attemptId, newError(CodeUnconfiguredEngine, fmt.Sprintf(
			"No engine is configured for symbol: %s", req.Symbol)))
	}

	inverseSymbol, err := mkt.InverseSymbol(req.Symbol)

	if err != nil {
		return nil, c.reject(attemptId, wrapError(CodeInvalidMarket, fmt.Sprintf(
			"%s is not part of the %s market.", req.Symbol, req.Market), err))
	}

	inverseEngine, ok := c.engines.Get(inverseSymbol)

	if !ok {
		return nil, c.reject(attemptId, newError(CodeUnconfiguredEngine, fmt.Sprintf(
			"No engine is configured for symbol: %s", inverseSymbol)))
	}

	balanceCommon, err := decimal.NewFromString(req.Balance)

	if err != nil {
		return nil, c.reject(attemptId, wrapError(CodeInvalidBalance, fmt.Sprintf(
			"Balance %s is not a valid decimal amount.", req.Balance), err))
	}

	baseUnits, err := conv.CommonToBaseUnits(req.Balance, localEngine.QuantumsPerCommon())

	if err != nil {
		return nil, c.reject(attemptId, wrapError(CodeInvalidBalance, fmt.Sprintf(
			"Balance %s is not a whole number of %s base units.", req.Balance, req.Symbol), err))
	}

	if policyErr := c.policy.ValidateBounds(req.Balance, balanceCommon, baseUnits, localEngine, inverseEngine); policyErr != nil {
		return nil, c.reject(attemptId, policyErr)
	}

	inboundBalance, err := c.converter.ConvertBalance(baseUnits, req.Symbol, inverseSymbol)

	if err != nil {
		return nil, c.reject(attemptId, wrapError(CodeFundingError, fmt.Sprintf(
			"Funding error: unable to convert %s to %s.", req.Symbol, inverseSymbol), err))
	}

	if policyErr := c.policy.ValidateCapacity(ctx, req.Balance, baseUnits, inboundBalance, localEngine, inverseEngine); policyErr != nil {
		return nil, c.reject(attemptId, policyErr)
	}

	address, err := c.relayer.GetAddress(ctx, req.Symbol)

	if err != nil {
		return nil, c.reject(attemptId, wrapError(CodeRelayerError,
			"Unable to retrieve an address from the relayer.", err))
	}

	log.Infow("opening outbound channel",
		"symbol", req.Symbol,
		"address", address,
		"baseUnits", baseUnits.String(),
	)

	if err := localEngine.CreateChannel(ctx, address, baseUnits); err != nil {
		return nil, c.reject(attemptId, wrapError(CodeFundingError,
			"Funding error: could not create outbound channel.", err))
	}

	counterpartyAddress, err := inverseEngine.GetPaymentChannelNetworkAddress(ctx)

	if err != nil {
		return nil, c.reject(attemptId, partialError(CodeRelayerError, fmt.Sprintf(
			"Outbound channel was opened, but the %s address lookup failed; the inbound channel was not requested.", inverseSymbol), err))
	}

	log.Infow("requesting inbound channel",
		"symbol", inverseSymbol,
		"address", counterpartyAddress,
		"balance", inboundBalance.String(),
	)

	if err := c.relayer.CreateChannel(ctx, counterpartyAddress, inboundBalance, inverseSymbol); err != nil {
		return nil, c.reject(attemptId, partialError(CodeRelayerError, fmt.Sprintf(
			"Outbound channel was opened, but the relayer failed to open the inbound %s channel.", inverseSymbol), err))
	}

	if err := c.journal.MarkCommitted(attemptId); err != nil {
		log.Errorw("failed to journal committed attempt", "err", err.Error())
	}

	log.Infow("committed balance",
		"balance", req.Balance,
		"symbol", req.Symbol,
		"market", req.Market,
	)

	return &EmptyResponse{}, nil
}

func (c *Coordinator) reject(attemptId string, commitErr *Error) *Error {
	if commitErr.Partial {
		log.Errorw("commit left a one-sided channel open",
			"attemptId", attemptId,
			"code", commitErr.Code.String(),
			"err", commitErr.Message,
		)
	} else {
		log.Infow("commit rejected",
			"attemptId", attemptId,
			"code", commitErr.Code.String(),
			"err", commitErr.Message,
		)
	}

	if err := c.journal.MarkFailed(attemptId, commitErr.Code.String(), commitErr.Partial); err != nil {
		log.Errorw("failed to journal failed attempt", "err", err.Error())
	}

	return commitErr
}
