package api

import (
	"context"
	"net/http"

	"github.com/qjawe/broker/internal/funding"
	"github.com/qjawe/broker/internal/logger"
	"go.uber.org/zap"
)

var wsLog *zap.SugaredLogger

func init() {
	wsLog = logger.Logger.Named("wallet-service")
}

// Committer is the commitment entry point the wallet service fronts.
type Committer interface {
	Commit(ctx context.Context, req *funding.CommitRequest) (*funding.EmptyResponse, error)
}

type WalletService struct {
	committer Committer
}

func NewWalletService(committer Committer) *WalletService {
	return &WalletService{
		committer: committer,
	}
}

type CommitArgs struct {
	Balance string
	Symbol  string
	Market  string
}

type CommitReply struct {
	Status string
}

// Commit funds a channel pair for the given market. The reply is empty on
// success; failures surface as the classified error's message.
func (w *WalletService) Commit(r *http.Request, args *CommitArgs, reply *CommitReply) error {
	wsLog.Infow("received commit request",
		"balance", args.Balance,
		"symbol", args.Symbol,
		"market", args.Market,
	)

	_, err := w.committer.Commit(r.Context(), &funding.CommitRequest{
		Balance: args.Balance,
		Symbol:  args.Symbol,
		Market:  args.Market,
	})

	if err != nil {
		return err
	}

	reply.Status = StatusOk
	return nil
}
