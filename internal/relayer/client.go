package relayer

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/go-errors/errors"
	"github.com/gorilla/rpc/json"
	"github.com/qjawe/broker/internal/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var log *zap.SugaredLogger

func init() {
	log = logger.Logger.Named("relayer")
}

// PaymentChannelNetworkService is the broker's view of the relayer: the
// shared counterparty service that reports its payment channel network
// address per asset and opens inbound channels on the broker's behalf.
type PaymentChannelNetworkService interface {
	GetAddress(ctx context.Context, symbol string) (string, error)
	CreateChannel(ctx context.Context, address string, balance decimal.Decimal, symbol string) error
}

// Client talks JSON-RPC to a relayer node.
type Client struct {
	url  string
	http *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		url: url,
		http: &http.Client{
			Timeout: time.Second * 30,
		},
	}
}

type GetAddressArgs struct {
	Symbol string
}

type GetAddressReply struct {
	Address string
}

func (c *Client) GetAddress(ctx context.Context, symbol string) (string, error) {
	args := &GetAddressArgs{Symbol: symbol}
	reply := &GetAddressReply{}

	if err := c.call(ctx, "PaymentChannelNetworkService.GetAddress", args, reply); err != nil {
		return "", err
	}

	if reply.Address == "" {
		return "", errors.New("relayer returned an empty address for symbol " + symbol)
	}

	return reply.Address, nil
}

type CreateChannelArgs struct {
	Address string
	Balance string
	Symbol  string
}

type CreateChannelReply struct {
	Status string
}

func (c *Client) CreateChannel(ctx context.Context, address string, balance decimal.Decimal, symbol string) error {
	args := &CreateChannelArgs{
		Address: address,
		Balance: balance.String(),
		Symbol:  symbol,
	}

	log.Infow("requesting inbound channel from relayer",
		"address", address,
		"balance", args.Balance,
		"symbol", symbol,
	)

	return c.call(ctx, "PaymentChannelNetworkService.CreateChannel", args, &CreateChannelReply{})
}

func (c *Client) call(ctx context.Context, method string, args interface{}, reply interface{}) error {
	body, err := json.EncodeClientRequest(method, args)

	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))

	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)

	if err != nil {
		return err
	}

	defer res.Body.Close()

	// gorilla's json codec reports method errors with a 400 status and the
	// error message in the response body
	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusBadRequest {
		return errors.New("relayer returned HTTP status " + res.Status)
	}

	return json.DecodeClientResponse(res.Body, reply)
}
