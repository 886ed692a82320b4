package engine

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-errors/errors"
	"github.com/lightningnetwork/lnd/lnrpc"
	"github.com/lightningnetwork/lnd/macaroons"
	"github.com/qjawe/broker/internal/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"gopkg.in/macaroon.v2"
)

var log *zap.SugaredLogger

const rpcTimeout = time.Second * 10

func init() {
	log = logger.Logger.Named("lnd-engine")
}

// LNDConfig describes one lnd node backing one asset's ledger.
type LNDConfig struct {
	Symbol            string
	Host              string
	Port              string
	CertFile          string
	MacaroonFile      string
	PublicHost        string
	QuantumsPerCommon decimal.Decimal
	MaxChannelBalance decimal.Decimal
}

// LND drives payment channels on a single lnd node. The broker runs one per
// asset symbol.
type LND struct {
	client lnrpc.LightningClient
	config *LNDConfig
}

func NewLND(config *LNDConfig) (*LND, error) {
	creds, err := credentials.NewClientTLSFromFile(config.CertFile, "localhost")
	if err != nil {
		return nil, err
	}

	macaroonBytes, err := os.ReadFile(config.MacaroonFile)
	if err != nil {
		return nil, err
	}

	mac := &macaroon.Macaroon{}
	if err = mac.UnmarshalBinary(macaroonBytes); err != nil {
		return nil, err
	}

	macCreds, err := macaroons.NewMacaroonCredential(mac)
	if err != nil {
		return nil, err
	}

	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(creds),
		grpc.WithBlock(),
		grpc.WithPerRPCCredentials(macCreds),
	}

	conn, err := grpc.Dial(fmt.Sprintf("%s:%s", config.Host, config.Port), opts...)
	if err != nil {
		return nil, err
	}

	return &LND{
		client: lnrpc.NewLightningClient(conn),
		config: config,
	}, nil
}

func (l *LND) Symbol() string {
	return l.config.Symbol
}

func (l *LND) QuantumsPerCommon() decimal.Decimal {
	return l.config.QuantumsPerCommon
}

func (l *LND) MaxChannelBalance() decimal.Decimal {
	return l.config.MaxChannelBalance
}

func (l *LND) CreateChannel(ctx context.Context, address string, baseUnits decimal.Decimal) error {
	pubkey, host, err := splitNetworkAddress(address)
	if err != nil {
		return err
	}

	if err := l.connectPeer(ctx, pubkey, host); err != nil {
		return err
	}

	if !baseUnits.IsInteger() {
		return errors.New("channel balance must be a whole number of base units")
	}

	log.Infow("opening channel",
		"symbol", l.config.Symbol,
		"pubkey", pubkey,
		"baseUnits", baseUnits.String(),
	)

	ctx, cancel := context.WithTimeout(ctx, rpcTimeout)
	defer cancel()
	_, err = l.client.OpenChannelSync(ctx, &lnrpc.OpenChannelRequest{
		NodePubkeyString:   pubkey,
		LocalFundingAmount: baseUnits.IntPart(),
	})
	return err
}

func (l *LND) GetMaxChannel(ctx context.Context) (decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, rpcTimeout)
	defer cancel()
	res, err := l.client.ListChannels(ctx, &lnrpc.ListChannelsRequest{})
	if err != nil {
		return decimal.Zero, err
	}

	max := decimal.Zero
	for _, channel := range res.Channels {
		capacity := decimal.NewFromInt(channel.Capacity)
		if capacity.GreaterThan(max) {
			max = capacity
		}
	}

	return max, nil
}

func (l *LND) GetPaymentChannelNetworkAddress(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, rpcTimeout)
	defer cancel()
	info, err := l.client.GetInfo(ctx, &lnrpc.GetInfoRequest{})
	if err != nil {
		return "", err
	}

	return info.IdentityPubkey + "@" + l.config.PublicHost, nil
}

func (l *LND) connectPeer(ctx context.Context, pubkey string, host string) error {
	hasPeer, err := l.hasPeer(ctx, pubkey)
	if err != nil {
		return err
	}

	if hasPeer {
		log.Infow("already connected to peer", "pubkey", pubkey)
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, rpcTimeout)
	defer cancel()
	req := &lnrpc.ConnectPeerRequest{
		Addr: &lnrpc.LightningAddress{
			Pubkey: pubkey,
			Host:   host,
		},
		Perm: true,
	}

	_, err = l.client.ConnectPeer(ctx, req)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(time.Second * 1)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			hasPeer, err := l.hasPeer(ctx, pubkey)
			if err != nil {
				return err
			}

			if hasPeer {
				return nil
			}
		case <-ctx.Done():
			return errors.New("peer connection timed out")
		}
	}
}

func (l *LND) hasPeer(ctx context.Context, pubkey string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, rpcTimeout)
	defer cancel()
	res, err := l.client.ListPeers(ctx, &lnrpc.ListPeersRequest{})
	if err != nil {
		return false, err
	}

	for _, peer := range res.Peers {
		if peer.PubKey == pubkey {
			return true, nil
		}
	}

	return false, nil
}

// splitNetworkAddress splits a "pubkey@host" payment channel network address.
func splitNetworkAddress(address string) (string, string, error) {
	parts := strings.SplitN(address, "@", 2)

	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", errors.New("mal-formed payment channel network address: " + address)
	}

	return parts[0], parts[1], nil
}
