package api

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/qjawe/broker/internal/funding"
	"github.com/stretchr/testify/assert"
)

type stubCommitter struct {
	err  error
	reqs []*funding.CommitRequest
}

func (s *stubCommitter) Commit(ctx context.Context, req *funding.CommitRequest) (*funding.EmptyResponse, error) {
	s.reqs = append(s.reqs, req)

	if s.err != nil {
		return nil, s.err
	}

	return &funding.EmptyResponse{}, nil
}

func TestWalletService_Commit(t *testing.T) {
	committer := &stubCommitter{}
	service := NewWalletService(committer)

	args := &CommitArgs{
		Balance: "0.10000000",
		Symbol:  "BTC",
		Market:  "BTC/LTC",
	}
	reply := &CommitReply{}

	err := service.Commit(httptest.NewRequest("POST", "/rpc", nil), args, reply)

	assert.Nil(t, err)
	assert.Equal(t, StatusOk, reply.Status)
	assert.Len(t, committer.reqs, 1)
	assert.Equal(t, "0.10000000", committer.reqs[0].Balance)
	assert.Equal(t, "BTC", committer.reqs[0].Symbol)
	assert.Equal(t, "BTC/LTC", committer.reqs[0].Market)
}

func TestWalletService_CommitSurfacesClassifiedError(t *testing.T) {
	commitErr := &funding.Error{
		Code:    funding.CodeInvalidMarket,
		Message: "BTC/BAD is not being tracked as a market.",
	}
	committer := &stubCommitter{err: commitErr}
	service := NewWalletService(committer)

	args := &CommitArgs{
		Balance: "0.10000000",
		Symbol:  "BTC",
		Market:  "BTC/BAD",
	}
	reply := &CommitReply{}

	err := service.Commit(httptest.NewRequest("POST", "/rpc", nil), args, reply)

	assert.Equal(t, commitErr, err)
	assert.Empty(t, reply.Status)
}
