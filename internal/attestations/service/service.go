package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sirupsen/logrus"

	"github.com/vibe-directory/vibe-backend/internal/attestations/domain"
	"github.com/vibe-directory/vibe-backend/internal/attestations/repository"
)

var viewArgs = func() abi.Arguments {
	str, err := abi.NewType("string", "", nil)
	if err != nil {
		panic(err)
	}
	return abi.Arguments{{Type: str}, {Type: str}}
}()

type Service struct {
	repo repository.Repository
	log  logrus.FieldLogger
	now  func() time.Time
}

func NewService(repo repository.Repository, log logrus.FieldLogger) *Service {
	return &Service{repo: repo, log: log, now: time.Now}
}

// AttestView records a self-attestation that address viewed projectID.
func (s *Service) AttestView(ctx context.Context, address, projectID string) (*domain.Attestation, error) {
	if !common.IsHexAddress(address) {
		return nil, domain.ErrInvalidAddress
	}
	addr := common.HexToAddress(address).Hex()

	data, err := viewArgs.Pack(addr, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to encode attestation: %w", err)
	}

	ts := s.now().UnixMilli()
	a := domain.Attestation{
		ID:        fmt.Sprintf("%s-%s-%d", addr, projectID, ts),
		Schema:    domain.ViewSchemaUID,
		Attester:  addr,
		Recipient: addr,
		ProjectID: projectID,
		Data:      hexutil.Encode(data),
		Timestamp: ts,
	}
	if err := s.repo.Append(ctx, a); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"attester": addr, "project_id": projectID}).Info("attestation created")
	return &a, nil
}

// ForUser summarises the attestations issued by address.
func (s *Service) ForUser(ctx context.Context, address string) (domain.Summary, error) {
	if !common.IsHexAddress(address) {
		return domain.Summary{}, domain.ErrInvalidAddress
	}
	list, err := s.repo.ListByAttester(ctx, common.HexToAddress(address).Hex())
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.Summarize(list), nil
}
