package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	application "rgbfaucet/contexts/asset-distribution/faucet-service/application"
	"rgbfaucet/contexts/asset-distribution/faucet-service/domain/entities"
	domainerrors "rgbfaucet/contexts/asset-distribution/faucet-service/domain/errors"
	"rgbfaucet/contexts/asset-distribution/faucet-service/ports"
)

// Store is an in-memory request repository for local runtime and tests.
// It is not intended as production persistence.
type Store struct {
	mu       sync.RWMutex
	requests map[int64]entities.DistributionRequest
	sequence int64
	logger   *slog.Logger
}

func NewStore(logger *slog.Logger) *Store {
	return &Store{
		requests: make(map[int64]entities.DistributionRequest),
		logger:   application.ResolveLogger(logger),
	}
}

func (s *Store) CreateWithinQuota(
	_ context.Context,
	request entities.DistributionRequest,
	maxAllowed int,
) (entities.DistributionRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// One critical section covers the quota read, the duplicate check, and
	// the insert; concurrent admissions serialize here.
	consumed := 0
	for _, existing := range s.requests {
		if existing.Status == entities.RequestStatusFailed {
			continue
		}
		if existing.RecipientID == request.RecipientID {
			return entities.DistributionRequest{}, domainerrors.ErrDuplicateRecipient
		}
		if existing.WalletID == request.WalletID && existing.AssetGroup == request.AssetGroup {
			consumed++
		}
	}
	if consumed >= maxAllowed {
		return entities.DistributionRequest{}, domainerrors.ErrQuotaExceeded
	}

	s.sequence++
	request.ID = s.sequence
	if request.CreatedAt.IsZero() {
		request.CreatedAt = time.Now().UTC()
	}
	request.UpdatedAt = request.CreatedAt
	s.requests[request.ID] = request

	s.logger.Debug("request persisted in memory store",
		"event", "memory_create_request",
		"module", "asset-distribution/faucet-service",
		"layer", "adapter",
		"request_id", request.ID,
		"wallet_id", request.WalletID,
		"asset_group", request.AssetGroup,
	)
	return request, nil
}

func (s *Store) List(_ context.Context, filter ports.RequestFilter) ([]entities.DistributionRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]entities.DistributionRequest, 0)
	for _, request := range s.requests {
		if filter.Status != "" && request.Status != filter.Status {
			continue
		}
		if filter.AssetGroup != "" && request.AssetGroup != filter.AssetGroup {
			continue
		}
		if filter.AssetID != "" && request.AssetID != filter.AssetID {
			continue
		}
		if filter.RecipientID != "" && request.RecipientID != filter.RecipientID {
			continue
		}
		if filter.WalletID != "" && request.WalletID != filter.WalletID {
			continue
		}
		matched = append(matched, request)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})
	return matched, nil
}

func (s *Store) UpdateStatus(_ context.Context, ids []int64, status entities.RequestStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate the whole set before mutating anything so the transition is
	// atomic: a reader never observes half a batch moved.
	for _, id := range ids {
		request, ok := s.requests[id]
		if !ok {
			return domainerrors.ErrRequestNotFound
		}
		if !request.Status.CanTransitionTo(status) {
			return domainerrors.ErrInvalidStatusTransition
		}
	}

	now := time.Now().UTC()
	for _, id := range ids {
		request := s.requests[id]
		request.Status = status
		request.UpdatedAt = now
		s.requests[id] = request
	}
	return nil
}

func (s *Store) MarkSent(_ context.Context, ids []int64, txid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		request, ok := s.requests[id]
		if !ok {
			return domainerrors.ErrRequestNotFound
		}
		if !request.Status.CanTransitionTo(entities.RequestStatusSent) {
			return domainerrors.ErrInvalidStatusTransition
		}
	}

	now := time.Now().UTC()
	for _, id := range ids {
		request := s.requests[id]
		request.Status = entities.RequestStatusSent
		request.TxID = txid
		request.UpdatedAt = now
		s.requests[id] = request
	}
	return nil
}

func (s *Store) CountByWalletAndGroup(
	_ context.Context,
	walletID, assetGroup string,
	exclude []entities.RequestStatus,
) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	excluded := make(map[entities.RequestStatus]struct{}, len(exclude))
	for _, status := range exclude {
		excluded[status] = struct{}{}
	}
	count := 0
	for _, request := range s.requests {
		if request.WalletID != walletID || request.AssetGroup != assetGroup {
			continue
		}
		if _, skip := excluded[request.Status]; skip {
			continue
		}
		count++
	}
	return count, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

// Seed inserts a request row directly, bypassing admission checks. Test
// support only.
func (s *Store) Seed(request entities.DistributionRequest) entities.DistributionRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sequence++
	request.ID = s.sequence
	if request.CreatedAt.IsZero() {
		request.CreatedAt = time.Now().UTC()
	}
	if request.UpdatedAt.IsZero() {
		request.UpdatedAt = request.CreatedAt
	}
	s.requests[request.ID] = request
	return request
}

// Get returns one request by ID. Test support only.
func (s *Store) Get(id int64) (entities.DistributionRequest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	request, ok := s.requests[id]
	return request, ok
}

var _ ports.RequestRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
