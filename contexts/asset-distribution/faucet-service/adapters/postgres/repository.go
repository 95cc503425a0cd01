package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"rgbfaucet/contexts/asset-distribution/faucet-service/domain/entities"
	domainerrors "rgbfaucet/contexts/asset-distribution/faucet-service/domain/errors"
	"rgbfaucet/contexts/asset-distribution/faucet-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

// Migrate creates or updates the faucet_requests table.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&requestModel{})
}

func (r *Repository) CreateWithinQuota(
	ctx context.Context,
	request entities.DistributionRequest,
	maxAllowed int,
) (entities.DistributionRequest, error) {
	row := requestModelFromEntity(request)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serialize concurrent admissions for the same wallet/group pair so
		// two of them cannot both observe the last free quota slot.
		if err := tx.Exec(
			"SELECT pg_advisory_xact_lock(hashtext(? || ':' || ?))",
			row.WalletID, row.AssetGroup,
		).Error; err != nil {
			return err
		}

		var consumed int64
		if err := tx.Model(&requestModel{}).
			Where("wallet_id = ?", row.WalletID).
			Where("asset_group = ?", row.AssetGroup).
			Where("status <> ?", string(entities.RequestStatusFailed)).
			Count(&consumed).Error; err != nil {
			return err
		}
		if consumed >= int64(maxAllowed) {
			return domainerrors.ErrQuotaExceeded
		}

		var duplicates int64
		if err := tx.Model(&requestModel{}).
			Where("recipient_id = ?", row.RecipientID).
			Where("status <> ?", string(entities.RequestStatusFailed)).
			Count(&duplicates).Error; err != nil {
			return err
		}
		if duplicates > 0 {
			return domainerrors.ErrDuplicateRecipient
		}

		return tx.Create(&row).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			// Partial unique index on live recipient IDs backs up the
			// in-transaction check.
			return entities.DistributionRequest{}, domainerrors.ErrDuplicateRecipient
		}
		if errors.Is(err, domainerrors.ErrQuotaExceeded) || errors.Is(err, domainerrors.ErrDuplicateRecipient) {
			return entities.DistributionRequest{}, err
		}
		return entities.DistributionRequest{}, r.logError("faucet_repo_create_request_failed", err,
			"wallet_id", row.WalletID,
			"asset_group", row.AssetGroup,
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) List(ctx context.Context, filter ports.RequestFilter) ([]entities.DistributionRequest, error) {
	query := r.db.WithContext(ctx).Model(&requestModel{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.AssetGroup != "" {
		query = query.Where("asset_group = ?", filter.AssetGroup)
	}
	if filter.AssetID != "" {
		query = query.Where("asset_id = ?", filter.AssetID)
	}
	if filter.RecipientID != "" {
		query = query.Where("recipient_id = ?", filter.RecipientID)
	}
	if filter.WalletID != "" {
		query = query.Where("wallet_id = ?", filter.WalletID)
	}

	var rows []requestModel
	if err := query.Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, r.logError("faucet_repo_list_requests_failed", err)
	}
	requests := make([]entities.DistributionRequest, 0, len(rows))
	for _, row := range rows {
		requests = append(requests, row.toEntity())
	}
	return requests, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, ids []int64, status entities.RequestStatus) error {
	if len(ids) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).
		Model(&requestModel{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return r.logError("faucet_repo_update_status_failed", result.Error,
			"status", string(status),
		)
	}
	if result.RowsAffected != int64(len(ids)) {
		r.logger.Warn("faucet repository status update touched unexpected row count",
			"event", "faucet_repo_update_status_partial",
			"module", "asset-distribution/faucet-service",
			"layer", "adapter",
			"expected", len(ids),
			"updated", result.RowsAffected,
		)
		return domainerrors.ErrRequestNotFound
	}
	return nil
}

func (r *Repository) MarkSent(ctx context.Context, ids []int64, txid string) error {
	if len(ids) == 0 {
		return nil
	}
	// The status guard and the transaction together make this an atomic
	// claim: any member that is not pending rolls the whole set back.
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&requestModel{}).
			Where("id IN ?", ids).
			Where("status = ?", string(entities.RequestStatusPending)).
			Updates(map[string]any{
				"status":     string(entities.RequestStatusSent),
				"txid":       txid,
				"updated_at": time.Now().UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != int64(len(ids)) {
			r.logger.Warn("faucet repository sent transition touched unexpected row count",
				"event", "faucet_repo_mark_sent_partial",
				"module", "asset-distribution/faucet-service",
				"layer", "adapter",
				"expected", len(ids),
				"updated", result.RowsAffected,
			)
			return domainerrors.ErrRequestNotFound
		}
		return nil
	})
	if err != nil && !errors.Is(err, domainerrors.ErrRequestNotFound) {
		return r.logError("faucet_repo_mark_sent_failed", err,
			"txid", txid,
		)
	}
	return err
}

func (r *Repository) CountByWalletAndGroup(
	ctx context.Context,
	walletID, assetGroup string,
	exclude []entities.RequestStatus,
) (int, error) {
	query := r.db.WithContext(ctx).Model(&requestModel{}).
		Where("wallet_id = ?", strings.TrimSpace(walletID)).
		Where("asset_group = ?", strings.TrimSpace(assetGroup))
	if len(exclude) > 0 {
		statuses := make([]string, 0, len(exclude))
		for _, status := range exclude {
			statuses = append(statuses, string(status))
		}
		query = query.Where("status NOT IN ?", statuses)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, r.logError("faucet_repo_count_failed", err,
			"wallet_id", walletID,
			"asset_group", assetGroup,
		)
	}
	return int(count), nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+7)
	fields = append(fields,
		"event", event,
		"module", "asset-distribution/faucet-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("faucet repository operation failed", fields...)
	return err
}

type requestModel struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	WalletID    string    `gorm:"column:wallet_id;index:idx_faucet_requests_wallet_group"`
	AssetGroup  string    `gorm:"column:asset_group;index:idx_faucet_requests_wallet_group"`
	AssetID     string    `gorm:"column:asset_id;index:idx_faucet_requests_asset_recipient"`
	RecipientID string    `gorm:"column:recipient_id;index:idx_faucet_requests_asset_recipient;uniqueIndex:uniq_faucet_requests_live_recipient,where:status <> 'failed'"`
	Amount      uint64    `gorm:"column:amount"`
	Status      string    `gorm:"column:status;index"`
	TxID        string    `gorm:"column:txid"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (requestModel) TableName() string {
	return "faucet_requests"
}

func requestModelFromEntity(request entities.DistributionRequest) requestModel {
	return requestModel{
		ID:          request.ID,
		WalletID:    strings.TrimSpace(request.WalletID),
		AssetGroup:  strings.TrimSpace(request.AssetGroup),
		AssetID:     strings.TrimSpace(request.AssetID),
		RecipientID: strings.TrimSpace(request.RecipientID),
		Amount:      request.Amount,
		Status:      string(request.Status),
		TxID:        request.TxID,
		CreatedAt:   request.CreatedAt.UTC(),
		UpdatedAt:   request.UpdatedAt.UTC(),
	}
}

func (m requestModel) toEntity() entities.DistributionRequest {
	return entities.DistributionRequest{
		ID:          m.ID,
		WalletID:    m.WalletID,
		AssetGroup:  m.AssetGroup,
		AssetID:     m.AssetID,
		RecipientID: m.RecipientID,
		Amount:      m.Amount,
		Status:      entities.RequestStatus(m.Status),
		TxID:        m.TxID,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.RequestRepository = (*Repository)(nil)
