package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/infrastructure/persistence/models"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormRSAKeyRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormRSAKeyRepository creates a new GORM-based RSAKeyRepository implementation
func NewGormRSAKeyRepository(db *gorm.DB, logger logger.Logger) (keys.RSAKeyRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection cannot be nil")
	}
	return &gormRSAKeyRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormRSAKeyRepository) Create(ctx context.Context, key *keys.RSAKeyMeta) error {
	if err := key.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.RSAKeyModel{}
	model.FromDomain(key)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create rsa key: %w", err)
	}

	r.logger.Info("Created key metadata", "id", key.ID, "owner", key.Owner)
	return nil
}

func (r *gormRSAKeyRepository) List(ctx context.Context, query *keys.RSAKeyQuery) ([]*keys.RSAKeyMeta, error) {
	if query == nil {
		query = keys.NewRSAKeyQuery()
	}
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.RSAKeyModel
	dbQuery := r.db.WithContext(ctx).Model(&models.RSAKeyModel{})

	if query.Owner != "" {
		dbQuery = dbQuery.Where("owner = ?", query.Owner)
	}
	if query.KeySize > 0 {
		dbQuery = dbQuery.Where("key_size = ?", query.KeySize)
	}

	if query.SortBy != "" {
		order := query.SortOrder
		if order == "" {
			order = "asc"
		}
		dbQuery = dbQuery.Order(fmt.Sprintf("%s %s", query.SortBy, order))
	}

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch rsa key metadata: %w", err)
	}

	domainList := make([]*keys.RSAKeyMeta, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormRSAKeyRepository) GetByID(ctx context.Context, keyID string) (*keys.RSAKeyMeta, error) {
	var model models.RSAKeyModel
	if err := r.db.WithContext(ctx).Where("id = ?", keyID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("rsa key with ID %s: %w", keyID, keys.ErrKeyNotFound)
		}
		return nil, fmt.Errorf("failed to fetch rsa key: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormRSAKeyRepository) DeleteByID(ctx context.Context, keyID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", keyID).Delete(&models.RSAKeyModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete rsa key: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("rsa key with ID %s: %w", keyID, keys.ErrKeyNotFound)
	}

	r.logger.Info("Deleted key metadata", "id", keyID)
	return nil
}
