package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/MGTheTrain/rsa-vault/internal/domain/blobs"
	"github.com/MGTheTrain/rsa-vault/internal/infrastructure/persistence/models"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/logger"

	"gorm.io/gorm"
)

// ciphertextColumn is left out of metadata queries
const ciphertextColumn = "ciphertext"

type gormBlobRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormBlobRepository creates a new GORM-based BlobRepository implementation
func NewGormBlobRepository(db *gorm.DB, logger logger.Logger) (blobs.BlobRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection cannot be nil")
	}
	return &gormBlobRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormBlobRepository) Create(ctx context.Context, blob *blobs.BlobMeta, ciphertext []byte) error {
	// Validate domain entity (business rules)
	if err := blob.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.BlobModel{}
	model.FromDomain(blob, ciphertext)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create blob: %w", err)
	}

	r.logger.Info("Created blob metadata", "id", blob.ID, "blocks", blob.Blocks)
	return nil
}

func (r *gormBlobRepository) List(ctx context.Context, query *blobs.BlobMetaQuery) ([]*blobs.BlobMeta, error) {
	if query == nil {
		query = blobs.NewBlobMetaQuery()
	}
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.BlobModel
	dbQuery := r.db.WithContext(ctx).Model(&models.BlobModel{}).Omit(ciphertextColumn)

	// Apply filters
	if query.Name != "" {
		dbQuery = dbQuery.Where("name LIKE ?", "%"+query.Name+"%")
	}
	if query.Owner != "" {
		dbQuery = dbQuery.Where("owner = ?", query.Owner)
	}
	if query.EncryptionKeyID != "" {
		dbQuery = dbQuery.Where("encryption_key_id = ?", query.EncryptionKeyID)
	}
	if !query.DateTimeCreated.IsZero() {
		dbQuery = dbQuery.Where("date_time_created >= ?", query.DateTimeCreated)
	}

	// Sorting
	if query.SortBy != "" {
		order := query.SortOrder
		if order == "" {
			order = "asc"
		}
		dbQuery = dbQuery.Order(fmt.Sprintf("%s %s", query.SortBy, order))
	}

	// Pagination
	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch blobs: %w", err)
	}

	domainList := make([]*blobs.BlobMeta, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormBlobRepository) GetByID(ctx context.Context, blobID string) (*blobs.BlobMeta, error) {
	var model models.BlobModel
	if err := r.db.WithContext(ctx).Omit(ciphertextColumn).Where("id = ?", blobID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("blob with ID %s: %w", blobID, blobs.ErrBlobNotFound)
		}
		return nil, fmt.Errorf("failed to fetch blob: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormBlobRepository) GetCiphertextByID(ctx context.Context, blobID string) ([]byte, error) {
	var model models.BlobModel
	if err := r.db.WithContext(ctx).Select("id", ciphertextColumn).Where("id = ?", blobID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("blob with ID %s: %w", blobID, blobs.ErrBlobNotFound)
		}
		return nil, fmt.Errorf("failed to fetch blob ciphertext: %w", err)
	}
	return model.Ciphertext, nil
}

func (r *gormBlobRepository) DeleteByID(ctx context.Context, blobID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", blobID).Delete(&models.BlobModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete blob: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("blob with ID %s: %w", blobID, blobs.ErrBlobNotFound)
	}

	r.logger.Info("Deleted blob metadata", "id", blobID)
	return nil
}
