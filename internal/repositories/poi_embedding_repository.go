package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"tripflow/internal/models/db_models"
)

// PoiEmbeddingRepository keeps vector fingerprints per POI and answers
// "which known places look like this one" for prompt building.
type PoiEmbeddingRepository interface {
	UpsertEmbedding(ctx context.Context, poiID uuid.UUID, vector pgvector.Vector) error
	SimilarPoiIDs(ctx context.Context, vector pgvector.Vector, limit int) ([]uuid.UUID, error)
}

type poiEmbeddingRepository struct {
	db *gorm.DB
}

func NewPoiEmbeddingRepository(db *gorm.DB) PoiEmbeddingRepository {
	return &poiEmbeddingRepository{db: db}
}

func (r *poiEmbeddingRepository) UpsertEmbedding(ctx context.Context, poiID uuid.UUID, vector pgvector.Vector) error {
	var existing db_models.PoiEmbedding
	err := r.db.WithContext(ctx).Where("poi_id = ?", poiID).First(&existing).Error
	if err == nil {
		return r.db.WithContext(ctx).
			Model(&existing).
			Update("embedding", vector).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return r.db.WithContext(ctx).Create(&db_models.PoiEmbedding{
		PoiID:     poiID,
		Embedding: vector,
	}).Error
}

func (r *poiEmbeddingRepository) SimilarPoiIDs(ctx context.Context, vector pgvector.Vector, limit int) ([]uuid.UUID, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows []db_models.PoiEmbedding
	query := `
        SELECT * FROM poi_embeddings
        WHERE (1 - (embedding <=> $1)) > 0.7
        ORDER BY embedding <=> $1
        LIMIT $2
    `
	if err := r.db.WithContext(ctx).Raw(query, vector.String(), limit).Scan(&rows).Error; err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.PoiID)
	}
	return ids, nil
}
