package db_models

import (
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// PoiEmbedding keeps a vector fingerprint of a POI's name and description,
// used to surface already-known nearby places when building generation prompts.
type PoiEmbedding struct {
	ID        int             `gorm:"primaryKey;autoIncrement"`
	PoiID     uuid.UUID       `gorm:"type:uuid;uniqueIndex"`
	Embedding pgvector.Vector `gorm:"type:vector(1536)"`
}
