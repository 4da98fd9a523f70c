package db_models

import "github.com/google/uuid"

type Favorite struct {
	BaseModel
	AccountID uuid.UUID `gorm:"type:uuid;index:idx_account_poi,unique"`
	PoiID     uuid.UUID `gorm:"type:uuid;index:idx_account_poi,unique"`

	Poi POI `gorm:"foreignKey:PoiID"`
}
