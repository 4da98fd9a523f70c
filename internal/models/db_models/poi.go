package db_models

// POI is a deduplicated place identity shared across days and trips.
// Rows are keyed by (name, address); generation results matching an
// existing pair update it instead of inserting a twin.
type POI struct {
	BaseModel
	Name        string `gorm:"index:idx_poi_name_address,unique"`
	Address     string `gorm:"index:idx_poi_name_address,unique"`
	Type        string
	Description string
	Latitude    float64
	Longitude   float64

	DayPois []DayPoi `gorm:"foreignKey:PoiID"`
}
