package storage

import "time"

// ServiceRequest is a row in the map table. Only the columns the map queries
// need are mapped.
type ServiceRequest struct {
	SRNumber    string    `gorm:"column:srnumber;primaryKey"`
	RequestType string    `gorm:"column:requesttype;index"`
	Latitude    float64   `gorm:"column:latitude"`
	Longitude   float64   `gorm:"column:longitude"`
	NC          string    `gorm:"column:nc;index"`
	CreatedDate time.Time `gorm:"column:createddate;index"`
}

func (ServiceRequest) TableName() string {
	return "map"
}
