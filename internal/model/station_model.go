package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Station struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string         `gorm:"type:varchar(255);not null;uniqueIndex:idx_station_name_line"`
	TransitType string         `gorm:"type:varchar(20);not null;index"`
	Line        string         `gorm:"type:varchar(100);not null;uniqueIndex:idx_station_name_line"`
	Latitude    float64        `gorm:"not null"`
	Longitude   float64        `gorm:"not null"`
	Facilities  datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
}

func (Station) TableName() string {
	return "stations"
}
