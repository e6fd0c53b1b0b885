package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type Property struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title        string         `gorm:"type:varchar(255);not null"`
	Description  string         `gorm:"type:text"`
	Address      string         `gorm:"type:varchar(255)"`
	City         string         `gorm:"type:varchar(100);index"`
	PropertyType string         `gorm:"type:varchar(50);index"`
	ListingType  string         `gorm:"type:varchar(10);not null;index"`
	Price        float64        `gorm:"not null;index"`
	Bedrooms     int            `gorm:"index"`
	Bathrooms    int            ``
	AreaSqft     float64        ``
	Latitude     float64        `gorm:"not null"`
	Longitude    float64        `gorm:"not null"`
	ImageURL     string         `gorm:"type:varchar(512)"`
	Embedding    pgvector.Vector `gorm:"type:vector(768)"`
	CreatedAt    time.Time      `gorm:"autoCreateTime;index"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Property) TableName() string {
	return "properties"
}
