package domain

import (
	"time"
)

// PortfolioProject represents a portfolio entry shown on the work page
type PortfolioProject struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	VideoURL    string    `json:"video_url"`
	Outcomes    string    `gorm:"type:text" json:"outcomes"`
	ClientName  string    `json:"client_name"`
	Featured    bool      `gorm:"default:false" json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for PortfolioProject
func (PortfolioProject) TableName() string {
	return "portfolio_projects"
}

// Service represents a service offering shown on the services page
type Service struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Features    string `gorm:"type:text" json:"features"`
	Category    string `json:"category"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
}

// TableName specifies the table name for Service
func (Service) TableName() string {
	return "services"
}
