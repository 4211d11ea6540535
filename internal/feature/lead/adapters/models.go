// Package adapters provides repository implementations for the lead feature.
package adapters

import (
	"time"

	"lead_backend/internal/feature/lead/domain/entity"
)

// LeadModel is the GORM model for the leads table.
type LeadModel struct {
	ID             string     `gorm:"primaryKey;size:36"`
	FirstName      string     `gorm:"size:50;not null"`
	LastName       string     `gorm:"size:50;not null"`
	Email          string     `gorm:"size:255;not null;uniqueIndex"`
	Phone          string     `gorm:"size:20"`
	Company        string     `gorm:"size:100"`
	City           string     `gorm:"size:50"`
	State          string     `gorm:"size:50"`
	Source         string     `gorm:"size:20;not null;index"`
	Status         string     `gorm:"size:20;not null;index"`
	Score          int        `gorm:"not null"`
	LeadValue      float64    `gorm:"not null"`
	LastActivityAt *time.Time `gorm:"index"`
	IsQualified    bool       `gorm:"not null"`
	CreatedBy      string     `gorm:"size:36;not null;index"`
	CreatedAt      time.Time  `gorm:"index"`
	UpdatedAt      time.Time
}

// TableName overrides the default table name.
func (LeadModel) TableName() string { return "leads" }

// ToEntity converts the GORM model to a domain entity.
func (m *LeadModel) ToEntity() *entity.Lead {
	return &entity.Lead{
		ID:             m.ID,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		Email:          m.Email,
		Phone:          m.Phone,
		Company:        m.Company,
		City:           m.City,
		State:          m.State,
		Source:         entity.Source(m.Source),
		Status:         entity.Status(m.Status),
		Score:          m.Score,
		LeadValue:      m.LeadValue,
		LastActivityAt: utcPtr(m.LastActivityAt),
		IsQualified:    m.IsQualified,
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
}

// LeadModelFromEntity converts a domain entity to the GORM model.
func LeadModelFromEntity(l *entity.Lead) *LeadModel {
	return &LeadModel{
		ID:             l.ID,
		FirstName:      l.FirstName,
		LastName:       l.LastName,
		Email:          l.Email,
		Phone:          l.Phone,
		Company:        l.Company,
		City:           l.City,
		State:          l.State,
		Source:         string(l.Source),
		Status:         string(l.Status),
		Score:          l.Score,
		LeadValue:      l.LeadValue,
		LastActivityAt: utcPtr(l.LastActivityAt),
		IsQualified:    l.IsQualified,
		CreatedBy:      l.CreatedBy,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
