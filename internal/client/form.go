package client

import (
	"time"

	"lead_backend/internal/feature/lead/domain/entity"
)

// LeadForm holds the editable fields of a lead. The same form backs both
// create and update; an update starts from FormFromLead.
type LeadForm struct {
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	Company        string
	City           string
	State          string
	Source         entity.Source
	Status         entity.Status
	Score          int
	LeadValue      float64
	LastActivityAt *time.Time
	IsQualified    bool
}

// FormFromLead copies every editable field of l.
func FormFromLead(l entity.Lead) LeadForm {
	return LeadForm{
		FirstName:      l.FirstName,
		LastName:       l.LastName,
		Email:          l.Email,
		Phone:          l.Phone,
		Company:        l.Company,
		City:           l.City,
		State:          l.State,
		Source:         l.Source,
		Status:         l.Status,
		Score:          l.Score,
		LeadValue:      l.LeadValue,
		LastActivityAt: l.LastActivityAt,
		IsQualified:    l.IsQualified,
	}
}

// Input builds the request body. Every field is sent, so an update
// replaces the whole editable record. An empty source or status is left
// out so the server applies its default or reports it as missing.
func (f LeadForm) Input() LeadInput {
	in := LeadInput{
		FirstName:   &f.FirstName,
		LastName:    &f.LastName,
		Email:       &f.Email,
		Phone:       &f.Phone,
		Company:     &f.Company,
		City:        &f.City,
		State:       &f.State,
		Score:       &f.Score,
		LeadValue:   &f.LeadValue,
		IsQualified: &f.IsQualified,
	}
	if f.Source != "" {
		in.Source = &f.Source
	}
	if f.Status != "" {
		in.Status = &f.Status
	}
	if f.LastActivityAt != nil {
		in.LastActivityAt = f.LastActivityAt
	} else {
		in.ClearLastActivity = true
	}
	return in
}
