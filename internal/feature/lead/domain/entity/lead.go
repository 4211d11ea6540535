// Package entity defines the lead domain model.
package entity

import (
	"strings"
	"time"
)

// Source is where a lead came from.
type Source string

const (
	SourceWebsite     Source = "website"
	SourceFacebookAds Source = "facebook_ads"
	SourceGoogleAds   Source = "google_ads"
	SourceReferral    Source = "referral"
	SourceEvents      Source = "events"
	SourceOther       Source = "other"
)

// Sources lists every accepted Source in display order.
func Sources() []Source {
	return []Source{SourceWebsite, SourceFacebookAds, SourceGoogleAds, SourceReferral, SourceEvents, SourceOther}
}

// Valid reports whether s is one of Sources.
func (s Source) Valid() bool {
	for _, v := range Sources() {
		if s == v {
			return true
		}
	}
	return false
}

// Status is the pipeline stage of a lead.
type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusQualified Status = "qualified"
	StatusLost      Status = "lost"
	StatusWon       Status = "won"
)

// Statuses lists every accepted Status in pipeline order.
func Statuses() []Status {
	return []Status{StatusNew, StatusContacted, StatusQualified, StatusLost, StatusWon}
}

// Valid reports whether s is one of Statuses.
func (s Status) Valid() bool {
	for _, v := range Statuses() {
		if s == v {
			return true
		}
	}
	return false
}

// Lead is a sales prospect.
// The validate tags are checked by the lead usecase before every write.
type Lead struct {
	ID             string     `json:"id"`
	FirstName      string     `json:"first_name" validate:"required,max=50"`
	LastName       string     `json:"last_name" validate:"required,max=50"`
	Email          string     `json:"email" validate:"required,max=255,lead_email"`
	Phone          string     `json:"phone" validate:"max=20"`
	Company        string     `json:"company" validate:"max=100"`
	City           string     `json:"city" validate:"max=50"`
	State          string     `json:"state" validate:"max=50"`
	Source         Source     `json:"source" validate:"required,lead_source"`
	Status         Status     `json:"status" validate:"required,lead_status"`
	Score          int        `json:"score" validate:"min=0,max=100"`
	LeadValue      float64    `json:"lead_value" validate:"min=0"`
	LastActivityAt *time.Time `json:"last_activity_at"`
	IsQualified    bool       `json:"is_qualified"`
	CreatedBy      string     `json:"created_by"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewLead returns a lead with the defaults applied: status new, score 0,
// value 0, not qualified and no recorded activity.
func NewLead(createdBy string) *Lead {
	return &Lead{Status: StatusNew, CreatedBy: createdBy}
}

// Patch is a partial set of lead fields. Nil pointers leave the field
// unchanged. LastActivityAt distinguishes absent from an explicit null.
type Patch struct {
	FirstName      *string
	LastName       *string
	Email          *string
	Phone          *string
	Company        *string
	City           *string
	State          *string
	Source         *Source
	Status         *Status
	Score          *int
	LeadValue      *float64
	LastActivityAt OptionalTime
	IsQualified    *bool
}

// OptionalTime is a nullable timestamp that remembers whether it was set.
type OptionalTime struct {
	Set  bool
	Time *time.Time
}

// Apply merges p into l. Strings are trimmed and email is lowercased.
// ID, CreatedBy and the timestamps are never touched.
func (p Patch) Apply(l *Lead) {
	setString(&l.FirstName, p.FirstName)
	setString(&l.LastName, p.LastName)
	setString(&l.Phone, p.Phone)
	setString(&l.Company, p.Company)
	setString(&l.City, p.City)
	setString(&l.State, p.State)
	if p.Email != nil {
		l.Email = strings.ToLower(strings.TrimSpace(*p.Email))
	}
	if p.Source != nil {
		l.Source = Source(strings.TrimSpace(string(*p.Source)))
	}
	if p.Status != nil {
		l.Status = Status(strings.TrimSpace(string(*p.Status)))
	}
	if p.Score != nil {
		l.Score = *p.Score
	}
	if p.LeadValue != nil {
		l.LeadValue = *p.LeadValue
	}
	if p.LastActivityAt.Set {
		if p.LastActivityAt.Time == nil {
			l.LastActivityAt = nil
		} else {
			t := p.LastActivityAt.Time.UTC()
			l.LastActivityAt = &t
		}
	}
	if p.IsQualified != nil {
		l.IsQualified = *p.IsQualified
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
