// Package dto defines data transfer objects for the lead feature's HTTP transport layer.
package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"lead_backend/internal/feature/lead/domain/entity"
)

// LeadReq is the body of POST /api/leads and PUT /api/leads/:id.
// Every field is optional at the transport level; required fields are
// enforced on the merged lead by the usecase.
type LeadReq struct {
	FirstName      *string      `json:"first_name"`
	LastName       *string      `json:"last_name"`
	Email          *string      `json:"email"`
	Phone          *string      `json:"phone"`
	Company        *string      `json:"company"`
	City           *string      `json:"city"`
	State          *string      `json:"state"`
	Source         *string      `json:"source"`
	Status         *string      `json:"status"`
	Score          *int         `json:"score"`
	LeadValue      *float64     `json:"lead_value"`
	LastActivityAt NullableTime `json:"last_activity_at"`
	IsQualified    *bool        `json:"is_qualified"`
}

// Patch converts the request into a domain patch.
func (r LeadReq) Patch() entity.Patch {
	p := entity.Patch{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Email:          r.Email,
		Phone:          r.Phone,
		Company:        r.Company,
		City:           r.City,
		State:          r.State,
		Score:          r.Score,
		LeadValue:      r.LeadValue,
		IsQualified:    r.IsQualified,
		LastActivityAt: entity.OptionalTime{Set: r.LastActivityAt.Set, Time: r.LastActivityAt.Time},
	}
	if r.Source != nil {
		s := entity.Source(*r.Source)
		p.Source = &s
	}
	if r.Status != nil {
		s := entity.Status(*r.Status)
		p.Status = &s
	}
	return p
}

// NullableTime records whether a timestamp field was present and whether it was null.
type NullableTime struct {
	Set  bool
	Time *time.Time
}

// timeLayouts are the accepted timestamp formats, most specific first.
var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"}

// UnmarshalJSON accepts null, RFC3339, datetime-local or a bare date (UTC).
func (n *NullableTime) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(b, []byte("null")) {
		n.Time = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("last_activity_at must be a timestamp string or null")
	}
	if s == "" {
		n.Time = nil
		return nil
	}
	t, err := ParseTime(s)
	if err != nil {
		return err
	}
	n.Time = &t
	return nil
}

// ParseTime parses s in any of the accepted layouts. Values without a
// zone are taken as UTC.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
