package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"lead_backend/internal/feature/lead/domain/entity"
)

// ListParams are the filters and paging of a lead listing.
// Zero values are not sent. Between ranges are written "min,max".
type ListParams struct {
	Email   string
	Company string
	City    string
	Status  entity.Status
	Source  entity.Source

	Score         string
	ScoreOperator entity.NumberOp
	LeadValue     string
	ValueOperator entity.NumberOp

	IsQualified *bool

	CreatedAt        string
	CreatedOperator  entity.DateOp
	LastActivityAt   string
	ActivityOperator entity.DateOp

	Page  int
	Limit int
}

// Query encodes p the way GET /api/leads reads it.
func (p ListParams) Query() url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("email", p.Email)
	set("company", p.Company)
	set("city", p.City)
	set("status", string(p.Status))
	set("source", string(p.Source))
	set("score", p.Score)
	set("score_operator", string(p.ScoreOperator))
	set("lead_value", p.LeadValue)
	set("value_operator", string(p.ValueOperator))
	if p.IsQualified != nil {
		q.Set("is_qualified", strconv.FormatBool(*p.IsQualified))
	}
	set("created_at", p.CreatedAt)
	set("created_operator", string(p.CreatedOperator))
	set("last_activity_at", p.LastActivityAt)
	set("activity_operator", string(p.ActivityOperator))
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	return q
}

// Pagination mirrors the pagination block of a listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// LeadPage is one page of leads.
type LeadPage struct {
	Leads      []entity.Lead `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

// LeadInput is the body of a create or update. Nil fields are omitted and
// left unchanged by an update. ClearLastActivity sends an explicit null.
type LeadInput struct {
	FirstName   *string        `json:"first_name,omitempty"`
	LastName    *string        `json:"last_name,omitempty"`
	Email       *string        `json:"email,omitempty"`
	Phone       *string        `json:"phone,omitempty"`
	Company     *string        `json:"company,omitempty"`
	City        *string        `json:"city,omitempty"`
	State       *string        `json:"state,omitempty"`
	Source      *entity.Source `json:"source,omitempty"`
	Status      *entity.Status `json:"status,omitempty"`
	Score       *int           `json:"score,omitempty"`
	LeadValue   *float64       `json:"lead_value,omitempty"`
	IsQualified *bool          `json:"is_qualified,omitempty"`

	LastActivityAt    *time.Time `json:"-"`
	ClearLastActivity bool       `json:"-"`
}

func (in LeadInput) MarshalJSON() ([]byte, error) {
	type plain LeadInput
	b, err := json.Marshal(plain(in))
	if err != nil {
		return nil, err
	}
	var activity json.RawMessage
	switch {
	case in.LastActivityAt != nil:
		activity, err = json.Marshal(in.LastActivityAt.UTC())
		if err != nil {
			return nil, err
		}
	case in.ClearLastActivity:
		activity = json.RawMessage("null")
	default:
		return b, nil
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	m["last_activity_at"] = activity
	return json.Marshal(m)
}

type leadRes struct {
	Data entity.Lead `json:"data"`
}

// ListLeads fetches one page of leads matching p.
func (c *Client) ListLeads(ctx context.Context, p ListParams) (*LeadPage, error) {
	var page LeadPage
	if err := c.do(ctx, http.MethodGet, "/api/leads", p.Query(), nil, &page); err != nil {
		return nil, err
	}
	if page.Leads == nil {
		page.Leads = []entity.Lead{}
	}
	return &page, nil
}

// GetLead fetches one lead by id.
func (c *Client) GetLead(ctx context.Context, id string) (*entity.Lead, error) {
	var res leadRes
	if err := c.do(ctx, http.MethodGet, "/api/leads/"+url.PathEscape(id), nil, nil, &res); err != nil {
		return nil, err
	}
	return &res.Data, nil
}

// CreateLead creates a lead owned by the session user.
func (c *Client) CreateLead(ctx context.Context, in LeadInput) (*entity.Lead, error) {
	var res leadRes
	if err := c.do(ctx, http.MethodPost, "/api/leads", nil, in, &res); err != nil {
		return nil, err
	}
	return &res.Data, nil
}

// UpdateLead applies in to the lead with id.
func (c *Client) UpdateLead(ctx context.Context, id string, in LeadInput) (*entity.Lead, error) {
	var res leadRes
	if err := c.do(ctx, http.MethodPut, "/api/leads/"+url.PathEscape(id), nil, in, &res); err != nil {
		return nil, err
	}
	return &res.Data, nil
}

// DeleteLead removes the lead with id.
func (c *Client) DeleteLead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/leads/"+url.PathEscape(id), nil, nil, nil)
}
