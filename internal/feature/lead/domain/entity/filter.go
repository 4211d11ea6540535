package entity

import (
	"math"
	"time"
)

// NumberOp compares a numeric column.
type NumberOp string

const (
	NumberEq      NumberOp = "eq"
	NumberGt      NumberOp = "gt"
	NumberLt      NumberOp = "lt"
	NumberBetween NumberOp = "between"
)

// NumberFilter matches Value exactly, above, below, or the inclusive range [Value, Max].
type NumberFilter struct {
	Op    NumberOp
	Value float64
	Max   float64
}

// DateOp compares a timestamp column.
type DateOp string

const (
	DateOn      DateOp = "on"
	DateBefore  DateOp = "before"
	DateAfter   DateOp = "after"
	DateBetween DateOp = "between"
)

// DateFilter selects timestamps relative to From (and To for between).
// On matches [From, From+24h); Between is inclusive on both ends.
type DateFilter struct {
	Op   DateOp
	From time.Time
	To   time.Time
}

// Range returns the bounds the filter compares against.
func (f DateFilter) Range() (time.Time, time.Time) {
	if f.Op == DateOn {
		return f.From, f.From.Add(24 * time.Hour)
	}
	return f.From, f.To
}

// Filter narrows a lead listing. Zero-value fields do not constrain.
// Email, Company and City match case-insensitive substrings.
type Filter struct {
	Email          string
	Company        string
	City           string
	Status         *Status
	Source         *Source
	Score          *NumberFilter
	LeadValue      *NumberFilter
	IsQualified    *bool
	CreatedAt      *DateFilter
	LastActivityAt *DateFilter
}

const (
	DefaultPage  = 1
	DefaultLimit = 50
)

// Page selects a window of results. Page is 1-based.
type Page struct {
	Page  int
	Limit int
}

// Offset is the number of rows skipped before this page. It saturates at
// math.MaxInt so a huge page lands past the end instead of wrapping.
func (p Page) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Result is one page of leads with the totals of the whole filtered set.
type Result struct {
	Leads      []Lead
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// NewResult computes TotalPages as ceil(total/limit).
func NewResult(leads []Lead, p Page, total int64) Result {
	pages := 0
	if p.Limit > 0 {
		limit := int64(p.Limit)
		pages = int(total / limit)
		if total%limit != 0 {
			pages++
		}
	}
	return Result{Leads: leads, Page: p.Page, Limit: p.Limit, Total: total, TotalPages: pages}
}
