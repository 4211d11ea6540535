package dto

import (
	"net/url"
	"strconv"
	"strings"

	"lead_backend/internal/feature/lead/domain/entity"
	"lead_backend/internal/feature/lead/usecase"
)

// ParseListQuery builds a typed filter and page from the query string of
// GET /api/leads. Empty parameters are ignored. A malformed operator or
// value yields a *usecase.ValidationError naming every bad parameter.
// Invalid page or limit values fall back to the defaults.
func ParseListQuery(q url.Values) (entity.Filter, entity.Page, error) {
	verr := &usecase.ValidationError{}
	var f entity.Filter

	f.Email = strings.TrimSpace(q.Get("email"))
	f.Company = strings.TrimSpace(q.Get("company"))
	f.City = strings.TrimSpace(q.Get("city"))

	if v := q.Get("status"); v != "" {
		s := entity.Status(v)
		if !s.Valid() {
			verr.Add("status", "Status must be one of: new, contacted, qualified, lost, won")
		} else {
			f.Status = &s
		}
	}
	if v := q.Get("source"); v != "" {
		s := entity.Source(v)
		if !s.Valid() {
			verr.Add("source", "Source must be one of: website, facebook_ads, google_ads, referral, events, other")
		} else {
			f.Source = &s
		}
	}

	f.Score = parseNumber(verr, "score", q.Get("score"), "score_operator", q.Get("score_operator"))
	f.LeadValue = parseNumber(verr, "lead_value", q.Get("lead_value"), "value_operator", q.Get("value_operator"))

	if v := q.Get("is_qualified"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			verr.Add("is_qualified", "is_qualified must be true or false")
		} else {
			f.IsQualified = &b
		}
	}

	f.CreatedAt = parseDate(verr, "created_at", q.Get("created_at"), "created_operator", q.Get("created_operator"))
	f.LastActivityAt = parseDate(verr, "last_activity_at", q.Get("last_activity_at"), "activity_operator", q.Get("activity_operator"))

	page := entity.Page{
		Page:  positiveOr(q.Get("page"), entity.DefaultPage),
		Limit: positiveOr(q.Get("limit"), entity.DefaultLimit),
	}

	if err := verr.OrNil(); err != nil {
		return entity.Filter{}, entity.Page{}, err
	}
	return f, page, nil
}

func positiveOr(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func parseNumber(verr *usecase.ValidationError, field, value, opField, op string) *entity.NumberFilter {
	if value == "" {
		return nil
	}
	nf := &entity.NumberFilter{Op: entity.NumberOp(op)}
	switch nf.Op {
	case "", entity.NumberEq:
		nf.Op = entity.NumberEq
	case entity.NumberGt, entity.NumberLt, entity.NumberBetween:
	default:
		verr.Add(opField, opField+" must be one of: eq, gt, lt, between")
		return nil
	}

	if nf.Op == entity.NumberBetween {
		lo, hi, ok := splitPair(value)
		minV, err1 := strconv.ParseFloat(lo, 64)
		maxV, err2 := strconv.ParseFloat(hi, 64)
		if !ok || err1 != nil || err2 != nil || minV > maxV {
			verr.Add(field, field+" must be two numbers min,max with min <= max")
			return nil
		}
		nf.Value, nf.Max = minV, maxV
		return nf
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		verr.Add(field, field+" must be a number")
		return nil
	}
	nf.Value = v
	return nf
}

func parseDate(verr *usecase.ValidationError, field, value, opField, op string) *entity.DateFilter {
	if value == "" {
		return nil
	}
	df := &entity.DateFilter{Op: entity.DateOp(op)}
	switch df.Op {
	case "", entity.DateOn:
		df.Op = entity.DateOn
	case entity.DateBefore, entity.DateAfter, entity.DateBetween:
	default:
		verr.Add(opField, opField+" must be one of: on, before, after, between")
		return nil
	}

	if df.Op == entity.DateBetween {
		lo, hi, ok := splitPair(value)
		from, err1 := ParseTime(lo)
		to, err2 := ParseTime(hi)
		if !ok || err1 != nil || err2 != nil || from.After(to) {
			verr.Add(field, field+" must be two dates start,end with start <= end")
			return nil
		}
		df.From, df.To = from, to
		return df
	}

	t, err := ParseTime(strings.TrimSpace(value))
	if err != nil {
		verr.Add(field, field+" must be a date (YYYY-MM-DD or RFC3339)")
		return nil
	}
	df.From = t
	return df
}

func splitPair(s string) (string, string, bool) {
	lo, hi, ok := strings.Cut(s, ",")
	return strings.TrimSpace(lo), strings.TrimSpace(hi), ok
}
