package dto

import (
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lead_backend/internal/feature/lead/domain/entity"
	"lead_backend/internal/feature/lead/usecase"
)

func query(t *testing.T, raw string) url.Values {
	t.Helper()
	q, err := url.ParseQuery(raw)
	require.NoError(t, err)
	return q
}

func TestParseListQuery_Pagination(t *testing.T) {
	tests := []struct {
		raw  string
		want entity.Page
	}{
		{"", entity.Page{Page: 1, Limit: 50}},
		{"page=2&limit=10", entity.Page{Page: 2, Limit: 10}},
		{"page=abc&limit=-3", entity.Page{Page: 1, Limit: 50}},
		{"page=0&limit=0", entity.Page{Page: 1, Limit: 50}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			_, p, err := ParseListQuery(query(t, tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestParseListQuery_Filters(t *testing.T) {
	raw := "email=ACME&company=%20Globex%20&city=berlin&status=won&source=referral" +
		"&score=40,60&score_operator=between&lead_value=1000&value_operator=gt" +
		"&is_qualified=true&created_at=2026-03-01&last_activity_at=2026-02-01T10:00:00Z&activity_operator=before"

	f, _, err := ParseListQuery(query(t, raw))
	require.NoError(t, err)

	assert.Equal(t, "ACME", f.Email)
	assert.Equal(t, "Globex", f.Company)
	assert.Equal(t, "berlin", f.City)
	assert.Equal(t, entity.StatusWon, *f.Status)
	assert.Equal(t, entity.SourceReferral, *f.Source)
	assert.Equal(t, entity.NumberFilter{Op: entity.NumberBetween, Value: 40, Max: 60}, *f.Score)
	assert.Equal(t, entity.NumberFilter{Op: entity.NumberGt, Value: 1000}, *f.LeadValue)
	assert.True(t, *f.IsQualified)
	assert.Equal(t, entity.DateOn, f.CreatedAt.Op)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), f.CreatedAt.From)
	assert.Equal(t, entity.DateBefore, f.LastActivityAt.Op)
	assert.Equal(t, time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC), f.LastActivityAt.From)
}

func TestParseListQuery_DefaultOperators(t *testing.T) {
	f, _, err := ParseListQuery(query(t, "score=70&created_at=2026-03-01T00:00:00Z"))
	require.NoError(t, err)
	assert.Equal(t, entity.NumberEq, f.Score.Op)
	assert.Equal(t, float64(70), f.Score.Value)
	assert.Equal(t, entity.DateOn, f.CreatedAt.Op)
	assert.Nil(t, f.LeadValue)
	assert.Nil(t, f.IsQualified)
	assert.Nil(t, f.Status)
}

func TestParseListQuery_Invalid(t *testing.T) {
	tests := []struct {
		raw    string
		fields []string
	}{
		{"status=archived", []string{"status"}},
		{"source=tv", []string{"source"}},
		{"score=10&score_operator=gte", []string{"score_operator"}},
		{"score=ten", []string{"score"}},
		{"score=60,40&score_operator=between", []string{"score"}},
		{"lead_value=5&value_operator=between", []string{"lead_value"}},
		{"is_qualified=maybe", []string{"is_qualified"}},
		{"created_at=yesterday", []string{"created_at"}},
		{"created_at=2026-01-01&created_operator=during", []string{"created_operator"}},
		{"last_activity_at=2026-03-05,2026-03-01&activity_operator=between", []string{"last_activity_at"}},
		{"status=x&source=y&score=z", []string{"status", "source", "score"}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			_, _, err := ParseListQuery(query(t, tt.raw))
			var verr *usecase.ValidationError
			require.ErrorAs(t, err, &verr)
			got := make([]string, 0, len(verr.Fields))
			for _, fe := range verr.Fields {
				got = append(got, fe.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}

func TestLeadReq_Patch(t *testing.T) {
	t.Run("absent last_activity_at is unset", func(t *testing.T) {
		var req LeadReq
		require.NoError(t, json.Unmarshal([]byte(`{"first_name":"Ada","source":"website","score":5}`), &req))
		p := req.Patch()
		assert.Equal(t, "Ada", *p.FirstName)
		assert.Equal(t, entity.SourceWebsite, *p.Source)
		assert.Equal(t, 5, *p.Score)
		assert.Nil(t, p.Email)
		assert.False(t, p.LastActivityAt.Set)
	})

	t.Run("null last_activity_at clears", func(t *testing.T) {
		var req LeadReq
		require.NoError(t, json.Unmarshal([]byte(`{"last_activity_at":null}`), &req))
		p := req.Patch()
		assert.True(t, p.LastActivityAt.Set)
		assert.Nil(t, p.LastActivityAt.Time)
	})

	t.Run("datetime-local is accepted as UTC", func(t *testing.T) {
		var req LeadReq
		require.NoError(t, json.Unmarshal([]byte(`{"last_activity_at":"2026-04-02T15:30"}`), &req))
		require.NotNil(t, req.LastActivityAt.Time)
		assert.Equal(t, time.Date(2026, 4, 2, 15, 30, 0, 0, time.UTC), *req.LastActivityAt.Time)
	})

	t.Run("garbage timestamp is rejected", func(t *testing.T) {
		var req LeadReq
		assert.Error(t, json.Unmarshal([]byte(`{"last_activity_at":"soon"}`), &req))
	})
}
