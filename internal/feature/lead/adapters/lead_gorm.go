package adapters

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lead_backend/internal/feature/lead/domain/entity"
	"lead_backend/internal/feature/lead/usecase"
	"lead_backend/internal/platform/dberr"
)

// leadGorm is the GORM implementation of usecase.LeadRepository.
type leadGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure leadGorm implements LeadRepository.
var _ usecase.LeadRepository = (*leadGorm)(nil)

// NewLeadRepository creates a leadGorm backed by db.
func NewLeadRepository(db *gorm.DB) *leadGorm {
	return &leadGorm{db: db}
}

// Create inserts the lead and assigns a fresh UUID.
func (r *leadGorm) Create(ctx context.Context, l *entity.Lead) error {
	if l == nil {
		return errors.New("lead is nil")
	}
	model := LeadModelFromEntity(l)
	model.ID = uuid.NewString()

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if dberr.IsDuplicateKey(err) {
			return usecase.ErrLeadEmailExists
		}
		return err
	}
	*l = *model.ToEntity()
	return nil
}

// CreateBatch inserts leads in chunks. Used by the seeder.
func (r *leadGorm) CreateBatch(ctx context.Context, leads []entity.Lead) error {
	if len(leads) == 0 {
		return nil
	}
	models := make([]LeadModel, len(leads))
	for i := range leads {
		models[i] = *LeadModelFromEntity(&leads[i])
		models[i].ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).CreateInBatches(models, 50).Error
}

// FindByID returns usecase.ErrLeadNotFound when no lead has the ID.
func (r *leadGorm) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	var m LeadModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrLeadNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

// List applies f to both the count and the page fetch.
func (r *leadGorm) List(ctx context.Context, f entity.Filter, p entity.Page) ([]entity.Lead, int64, error) {
	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []LeadModel
	err := r.filtered(ctx, f).
		Order("created_at DESC").
		Order("id DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	leads := make([]entity.Lead, len(models))
	for i := range models {
		leads[i] = *models[i].ToEntity()
	}
	return leads, total, nil
}

// Update writes every mutable column. ID, CreatedBy and CreatedAt are kept.
func (r *leadGorm) Update(ctx context.Context, l *entity.Lead) error {
	model := LeadModelFromEntity(l)
	res := r.db.WithContext(ctx).
		Model(&LeadModel{ID: l.ID}).
		Select("*").
		Omit("id", "created_by", "created_at").
		Updates(model)
	if res.Error != nil {
		if dberr.IsDuplicateKey(res.Error) {
			return usecase.ErrLeadEmailExists
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrLeadNotFound
	}

	updated, err := r.FindByID(ctx, l.ID)
	if err != nil {
		return err
	}
	*l = *updated
	return nil
}

// Delete hard-deletes the lead.
func (r *leadGorm) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&LeadModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrLeadNotFound
	}
	return nil
}

// DeleteAll removes every lead. Used by the seeder.
func (r *leadGorm) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&LeadModel{}).Error
}

// filtered returns a fresh query over leads narrowed by f.
func (r *leadGorm) filtered(ctx context.Context, f entity.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&LeadModel{})

	q = whereContains(q, "email", f.Email)
	q = whereContains(q, "company", f.Company)
	q = whereContains(q, "city", f.City)

	if f.Status != nil {
		q = q.Where("status = ?", string(*f.Status))
	}
	if f.Source != nil {
		q = q.Where("source = ?", string(*f.Source))
	}
	if f.Score != nil {
		q = whereNumber(q, "score", *f.Score)
	}
	if f.LeadValue != nil {
		q = whereNumber(q, "lead_value", *f.LeadValue)
	}
	if f.IsQualified != nil {
		q = q.Where("is_qualified = ?", *f.IsQualified)
	}
	if f.CreatedAt != nil {
		q = whereDate(q, "created_at", *f.CreatedAt)
	}
	if f.LastActivityAt != nil {
		q = whereDate(q, "last_activity_at", *f.LastActivityAt)
	}
	return q
}

// likeEscaper escapes LIKE wildcards so user input matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func whereContains(q *gorm.DB, column, v string) *gorm.DB {
	if v == "" {
		return q
	}
	pattern := "%" + likeEscaper.Replace(strings.ToLower(v)) + "%"
	return q.Where("LOWER("+column+") LIKE ? ESCAPE '\\'", pattern)
}

func whereNumber(q *gorm.DB, column string, f entity.NumberFilter) *gorm.DB {
	switch f.Op {
	case entity.NumberGt:
		return q.Where(column+" > ?", f.Value)
	case entity.NumberLt:
		return q.Where(column+" < ?", f.Value)
	case entity.NumberBetween:
		return q.Where(column+" BETWEEN ? AND ?", f.Value, f.Max)
	default:
		return q.Where(column+" = ?", f.Value)
	}
}

func whereDate(q *gorm.DB, column string, f entity.DateFilter) *gorm.DB {
	from, to := f.Range()
	from, to = from.UTC(), to.UTC()
	switch f.Op {
	case entity.DateBefore:
		return q.Where(column+" < ?", from)
	case entity.DateAfter:
		return q.Where(column+" > ?", from)
	case entity.DateBetween:
		return q.Where(column+" BETWEEN ? AND ?", from, to)
	default:
		return q.Where(column+" >= ? AND "+column+" < ?", from, to)
	}
}
