// Package usecase implements the lead API operations.
package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"lead_backend/internal/feature/lead/domain/entity"
)

// LeadRepository abstracts the persistence layer for leads.
type LeadRepository interface {
	// Create persists a new lead and assigns its ID and timestamps.
	// It returns ErrLeadEmailExists if the email is taken.
	Create(ctx context.Context, lead *entity.Lead) error

	// FindByID returns ErrLeadNotFound when no lead has the ID.
	FindByID(ctx context.Context, id string) (*entity.Lead, error)

	// List returns one page of leads matching f, newest first, and the
	// number of leads matching f in total.
	List(ctx context.Context, f entity.Filter, p entity.Page) ([]entity.Lead, int64, error)

	// Update overwrites every mutable column and refreshes UpdatedAt.
	// It returns ErrLeadNotFound or ErrLeadEmailExists.
	Update(ctx context.Context, lead *entity.Lead) error

	// Delete removes the lead. It returns ErrLeadNotFound when nothing was deleted.
	Delete(ctx context.Context, id string) error
}

type leadUsecase struct {
	repo     LeadRepository
	validate *validator.Validate
}

// NewLeadUsecase creates the lead service on top of repo.
func NewLeadUsecase(repo LeadRepository) *leadUsecase {
	return &leadUsecase{repo: repo, validate: newValidator()}
}

// Create applies the defaults, merges input, validates and stores a lead
// owned by actingUserID.
func (u *leadUsecase) Create(ctx context.Context, input entity.Patch, actingUserID string) (*entity.Lead, error) {
	lead := entity.NewLead(actingUserID)
	input.Apply(lead)

	if err := validateLead(u.validate, lead); err != nil {
		return nil, err
	}
	if err := u.repo.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("create lead: %w", err)
	}
	slog.Info("lead created", "lead_id", lead.ID, "created_by", actingUserID)
	return lead, nil
}

// List returns the page of leads matching f. Non-positive page or limit
// values fall back to the defaults.
func (u *leadUsecase) List(ctx context.Context, f entity.Filter, p entity.Page) (entity.Result, error) {
	if p.Page < 1 {
		p.Page = entity.DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = entity.DefaultLimit
	}

	leads, total, err := u.repo.List(ctx, f, p)
	if err != nil {
		return entity.Result{}, fmt.Errorf("list leads: %w", err)
	}
	if leads == nil {
		leads = []entity.Lead{}
	}
	return entity.NewResult(leads, p, total), nil
}

// Get returns one lead.
func (u *leadUsecase) Get(ctx context.Context, id string) (*entity.Lead, error) {
	lead, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get lead: %w", err)
	}
	return lead, nil
}

// Update merges patch into the stored lead and re-validates the result.
// Concurrent updates are last-write-wins.
func (u *leadUsecase) Update(ctx context.Context, id string, patch entity.Patch) (*entity.Lead, error) {
	lead, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update lead: %w", err)
	}

	patch.Apply(lead)
	if err := validateLead(u.validate, lead); err != nil {
		return nil, err
	}
	if err := u.repo.Update(ctx, lead); err != nil {
		return nil, fmt.Errorf("update lead: %w", err)
	}
	slog.Info("lead updated", "lead_id", lead.ID)
	return lead, nil
}

// Delete removes a lead permanently.
func (u *leadUsecase) Delete(ctx context.Context, id string) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	slog.Info("lead deleted", "lead_id", id)
	return nil
}
