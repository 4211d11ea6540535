// Package handler provides the HTTP handlers for the lead API.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"lead_backend/internal/feature/lead/domain/entity"
	"lead_backend/internal/feature/lead/transport/http/dto"
	"lead_backend/internal/feature/lead/usecase"
	"lead_backend/internal/platform/http/response"
	jwtmw "lead_backend/internal/platform/jwt"
)

// LeadUsecase defines the lead operations the handler needs.
type LeadUsecase interface {
	Create(ctx context.Context, input entity.Patch, actingUserID string) (*entity.Lead, error)
	List(ctx context.Context, f entity.Filter, p entity.Page) (entity.Result, error)
	Get(ctx context.Context, id string) (*entity.Lead, error)
	Update(ctx context.Context, id string, patch entity.Patch) (*entity.Lead, error)
	Delete(ctx context.Context, id string) error
}

// LeadHandler handles HTTP requests for leads. Every route sits behind
// jwtmw.AuthRequired.
type LeadHandler struct {
	leads LeadUsecase
}

// NewLeadHandler creates a new LeadHandler.
func NewLeadHandler(leads LeadUsecase) *LeadHandler {
	return &LeadHandler{leads: leads}
}

// Create handles POST /api/leads.
func (h *LeadHandler) Create(c *gin.Context) {
	var req dto.LeadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, response.BindingErrors(err))
		return
	}
	userID, _ := jwtmw.UserIDFrom(c)

	lead, err := h.leads.Create(c.Request.Context(), req.Patch(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Data(c, http.StatusCreated, "Lead created successfully", lead)
}

// List handles GET /api/leads.
func (h *LeadHandler) List(c *gin.Context) {
	filter, page, err := dto.ParseListQuery(c.Request.URL.Query())
	if err != nil {
		h.fail(c, err)
		return
	}

	res, err := h.leads.List(c.Request.Context(), filter, page)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListRes(res))
}

// Get handles GET /api/leads/:id.
func (h *LeadHandler) Get(c *gin.Context) {
	lead, err := h.leads.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Data(c, http.StatusOK, "", lead)
}

// Update handles PUT /api/leads/:id with a partial body.
func (h *LeadHandler) Update(c *gin.Context) {
	var req dto.LeadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, response.BindingErrors(err))
		return
	}

	lead, err := h.leads.Update(c.Request.Context(), c.Param("id"), req.Patch())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Data(c, http.StatusOK, "Lead updated successfully", lead)
}

// Delete handles DELETE /api/leads/:id.
func (h *LeadHandler) Delete(c *gin.Context) {
	if err := h.leads.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Lead deleted successfully")
}

// fail maps usecase errors to the uniform error envelope.
func (h *LeadHandler) fail(c *gin.Context, err error) {
	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		fields := make([]response.FieldError, len(verr.Fields))
		for i, f := range verr.Fields {
			fields[i] = response.FieldError{Field: f.Field, Message: f.Message}
		}
		response.ValidationFailed(c, fields)
	case errors.Is(err, usecase.ErrLeadNotFound):
		response.Fail(c, http.StatusNotFound, usecase.ErrLeadNotFound.Error())
	case errors.Is(err, usecase.ErrLeadEmailExists):
		slog.Warn("lead email conflict", "remote_addr", c.ClientIP())
		response.Fail(c, http.StatusBadRequest, usecase.ErrLeadEmailExists.Error())
	default:
		response.Internal(c, err)
	}
}
