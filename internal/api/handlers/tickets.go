package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pro-joshi-grammer/sahayatha/internal/api"
	"github.com/pro-joshi-grammer/sahayatha/internal/domain"
	"github.com/pro-joshi-grammer/sahayatha/internal/tickets"
)

// TicketService is the application store behind "My Applications".
type TicketService interface {
	Create(ctx context.Context, input tickets.CreateInput) (*domain.Ticket, error)
	List(ctx context.Context, bucketFilter string) ([]domain.Ticket, error)
	UpdateStatus(ctx context.Context, publicID, status string) (*domain.Ticket, error)
}

type TicketHandler struct {
	svc TicketService
}

func NewTicketHandler(svc TicketService) *TicketHandler {
	return &TicketHandler{svc: svc}
}

type ApplyRequest struct {
	Type       string `json:"type"`
	Title      string `json:"title"`
	Details    string `json:"details"`
	Department string `json:"department"`
	Phone      string `json:"phone"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ApplicationResponse is the list/detail projection the UI renders.
type ApplicationResponse struct {
	TicketID   string `json:"ticket_id"`
	Type       string `json:"type"`
	Title      string `json:"title"`
	Details    string `json:"details,omitempty"`
	Status     string `json:"status"`
	BadgeStyle string `json:"badge_style"`
	Bucket     string `json:"bucket"`
	Department string `json:"department,omitempty"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func ticketToResponse(t *domain.Ticket) ApplicationResponse {
	return ApplicationResponse{
		TicketID:   t.PublicID,
		Type:       string(t.Type),
		Title:      t.Title,
		Details:    t.Details,
		Status:     t.Status.DisplayText(),
		BadgeStyle: t.Status.BadgeStyle(),
		Bucket:     t.DisplayBucket(),
		Department: t.Department,
		CreatedAt:  t.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:  t.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// HandleApply handles POST /api/apply.
func (h *TicketHandler) HandleApply(w http.ResponseWriter, r *http.Request) {
	var req ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, domain.ErrMissingRequiredField)
		return
	}

	ticket, err := h.svc.Create(r.Context(), tickets.CreateInput{
		Type:       req.Type,
		Title:      req.Title,
		Details:    req.Details,
		Department: req.Department,
		Phone:      req.Phone,
	})
	if err != nil {
		fail(w, err)
		return
	}

	api.JSON(w, http.StatusCreated, map[string]interface{}{
		"ok":        true,
		"ticket_id": ticket.PublicID,
	})
}

// HandleList handles GET /api/get-applications.
func (h *TicketHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	all, err := h.svc.List(r.Context(), r.URL.Query().Get("bucket"))
	if err != nil {
		fail(w, err)
		return
	}

	applications := make([]ApplicationResponse, 0, len(all))
	for i := range all {
		applications = append(applications, ticketToResponse(&all[i]))
	}

	api.JSON(w, http.StatusOK, map[string]interface{}{
		"ok":           true,
		"applications": applications,
	})
}

// HandleUpdateStatus handles POST /api/applications/{id}/status, the staff
// surface for moving a ticket through its lifecycle.
func (h *TicketHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, domain.ErrInvalidTicketStatus)
		return
	}

	ticket, err := h.svc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		fail(w, err)
		return
	}

	api.JSON(w, http.StatusOK, map[string]interface{}{
		"ok":          true,
		"application": ticketToResponse(ticket),
	})
}
