package handlers

import (
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/pro-joshi-grammer/sahayatha/internal/api"
	"github.com/pro-joshi-grammer/sahayatha/internal/domain"
	"github.com/pro-joshi-grammer/sahayatha/internal/storage"
	"github.com/pro-joshi-grammer/sahayatha/internal/tickets"
)

type ComplaintHandler struct {
	svc    TicketService
	photos storage.PhotoStore
}

func NewComplaintHandler(svc TicketService, photos storage.PhotoStore) *ComplaintHandler {
	return &ComplaintHandler{svc: svc, photos: photos}
}

type ComplaintRequest struct {
	Name       string   `json:"name"`
	Phone      string   `json:"phone"`
	Department string   `json:"department"`
	Details    string   `json:"details"`
	Photo      string   `json:"photo"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
}

// HandleSubmitComplaint handles POST /api/submit-complaint. The photo is a
// base64 payload (optionally a data URL); storing it is best-effort and a
// storage failure never loses the complaint itself.
func (h *ComplaintHandler) HandleSubmitComplaint(w http.ResponseWriter, r *http.Request) {
	var req ComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, domain.ErrMissingRequiredField)
		return
	}

	if strings.TrimSpace(req.Details) == "" || strings.TrimSpace(req.Department) == "" {
		fail(w, domain.ErrMissingRequiredField)
		return
	}

	photoKey := ""
	if req.Photo != "" && h.photos != nil {
		data, err := decodePhoto(req.Photo)
		if err != nil {
			fail(w, domain.NewDomainError(domain.ErrCodeValidation, "photo is not valid base64"))
			return
		}
		key, err := h.photos.StorePhoto(r.Context(), "complaints/"+uuid.NewString()+".jpg", "image/jpeg", data)
		if err != nil {
			log.Printf("complaint: photo store failed, filing without photo: %v", err)
		} else {
			photoKey = key
		}
	}

	title := strings.TrimSpace(req.Department) + " complaint"
	ticket, err := h.svc.Create(r.Context(), tickets.CreateInput{
		Type:       string(domain.TicketTypeComplaint),
		Title:      title,
		Details:    req.Details,
		Department: req.Department,
		Phone:      req.Phone,
		PhotoKey:   photoKey,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
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

func decodePhoto(payload string) ([]byte, error) {
	// Browsers send data URLs; strip the "data:image/jpeg;base64," prefix.
	if idx := strings.Index(payload, ","); idx != -1 && strings.HasPrefix(payload, "data:") {
		payload = payload[idx+1:]
	}
	return base64.StdEncoding.DecodeString(payload)
}
