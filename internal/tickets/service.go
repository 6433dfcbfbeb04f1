// Package tickets implements the application/complaint store behind the
// "My Applications" surface.
package tickets

import (
	"context"
	"strings"

	"github.com/pro-joshi-grammer/sahayatha/internal/domain"
)

// Repository persists tickets. Implementations live in internal/repository.
type Repository interface {
	Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error)
	List(ctx context.Context) ([]domain.Ticket, error)
	GetByPublicID(ctx context.Context, publicID string) (*domain.Ticket, error)
	UpdateStatus(ctx context.Context, publicID string, status domain.TicketStatus) (*domain.Ticket, error)
}

// CreateInput carries the fields a citizen submits when filing.
type CreateInput struct {
	Type       string
	Title      string
	Details    string
	Department string
	Phone      string
	PhotoKey   string
	Latitude   *float64
	Longitude  *float64
}

// Service enforces the ticket rules over a repository.
type Service struct {
	repo Repository
}

// NewService creates a ticket service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create files a new ticket. Every ticket starts in "In Review"; the status
// is never caller-supplied on creation.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Ticket, error) {
	ticketType, err := domain.ParseTicketType(input.Type)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domain.ErrMissingRequiredField
	}

	ticket := &domain.Ticket{
		Type:       ticketType,
		Title:      title,
		Details:    strings.TrimSpace(input.Details),
		Status:     domain.StatusInReview,
		Department: strings.TrimSpace(input.Department),
		Phone:      strings.TrimSpace(input.Phone),
		PhotoKey:   input.PhotoKey,
		Latitude:   input.Latitude,
		Longitude:  input.Longitude,
	}

	return s.repo.Create(ctx, ticket)
}

// List returns tickets newest first. bucketFilter narrows by display bucket
// ("active", "completed", "rejected", "complaint"); empty means all. The
// bucket is always derived from the ticket, never stored, and complaints
// only ever appear under "complaint".
func (s *Service) List(ctx context.Context, bucketFilter string) ([]domain.Ticket, error) {
	var bucket string
	if bucketFilter != "" {
		parsed, err := domain.ParseDisplayBucket(bucketFilter)
		if err != nil {
			return nil, err
		}
		bucket = parsed
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if bucket == "" {
		return all, nil
	}

	filtered := make([]domain.Ticket, 0, len(all))
	for _, t := range all {
		if t.DisplayBucket() == bucket {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// GetByPublicID resolves one ticket; the chat pipeline uses this read-only.
func (s *Service) GetByPublicID(ctx context.Context, publicID string) (*domain.Ticket, error) {
	publicID = strings.TrimSpace(publicID)
	if publicID == "" {
		return nil, domain.ErrTicketNotFound
	}
	return s.repo.GetByPublicID(ctx, publicID)
}

// UpdateStatus moves a ticket to a new status within the closed vocabulary.
// Tickets are never deleted; Rejected is a state, not a removal.
func (s *Service) UpdateStatus(ctx context.Context, publicID, status string) (*domain.Ticket, error) {
	parsed, err := domain.ParseTicketStatus(status)
	if err != nil {
		return nil, err
	}
	return s.repo.UpdateStatus(ctx, strings.TrimSpace(publicID), parsed)
}
