package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"github.com/pro-joshi-grammer/sahayatha/internal/domain"
)

var mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)

// Service runs the send/verify flow over a store and a sender.
type Service struct {
	store  Store
	sender Sender
	ttl    time.Duration
}

// NewService creates the OTP service.
func NewService(store Store, sender Sender, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Service{store: store, sender: sender, ttl: ttl}
}

// Send generates a 4-digit code for the mobile number and delivers it.
// Sending again before verification replaces the pending code.
func (s *Service) Send(ctx context.Context, mobile string) error {
	if !mobilePattern.MatchString(mobile) {
		return domain.ErrInvalidMobileNumber
	}

	code, err := generateCode()
	if err != nil {
		return domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, "failed to generate code", err)
	}

	if err := s.store.Put(ctx, mobile, code, s.ttl); err != nil {
		return domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, "failed to store code", err)
	}

	if err := s.sender.SendCode(ctx, mobile, code); err != nil {
		return domain.NewDomainErrorWithCause(domain.ErrCodeUnavailable, "failed to deliver verification code", err)
	}
	return nil
}

// Verify checks the code. The pending code is consumed on every attempt,
// matching or not, so a guessed retry never gets a second chance at the
// same code.
func (s *Service) Verify(ctx context.Context, mobile, code string) (bool, error) {
	if !mobilePattern.MatchString(mobile) {
		return false, domain.ErrInvalidMobileNumber
	}

	stored, err := s.store.Take(ctx, mobile)
	if err != nil {
		return false, err
	}
	return stored == code && code != "", nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}
