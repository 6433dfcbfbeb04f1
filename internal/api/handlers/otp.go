package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pro-joshi-grammer/sahayatha/internal/api"
	"github.com/pro-joshi-grammer/sahayatha/internal/domain"
)

// OTPService runs the send/verify flow.
type OTPService interface {
	Send(ctx context.Context, mobile string) error
	Verify(ctx context.Context, mobile, code string) (bool, error)
}

type OTPHandler struct {
	svc OTPService
}

func NewOTPHandler(svc OTPService) *OTPHandler {
	return &OTPHandler{svc: svc}
}

type SendOTPRequest struct {
	Mobile string `json:"mobile"`
}

type VerifyOTPRequest struct {
	Mobile string `json:"mobile"`
	OTP    string `json:"otp"`
}

// HandleSendOTP handles POST /api/send-otp.
func (h *OTPHandler) HandleSendOTP(w http.ResponseWriter, r *http.Request) {
	var req SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, domain.ErrInvalidMobileNumber)
		return
	}

	if err := h.svc.Send(r.Context(), req.Mobile); err != nil {
		fail(w, err)
		return
	}

	api.JSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

// HandleVerifyOTP handles POST /api/verify-otp.
func (h *OTPHandler) HandleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, domain.ErrInvalidMobileNumber)
		return
	}

	verified, err := h.svc.Verify(r.Context(), req.Mobile, req.OTP)
	if err != nil {
		fail(w, err)
		return
	}

	api.JSON(w, http.StatusOK, map[string]interface{}{
		"ok":       true,
		"verified": verified,
	})
}
