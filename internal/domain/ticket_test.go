package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTicketStatus_ClosedVocabulary(t *testing.T) {
	for _, valid := range []string{"In Review", "Payment Pending", "Approved", "Completed", "Rejected"} {
		status, err := ParseTicketStatus(valid)
		assert.NoError(t, err)
		assert.Equal(t, valid, status.DisplayText())
	}

	_, err := ParseTicketStatus("Pending Forever")
	assert.Equal(t, ErrInvalidTicketStatus, err)

	_, err = ParseTicketStatus("")
	assert.Equal(t, ErrInvalidTicketStatus, err)
}

func TestTicketStatus_Bucket(t *testing.T) {
	assert.Equal(t, BucketActive, StatusInReview.Bucket())
	assert.Equal(t, BucketActive, StatusPaymentPending.Bucket())
	assert.Equal(t, BucketActive, StatusApproved.Bucket())
	assert.Equal(t, BucketCompleted, StatusCompleted.Bucket())
	assert.Equal(t, BucketRejected, StatusRejected.Bucket())
}

func TestTicket_DisplayBucket_ComplaintPseudoBucket(t *testing.T) {
	complaint := &Ticket{Type: TicketTypeComplaint, Status: StatusRejected}
	assert.Equal(t, "complaint", complaint.DisplayBucket())

	cert := &Ticket{Type: TicketTypeCertificate, Status: StatusRejected}
	assert.Equal(t, "rejected", cert.DisplayBucket())
}

func TestTicketType_IDPrefix(t *testing.T) {
	assert.Equal(t, "CERT", TicketTypeCertificate.IDPrefix())
	assert.Equal(t, "COMP", TicketTypeComplaint.IDPrefix())
	assert.Equal(t, "APP", TicketTypeScheme.IDPrefix())
	assert.Equal(t, "APP", TicketTypeOther.IDPrefix())
}

func TestParseLifecycleBucket(t *testing.T) {
	bucket, err := ParseLifecycleBucket("active")
	assert.NoError(t, err)
	assert.Equal(t, BucketActive, bucket)

	_, err = ParseLifecycleBucket("archived")
	assert.Equal(t, ErrInvalidBucket, err)
}

func TestTicketStatus_BadgeStyle(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range []TicketStatus{StatusInReview, StatusPaymentPending, StatusApproved, StatusCompleted, StatusRejected} {
		style := s.BadgeStyle()
		assert.NotEmpty(t, style)
		assert.False(t, seen[style], "badge style %q reused", style)
		seen[style] = true
	}
}
