package domain

// BillStatus is the closed payment-state vocabulary for bills.
type BillStatus string

const (
	BillPaid   BillStatus = "Paid"
	BillUnpaid BillStatus = "Unpaid"
)

// BillView is the read-only projection returned for a bill-lookup intent.
// Exactly one of DueDate/PaidOn is meaningful depending on Status.
type BillView struct {
	BillID  string     `json:"bill_id" yaml:"bill_id"`
	Title   string     `json:"title" yaml:"title"`
	Name    string     `json:"name" yaml:"name"`
	Phone   string     `json:"phone" yaml:"phone"`
	Address string     `json:"address,omitempty" yaml:"address"`
	Amount  string     `json:"amount" yaml:"amount"`
	Status  BillStatus `json:"status" yaml:"status"`
	DueDate string     `json:"due_date,omitempty" yaml:"due_date"`
	PaidOn  string     `json:"paid_on,omitempty" yaml:"paid_on"`
}
