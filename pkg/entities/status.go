package entities

// CommissionStatus is the machine readable workflow status of a commission.
// Display text comes from Label, never from the value itself.
type CommissionStatus string

const (
	StatusPending        CommissionStatus = "PENDING"
	StatusAccepted       CommissionStatus = "ACCEPTED"
	StatusInProgress     CommissionStatus = "IN_PROGRESS"
	StatusPaymentPending CommissionStatus = "PAYMENT_PENDING"
	StatusReview         CommissionStatus = "REVIEW"
	StatusCompleted      CommissionStatus = "COMPLETED"
)

// AllStatuses is every workflow status in display order.
var AllStatuses = []CommissionStatus{
	StatusPending,
	StatusAccepted,
	StatusInProgress,
	StatusPaymentPending,
	StatusReview,
	StatusCompleted,
}

// statusLabels maps each status to its display label.
var statusLabels = map[CommissionStatus]string{
	StatusPending:        "Pending",
	StatusAccepted:       "Accepted",
	StatusInProgress:     "In Progress",
	StatusPaymentPending: "Payment Pending",
	StatusReview:         "In Review",
	StatusCompleted:      "Completed",
}

// Label returns the display label for the status.
func (s CommissionStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Valid reports whether the status is one of the defined workflow statuses.
func (s CommissionStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}
