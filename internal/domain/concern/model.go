package concern

import "time"

// Concern is a patient issue/ticket, the root record of the tracking
// model. Only Status (and with it UpdatedAt) is mutable after creation.
type Concern struct {
	ID          string    `json:"id"`
	PatientName string    `json:"patientName"`
	PatientDob  string    `json:"patientDob"`
	Category    string    `json:"category"`
	Title       string    `json:"title"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

const (
	StatusPending = "pending"
	StatusUrgent  = "urgent"
	StatusOverdue = "overdue"
	StatusTasked  = "tasked"
	StatusDone    = "done"
)

var validStatuses = map[string]bool{
	StatusPending: true,
	StatusUrgent:  true,
	StatusOverdue: true,
	StatusTasked:  true,
	StatusDone:    true,
}

// ValidStatus reports whether s is one of the five concern statuses.
func ValidStatus(s string) bool { return validStatuses[s] }

// KnownCategories is the set the dashboard sidebar presents. Storage
// accepts any category string; this list exists for consumers and the
// sandbox seeder, not for enforcement.
var KnownCategories = []string{
	"tickets",
	"patient-history",
	"machine-issues",
	"sleep-study",
	"checkout",
	"prior-auths",
	"prescriptions",
	"lab-calls",
	"billings",
	"medical-records",
	"tu-pts",
	"other",
}
