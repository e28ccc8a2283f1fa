package models

// Bus is the canonical bus record. Every source (local seed, REST API,
// document store) is reconciled into this shape before it reaches the
// synchronizer or any handler.
type Bus struct {
	ID                    string  `json:"id"`
	BusNumber             string  `json:"busNumber"`
	Route                 string  `json:"route"`
	BusCompany            string  `json:"busCompany"`
	Status                string  `json:"status"`
	PlateNumber           string  `json:"plateNumber"`
	Capacity              int     `json:"capacity"`
	BusAttendant          string  `json:"busAttendant"`
	AttendantID           string  `json:"attendantId"`
	BusCompanyEmail       string  `json:"busCompanyEmail"`
	BusCompanyContact     string  `json:"busCompanyContact"`
	RegisteredDestination string  `json:"registeredDestination"`
	BusPhoto              *string `json:"busPhoto"`
	QnextBoarded          int     `json:"qnextBoarded"`
	LastUpdated           int64   `json:"lastUpdated"` // epoch milliseconds

	// Archive bookkeeping. Set when the bus moves to the archived
	// collection, cleared on restore.
	PreviousStatus string `json:"previousStatus,omitempty"`
	ArchivedAt     int64  `json:"archivedAt,omitempty"`
}

// ActivationRequestStatus values for the sibling request workflow.
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

// ActivationRequest is a company's request to activate a bus. The console
// only reads and transitions its status; all validation is backend-side.
type ActivationRequest struct {
	ID          string `json:"id"`
	BusNumber   string `json:"busNumber"`
	BusCompany  string `json:"busCompany"`
	Status      string `json:"status"`
	RequestedAt int64  `json:"requestedAt"`
}

// AddBusRequest is the payload accepted by the add-bus endpoint. Field
// names mirror the form the console UI submits.
type AddBusRequest struct {
	BusNumber             string  `json:"busNumber" validate:"required"`
	Route                 string  `json:"route" validate:"required"`
	BusCompany            string  `json:"busCompany" validate:"required"`
	Status                string  `json:"status"`
	PlateNumber           string  `json:"plateNumber" validate:"required"`
	Capacity              int     `json:"capacity" validate:"gte=0"`
	PrioritySeat          int     `json:"prioritySeat" validate:"gte=0"`
	BusAttendant          string  `json:"busAttendant" validate:"required"`
	AttendantID           string  `json:"attendantId"`
	BusCompanyEmail       string  `json:"busCompanyEmail" validate:"omitempty,email"`
	BusCompanyContact     string  `json:"busCompanyContact"`
	RegisteredDestination string  `json:"registeredDestination" validate:"required"`
	BusPhoto              *string `json:"busPhoto"`
}

// SyncResult reports the outcome of an upsert into the document store.
type SyncResult struct {
	Synced bool   `json:"synced"`
	Mode   string `json:"mode,omitempty"`   // "created" or "updated"
	Reason string `json:"reason,omitempty"` // set when Synced is false
}
