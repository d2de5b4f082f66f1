package domain

import "errors"

// Validation rejections and guard failures surfaced by dispatcher operations.
// Handlers map these to HTTP status codes at the API boundary.
var (
	ErrNoActivePlan          = errors.New("no active route plan")
	ErrStopNotFound          = errors.New("delivery stop not found")
	ErrFleetNotFound         = errors.New("fleet not found")
	ErrMemberNotFound        = errors.New("team member not found")
	ErrDuplicateFleetNumber  = errors.New("fleet number already exists")
	ErrMemberAlreadyAssigned = errors.New("member already assigned to a fleet")
	ErrInvalidRole           = errors.New("invalid role")
	ErrInvalidSpecificType   = errors.New("specific type not permitted for role")
	ErrIngestionInFlight     = errors.New("an ingestion is already in flight")
	ErrStaleIngestion        = errors.New("ingestion result superseded by a newer request")
)
