package provision

import "errors"

var (
	ErrZoneNotFound = errors.New("hosted zone not found")
	// ErrValidationOptionsPending means the certificate authority has not published its DNS challenges yet.
	ErrValidationOptionsPending = errors.New("certificate validation options are not available yet")
	ErrValidationRecordMissing  = errors.New("validation record missing for domain")
	ErrUnknownProvider          = errors.New("unknown provider")
	ErrUnknownDependency        = errors.New("unknown dependency")
)
