package service

import "errors"

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrEventArchived        = errors.New("event is archived")
	ErrChildrenNotAllowed   = errors.New("children are not allowed on this event")
	ErrChildrenAgesRequired = errors.New("children ages are required")
	ErrAlreadyRegistered    = errors.New("user already registered for this event")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrRegistrationPaid     = errors.New("registration is already paid")
	ErrVehicleNotFound      = errors.New("vehicle not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
)
