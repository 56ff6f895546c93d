package models

import "errors"

var (
	ErrNotFound                = errors.New("not found")
	ErrInvalidDateRange        = errors.New("checkOut must be after checkIn")
	ErrRoomUnavailable         = errors.New("room is not available")
	ErrRoomBooked              = errors.New("room already booked for the requested dates")
	ErrInvalidStatus           = errors.New("invalid status")
	ErrInvalidStatusTransition = errors.New("status transition not allowed")
	ErrImageTooLarge           = errors.New("image exceeds maximum size")
	ErrUnsupportedImageType    = errors.New("unsupported image type")
	ErrStorageDisabled         = errors.New("image storage is not configured")
	ErrForbidden               = errors.New("forbidden")
	ErrInUse                   = errors.New("resource is referenced by reservations")
	ErrInvalidFilter           = errors.New("invalid filter")
	ErrExportFailed            = errors.New("report export failed")
	ErrAssistantUnavailable    = errors.New("assistant is not configured")
	ErrServiceInactive         = errors.New("service is not offered")
)
