package apperrors

import "errors"

var (
  // ErrNotFound is a generic sentinel for missing resources.
  ErrNotFound = errors.New("not found")
  // ErrAccessDenied is returned when a user touches a resource they do not own.
  ErrAccessDenied = errors.New("access denied")
  // ErrConflict is returned on uniqueness violations.
  ErrConflict = errors.New("conflict")
  // ErrInvalidArgument is a generic sentinel for invalid input.
  ErrInvalidArgument = errors.New("invalid argument")
  // ErrClassifierUnavailable marks a failed call to the vision service.
  ErrClassifierUnavailable = errors.New("classifier unavailable")
  // ErrArchiveStorage marks a failed disk write for archive images.
  ErrArchiveStorage = errors.New("archive storage failure")
)
