package errors

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalid             = errors.New("invalid")
	ErrConflict            = errors.New("conflict")
	ErrInternal            = errors.New("internal")
	ErrStorageQuota        = errors.New("storage quota exceeded, delete some notes or reduce image sizes")
	ErrImportInvalidJSON   = errors.New("import invalid json")
	ErrImportNotArray      = errors.New("invalid file format: expected an array of notes")
	ErrImportMissingFields = errors.New("invalid note format: missing required fields")
	ErrImportTooManyNotes  = errors.New("import too many notes")
	ErrImportNoteTooLarge  = errors.New("import note too large")
	ErrImageTooLarge       = errors.New("image too large")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

func IsQuota(err error) bool {
	return errors.Is(err, ErrStorageQuota)
}

// IsImportValidation reports whether err rejected an import batch before
// any store mutation.
func IsImportValidation(err error) bool {
	return errors.Is(err, ErrImportInvalidJSON) ||
		errors.Is(err, ErrImportNotArray) ||
		errors.Is(err, ErrImportMissingFields) ||
		errors.Is(err, ErrImportTooManyNotes) ||
		errors.Is(err, ErrImportNoteTooLarge) ||
		errors.Is(err, ErrImageTooLarge)
}
