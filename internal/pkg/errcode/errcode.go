package errcode

const (
	ErrUnknown = 10000000 + iota
	ErrNotFound
	ErrInvalid
	ErrConflict
	ErrInternal
	ErrInvalidFile
	ErrImportFailed
	ErrImportTooManyNotes
	ErrImportNoteTooLarge
	ErrImportInvalidJSON
	ErrImportInvalidFormat
	ErrImageTooLarge
	ErrStorageQuota
	ErrTooMany
)
