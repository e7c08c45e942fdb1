package domain

import "errors"

// Persistence error kinds. Raise sites wrap these with the underlying cause.
var (
	ErrSaveFailed              = errors.New("save failed")
	ErrLoadFailed              = errors.New("load failed")
	ErrExportFailed            = errors.New("export failed")
	ErrInvalidFileName         = errors.New("invalid file name")
	ErrPathTraversal           = errors.New("file name escapes base directory")
	ErrInsufficientPermissions = errors.New("insufficient permissions")

	ErrEntryNotFound   = errors.New("entry not found")
	ErrNothingToExport = errors.New("no data to export")
)
