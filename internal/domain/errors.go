package domain

import "errors"

var (
	ErrMissingMPN          = errors.New("mpn is required")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrMissingColumn       = errors.New("missing required column")
	ErrEmptyTable          = errors.New("input table has no header row")
	ErrArtifactSave        = errors.New("saving output artifact failed")
)
