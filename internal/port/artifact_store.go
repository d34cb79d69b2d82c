package port

import (
	"context"
	"io"
)

// ArtifactStore abstracts persistence of generated output files. Save
// returns the location of the stored artifact: a filesystem path for the
// local backend, an object URL for S3.
type ArtifactStore interface {
	Save(ctx context.Context, filename string, body io.Reader, contentType string) (string, error)
}
