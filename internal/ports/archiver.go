package ports

import "context"

// Archiver moves a processed source file out of the input area. Move must
// create the target directory (or key prefix) as needed and must not leave
// the source behind on success.
type Archiver interface {
	Move(ctx context.Context, sourcePath, targetDir, filename string) (string, error)
}
