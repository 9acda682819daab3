package archive

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// LocalArchiver moves processed report files into the archive tree on disk.
type LocalArchiver struct{}

func NewLocalArchiver() *LocalArchiver { return &LocalArchiver{} }

// Move relocates sourcePath into targetDir under filename, creating the
// directory as needed. An existing target gets a numeric suffix instead of
// being overwritten.
func (a *LocalArchiver) Move(ctx context.Context, sourcePath, targetDir, filename string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		log.Printf("[ARCHIVE][LOCAL][ERR] mkdir %q: %v", targetDir, err)
		return "", err
	}

	target := filepath.Join(targetDir, filename)
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)
	for i := 1; ; i++ {
		if _, err := os.Stat(target); os.IsNotExist(err) {
			break
		}
		target = filepath.Join(targetDir, fmt.Sprintf("%s_%d%s", base, i, ext))
	}

	if err := os.Rename(sourcePath, target); err != nil {
		log.Printf("[ARCHIVE][LOCAL][ERR] move %q -> %q: %v", sourcePath, target, err)
		return "", err
	}
	log.Printf("[ARCHIVE][LOCAL][OK] %q -> %q", sourcePath, target)
	return target, nil
}
