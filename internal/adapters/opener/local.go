package opener

import (
	"context"
	"io"
	"log"
	"mime"
	"os"
	"path/filepath"

	"vas_import/internal/ports"
)

// LocalOpener reads report files dropped into the input directory on disk.
type LocalOpener struct{}

func NewLocalOpener() *LocalOpener { return &LocalOpener{} }

func (l *LocalOpener) Open(ctx context.Context, path string) (io.ReadCloser, ports.Meta, error) {
	log.Printf("[OPENER][LOCAL][START] path=%q", path)
	f, err := os.Open(path)
	if err != nil {
		log.Printf("[OPENER][LOCAL][ERR] open: %v", err)
		return nil, ports.Meta{}, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		log.Printf("[OPENER][LOCAL][ERR] stat: %v", err)
		return nil, ports.Meta{}, err
	}
	ct := mime.TypeByExtension(filepath.Ext(path))
	log.Printf("[OPENER][LOCAL][OK] size=%d content_type=%q", st.Size(), ct)
	return f, ports.Meta{
		Source:      "local",
		ContentType: ct,
		Size:        st.Size(),
		Key:         path,
	}, nil
}
