package importer

import (
	"context"
	"fmt"
	"log"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"vas_import/internal/repository/auditlog"
)

// BatchResult summarizes one sweep of the input directory.
type BatchResult struct {
	Scanned   int          `json:"scanned"`
	Processed int          `json:"processed"`
	Failed    int          `json:"failed"`
	Files     []FileResult `json:"files"`
}

// RunBatch sweeps the input directory and processes every spreadsheet in
// name order. A failing file is moved to the error folder and the sweep
// continues; one bad report never blocks the rest of the drop.
func (s *Service) RunBatch(ctx context.Context) (BatchResult, error) {
	t0 := time.Now()
	var res BatchResult

	var paths []string
	for _, pattern := range []string{"*.xls", "*.xlsx"} {
		matches, err := filepath.Glob(filepath.Join(s.InputDir, pattern))
		if err != nil {
			return res, fmt.Errorf("scan input dir: %w", err)
		}
		paths = append(paths, matches...)
	}
	// absolute paths keep the opener and archiver on their local branches
	for i, p := range paths {
		if abs, err := filepath.Abs(p); err == nil {
			paths[i] = abs
		}
	}
	sort.Strings(paths)

	res.Scanned = len(paths)
	log.Printf("[IMP][BATCH][START] dir=%q files=%d", s.InputDir, len(paths))

	for _, p := range paths {
		var fr FileResult
		var err error
		if IsParkingFilename(path.Base(p)) {
			fr, err = s.ProcessParkingFile(ctx, p)
		} else {
			fr, err = s.ProcessVasFile(ctx, p)
		}

		if err != nil {
			res.Failed++
			s.moveToErrorFolder(ctx, p)
		} else {
			res.Processed++
		}
		res.Files = append(res.Files, fr)

		if ctx.Err() != nil {
			return res, ctx.Err()
		}
	}

	log.Printf("[IMP][BATCH][DONE] scanned=%d processed=%d failed=%d duration=%s",
		res.Scanned, res.Processed, res.Failed, time.Since(t0))
	return res, nil
}

// IsParkingFilename reports whether a report file belongs to the parking
// pipeline. The operator marks parking exports in the filename itself.
func IsParkingFilename(filename string) bool {
	return strings.Contains(strings.ToLower(filename), "parking")
}

func (s *Service) moveToErrorFolder(ctx context.Context, filePath string) {
	if s.Archiver == nil || s.ErrorDir == "" {
		return
	}
	filename := path.Base(filePath)
	if _, err := s.Archiver.Move(ctx, filePath, s.ErrorDir, filename); err != nil {
		log.Printf("[IMP][BATCH][ERR] move %q to error folder: %v", filename, err)
		s.audit(ctx, "System", "file", "FILE_MOVE_ERROR", fmt.Sprintf("Failed to move %s to error folder: %v", filename, err), auditlog.SeverityError)
		return
	}
	s.audit(ctx, "System", "file", "FILE_MOVED", fmt.Sprintf("Moved %s to error folder", filename), auditlog.SeverityInfo)
}
