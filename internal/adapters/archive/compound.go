package archive

import (
	"context"
	"errors"
	"net/url"
	"path/filepath"
	"strings"
)

// CompoundArchiver routes a processed file to the backend it lives on:
// s3://bucket/key sources move within object storage, everything else is a
// local rename. The bucket archive layout mirrors the local tree, so the
// same targetDir works for both.
type CompoundArchiver struct {
	S3    *S3Archiver
	Local *LocalArchiver
}

func NewCompoundArchiver(s3a *S3Archiver, localA *LocalArchiver) *CompoundArchiver {
	return &CompoundArchiver{S3: s3a, Local: localA}
}

func (c *CompoundArchiver) Move(ctx context.Context, sourcePath, targetDir, filename string) (string, error) {
	if strings.HasPrefix(sourcePath, "s3://") {
		if c.S3 == nil {
			return "", errors.New("s3 archiver not configured")
		}
		u, err := url.Parse(sourcePath)
		if err != nil {
			return "", err
		}
		srcKey := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || srcKey == "" {
			return "", errors.New("empty bucket or key")
		}
		prefix := strings.TrimPrefix(filepath.ToSlash(targetDir), "/")
		targetKey, err := c.S3.MoveObject(ctx, u.Host, srcKey, prefix, filename)
		if err != nil {
			return "", err
		}
		return "s3://" + c.S3.Bucket + "/" + targetKey, nil
	}

	if c.Local == nil {
		return "", errors.New("local archiver not configured")
	}
	return c.Local.Move(ctx, sourcePath, targetDir, filename)
}
