package archive

import (
	"context"
	"fmt"
	"log"
	"path"

	"github.com/minio/minio-go/v7"
)

type S3Client interface {
	CopyObject(ctx context.Context, dst minio.CopyDestOptions, src minio.CopySrcOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// S3Archiver moves processed report objects within a bucket. S3 has no
// rename, so it copies then removes the source.
type S3Archiver struct {
	Client S3Client
	Bucket string
}

func NewS3Archiver(cli S3Client, bucket string) *S3Archiver {
	return &S3Archiver{Client: cli, Bucket: bucket}
}

func (a *S3Archiver) Move(ctx context.Context, sourceKey, targetDir, filename string) (string, error) {
	return a.MoveObject(ctx, a.Bucket, sourceKey, targetDir, filename)
}

// MoveObject archives an object from srcBucket into a.Bucket under
// targetDir/filename and removes the source.
func (a *S3Archiver) MoveObject(ctx context.Context, srcBucket, srcKey, targetDir, filename string) (string, error) {
	targetKey := path.Join(targetDir, filename)
	log.Printf("[ARCHIVE][S3][START] %s/%s -> %s/%s", srcBucket, srcKey, a.Bucket, targetKey)

	_, err := a.Client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: a.Bucket, Object: targetKey},
		minio.CopySrcOptions{Bucket: srcBucket, Object: srcKey},
	)
	if err != nil {
		log.Printf("[ARCHIVE][S3][ERR] copy: %v", err)
		return "", fmt.Errorf("s3 copy: %w", err)
	}

	if err := a.Client.RemoveObject(ctx, srcBucket, srcKey, minio.RemoveObjectOptions{}); err != nil {
		log.Printf("[ARCHIVE][S3][ERR] remove source: %v", err)
		return "", fmt.Errorf("s3 remove: %w", err)
	}

	log.Printf("[ARCHIVE][S3][OK] %s/%s -> %s/%s", srcBucket, srcKey, a.Bucket, targetKey)
	return targetKey, nil
}
