package s3

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// CoverTypes maps accepted cover MIME types to file extensions.
var CoverTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// CoverKey names a cover object; the timestamp keeps replaced covers from
// being served out of stale caches.
func CoverKey(bookID int64, contentType string, now time.Time) (string, bool) {
	ext, ok := CoverTypes[contentType]
	if !ok {
		return "", false
	}
	return fmt.Sprintf("books/covers/%d-%d.%s", bookID, now.Unix(), ext), true
}

// DeleteObject deletes an object from the bucket (used for cleanup).
func (s *S3Client) DeleteObject(ctx context.Context, objectKey string) error {
	_, err := s.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("s3: delete object %s: %w", objectKey, err)
	}
	return nil
}
