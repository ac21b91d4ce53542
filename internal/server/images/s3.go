package images

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Settings configures an S3-compatible backend (AWS or MinIO).
type S3Settings struct {
	User         string
	Password     string
	Bucket       string
	Region       string
	BaseEndpoint string
}

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store writes each upload as a new object; earlier uploads are kept.
type S3Store struct {
	client putObjectAPI
	bucket string
	now    func() time.Time
}

func NewS3Store(ctx context.Context, s S3Settings) (*S3Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(s.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(s.User, s.Password, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("s3 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.BaseEndpoint)
		o.UsePathStyle = true
	})

	return &S3Store{client: client, bucket: s.Bucket, now: time.Now}, nil
}

// ObjectKey builds the storage key for a new upload of accountID.
func ObjectKey(accountID string, d time.Time) string {
	return fmt.Sprintf("maps/%s/%d/%02d/%02d/%v", accountID, d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *S3Store) Put(ctx context.Context, accountID string, image string) error {
	key := ObjectKey(accountID, s.now())

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(image),
		ContentType: aws.String(contentType(image)),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

// contentType picks the MIME type out of a data URL, defaulting to
// text/plain for anything else.
func contentType(image string) string {
	rest, ok := strings.CutPrefix(image, "data:")
	if !ok {
		return "text/plain"
	}
	mime, _, ok := strings.Cut(rest, ";")
	if !ok || mime == "" {
		return "text/plain"
	}
	return mime
}
