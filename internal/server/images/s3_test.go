package images

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	in   *s3.PutObjectInput
	body string
	err  error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = params
	if params.Body != nil {
		b, _ := io.ReadAll(params.Body)
		f.body = string(b)
	}
	return &s3.PutObjectOutput{}, f.err
}

func fixedNow() time.Time { return time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC) }

func TestS3Store_Put(t *testing.T) {
	f := &fakeS3{}
	s := &S3Store{client: f, bucket: "vault", now: fixedNow}

	err := s.Put(context.Background(), "123", "data:image/png;base64,AAAA")
	require.NoError(t, err)

	assert.Equal(t, "vault", aws.ToString(f.in.Bucket))
	assert.True(t, strings.HasPrefix(aws.ToString(f.in.Key), "maps/123/2024/03/07/"), aws.ToString(f.in.Key))
	assert.Equal(t, "image/png", aws.ToString(f.in.ContentType))
	assert.Equal(t, "data:image/png;base64,AAAA", f.body)
}

func TestS3Store_PutError(t *testing.T) {
	f := &fakeS3{err: errors.New("bucket gone")}
	s := &S3Store{client: f, bucket: "vault", now: fixedNow}

	err := s.Put(context.Background(), "123", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket gone")
}

func TestObjectKey_Unique(t *testing.T) {
	a := ObjectKey("1", fixedNow())
	b := ObjectKey("1", fixedNow())
	assert.NotEqual(t, a, b)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/jpeg", contentType("data:image/jpeg;base64,xx"))
	assert.Equal(t, "text/plain", contentType("plain text"))
	assert.Equal(t, "text/plain", contentType("data:;base64,xx"))
	assert.Equal(t, "text/plain", contentType("data:image/png"))
}

func TestNopStore(t *testing.T) {
	var s Store = NopStore{}
	assert.NoError(t, s.Put(context.Background(), "1", "anything"))
}

func TestNewS3Store(t *testing.T) {
	s, err := NewS3Store(context.Background(), S3Settings{
		User: "admin", Password: "secret", Bucket: "vault", Region: "us-east-1", BaseEndpoint: "http://127.0.0.1:9000/",
	})
	require.NoError(t, err)
	assert.Equal(t, "vault", s.bucket)
	assert.NotNil(t, s.client)
}
