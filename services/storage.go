package services

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rpupo63/ambitious-journal-backend/errs"
)

const galleryCacheControl = "max-age=3600"

// objectAPI is the subset of the S3 client ObjectStore calls.
type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// ObjectStore keeps gallery uploads in an S3-compatible bucket (Supabase
// Storage speaks the S3 protocol) and hands out their public URLs.
type ObjectStore struct {
	client    objectAPI
	bucket    string
	publicURL string
	now       func() time.Time
}

type ObjectStoreConfig struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
}

func NewObjectStore(ctx context.Context, cfg ObjectStoreConfig) (*ObjectStore, error) {
	switch {
	case cfg.AccessKeyID == "" || cfg.SecretAccessKey == "":
		return nil, errs.NewEnvironmentVariableError("STORAGE_ACCESS_KEY_ID")
	case cfg.PublicURL == "":
		return nil, errs.NewEnvironmentVariableError("STORAGE_PUBLIC_URL")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, errs.NewConfigError("storage", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = true
	})
	return newObjectStore(client, cfg.Bucket, cfg.PublicURL), nil
}

func newObjectStore(client objectAPI, bucket, publicURL string) *ObjectStore {
	return &ObjectStore{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		now:       time.Now,
	}
}

// GalleryKey builds gallery/<unix-millis>-<random base36>.<ext> for an uploaded file name.
func (s *ObjectStore) GalleryKey(fileName string) string {
	ext := strings.TrimPrefix(path.Ext(fileName), ".")
	if ext == "" {
		ext = "bin"
	}
	random := strconv.FormatUint(rand.Uint64(), 36)
	if len(random) > 6 {
		random = random[:6]
	}
	return fmt.Sprintf("gallery/%d-%s.%s", s.now().UnixMilli(), random, strings.ToLower(ext))
}

// Upload stores body under key and returns its public URL.
func (s *ObjectStore) Upload(ctx context.Context, key, contentType string, size int64, body io.Reader) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
		CacheControl:  aws.String(galleryCacheControl),
	})
	if err != nil {
		return "", errs.NewServiceUnreachableError("storage", err)
	}
	return s.URLFor(key), nil
}

func (s *ObjectStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return errs.NewServiceUnreachableError("storage", err)
	}
	return nil
}

func (s *ObjectStore) URLFor(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, key)
}

// KeyFromURL returns the object key of a URL this store handed out. ok is
// false for images hosted anywhere else.
func (s *ObjectStore) KeyFromURL(url string) (key string, ok bool) {
	prefix := fmt.Sprintf("%s/%s/", s.publicURL, s.bucket)
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key = strings.TrimPrefix(url, prefix)
	return key, key != ""
}
