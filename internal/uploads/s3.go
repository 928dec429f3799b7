package uploads

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"lawFirmWebsite/internal/config"
)

// Uploader is the subset of *manager.Uploader the S3 store uses.
type Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3Store uploads images to a bucket and returns their public URL under PublicBaseURL.
type S3Store struct {
	uploader      Uploader
	bucket        string
	prefix        string
	publicBaseURL string
}

// NewS3Store builds an uploader from cfg. Static credentials are used when both keys are set,
// otherwise the default AWS credential chain. S3Endpoint targets S3-compatible services.
func NewS3Store(ctx context.Context, cfg config.UploadConfig) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKeyID != "" && cfg.S3SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewS3StoreWithUploader(manager.NewUploader(client), cfg.S3Bucket, cfg.S3Prefix, cfg.S3PublicBaseURL), nil
}

func NewS3StoreWithUploader(uploader Uploader, bucket, prefix, publicBaseURL string) *S3Store {
	return &S3Store{
		uploader:      uploader,
		bucket:        bucket,
		prefix:        prefix,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}
}

func (s *S3Store) Save(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	key := s.prefix + name
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         r,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s to s3: %w", key, err)
	}
	return s.publicBaseURL + "/" + key, nil
}
