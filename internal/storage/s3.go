package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

type S3Options struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	// PublicURL is the prefix objects are served from. Defaults to
	// {Endpoint}/object/public/{Bucket}, the layout of Supabase storage.
	PublicURL string
}

type S3Storage struct {
	bucket    string
	publicURL string
	s3Client  *s3.S3
	uploader  *s3manager.Uploader
}

func NewS3Storage(opts S3Options) (*S3Storage, error) {
	awsConfig := aws.NewConfig().WithRegion(opts.Region)
	if opts.Endpoint != "" {
		awsConfig = awsConfig.WithEndpoint(opts.Endpoint).WithS3ForcePathStyle(true)
	}
	if opts.AccessKey != "" {
		awsConfig = awsConfig.WithCredentials(credentials.NewStaticCredentials(opts.AccessKey, opts.SecretKey, ""))
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 session: %w", err)
	}

	publicURL := opts.PublicURL
	if publicURL == "" {
		if opts.Endpoint != "" {
			publicURL = joinURL(opts.Endpoint, "object/public/"+opts.Bucket)
		} else {
			publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, opts.Region)
		}
	}

	client := s3.New(sess)
	return &S3Storage{
		bucket:    opts.Bucket,
		publicURL: publicURL,
		s3Client:  client,
		uploader:  s3manager.NewUploaderWithClient(client),
	}, nil
}

func (s *S3Storage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	input := &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Body:        r,
	}
	if _, err := s.uploader.UploadWithContext(ctx, input); err != nil {
		return "", fmt.Errorf("%w: upload %s: %v", ErrUnavailable, key, err)
	}
	return joinURL(s.publicURL, key), nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrUnavailable, key, err)
	}
	return nil
}

func (s *S3Storage) KeyFromURL(publicURL string) string {
	return keyAfterMarker(publicURL, s.bucket)
}
