package contacts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/ekazarova/rolodex/internal/models"
)

// s3API is the subset of the S3 client the repository uses; tests provide a
// fake implementation.
type s3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Repository stores the collection blob as a single JSON object in a
// bucket, the same way the original backend keeps per-session state.
type S3Repository struct {
	client s3API
	bucket string
	key    string
}

func NewS3Repository(client s3API, bucket, key string) *S3Repository {
	return &S3Repository{client: client, bucket: bucket, key: key}
}

// NewS3Client builds an S3 client from the default credential chain. An
// empty endpoint uses AWS proper; set it to point at minio and the like.
func NewS3Client(ctx context.Context, region, endpoint string) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func (r *S3Repository) LoadAll(ctx context.Context) ([]models.Contact, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return []models.Contact{}, nil
		}
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read collection object: %w", err)
	}
	return decodeCollection(data)
}

func (r *S3Repository) SaveAll(ctx context.Context, collection []models.Contact) error {
	data, err := encodeCollection(collection)
	if err != nil {
		return err
	}

	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(r.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to save collection: %w", err)
	}
	return nil
}
