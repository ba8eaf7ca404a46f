package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Config holds the credential bundle and target for the document store.
// All four credential fields are required; Validate reports every missing
// field at once so misconfiguration surfaces in a single pass.
type Config struct {
	// AccessKeyID is the store access key.
	AccessKeyID string `mapstructure:"access_key_id" yaml:"access_key_id"`

	// SecretAccessKey is the store secret key. Literal "\n" escapes are
	// normalized to real newlines before use (multi-line secrets injected
	// through environment variables arrive escaped).
	SecretAccessKey string `mapstructure:"secret_access_key" yaml:"secret_access_key"`

	// Bucket is the bucket holding all collections.
	Bucket string `mapstructure:"bucket" yaml:"bucket"`

	// Endpoint is the store endpoint URL.
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`

	// Region is optional; the SDK default applies when empty.
	Region string `mapstructure:"region" yaml:"region"`

	// ForcePathStyle forces path-style addressing (MinIO, Localstack).
	ForcePathStyle bool `mapstructure:"force_path_style" yaml:"force_path_style"`
}

// Validate checks the credential bundle. It returns a *CredentialsError
// naming every missing field, or nil when the bundle is complete.
func (c Config) Validate() error {
	var missing []string
	if c.AccessKeyID == "" {
		missing = append(missing, "access_key_id")
	}
	if c.SecretAccessKey == "" {
		missing = append(missing, "secret_access_key")
	}
	if c.Bucket == "" {
		missing = append(missing, "bucket")
	}
	if c.Endpoint == "" {
		missing = append(missing, "endpoint")
	}
	if len(missing) > 0 {
		return &CredentialsError{Missing: missing}
	}
	return nil
}

// MissingFields returns the names of unset required credential fields.
func (c Config) MissingFields() []string {
	var credErr *CredentialsError
	if err := c.Validate(); errors.As(err, &credErr) {
		return credErr.Missing
	}
	return nil
}

// S3Store is the S3-backed implementation of Store.
type S3Store struct {
	client *s3.Client
	bucket string
	now    func() time.Time
}

// NewS3Store validates the credential bundle and builds the store client.
// Validation happens before any SDK construction, so a bad bundle never
// reaches the network.
func NewS3Store(ctx context.Context, cfg Config) (*S3Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	secret := normalizeSecret(cfg.SecretAccessKey)

	var opts []func(*awsconfig.LoadOptions) error
	opts = append(opts, awsconfig.WithCredentialsProvider(
		credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, secret, ""),
	))
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load store config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		if cfg.ForcePathStyle {
			o.UsePathStyle = true
		}
	})

	return NewS3StoreWithClient(client, cfg.Bucket), nil
}

// NewS3StoreWithClient wraps an existing S3 client.
func NewS3StoreWithClient(client *s3.Client, bucket string) *S3Store {
	return &S3Store{
		client: client,
		bucket: bucket,
		now:    time.Now,
	}
}

// normalizeSecret converts literal "\n" escapes to real newlines.
func normalizeSecret(secret string) string {
	return strings.ReplaceAll(secret, `\n`, "\n")
}

// key returns the object key for a document.
func key(collection, name string) string {
	return collection + "/" + name
}

// Get reads and decodes the document at <collection>/<name>.
func (s *S3Store) Get(ctx context.Context, collection, name string) (Document, error) {
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key(collection, name)),
	})
	if err != nil {
		if isNotFoundError(err) {
			return nil, ErrDocumentNotFound
		}
		return nil, WrapConnectivity("failed to read document "+key(collection, name), err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, WrapConnectivity("failed to read document body "+key(collection, name), err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed document %s: %w", key(collection, name), err)
	}

	return doc, nil
}

// Set overwrites the document at <collection>/<name>.
func (s *S3Store) Set(ctx context.Context, collection, name string, fields Document) error {
	doc := normalizeFields(fields, s.now())

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document %s: %w", key(collection, name), err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key(collection, name)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return WrapConnectivity("failed to write document "+key(collection, name), err)
	}

	return nil
}

// Update merge-writes fields into the document, preserving unrelated fields.
// A missing document is treated as empty.
func (s *S3Store) Update(ctx context.Context, collection, name string, fields Document) error {
	existing, err := s.Get(ctx, collection, name)
	if err != nil && !errors.Is(err, ErrDocumentNotFound) {
		return err
	}

	merged := make(Document, len(existing)+len(fields))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range normalizeFields(fields, s.now()) {
		merged[k] = v
	}

	data, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("failed to encode document %s: %w", key(collection, name), err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key(collection, name)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return WrapConnectivity("failed to update document "+key(collection, name), err)
	}

	return nil
}

// ListCollections lists top-level key prefixes in the bucket.
func (s *S3Store) ListCollections(ctx context.Context) ([]string, error) {
	var collections []string

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(s.bucket),
		Delimiter: aws.String("/"),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, WrapConnectivity("failed to list collections", err)
		}

		for _, prefix := range page.CommonPrefixes {
			if prefix.Prefix == nil {
				continue
			}
			collections = append(collections, strings.TrimSuffix(*prefix.Prefix, "/"))
		}
	}

	return collections, nil
}

// isNotFoundError checks if an error is an S3 not found error.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	return strings.Contains(errStr, "NoSuchKey") ||
		strings.Contains(errStr, "NotFound") ||
		strings.Contains(errStr, "404")
}

// Ensure S3Store implements Store.
var _ Store = (*S3Store)(nil)
