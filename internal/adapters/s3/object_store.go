// Package s3 implements the object storage port on top of any S3-compatible
// endpoint (AWS, MinIO, or a cloud provider's compatible API).
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/plantflix/marketplace/internal/ports"
)

// Config holds connection settings for the object store.
type Config struct {
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	// PublicBaseURL is prepended to object keys to form the URL stored on
	// products. Defaults to "<endpoint>/<bucket>" when empty.
	PublicBaseURL string
}

// ObjectStore stores product images in an S3 bucket.
type ObjectStore struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

var _ ports.ObjectStore = (*ObjectStore)(nil)

// New creates an ObjectStore from config, using static credentials and a
// custom base endpoint so self-hosted S3-compatible stores work too.
func New(ctx context.Context, cfg Config) (*ObjectStore, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithBaseEndpoint(cfg.Endpoint),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, cfg.SecretKey, "",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		baseURL = strings.TrimSuffix(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}

	return &ObjectStore{
		client:  s3.NewFromConfig(awsCfg),
		bucket:  cfg.Bucket,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Put stores content under key and returns its public URL.
func (o *ObjectStore) Put(ctx context.Context, in ports.PutObjectInput) (string, error) {
	if in.Key == "" {
		return "", errors.New("object key is required")
	}

	_, err := o.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(o.bucket),
		Key:         aws.String(in.Key),
		Body:        bytes.NewReader(in.Content),
		ContentType: aws.String(in.ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", in.Key, err)
	}
	return o.baseURL + "/" + in.Key, nil
}

// Get downloads the object stored under key.
func (o *ObjectStore) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := o.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object body %s: %w", key, err)
	}
	return data, nil
}

// Delete removes the object stored under key.
func (o *ObjectStore) Delete(ctx context.Context, key string) error {
	_, err := o.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

// Exists reports whether an object is stored under key.
func (o *ObjectStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := o.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("head object %s: %w", key, err)
	}
	return true, nil
}
