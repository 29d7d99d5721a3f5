// Package storage provides the S3-compatible object store backing product
// and profile media. It wraps the AWS SDK v2 with path-style addressing so
// MinIO and other self-hosted endpoints work out of the box.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/farmarket/farmarket-api/internal/core/ports"
)

// Config carries the settings for the media bucket.
type Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Folder    string
	PublicURL string // optional CDN/direct URL for stored files
}

// Client stores media objects in a single public bucket, keyed under a
// folder prefix. It implements ports.MediaStorage.
type Client struct {
	s3        *s3.Client
	bucket    string
	folder    string
	endpoint  string
	publicURL string
}

// New creates the media store. Returns (nil, nil) when the endpoint or
// credentials are empty, letting the app start with media features disabled.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, nil
	}

	endpoint := strings.TrimRight(cfg.Endpoint, "/")

	s3Client := s3.New(s3.Options{
		Region:       cfg.Region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	})

	return &Client{
		s3:        s3Client,
		bucket:    cfg.Bucket,
		folder:    strings.Trim(cfg.Folder, "/"),
		endpoint:  endpoint,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

// Upload stores a blob under publicID with public-read ACL and returns the
// stored-object record.
func (c *Client) Upload(ctx context.Context, publicID, contentType string, body io.Reader, size int64) (*ports.UploadedMedia, error) {
	key := c.key(publicID)

	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		ACL:           s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 upload %s/%s: %w", c.bucket, key, err)
	}

	return &ports.UploadedMedia{
		URL:          c.fileURL(key),
		PublicID:     publicID,
		ResourceType: resourceType(contentType),
	}, nil
}

// Delete removes a batch of previously stored objects in one call.
func (c *Client) Delete(ctx context.Context, publicIDs []string) error {
	if len(publicIDs) == 0 {
		return nil
	}

	objects := make([]s3types.ObjectIdentifier, 0, len(publicIDs))
	for _, id := range publicIDs {
		objects = append(objects, s3types.ObjectIdentifier{Key: aws.String(c.key(id))})
	}

	out, err := c.s3.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(c.bucket),
		Delete: &s3types.Delete{Objects: objects, Quiet: aws.Bool(true)},
	})
	if err != nil {
		return fmt.Errorf("s3 delete batch: %w", err)
	}
	if len(out.Errors) > 0 {
		first := out.Errors[0]
		return fmt.Errorf("s3 delete %s: %s", aws.ToString(first.Key), aws.ToString(first.Message))
	}
	return nil
}

func (c *Client) key(publicID string) string {
	if c.folder == "" {
		return publicID
	}
	return c.folder + "/" + publicID
}

// fileURL builds the public URL for a key. The configured public URL wins;
// otherwise a path-style URL against the endpoint is used.
func (c *Client) fileURL(key string) string {
	if c.publicURL != "" {
		return c.publicURL + "/" + key
	}
	return c.endpoint + "/" + c.bucket + "/" + key
}

func resourceType(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return "image"
	case strings.HasPrefix(contentType, "video/"):
		return "video"
	default:
		return "raw"
	}
}
