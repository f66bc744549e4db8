// Package storage uploads inline image payloads to a MinIO/S3 compatible
// object store and hands back durable URLs.
package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/dkovac/relay/internal/config"
)

type ImageStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewImageStore connects to the object store and ensures the bucket exists.
func NewImageStore(cfg *config.Config) (*ImageStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return &ImageStore{
		client:    client,
		bucket:    cfg.MinioBucket,
		publicURL: strings.TrimRight(cfg.MinioPublicURL, "/"),
	}, nil
}

// Upload decodes a base64 data-URI payload ("data:image/png;base64,...."),
// stores it under a fresh key and returns the object's public URL. A bare
// base64 string without the data-URI prefix is accepted as image/png.
func (s *ImageStore) Upload(ctx context.Context, data string) (string, error) {
	contentType, raw, err := decodeDataURI(data)
	if err != nil {
		return "", err
	}

	key := uuid.New().String() + extensionFor(contentType)

	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(raw), int64(len(raw)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, key), nil
}

func decodeDataURI(data string) (contentType string, raw []byte, err error) {
	contentType = "image/png"

	if strings.HasPrefix(data, "data:") {
		meta, body, ok := strings.Cut(data[len("data:"):], ",")
		if !ok {
			return "", nil, fmt.Errorf("malformed data URI")
		}
		if ct, _, _ := strings.Cut(meta, ";"); ct != "" {
			contentType = ct
		}
		data = body
	}

	raw, err = base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", nil, fmt.Errorf("decoding image payload: %w", err)
	}

	return contentType, raw, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
