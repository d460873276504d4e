package storage

import (
	"bytes"
	"context"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Archive хранит исходные XML-документы пакетов.
type Archive interface {
	// Put сохраняет документ под ключом key.
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// URL отдаёт ссылку на документ, действующую expiry.
	URL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinioArchive — архив в S3-совместимом хранилище.
type MinioArchive struct {
	client *minio.Client
	bucket string
}

// New создаёт архив. Без Endpoint документы держатся в памяти процесса.
func New(opts Options) (Archive, error) {
	if opts.Endpoint == "" {
		return NewMemory(), nil
	}
	cli, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MinioArchive{client: cli, bucket: opts.Bucket}, nil
}

// EnsureBucket создаёт bucket, если его ещё нет.
func (a *MinioArchive) EnsureBucket(ctx context.Context) error {
	ok, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil || ok {
		return err
	}
	return a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{})
}

func (a *MinioArchive) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	return err
}

// URL — presigned GET на expiry.
func (a *MinioArchive) URL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := a.client.PresignedGetObject(ctx, a.bucket, key, expiry, nil)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

var _ Archive = (*MinioArchive)(nil)
