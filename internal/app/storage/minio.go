package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"

	"github.com/LLLgoyour/StarScope/internal/app/config"
)

// Storage — хранилище PNG-файлов карт в MinIO.
type Storage struct {
	client *minio.Client
	bucket string
}

func NewStorage(cfg config.MinioConfig) (*Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("подключение к MinIO: %w", err)
	}

	// Проверим, что bucket существует
	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("проверка bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("создание bucket: %w", err)
		}
		log.Printf("🪣 Bucket %q создан", cfg.Bucket)
	}
	log.Println("✅ Подключение к MinIO успешно")

	return &Storage{client: client, bucket: cfg.Bucket}, nil
}

// SaveChart кладёт PNG карты под заданным ключом.
func (s *Storage) SaveChart(ctx context.Context, objectKey string, png []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, objectKey,
		bytes.NewReader(png), int64(len(png)),
		minio.PutObjectOptions{ContentType: "image/png"})
	return err
}

// LoadChart читает PNG карты по ключу.
func (s *Storage) LoadChart(ctx context.Context, objectKey string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	return io.ReadAll(obj)
}

// DeleteChart удаляет PNG карты из хранилища.
func (s *Storage) DeleteChart(ctx context.Context, objectKey string) error {
	return s.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{})
}
