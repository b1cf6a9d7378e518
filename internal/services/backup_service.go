package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"repair-backend/internal/config"
	"repair-backend/internal/store"
	"repair-backend/internal/timeutil"
)

// BackupService exports a read-only snapshot to an S3-compatible bucket
// (R2 in production). Exports never mutate the record store.
type BackupService struct {
	Store  *store.RecordStore
	cfg    *config.Config
	client *s3.Client
}

// NewBackupService builds the service. Returns an error when the bucket is
// not configured; the caller decides whether that is fatal (it is not — the
// shop can run without cloud backups).
func NewBackupService(st *store.RecordStore, cfg *config.Config) (*BackupService, error) {
	if cfg.Backup.Bucket == "" || cfg.Backup.AccessKey == "" {
		return nil, fmt.Errorf("backup bucket not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Backup.AccessKey,
			cfg.Backup.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Backup.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("configure backup client: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Backup.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Backup.Endpoint)
		}
	})

	return &BackupService{Store: st, cfg: cfg, client: client}, nil
}

// Run uploads the current snapshot and returns the object key.
func (s *BackupService) Run(ctx context.Context) (string, error) {
	snap := s.Store.Export()

	payload, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	key := fmt.Sprintf("backups/snapshot-%s.json", timeutil.Now().Format("20060102-150405"))

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Backup.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("upload snapshot: %w", err)
	}

	log.Printf("[Backup] snapshot uploaded to %s (%d bytes)", key, len(payload))
	return key, nil
}
