package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	appconfig "pintdiary/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

var storageClient *s3.Client
var storageBucket string
var storagePublicBaseURL string

// InitStorage builds the S3 client for pint photo uploads.
func InitStorage(cfg *appconfig.Config) error {
	storageBucket = cfg.Storage.Bucket
	storagePublicBaseURL = strings.TrimSuffix(cfg.Storage.PublicBaseURL, "/")
	if storagePublicBaseURL == "" {
		storagePublicBaseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Storage.Bucket, cfg.Storage.Region)
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Storage.Region),
	}
	if cfg.Storage.AccessKeyId != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.Storage.AccessKeyId, cfg.Storage.AccessKeySecret, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(), loadOpts...)
	if err != nil {
		return fmt.Errorf("failed to load storage config: %w", err)
	}

	endpoint := cfg.Storage.Endpoint
	storageClient = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return nil
}

// UploadPintPhoto uploads a pint photo and returns its public URL. Keys
// are namespaced per user: pints/<uid>/<uuid>.<ext>.
func UploadPintPhoto(ctx context.Context, uid string, fileHeader *multipart.FileHeader) (string, error) {
	if storageClient == nil {
		return "", fmt.Errorf("storage is not configured")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("pints/%s/%s%s", uid, uuid.NewString(), ext)

	_, err = storageClient.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(storageBucket),
		Key:         aws.String(key),
		Body:        buf,
		ContentType: aws.String(fileHeader.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}

	return fmt.Sprintf("%s/%s", storagePublicBaseURL, key), nil
}
