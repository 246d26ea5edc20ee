// internal/services/storage_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/sustainchain-backend/internal/config"
)

// LocalUploadRoute is where files kept on local disk are served.
const LocalUploadRoute = "/uploads"

// StorageService keeps survey attachments in S3 when AWS credentials are
// configured and under the local upload directory otherwise.
type StorageService struct {
	s3Client s3iface.S3API
	config   *config.Config
}

type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
	Storage  string `json:"storage"`
}

type UploadOptions struct {
	Folder       string
	MaxSize      int64 // in bytes
	AllowedTypes []string
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	if cfg.AWS.AccessKeyID == "" {
		logrus.WithField("dir", cfg.AWS.UploadDir).Info("AWS credentials not set, storing uploads on local disk")
		return &StorageService{config: cfg}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   cfg,
	}, nil
}

// NewStorageServiceWithClient uses the given S3 client.
func NewStorageServiceWithClient(cfg *config.Config, client s3iface.S3API) *StorageService {
	return &StorageService{s3Client: client, config: cfg}
}

// SurveyUploadOptions limits survey attachments to documents and images.
func SurveyUploadOptions() UploadOptions {
	return UploadOptions{
		Folder:       "survey-responses",
		MaxSize:      10 * 1024 * 1024, // 10MB
		AllowedTypes: []string{".pdf", ".jpg", ".jpeg", ".png", ".csv", ".xlsx", ".docx"},
	}
}

func (s *StorageService) UploadFile(ctx context.Context, file multipart.File, header *multipart.FileHeader, options UploadOptions) (*UploadResult, error) {
	if options.MaxSize > 0 && header.Size > options.MaxSize {
		return nil, invalidInput("file size %d bytes exceeds maximum allowed size %d bytes", header.Size, options.MaxSize)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if len(options.AllowedTypes) > 0 && !slices.Contains(options.AllowedTypes, ext) {
		return nil, invalidInput("file type %q is not allowed", ext)
	}

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(content)
	}

	key := s.generateKey(header.Filename, options.Folder)
	if s.s3Client != nil {
		return s.uploadToS3(ctx, content, key, contentType)
	}
	return s.uploadToLocal(content, key, contentType)
}

func (s *StorageService) uploadToS3(ctx context.Context, content []byte, key, contentType string) (*UploadResult, error) {
	_, err := s.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(content),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(content))),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &UploadResult{
		URL:      s.s3URL(key),
		Key:      key,
		Size:     int64(len(content)),
		MimeType: contentType,
		Storage:  "s3",
	}, nil
}

func (s *StorageService) uploadToLocal(content []byte, key, contentType string) (*UploadResult, error) {
	dest := filepath.Join(s.config.AWS.UploadDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(dest, content, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write upload: %w", err)
	}

	return &UploadResult{
		URL:      strings.TrimRight(s.config.AWS.PublicBaseURL, "/") + path.Join(LocalUploadRoute, key),
		Key:      key,
		Size:     int64(len(content)),
		MimeType: contentType,
		Storage:  "local",
	}, nil
}

func (s *StorageService) generateKey(originalName, folder string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := fmt.Sprintf("%s_%s%s", time.Now().Format("20060102"), uuid.New().String()[:8], ext)
	if folder != "" {
		return path.Join(folder, name)
	}
	return name
}

func (s *StorageService) s3URL(key string) string {
	if s.config.AWS.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(s.config.AWS.CloudFrontURL, "/"), key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.config.AWS.S3Bucket, s.config.AWS.Region, key)
}
