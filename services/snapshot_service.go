package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appConfig "github.com/atelier-ops/shopfloor-scheduler-api/config"
)

// SnapshotInterface defines the interface for schedule snapshot archiving
type SnapshotInterface interface {
	UploadSnapshot(name string, payload []byte) (string, error)
	GetPresignedURL(key string) (string, error)
}

// SnapshotService archives JSON snapshots of the scheduling state to S3
type SnapshotService struct {
	client *s3.Client
	bucket string
}

var snapshotServiceInstance SnapshotInterface

// InitSnapshotService initializes the snapshot service with AWS credentials
func InitSnapshotService() (SnapshotInterface, error) {
	cfg := appConfig.GetConfig()

	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.AWSRegion),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	snapshotServiceInstance = &SnapshotService{
		client: s3.NewFromConfig(awsConfig),
		bucket: cfg.AWSS3Bucket,
	}

	return snapshotServiceInstance, nil
}

// GetSnapshotService returns the initialized snapshot service instance
func GetSnapshotService() SnapshotInterface {
	return snapshotServiceInstance
}

// SetSnapshotService sets the snapshot service instance (primarily for testing)
func SetSnapshotService(service SnapshotInterface) {
	snapshotServiceInstance = service
}

// UploadSnapshot stores a JSON payload under snapshots/<date>/<name>.json and
// returns the object key
func (s *SnapshotService) UploadSnapshot(name string, payload []byte) (string, error) {
	key := fmt.Sprintf("snapshots/%s/%s.json", time.Now().Format("2006-01-02"), name)

	_, err := s.client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot to S3: %w", err)
	}

	return key, nil
}

// GetPresignedURL generates a time-limited download URL for a stored snapshot
func (s *SnapshotService) GetPresignedURL(key string) (string, error) {
	if key == "" {
		return "", &ValidationError{Field: "key", Reason: "snapshot key is required"}
	}

	presignClient := s3.NewPresignClient(s.client)
	request, err := presignClient.PresignGetObject(context.TODO(), &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = 15 * time.Minute
	})
	if err != nil {
		return "", fmt.Errorf("failed to presign snapshot URL: %w", err)
	}

	return request.URL, nil
}
