package services

import (
	"context"
	"fmt"
	"time"

	"weight-circle-backend/internal/repository"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// AvatarService handles profile avatar uploads via S3 pre-signed URLs
type AvatarService struct {
	profileRepo *repository.ProfileRepository
	s3Client    *s3.Client
	s3Bucket    string
	region      string
}

// NewAvatarService creates a new avatar service
func NewAvatarService(
	profileRepo *repository.ProfileRepository,
	region, bucket, accessKey, secretKey, endpoint string,
) (*AvatarService, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if accessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &AvatarService{
		profileRepo: profileRepo,
		s3Client:    s3Client,
		s3Bucket:    bucket,
		region:      region,
	}, nil
}

// AvatarUploadResponse carries the pre-signed URL a client uploads to
type AvatarUploadResponse struct {
	UploadURL string `json:"upload_url"`
	AvatarURL string `json:"avatar_url"`
	ExpiresIn int    `json:"expires_in"`
}

// GetAvatarUploadURL generates a pre-signed PUT URL for the user's avatar
// and stores the resulting public URL on the profile.
func (s *AvatarService) GetAvatarUploadURL(ctx context.Context, userID, contentType string) (*AvatarUploadResponse, error) {
	s3Key := fmt.Sprintf("avatars/%s.jpg", userID)

	presignClient := s3.NewPresignClient(s.s3Client)
	request, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Bucket),
		Key:         aws.String(s3Key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = 5 * time.Minute
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate pre-signed URL: %w", err)
	}

	avatarURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.s3Bucket, s.region, s3Key)
	if err := s.profileRepo.UpdateAvatarURL(ctx, userID, avatarURL); err != nil {
		return nil, fmt.Errorf("failed to store avatar url: %w", err)
	}

	return &AvatarUploadResponse{
		UploadURL: request.URL,
		AvatarURL: avatarURL,
		ExpiresIn: 300,
	}, nil
}
