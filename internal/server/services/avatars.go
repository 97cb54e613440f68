package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/civichub/internal/common"
	sc "github.com/dmitrijs2005/civichub/internal/server/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// AvatarUploadExpiry bounds how long a presigned avatar URL stays valid.
const AvatarUploadExpiry = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// AvatarUpload is a presigned PUT target plus the URL the object will be
// readable at once uploaded.
type AvatarUpload struct {
	URL       string `json:"url"`
	Key       string `json:"key"`
	PublicURL string `json:"publicUrl"`
}

// avatarProfiles is the slice of ProfileService the avatar flow needs.
type avatarProfiles interface {
	SetAvatar(ctx context.Context, id, url string) error
}

// AvatarService hands out presigned S3 PUT URLs for profile pictures.
type AvatarService struct {
	config   *sc.Config
	profiles avatarProfiles
}

// NewAvatarService constructs an AvatarService that records the uploaded
// avatar's public URL through profiles.
func NewAvatarService(cfg *sc.Config, profiles *ProfileService) *AvatarService {
	return &AvatarService{config: cfg, profiles: profiles}
}

var imageExt = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// avatarKey builds the object key "avatars/<user>/<random><ext>". The
// extension is derived from contentType; unknown image types get none.
func avatarKey(userID, contentType string) string {
	return fmt.Sprintf("avatars/%s/%s%s", userID, newID(), imageExt[contentType])
}

// getPresignClient builds a presign client from the static S3 credentials
// in the config. Path-style addressing keeps MinIO-style endpoints working.
func (s *AvatarService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// RequestUpload presigns a PUT for a new avatar of userID and points the
// profile at its public URL.
func (s *AvatarService) RequestUpload(ctx context.Context, userID, contentType string) (*AvatarUpload, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: content type %q is not an image", common.ErrorValidation, contentType)
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("presign client: %w", err)
	}

	bucket := s.config.S3Bucket
	key := avatarKey(userID, contentType)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(AvatarUploadExpiry))
	if err != nil {
		return nil, fmt.Errorf("presign put: %w", err)
	}

	up := &AvatarUpload{
		URL:       req.URL,
		Key:       key,
		PublicURL: s.config.AvatarBaseURL() + "/" + key,
	}

	if err := s.profiles.SetAvatar(ctx, userID, up.PublicURL); err != nil {
		return nil, err
	}

	return up, nil
}
