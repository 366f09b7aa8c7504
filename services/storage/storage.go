package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/AliaksandrTarashkevich/ppianieal/enums"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Options describe an S3 compatible bucket; an empty Endpoint means AWS itself.
type Options struct {
	Endpoint     string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	SignedURLTTL time.Duration
}

// StorageService signs links to reference images and archives meal photos.
type StorageService struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
	ttl       time.Duration
}

func New(ctx context.Context, opts Options) (*StorageService, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is not set")
	}

	loadOptions := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.AccessKey != "" {
		loadOptions = append(loadOptions, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOptions...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	ttl := opts.SignedURLTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &StorageService{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    opts.Bucket,
		ttl:       ttl,
	}, nil
}

// SignedURL returns a temporary GET link for the object.
func (s *StorageService) SignedURL(ctx context.Context, key string) (string, error) {
	request, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.ttl))
	if err != nil {
		return "", fmt.Errorf("sign %s: %w", key, err)
	}
	return request.URL, nil
}

// UploadMealPhoto stores the photo under meals/<user>/<date>/ and returns its object key.
func (s *StorageService) UploadMealPhoto(ctx context.Context, userID int64, date time.Time, photo []byte) (string, error) {
	key := MealPhotoKey(userID, date, uuid.New().String())
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(photo),
		ContentType: aws.String(http.DetectContentType(photo)),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return key, nil
}

func MealPhotoKey(userID int64, date time.Time, name string) string {
	return path.Join("meals", fmt.Sprint(userID), date.Format(enums.DateLayout), name+".jpg")
}
