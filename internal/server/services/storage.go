package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/cardcraft/internal/common"
	sc "github.com/dmitrijs2005/cardcraft/internal/server/config"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// ObjectLink is a time-limited download link for a stored object.
type ObjectLink struct {
	Key       string
	URL       string
	ExpiresIn time.Duration
}

// ObjectStore keeps generated pass archives in an S3-compatible bucket and
// hands out presigned GET links to them.
type ObjectStore struct {
	config *sc.Config
}

func NewObjectStore(config *sc.Config) *ObjectStore {
	return &ObjectStore{config: config}
}

// Configured reports whether a bucket is set.
func (s *ObjectStore) Configured() bool {
	return s != nil && s.config.S3Bucket != ""
}

func (s *ObjectStore) getClient(ctx context.Context) (*s3.Client, error) {
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

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// StoreKey builds the object key for a pass archive.
func StoreKey(cardID, serial string) string {
	d := now().UTC()
	return fmt.Sprintf("passes/%d/%02d/%02d/%s/%s.pkpass", d.Year(), d.Month(), d.Day(), cardID, serial)
}

// Put uploads body under key and returns a presigned GET link valid for
// the configured pass link validity.
func (s *ObjectStore) Put(ctx context.Context, key, contentType string, body []byte) (*ObjectLink, error) {
	if !s.Configured() {
		return nil, common.ErrorStorageNotConfigured
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("s3 client: %w", err)
	}

	bucket := s.config.S3Bucket

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:        &bucket,
		Key:           &key,
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", key, err)
	}

	validity := s.config.PassLinkValidity
	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(validity))
	if err != nil {
		return nil, fmt.Errorf("presign %s: %w", key, err)
	}

	return &ObjectLink{Key: key, URL: req.URL, ExpiresIn: validity}, nil
}
