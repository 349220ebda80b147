// Package staterec reads and writes the externally-owned record of the
// last-applied registration set.
//
// The record is plain JSON in an S3 bucket. It is only an optimization:
// when absent (first apply, or no bucket configured) the planner diffs
// against the live target group instead.
package staterec

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/nimbusgate/ccfleet/internal/registration"
)

// ObjectAPI is the slice of the S3 client the store needs.
type ObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Store persists registration sets under a fixed bucket.
type Store struct {
	objects ObjectAPI
	bucket  string
}

// New creates a store over an existing object client.
func New(objects ObjectAPI, bucket string) *Store {
	return &Store{objects: objects, bucket: bucket}
}

// NewFromRegion creates a store with its own S3 client.
func NewFromRegion(ctx context.Context, region, bucket string) (*Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return New(s3.NewFromConfig(cfg), bucket), nil
}

// Load returns the last-applied registration set stored under key.
// A missing record returns (nil, nil): the caller falls back to the
// live target group.
func (s *Store) Load(ctx context.Context, key string) ([]registration.Registration, error) {
	out, err := s.objects.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load state record %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read state record %s: %w", key, err)
	}

	var regs []registration.Registration
	if err := json.Unmarshal(data, &regs); err != nil {
		return nil, fmt.Errorf("state record %s is malformed: %w", key, err)
	}
	return regs, nil
}

// Save writes the applied registration set under key.
func (s *Store) Save(ctx context.Context, key string, regs []registration.Registration) error {
	data, err := json.MarshalIndent(regs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state record: %w", err)
	}

	_, err = s.objects.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to save state record %s: %w", key, err)
	}
	return nil
}

func isNoSuchKey(err error) bool {
	var nsk *s3types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NoSuchKey" || code == "NotFound"
	}
	return false
}
