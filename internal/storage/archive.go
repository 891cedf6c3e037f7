package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ignite/outreach-planner/internal/pipeline"
)

// Archive exports finished batch reports to S3 for audit retention.
type Archive struct {
	s3Client *s3.Client
	bucket   string
	prefix   string
}

// NewArchive creates an S3-backed batch report archive.
func NewArchive(ctx context.Context, bucket, region, profile, prefix string) (*Archive, error) {
	var cfg aws.Config
	var err error

	if profile != "" {
		cfg, err = config.LoadDefaultConfig(ctx,
			config.WithRegion(region),
			config.WithSharedConfigProfile(profile),
		)
	} else {
		cfg, err = config.LoadDefaultConfig(ctx,
			config.WithRegion(region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	if prefix == "" {
		prefix = "batch-reports"
	}
	return &Archive{
		s3Client: s3.NewFromConfig(cfg),
		bucket:   bucket,
		prefix:   prefix,
	}, nil
}

// SaveBatchReport writes a batch report under a date-partitioned key and
// returns the key used.
func (a *Archive) SaveBatchReport(ctx context.Context, result *pipeline.BatchResult) (string, error) {
	key := fmt.Sprintf("%s/%s/%s.json",
		a.prefix,
		result.GeneratedAt.UTC().Format("2006/01/02"),
		result.BatchID)
	if err := a.saveJSON(ctx, key, result); err != nil {
		return "", err
	}
	return key, nil
}

// GetBatchReport reads a previously archived batch report by key.
func (a *Archive) GetBatchReport(ctx context.Context, key string) (*pipeline.BatchResult, error) {
	result, err := a.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("getting object from S3: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("reading S3 object body: %w", err)
	}

	var report pipeline.BatchResult
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("unmarshaling S3 data: %w", err)
	}
	return &report, nil
}

// ListBatchReports returns archived report keys for a given day.
func (a *Archive) ListBatchReports(ctx context.Context, day time.Time) ([]string, error) {
	prefix := fmt.Sprintf("%s/%s/", a.prefix, day.UTC().Format("2006/01/02"))

	var keys []string
	var token *string
	for {
		out, err := a.s3Client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(a.bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("listing S3 objects: %w", err)
		}
		for _, obj := range out.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
		if out.NextContinuationToken == nil {
			break
		}
		token = out.NextContinuationToken
	}
	return keys, nil
}

func (a *Archive) saveJSON(ctx context.Context, key string, data interface{}) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling data: %w", err)
	}

	_, err = a.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(jsonData),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("putting object to S3: %w", err)
	}
	return nil
}
