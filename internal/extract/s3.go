package extract

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3SourceConfig holds configuration for an S3-backed corpus source.
type S3SourceConfig struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Prefix          string
	Pattern         string
	UsePathStyle    bool
}

// S3Source loads documents from objects in an S3-compatible bucket, matching
// object base names against a glob pattern.
type S3Source struct {
	client  *s3.Client
	bucket  string
	prefix  string
	pattern string
}

// NewS3Source creates an S3Source with the given configuration.
func NewS3Source(ctx context.Context, cfg S3SourceConfig) (*S3Source, error) {
	customResolver := aws.EndpointResolverWithOptionsFunc(
		func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			if cfg.Endpoint != "" {
				return aws.Endpoint{
					URL:               cfg.Endpoint,
					HostnameImmutable: true,
				}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		},
	)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
		awsconfig.WithEndpointResolverWithOptions(customResolver),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
	})

	pattern := cfg.Pattern
	if pattern == "" {
		pattern = "*"
	}

	return &S3Source{
		client:  client,
		bucket:  cfg.Bucket,
		prefix:  cfg.Prefix,
		pattern: pattern,
	}, nil
}

// Extract lists matching objects under the configured prefix and downloads
// each one as a raw document.
func (s *S3Source) Extract(ctx context.Context) ([]RawDocument, error) {
	log.Printf("extract: loading documents from s3://%s/%s (pattern %q)", s.bucket, s.prefix, s.pattern)

	var docs []RawDocument
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects in bucket %s: %w", s.bucket, err)
		}

		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			matched, err := path.Match(s.pattern, path.Base(key))
			if err != nil {
				return nil, fmt.Errorf("invalid file pattern %q: %w", s.pattern, err)
			}
			if !matched {
				continue
			}

			doc, err := s.fetch(ctx, key, aws.ToInt64(obj.Size))
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
	}

	log.Printf("extract: loaded %d documents", len(docs))
	return docs, nil
}

func (s *S3Source) fetch(ctx context.Context, key string, size int64) (RawDocument, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return RawDocument{}, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	defer out.Body.Close()

	content, err := io.ReadAll(out.Body)
	if err != nil {
		return RawDocument{}, fmt.Errorf("failed to read object %s: %w", key, err)
	}

	return RawDocument{
		Content: string(content),
		Metadata: map[string]string{
			"source": fmt.Sprintf("s3://%s/%s", s.bucket, key),
			"etag":   aws.ToString(out.ETag),
			"size":   strconv.FormatInt(size, 10),
		},
	}, nil
}
