package listing

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3 lists route files stored under a key prefix of an S3 bucket.
//
// Example usage:
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	p := listing.NewS3(s3.NewFromConfig(cfg), "my-bucket", "app/routes/", nil)
//	paths, err := p.List(ctx)
type S3 struct {
	Filter

	client s3.ListObjectsV2APIClient
	bucket string
	prefix string
}

// NewS3 creates an S3 provider. Keys are reported relative to prefix.
func NewS3(client s3.ListObjectsV2APIClient, bucket, prefix string, extensions []string) *S3 {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &S3{
		Filter: Filter{Extensions: extensions},
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// List implements Provider.
func (s *S3) List(ctx context.Context) ([]string, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
	}
	if s.prefix != "" {
		input.Prefix = aws.String(s.prefix)
	}

	var paths []string
	pager := s3.NewListObjectsV2Paginator(s.client, input)
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing s3://%s/%s: %w", s.bucket, s.prefix, err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if strings.HasSuffix(key, "/") {
				continue
			}
			paths = append(paths, strings.TrimPrefix(key, s.prefix))
		}
	}

	return s.finish(paths), nil
}
