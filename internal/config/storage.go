// Package config provides environment-driven configuration for the API server.
package config

import "os"

// S3Config holds object-storage settings for CV uploads. Endpoint is
// optional: when set (MinIO or another S3-compatible store) uploads use
// path-style addressing and stored references are built from it; when
// empty the standard AWS regional URL form is used.
type S3Config struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
}

// NewS3Config creates object-storage configuration from environment
// variables. It reads S3_REGION (default: us-east-1), S3_ENDPOINT,
// S3_ACCESS_KEY, S3_SECRET_KEY and S3_BUCKET_NAME (default: cv-uploads).
func NewS3Config() *S3Config {
	region := os.Getenv("S3_REGION")
	if region == "" {
		region = "us-east-1"
	}

	bucket := os.Getenv("S3_BUCKET_NAME")
	if bucket == "" {
		bucket = "cv-uploads"
	}

	return &S3Config{
		Region:    region,
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Bucket:    bucket,
	}
}
