package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/BillSync-api/internal/infrastructure/storage"
	"github.com/jhoicas/BillSync-api/pkg/config"
)

func TestPublicBase(t *testing.T) {
	assert.Equal(t, "https://cdn.bill-sync.com",
		storage.PublicBase(config.S3Config{Bucket: "logos", PublicURL: "https://cdn.bill-sync.com/"}))
	assert.Equal(t, "http://minio:9000/logos",
		storage.PublicBase(config.S3Config{Bucket: "logos", Endpoint: "http://minio:9000"}))
	assert.Equal(t, "https://logos.s3.ap-south-1.amazonaws.com",
		storage.PublicBase(config.S3Config{Bucket: "logos", Region: "ap-south-1"}))
}
