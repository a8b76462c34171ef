package imagestore

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUploadRejectsNonImage(t *testing.T) {
	s := &minioStore{bucket: "donations", baseURL: "http://localhost:9000"}

	_, err := s.Upload(context.Background(), "notes.txt", "text/plain", strings.NewReader("hello"), 5)
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestMinioUpload(t *testing.T) {
	endpoint := os.Getenv("AID_TEST_MINIO")
	if endpoint == "" {
		t.Skip("AID_TEST_MINIO is not set")
	}

	s, err := New(context.Background(), Config{
		Endpoint:  endpoint,
		AccessKey: os.Getenv("AID_TEST_MINIO_ACCESS_KEY"),
		SecretKey: os.Getenv("AID_TEST_MINIO_SECRET_KEY"),
		Bucket:    "test-donations",
		PublicURL: "https://cdn.example.com/",
	})
	assert.NoError(t, err)

	url, err := s.Upload(context.Background(), "Coat.JPG", "image/jpeg", strings.NewReader("jpeg"), 4)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://cdn.example.com/test-donations/donations/"))
	assert.True(t, strings.HasSuffix(url, ".jpg"))
}
