package storage

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nijaru/yt-transcript/errors"
	"github.com/nijaru/yt-transcript/models"
)

type memObjects struct {
	objects map[string][]byte
}

func (m *memObjects) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	m.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = body
	return &s3.PutObjectOutput{}, nil
}

func (m *memObjects) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body, ok := m.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(body))}, nil
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "transcripts/abc/t1.json", ObjectKey("abc", "t1"))
	assert.Equal(t, "transcripts/_/t1.json", ObjectKey("", "t1"))
}

func TestArchiveAndFetch(t *testing.T) {
	mem := &memObjects{objects: map[string][]byte{}}
	client := &SpacesClient{client: mem, bucket: "bucket"}
	ctx := context.Background()

	in := &models.Transcript{
		ID:                "t1",
		VideoID:           "abc",
		RequestedLanguage: "auto",
		Language:          "fr",
		Selected:          true,
		Text:              "Bonjour",
		CreatedAt:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, client.ArchiveTranscript(ctx, in))
	assert.Contains(t, mem.objects, "bucket/transcripts/abc/t1.json")

	got, err := client.FetchTranscript(ctx, "abc", "t1")
	require.NoError(t, err)
	assert.Equal(t, in.Text, got.Text)
	assert.Equal(t, in.Language, got.Language)
	assert.True(t, in.CreatedAt.Equal(got.CreatedAt))

	_, err = client.FetchTranscript(ctx, "abc", "missing")
	assert.True(t, errors.IsNotFound(err))
}
