package storage

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/nijaru/yt-transcript/config"
	"github.com/nijaru/yt-transcript/errors"
	"github.com/nijaru/yt-transcript/models"
)

// Archiver stores finished transcripts outside the local database.
type Archiver interface {
	ArchiveTranscript(ctx context.Context, t *models.Transcript) error
	FetchTranscript(ctx context.Context, videoID, id string) (*models.Transcript, error)
}

type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type SpacesClient struct {
	client objectAPI
	bucket string
}

func NewSpacesClient(ctx context.Context, cfg config.SpacesConfig) (*SpacesClient, error) {
	const op = "storage.NewSpacesClient"

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, errors.Internal(op, err, "unable to load SDK config")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
	})

	return &SpacesClient{client: client, bucket: cfg.Bucket}, nil
}

// ObjectKey is the bucket key a transcript is archived under.
func ObjectKey(videoID, id string) string {
	if videoID == "" {
		videoID = "_"
	}
	return fmt.Sprintf("transcripts/%s/%s.json", videoID, id)
}

func (s *SpacesClient) ArchiveTranscript(ctx context.Context, t *models.Transcript) error {
	const op = "SpacesClient.ArchiveTranscript"

	data, err := json.Marshal(t)
	if err != nil {
		return errors.Internal(op, err, "failed to marshal transcript")
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(ObjectKey(t.VideoID, t.ID)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return errors.Internal(op, err, "failed to save to Spaces")
	}

	return nil
}

func (s *SpacesClient) FetchTranscript(ctx context.Context, videoID, id string) (*models.Transcript, error) {
	const op = "SpacesClient.FetchTranscript"

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ObjectKey(videoID, id)),
	})
	if err != nil {
		var missing *types.NoSuchKey
		if stderrors.As(err, &missing) {
			return nil, errors.NotFound(op, err, "Transcript not archived")
		}
		return nil, errors.Internal(op, err, "failed to get from Spaces")
	}
	defer result.Body.Close()

	var t models.Transcript
	if err := json.NewDecoder(result.Body).Decode(&t); err != nil {
		return nil, errors.Internal(op, err, "failed to decode transcript")
	}

	return &t, nil
}
