package store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/investkeeper/internal/common"
	"github.com/dmitrijs2005/investkeeper/internal/server/models"
)

type fakeObjects struct {
	data   []byte
	getErr error
	putErr error

	lastPut *s3.PutObjectInput
}

func (f *fakeObjects) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.data == nil {
		return nil, &types.NoSuchKey{Message: aws.String("missing")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(f.data))}, nil
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.data = b
	f.lastPut = in
	return &s3.PutObjectOutput{}, nil
}

func stubS3(t *testing.T, objects *fakeObjects) *S3Config {
	t.Helper()

	origLoad := loadDefaultAWSConfig
	origNew := newS3ClientFromConfig
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "us-east-1", lo.Region)
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectAPI {
		var opts s3.Options
		for _, fn := range optFns {
			fn(&opts)
		}
		require.NotNil(t, opts.BaseEndpoint)
		assert.Equal(t, "http://127.0.0.1:9000", *opts.BaseEndpoint)
		assert.True(t, opts.UsePathStyle)
		return objects
	}

	return &S3Config{
		Region:       "us-east-1",
		AccessKey:    "minioadmin",
		SecretKey:    "minioadmin",
		Bucket:       "investkeeper",
		BaseEndpoint: "http://127.0.0.1:9000",
		Key:          "db.json",
	}
}

func TestS3Backend_RoundTrip(t *testing.T) {
	objects := &fakeObjects{}
	cfg := stubS3(t, objects)
	ctx := context.Background()

	b, err := NewS3Backend(ctx, *cfg)
	require.NoError(t, err)

	doc, err := b.Load(ctx)
	require.NoError(t, err, "missing object is an empty document")
	assert.Empty(t, doc.Users)

	doc.Users = append(doc.Users, models.User{ID: 1, UserName: "alice", PasswordHash: "h"})
	require.NoError(t, b.Save(ctx, doc))
	require.NotNil(t, objects.lastPut)
	assert.Equal(t, "investkeeper", *objects.lastPut.Bucket)
	assert.Equal(t, "db.json", *objects.lastPut.Key)
	assert.Equal(t, "application/json", *objects.lastPut.ContentType)

	got, err := b.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Users, 1)
	assert.Equal(t, "alice", got.Users[0].UserName)
}

func TestS3Backend_Errors(t *testing.T) {
	objects := &fakeObjects{}
	cfg := stubS3(t, objects)
	ctx := context.Background()

	b, err := NewS3Backend(ctx, *cfg)
	require.NoError(t, err)

	objects.getErr = errors.New("connection refused")
	_, err = b.Load(ctx)
	require.ErrorIs(t, err, common.ErrStorageUnavailable)

	objects.getErr = nil
	objects.data = []byte("{ nope")
	_, err = b.Load(ctx)
	require.ErrorIs(t, err, common.ErrCorruptDocument)

	objects.putErr = errors.New("access denied")
	err = b.Save(ctx, models.NewDocument())
	require.ErrorIs(t, err, common.ErrStorageUnavailable)
}

func TestNewS3Backend_Validation(t *testing.T) {
	_, err := NewS3Backend(context.Background(), S3Config{Bucket: "b"})
	require.Error(t, err)
}

func TestNewS3Backend_ConfigError(t *testing.T) {
	cfg := stubS3(t, &fakeObjects{})
	loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}

	_, err := NewS3Backend(context.Background(), *cfg)
	require.Error(t, err)
}
