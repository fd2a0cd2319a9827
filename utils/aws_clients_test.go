package utils

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	in  *ses.SendEmailInput
	err error
}

func (f *fakeSES) SendEmail(ctx context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.in = in
	return &ses.SendEmailOutput{}, f.err
}

func TestSESMailerSendResetEmail(t *testing.T) {
	client := &fakeSES{}
	m := NewSESMailer(client, "noreply@example.com", nil)

	require.NoError(t, m.SendResetEmail(context.Background(), "cook@example.com", "Ab12Cd"))
	require.NotNil(t, client.in)
	assert.Equal(t, []string{"cook@example.com"}, client.in.Destination.ToAddresses)
	assert.Equal(t, "noreply@example.com", aws.ToString(client.in.Source))
	assert.Contains(t, aws.ToString(client.in.Message.Body.Text.Data), "Ab12Cd")

	client.err = errors.New("throttled")
	assert.Error(t, m.SendResetEmail(context.Background(), "cook@example.com", "x"))
}

type fakeS3 struct {
	in   *s3.PutObjectInput
	body []byte
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3UploaderUpload(t *testing.T) {
	client := &fakeS3{}
	u := NewS3Uploader(client, "plans", "https://cdn.example.com/")

	url, err := u.Upload(context.Background(), "a/b.json", "application/json", []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a/b.json", url)
	assert.Equal(t, "plans", aws.ToString(client.in.Bucket))
	assert.Equal(t, "application/json", aws.ToString(client.in.ContentType))
	assert.Equal(t, []byte(`{}`), client.body)

	url, err = NewS3Uploader(client, "plans", "").Upload(context.Background(), "k", "text/plain", nil)
	require.NoError(t, err)
	assert.Equal(t, "s3://plans/k", url)

	_, err = NewS3Uploader(client, "", "").Upload(context.Background(), "k", "text/plain", nil)
	assert.Error(t, err)
}
