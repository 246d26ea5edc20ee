package services

import (
	"bytes"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	s3iface.S3API
	inputs []*s3.PutObjectInput
	bodies [][]byte
}

func (f *fakeS3) PutObjectWithContext(_ aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

// formFile builds a multipart upload the way a browser would send it.
func formFile(t *testing.T, name string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	header := form.File["file"][0]
	file, err := header.Open()
	require.NoError(t, err)
	t.Cleanup(func() { file.Close() })
	return file, header
}

func TestUploadFileToLocalDisk(t *testing.T) {
	cfg := testConfig(t)
	svc, err := NewStorageService(cfg)
	require.NoError(t, err)

	content := []byte("%PDF-1.4 certificate")
	file, header := formFile(t, "Certificate.PDF", content)

	res, err := svc.UploadFile(ctx, file, header, SurveyUploadOptions())
	require.NoError(t, err)
	assert.Equal(t, "local", res.Storage)
	assert.Equal(t, "application/pdf", res.MimeType)
	assert.Equal(t, int64(len(content)), res.Size)
	assert.True(t, strings.HasPrefix(res.Key, "survey-responses/"))
	assert.True(t, strings.HasSuffix(res.Key, ".pdf"))
	assert.Equal(t, "http://localhost:8080/uploads/"+res.Key, res.URL)

	stored, err := os.ReadFile(filepath.Join(cfg.AWS.UploadDir, filepath.FromSlash(res.Key)))
	require.NoError(t, err)
	assert.Equal(t, content, stored)
}

func TestUploadFileToS3(t *testing.T) {
	cfg := testConfig(t)
	client := &fakeS3{}
	svc := NewStorageServiceWithClient(cfg, client)

	file, header := formFile(t, "evidence.csv", []byte("supplier,plan\nA,yes\n"))
	res, err := svc.UploadFile(ctx, file, header, SurveyUploadOptions())
	require.NoError(t, err)

	require.Len(t, client.inputs, 1)
	assert.Equal(t, "test-bucket", aws.StringValue(client.inputs[0].Bucket))
	assert.Equal(t, res.Key, aws.StringValue(client.inputs[0].Key))
	assert.Equal(t, "supplier,plan\nA,yes\n", string(client.bodies[0]))
	assert.Equal(t, "s3", res.Storage)
	assert.Equal(t, "https://test-bucket.s3.us-east-1.amazonaws.com/"+res.Key, res.URL)

	cfg.AWS.CloudFrontURL = "https://cdn.test/"
	file, header = formFile(t, "evidence.png", []byte("\x89PNG\r\n\x1a\n"))
	res, err = svc.UploadFile(ctx, file, header, SurveyUploadOptions())
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/"+res.Key, res.URL)
	assert.Equal(t, "image/png", res.MimeType)
}

func TestUploadFileRejects(t *testing.T) {
	svc, err := NewStorageService(testConfig(t))
	require.NoError(t, err)

	file, header := formFile(t, "payload.exe", []byte("MZ"))
	_, err = svc.UploadFile(ctx, file, header, SurveyUploadOptions())
	assert.ErrorIs(t, err, ErrInvalidInput)

	file, header = formFile(t, "big.pdf", bytes.Repeat([]byte("a"), 64))
	_, err = svc.UploadFile(ctx, file, header, UploadOptions{MaxSize: 16})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
