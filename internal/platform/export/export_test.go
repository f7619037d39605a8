package export

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	Name  string
	Notes string
	Party int
}

var rowColumns = []Column[row]{
	{Header: "name", Value: func(r row) string { return r.Name }},
	{Header: "notes", Value: func(r row) string { return r.Notes }},
	{Header: "party_size", Value: func(r row) string { return strconv.Itoa(r.Party) }},
}

func TestCSVQuotesPerRFC4180(t *testing.T) {
	body, err := CSV(rowColumns, []row{
		{Name: "Ana", Notes: "terraza, ventana", Party: 4},
		{Name: `Luis "Lucho"`, Notes: "línea1\nlínea2", Party: 2},
	})
	require.NoError(t, err)

	want := "name,notes,party_size\n" +
		"Ana,\"terraza, ventana\",4\n" +
		"\"Luis \"\"Lucho\"\"\",\"línea1\nlínea2\",2\n"
	assert.Equal(t, want, string(body))
}

func TestCSVHeaderOnlyWhenEmpty(t *testing.T) {
	body, err := CSV(rowColumns, nil)
	require.NoError(t, err)
	assert.Equal(t, "name,notes,party_size\n", string(body))
}

func TestFileSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	location, err := FileSink{Dir: dir}.Put(context.Background(), "activity.csv", []byte("a,b\n"), ContentTypeCSV)
	require.NoError(t, err)
	data, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(data))
}

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, f.err
}

func TestS3Sink(t *testing.T) {
	_, err := NewS3Sink(&fakeS3{}, " ", "")
	assert.ErrorIs(t, err, ErrMissingBucket)

	client := &fakeS3{}
	sink, err := NewS3Sink(client, "mesaya-exports", "/dashboard/")
	require.NoError(t, err)

	location, err := sink.Put(context.Background(), "messages.csv", []byte("x\n"), ContentTypeCSV)
	require.NoError(t, err)
	assert.Equal(t, "s3://mesaya-exports/dashboard/messages.csv", location)
	assert.Equal(t, "dashboard/messages.csv", aws.ToString(client.input.Key))
	assert.Equal(t, ContentTypeCSV, aws.ToString(client.input.ContentType))
	assert.Equal(t, "x\n", string(client.body))

	client.err = errors.New("AccessDenied")
	_, err = sink.Put(context.Background(), "messages.csv", []byte("x\n"), ContentTypeCSV)
	assert.ErrorContains(t, err, "AccessDenied")
}

func TestNewS3ClientUsesEndpoint(t *testing.T) {
	client := NewS3Client(S3Config{Endpoint: "http://localhost:9000"})
	opts := client.Options()
	assert.Equal(t, "eu-west-1", opts.Region)
	assert.Equal(t, "http://localhost:9000", aws.ToString(opts.BaseEndpoint))
	assert.True(t, opts.UsePathStyle)
}
