package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/shadowbtc/shadowvault/internal/common"
	"github.com/shadowbtc/shadowvault/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubS3 replaces the AWS seams for the duration of the test and records
// what was uploaded.
type stubS3 struct {
	region, endpoint string
	bucket, key      string
	body             []byte
	expires          time.Duration

	loadErr, putErr, presignErr error
}

func (st *stubS3) install(t *testing.T) {
	t.Helper()

	origLoad, origNew, origPre := loadDefaultAWSConfig, newS3ClientFromConfig, newS3PresignClient
	origPut, origGet := putObject, presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig, newS3ClientFromConfig, newS3PresignClient = origLoad, origNew, origPre
		putObject, presignGetObject = origPut, origGet
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		st.region = lo.Region
		return aws.Config{}, st.loadErr
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var o s3.Options
		for _, fn := range optFns {
			fn(&o)
		}
		st.endpoint = aws.ToString(o.BaseEndpoint)
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient { return &s3.PresignClient{} }
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		if st.putErr != nil {
			return nil, st.putErr
		}
		st.bucket, st.key = aws.ToString(in.Bucket), aws.ToString(in.Key)
		b, err := io.ReadAll(in.Body)
		require.NoError(t, err)
		st.body = b
		return &s3.PutObjectOutput{}, nil
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		if st.presignErr != nil {
			return nil, st.presignErr
		}
		var po s3.PresignOptions
		for _, fn := range optFns {
			fn(&po)
		}
		st.expires = po.Expires
		return &v4.PresignedHTTPRequest{URL: "https://s3.local/" + aws.ToString(in.Key) + "?sig"}, nil
	}
}

func TestGetRandomReportKey(t *testing.T) {
	k := GetRandomReportKey(time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC))
	assert.Regexp(t, regexp.MustCompile(`^reports/2026/03/07/[0-9a-f-]{36}\.json$`), k)
	assert.NotEqual(t, k, GetRandomReportKey(time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC)))
}

func TestExportReport_UploadsAndPresigns(t *testing.T) {
	ctx := context.Background()
	s := newTestLedger(t, nil)
	st := &stubS3{}
	st.install(t)

	c, err := s.Mint(ctx, "h1", 1.5)
	require.NoError(t, err)
	require.NoError(t, s.Spend(ctx, "n1", "p", c.ID))
	_, err = s.Mint(ctx, "h2", 2)
	require.NoError(t, err)

	stored, err := s.ExportReport(ctx)
	require.NoError(t, err)

	assert.Equal(t, "us-east-1", st.region)
	assert.Equal(t, "http://127.0.0.1:9000/", st.endpoint)
	assert.Equal(t, "shadowvault", st.bucket)
	assert.Equal(t, st.key, stored.Key)
	assert.Equal(t, "https://s3.local/"+st.key+"?sig", stored.URL)
	assert.Equal(t, ReportURLValidity, st.expires)

	var report models.Report
	require.NoError(t, json.Unmarshal(st.body, &report))
	assert.Equal(t, 2.0, report.Stats.TVL)
	assert.Equal(t, int64(3), report.Stats.HistoryCount)
	require.Len(t, report.History, 3)
	assert.Equal(t, common.KindMint, report.History[0].Kind)
	assert.Equal(t, 2.0, report.History[0].Amount)
}

func TestExportReport_EmptyLedger(t *testing.T) {
	s := newTestLedger(t, nil)
	st := &stubS3{}
	st.install(t)

	_, err := s.ExportReport(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(mustField(t, st.body, "history")))
}

func TestExportReport_Errors(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name string
		stub *stubS3
		want string
	}{
		{"config", &stubS3{loadErr: boom}, "s3 config"},
		{"upload", &stubS3{putErr: boom}, "upload report"},
		{"presign", &stubS3{presignErr: boom}, "presign report"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestLedger(t, nil)
			tt.stub.install(t)

			_, err := s.ExportReport(context.Background())
			require.ErrorIs(t, err, boom)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func mustField(t *testing.T, body []byte, field string) json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &m))
	return m[field]
}
