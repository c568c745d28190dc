package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/shadowbtc/shadowvault/internal/dbx"
	"github.com/shadowbtc/shadowvault/internal/server/models"
)

// ReportURLValidity is how long the presigned download link stays usable.
const ReportURLValidity = 15 * time.Minute

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// GetRandomReportKey returns a fresh object key under reports/YYYY/MM/DD/.
func GetRandomReportKey(d time.Time) string {
	return fmt.Sprintf("reports/%04d/%02d/%02d/%v.json", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *LedgerService) getS3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// BuildReport reads stats and the full history from one snapshot.
func (s *LedgerService) BuildReport(ctx context.Context) (*models.Report, error) {
	report := &models.Report{GeneratedAt: s.now()}
	err := s.snapshot(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		st, err := s.readStats(ctx, tx)
		if err != nil {
			return err
		}
		report.Stats = *st

		report.History, err = s.repomanager.History(tx).ListAll(ctx)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, "build report", err)
	}
	if report.History == nil {
		report.History = []*models.HistoryEntry{}
	}
	return report, nil
}

// ExportReport uploads a JSON report to the configured bucket and returns
// its key together with a presigned download URL.
func (s *LedgerService) ExportReport(ctx context.Context) (*models.StoredReport, error) {
	report, err := s.BuildReport(ctx)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}

	client, err := s.getS3Client(ctx)
	if err != nil {
		s.logger.Error(ctx, "s3 config error", "error", err)
		return nil, fmt.Errorf("s3 config: %w", err)
	}

	bucket := s.config.S3Bucket
	key := GetRandomReportKey(report.GeneratedAt)

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		s.logger.Error(ctx, "report upload failed", "key", key, "error", err)
		return nil, fmt.Errorf("upload report: %w", err)
	}

	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(ReportURLValidity))
	if err != nil {
		return nil, fmt.Errorf("presign report: %w", err)
	}

	s.logger.Info(ctx, "report exported", "key", key, "entries", len(report.History))
	return &models.StoredReport{Key: key, URL: req.URL}, nil
}
