package export

import (
	"bytes"
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/crowdsale/common/errs"
	"github.com/gaze-network/crowdsale/modules/crowdsale/datagateway"
	"github.com/gaze-network/crowdsale/modules/crowdsale/internal/entity"
	"github.com/gaze-network/crowdsale/pkg/decimals"
	"github.com/gaze-network/crowdsale/pkg/logger"
	"github.com/gaze-network/crowdsale/pkg/logger/slogx"
	"github.com/gaze-network/crowdsale/pkg/parquetutils"
	"github.com/samber/lo"
	"github.com/xitongsys/parquet-go-source/local"
)

type S3Config struct {
	Bucket       string `mapstructure:"bucket"`
	Region       string `mapstructure:"region"`
	Endpoint     string `mapstructure:"endpoint"` // optional, for S3 compatible storages
	UsePathStyle bool   `mapstructure:"use_path_style"`
}

type Config struct {
	S3 S3Config `mapstructure:"s3"`
}

// ContributionRow is the parquet schema of an exported contribution. Amounts are
// decimal strings in base units since they may not fit in 64 bits.
type ContributionRow struct {
	Id           int64  `parquet:"name=id, type=INT64"`
	Sender       string `parquet:"name=sender, type=BYTE_ARRAY, convertedtype=UTF8"`
	Amount       string `parquet:"name=amount, type=BYTE_ARRAY, convertedtype=UTF8"`
	BonusPercent int64  `parquet:"name=bonus_percent, type=INT64"`
	BaseTokens   string `parquet:"name=base_tokens, type=BYTE_ARRAY, convertedtype=UTF8"`
	BonusTokens  string `parquet:"name=bonus_tokens, type=BYTE_ARRAY, convertedtype=UTF8"`
	TotalTokens  string `parquet:"name=total_tokens, type=BYTE_ARRAY, convertedtype=UTF8"`
	TotalDisplay string `parquet:"name=total_tokens_display, type=BYTE_ARRAY, convertedtype=UTF8"`
	SecondShare  string `parquet:"name=second_share, type=BYTE_ARRAY, convertedtype=UTF8"`
	PrimaryShare string `parquet:"name=primary_share, type=BYTE_ARRAY, convertedtype=UTF8"`
	CreatedAt    int64  `parquet:"name=created_at, type=INT64, convertedtype=TIMESTAMP_MILLIS"`
}

// Exporter writes the contribution history as a parquet file.
type Exporter struct {
	crowdsaleDg   datagateway.CrowdsaleReaderDataGateway
	tokenDecimals uint8
	config        Config
}

func New(crowdsaleDg datagateway.CrowdsaleReaderDataGateway, tokenDecimals uint8, config Config) *Exporter {
	return &Exporter{
		crowdsaleDg:   crowdsaleDg,
		tokenDecimals: tokenDecimals,
		config:        config,
	}
}

func (e *Exporter) rows(ctx context.Context) ([]ContributionRow, error) {
	contributions, err := e.crowdsaleDg.GetContributions(ctx, -1, 0)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get contributions")
	}
	return lo.Map(contributions, func(c *entity.Contribution, _ int) ContributionRow {
		return ContributionRow{
			Id:           int64(c.ID),
			Sender:       c.Sender.Hex(),
			Amount:       c.Amount.String(),
			BonusPercent: int64(c.BonusPercent),
			BaseTokens:   c.BaseTokens.String(),
			BonusTokens:  c.BonusTokens.String(),
			TotalTokens:  c.TotalTokens.String(),
			TotalDisplay: decimals.FromUint128(c.TotalTokens, e.tokenDecimals).String(),
			SecondShare:  c.SecondShare.String(),
			PrimaryShare: c.PrimaryShare.String(),
			CreatedAt:    c.CreatedAt.UnixMilli(),
		}
	}), nil
}

// Export writes contributions to destination and returns the number of rows written.
// Destinations starting with s3:// are uploaded to the configured bucket, anything
// else is a local file path.
func (e *Exporter) Export(ctx context.Context, destination string) (int, error) {
	ctx = logger.WithContext(ctx, slogx.String("module", "crowdsale"), slogx.String("destination", destination))
	if destination == "" {
		return 0, errors.Wrap(errs.InvalidArgument, "export destination is required")
	}
	rows, err := e.rows(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	if key, ok := strings.CutPrefix(destination, "s3://"); ok {
		if err := e.uploadS3(ctx, key, rows); err != nil {
			return 0, errors.WithStack(err)
		}
	} else {
		if err := writeFile(destination, rows); err != nil {
			return 0, errors.WithStack(err)
		}
	}
	logger.InfoContext(ctx, "contributions exported", slogx.Int("rows", len(rows)))
	return len(rows), nil
}

func writeFile(path string, rows []ContributionRow) (err error) {
	file, err := local.NewLocalFileWriter(path)
	if err != nil {
		return errors.Wrapf(err, "can't create file %s", path)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "can't close file")
		}
	}()
	if err := parquetutils.WriteAll(file, rows); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// uploadS3 uploads rows to key, where key may be prefixed by a bucket name
// overriding the configured one ("bucket/path/to/file.parquet").
func (e *Exporter) uploadS3(ctx context.Context, key string, rows []ContributionRow) error {
	bucket := e.config.S3.Bucket
	if bucket == "" {
		var ok bool
		bucket, key, ok = strings.Cut(key, "/")
		if !ok {
			return errors.Wrap(errs.InvalidArgument, "s3 destination must be s3://bucket/key when no bucket is configured")
		}
	}
	if bucket == "" || key == "" {
		return errors.Wrap(errs.InvalidArgument, "s3 bucket and key are required")
	}

	buf := parquetutils.NewBuffer()
	if err := parquetutils.WriteAll(buf, rows); err != nil {
		return errors.WithStack(err)
	}

	sdkConfig, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return errors.Wrap(err, "can't load aws user config")
	}
	client := s3.NewFromConfig(sdkConfig, func(o *s3.Options) {
		if e.config.S3.Region != "" {
			o.Region = e.config.S3.Region
		}
		if e.config.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(e.config.S3.Endpoint)
		}
		o.UsePathStyle = e.config.S3.UsePathStyle
	})

	out, err := manager.NewUploader(client).Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("application/vnd.apache.parquet"),
	})
	if err != nil {
		return errors.Wrapf(err, "failed to upload to s3://%s/%s", bucket, key)
	}
	logger.DebugContext(ctx, "uploaded export", slogx.String("location", out.Location))
	return nil
}
