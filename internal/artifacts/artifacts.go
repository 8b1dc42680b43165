// Package artifacts optionally archives a completed solve's report to
// S3: config.LoadDefaultConfig resolves credentials and
// manager.NewUploader does the multipart upload, part size and
// concurrency tuned for small report payloads, against plain AWS S3
// rather than a custom endpoint since no object-storage vendor is
// mandated.
package artifacts

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// Report is the archived payload: the final best formula, the
// hall-of-fame, and a code rendering of each, msgpack-encoded for
// storage (the HTTP API and REPL still render/consume JSON/text —
// msgpack is only the archived object's wire format).
type Report struct {
	RunID       string    `msgpack:"run_id"`
	GeneratedAt time.Time `msgpack:"generated_at"`
	BestFormula string    `msgpack:"best_formula"`
	BestFitness float64   `msgpack:"best_fitness"`
	HallOfFame  []string  `msgpack:"hall_of_fame"`
	Code        []string  `msgpack:"code"`
}

// Exporter uploads Reports to a single S3 bucket.
type Exporter struct {
	uploader *manager.Uploader
	bucket   string
	log      zerolog.Logger
}

// NewExporter resolves AWS credentials the standard way
// (environment/shared config/IAM role chain via
// config.LoadDefaultConfig) and builds an Exporter for bucket. Returns
// an error if credentials cannot be resolved at all; callers should
// treat that as "export unavailable" rather than fatal, since export
// is never required for the solver's own termination contract.
func NewExporter(ctx context.Context, bucket string, log zerolog.Logger) (*Exporter, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = 10 * 1024 * 1024
		u.Concurrency = 5
	})

	return &Exporter{
		uploader: uploader,
		bucket:   bucket,
		log:      log.With().Str("component", "artifacts_exporter").Logger(),
	}, nil
}

// Export msgpack-encodes report and uploads it to "<runID>/report.msgpack".
func (e *Exporter) Export(ctx context.Context, report Report) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	payload, err := msgpack.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	key := fmt.Sprintf("%s/report.msgpack", report.RunID)
	_, err = e.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(e.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(payload),
		ContentLength: aws.Int64(int64(len(payload))),
	})
	if err != nil {
		return fmt.Errorf("failed to upload report: %w", err)
	}

	e.log.Info().Str("key", key).Int("bytes", len(payload)).Msg("report exported")
	return nil
}
