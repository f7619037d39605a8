package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"mesaYaDash/internal/platform/export"
)

// exportTarget is where an export command stores its CSV: a local file by
// default, S3 with --s3 or --s3-bucket.
type exportTarget struct {
	out    string
	toS3   bool
	bucket string
	prefix string
}

func (t *exportTarget) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&t.out, "out", "o", "", "output file (default <name>-<timestamp>.csv)")
	cmd.Flags().BoolVar(&t.toS3, "s3", false, "upload to EXPORT_S3_BUCKET")
	cmd.Flags().StringVar(&t.bucket, "s3-bucket", "", "upload to this bucket")
	cmd.Flags().StringVar(&t.prefix, "s3-prefix", "", "object key prefix (default EXPORT_S3_PREFIX)")
}

func (cl *cli) sink(t exportTarget) (export.Sink, error) {
	bucket := t.bucket
	if bucket == "" && t.toS3 {
		bucket = cl.cfg.Export.S3Bucket
	}
	if bucket == "" {
		if t.toS3 {
			return nil, export.ErrMissingBucket
		}
		return export.FileSink{}, nil
	}
	prefix := t.prefix
	if prefix == "" {
		prefix = cl.cfg.Export.S3Prefix
	}
	client := export.NewS3Client(export.S3Config{Region: cl.cfg.Export.S3Region, Endpoint: cl.cfg.Export.S3Endpoint})
	return export.NewS3Sink(client, bucket, prefix)
}

func (cl *cli) writeExport(cmd *cobra.Command, t exportTarget, name string, body []byte, rows int) error {
	sink, err := cl.sink(t)
	if err != nil {
		return err
	}
	file := t.out
	if file == "" {
		file = fmt.Sprintf("%s-%s.csv", name, time.Now().UTC().Format("20060102-150405"))
	}
	location, err := sink.Put(cmd.Context(), file, body, export.ContentTypeCSV)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported %d rows to %s\n", rows, location)
	return nil
}

// maxExportPages bounds collectPages when the backend keeps reporting a
// larger total than it returns.
const maxExportPages = 500

// collectPages reads pages of limit items starting at 1. A declared total
// larger than the page is trusted; otherwise (bare array replies report their
// own length) only a short or empty page ends the export.
func collectPages[T any](limit int, fetch func(page int) ([]T, int, error)) ([]T, error) {
	var all []T
	for page := 1; page <= maxExportPages; page++ {
		items, total, err := fetch(page)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if len(items) == 0 {
			break
		}
		if total > len(items) {
			if len(all) >= total {
				break
			}
			continue
		}
		if len(items) < limit {
			break
		}
	}
	return all, nil
}
