package parquetutils

import (
	"github.com/cockroachdb/errors"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

// Concurrency is the number of parallel column readers and writers.
var Concurrency int64 = 4

// RowGroupSize is the target size in bytes of a row group.
var RowGroupSize int64 = 128 * 1024 * 1024

// ReadAll reads all records from the parquet file.
func ReadAll[T any](sourceFile source.ParquetFile) ([]T, error) {
	r, err := reader.NewParquetReader(sourceFile, new(T), Concurrency)
	if err != nil {
		return nil, errors.Wrap(err, "can't create parquet reader")
	}
	defer r.ReadStop()

	data := make([]T, r.GetNumRows())
	if err = r.Read(&data); err != nil {
		return nil, errors.Wrap(err, "failed to read parquet data")
	}

	return data, nil
}

// WriteAll writes rows to the parquet file with snappy compression and closes the writer,
// leaving the file itself open for the caller.
func WriteAll[T any](file source.ParquetFile, rows []T) error {
	w, err := writer.NewParquetWriter(file, new(T), Concurrency)
	if err != nil {
		return errors.Wrap(err, "can't create parquet writer")
	}
	w.RowGroupSize = RowGroupSize
	w.CompressionType = parquet.CompressionCodec_SNAPPY

	for i := range rows {
		if err := w.Write(rows[i]); err != nil {
			return errors.Wrapf(err, "failed to write row %d", i)
		}
	}
	if err := w.WriteStop(); err != nil {
		return errors.Wrap(err, "failed to flush parquet writer")
	}
	return nil
}
