package pipeline

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

var reportsHeader = []string{
	"index", "code", "kind", "duration_h", "distance_km", "speed_kmh", "calories_kcal", "message",
}

type reportParquetRow struct {
	Index        int64   `parquet:"name=index, type=INT64"`
	Code         string  `parquet:"name=code, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Kind         string  `parquet:"name=kind, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	DurationH    float64 `parquet:"name=duration_h, type=DOUBLE"`
	DistanceKM   float64 `parquet:"name=distance_km, type=DOUBLE"`
	SpeedKMH     float64 `parquet:"name=speed_kmh, type=DOUBLE"`
	CaloriesKcal float64 `parquet:"name=calories_kcal, type=DOUBLE"`
	Message      string  `parquet:"name=message, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// reportJSONRow mirrors ReportRow for JSON output. encoding/json rejects
// Inf and NaN, so non-finite values are written as null.
type reportJSONRow struct {
	Index        int      `json:"index"`
	Code         string   `json:"code"`
	Kind         string   `json:"kind"`
	DurationH    *float64 `json:"duration_h"`
	DistanceKM   *float64 `json:"distance_km"`
	SpeedKMH     *float64 `json:"speed_kmh"`
	CaloriesKcal *float64 `json:"calories_kcal"`
	Message      string   `json:"message"`
}

// MarshalReports renders rows in the given format (parquet|csv|json) without
// touching the filesystem.
func MarshalReports(rows []ReportRow, format string) ([]byte, error) {
	format, err := normalizeFormat(format)
	if err != nil {
		return nil, err
	}
	switch format {
	case "csv":
		var buf bytes.Buffer
		if err := encodeReportsCSV(&buf, rows); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "json":
		var buf bytes.Buffer
		if err := encodeJSON(&buf, reportJSONRows(rows)); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return MarshalReportsParquet(rows)
	}
}

// MarshalReportsParquet encodes rows as a snappy-compressed parquet file in memory.
func MarshalReportsParquet(rows []ReportRow) ([]byte, error) {
	fw := parquetbuffer.NewBufferFile()
	if err := encodeReportsParquet(fw, rows); err != nil {
		return nil, err
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return append([]byte(nil), fw.Bytes()...), nil
}

func writeReportsCSV(path string, rows []ReportRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return encodeReportsCSV(f, rows)
}

func encodeReportsCSV(out io.Writer, rows []ReportRow) error {
	w := csv.NewWriter(out)
	if err := w.Write(reportsHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.Index),
			r.Code,
			r.Kind,
			formatFloat(r.DurationH),
			formatFloat(r.DistanceKM),
			formatFloat(r.SpeedKMH),
			formatFloat(r.CaloriesKcal),
			r.Message,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeReportsJSON(path string, rows []ReportRow) error {
	return writeJSON(path, reportJSONRows(rows))
}

func reportJSONRows(rows []ReportRow) []reportJSONRow {
	out := make([]reportJSONRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, reportJSONRow{
			Index:        r.Index,
			Code:         r.Code,
			Kind:         r.Kind,
			DurationH:    finiteOrNil(r.DurationH),
			DistanceKM:   finiteOrNil(r.DistanceKM),
			SpeedKMH:     finiteOrNil(r.SpeedKMH),
			CaloriesKcal: finiteOrNil(r.CaloriesKcal),
			Message:      r.Message,
		})
	}
	return out
}

func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func writeReportsParquet(path string, rows []ReportRow) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	if err := encodeReportsParquet(fw, rows); err != nil {
		_ = fw.Close()
		return err
	}
	return fw.Close()
}

func encodeReportsParquet(fw source.ParquetFile, rows []ReportRow) error {
	pw, err := writer.NewParquetWriter(fw, new(reportParquetRow), 4)
	if err != nil {
		return err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	for _, r := range rows {
		row := reportParquetRow{
			Index:        int64(r.Index),
			Code:         r.Code,
			Kind:         r.Kind,
			DurationH:    r.DurationH,
			DistanceKM:   r.DistanceKM,
			SpeedKMH:     r.SpeedKMH,
			CaloriesKcal: r.CaloriesKcal,
			Message:      r.Message,
		}
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			return fmt.Errorf("write parquet row %d: %w", r.Index, err)
		}
	}
	return pw.WriteStop()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
