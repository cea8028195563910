package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	measurementMu      sync.Mutex
	lastMeasurementTs  string
	measurementCounter int
)

// NextMeasurementID returns a label of the form "YYYYMMDD-HHMMSS-NN" for the
// given timestamp. The counter restarts at 01 each new second.
func NextMeasurementID(ts time.Time) string {
	measurementMu.Lock()
	defer measurementMu.Unlock()
	tsStr := ts.Format("20060102-150405")
	if tsStr == lastMeasurementTs {
		measurementCounter++
	} else {
		lastMeasurementTs = tsStr
		measurementCounter = 1
	}
	return fmt.Sprintf("%s-%02d", tsStr, measurementCounter)
}

// DateSuffix returns the date portion in "02.01.2006" format.
func DateSuffix(t time.Time) string {
	return t.Format("02.01.2006")
}

// BuildPath returns base + suffix + "_" + date + ext. CSV reports append to
// the same dated file for the whole day.
func BuildPath(base, suffix, ext string, t time.Time) string {
	return fmt.Sprintf("%s%s_%s%s", base, suffix, DateSuffix(t), ext)
}

// BuildLogPath returns base + suffix + ext with no date component.
func BuildLogPath(base, suffix, ext string) string {
	return fmt.Sprintf("%s%s%s", base, suffix, ext)
}

// ReportPaths names the files written by a full export of one session.
type ReportPaths struct {
	CSV     string
	Streams string
	TXT     string
	XLSX    string
	PDF     string
}

// BuildReportPaths lays out dated report files under dir. The PDF file name
// carries the measurement ID because each PDF holds a single run.
func BuildReportPaths(dir, base, measurementID string, t time.Time) ReportPaths {
	prefix := filepath.Join(dir, base)
	return ReportPaths{
		CSV:     BuildPath(prefix, "", ".csv", t),
		Streams: BuildPath(prefix, "_streams", ".csv", t),
		TXT:     BuildPath(prefix, "", ".txt", t),
		XLSX:    BuildPath(prefix, "", ".xlsx", t),
		PDF:     BuildLogPath(prefix, "_"+measurementID, ".pdf"),
	}
}

// EnsureDir creates the directory component of path (mkdir -p) with mode 0755.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0755)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
