package audit

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dgerlanc/offlimits/internal/constants"
	"github.com/klauspost/compress/gzip"
)

// defaultMaxBytes caps the audit log at 10 MiB before rotation.
const defaultMaxBytes = 10 << 20

// maybeRotate compresses the log into <path>.<timestamp>.gz and truncates
// it once it grows past maxBytes. A missing log is fine.
func maybeRotate(path string, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.Size() <= maxBytes {
		return nil
	}

	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	rotated := fmt.Sprintf("%s.%s.gz", path, time.Now().UTC().Format("20060102T150405"))
	dst, err := os.OpenFile(rotated, os.O_CREATE|os.O_EXCL|os.O_WRONLY, constants.FileMode)
	if err != nil {
		return err
	}

	zw := gzip.NewWriter(dst)
	if _, err := io.Copy(zw, src); err != nil {
		zw.Close()
		dst.Close()
		os.Remove(rotated)
		return err
	}
	if err := zw.Close(); err != nil {
		dst.Close()
		os.Remove(rotated)
		return err
	}
	if err := dst.Close(); err != nil {
		return err
	}

	return os.Truncate(path, 0)
}
