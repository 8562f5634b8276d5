package booking

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/turno-scheduler/internal/browser"
)

const artifactTimestampLayout = "20060102_150405"

// artifactPath names artifacts with a local-time timestamp so repeated
// attempts within one run never collide.
func artifactPath(dir, prefix, ext string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.%s", prefix, now.Format(artifactTimestampLayout), ext))
}

func downloadExt(dl browser.Download) string {
	if ext := strings.TrimPrefix(filepath.Ext(dl.SuggestedFilename()), "."); ext != "" {
		return ext
	}
	return "pdf"
}
