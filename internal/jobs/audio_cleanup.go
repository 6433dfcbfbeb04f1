package jobs

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// AudioCleanup deletes synthesized audio artifacts past their TTL. Refs
// handed to clients are best-effort after that point, which is the deal:
// clips exist long enough to be played, not archived.
type AudioCleanup struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// NewAudioCleanup creates a cleanup processor for the audio directory.
func NewAudioCleanup(dir string, ttl time.Duration) *AudioCleanup {
	return &AudioCleanup{dir: dir, ttl: ttl, now: time.Now}
}

// ProcessJobs removes expired artifacts. Only tts_*.mp3 files are touched.
func (c *AudioCleanup) ProcessJobs(_ context.Context) error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	cutoff := c.now().Add(-c.ttl)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "tts_") || !strings.HasSuffix(entry.Name(), ".mp3") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(c.dir, entry.Name())); err != nil {
				log.Printf("audio cleanup: failed to remove %s: %v", entry.Name(), err)
				continue
			}
			removed++
		}
	}

	if removed > 0 {
		log.Printf("audio cleanup: removed %d expired artifacts", removed)
	}
	return nil
}
