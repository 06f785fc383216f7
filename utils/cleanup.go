package utils

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/gbinu42/hudra-media/config"
)

// StartCleanupScheduler starts the hourly temp-directory sweep. Requests
// release their own temp files; the sweep is a backstop for files orphaned
// by a crashed process.
func StartCleanupScheduler(tempRoot string) *cron.Cron {
	c := cron.New()

	c.AddFunc(config.CleanupInterval, func() {
		CleanupOrphans(tempRoot)
	})

	c.Start()

	// Run cleanup on startup
	go CleanupOrphans(tempRoot)

	log.Println("[Cleanup] Scheduler started")
	return c
}

// CleanupOrphans removes temp files older than MaxTempAge.
func CleanupOrphans(tempRoot string) {
	entries, err := os.ReadDir(tempRoot)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[Cleanup] Error reading temp directory: %v\n", err)
		}
		return
	}

	now := time.Now()
	deleted := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		age := now.Sub(info.ModTime())
		if age <= config.MaxTempAge {
			continue
		}

		path := filepath.Join(tempRoot, entry.Name())
		if err := os.Remove(path); err == nil {
			deleted++
			log.Printf("[Cleanup] Deleted orphaned temp file: %s (age: %v)\n", entry.Name(), age.Round(time.Minute))
		}
	}

	if deleted > 0 {
		log.Printf("[Cleanup] Finished. Deleted %d files\n", deleted)
	}
}
