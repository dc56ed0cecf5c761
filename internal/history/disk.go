package history

import (
	"os"
	"path/filepath"
)

// DiskUsageBytes returns the total on-disk size of the given storage paths.
// A path may be a file (the history blob, the SQLite database and its WAL
// sidecars) or a directory (the search index), summed recursively. Missing
// paths contribute 0.
func DiskUsageBytes(paths ...string) int64 {
	var total int64
	for _, p := range paths {
		if p == "" {
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			total += info.Size()
			// SQLite WAL mode leaves -wal/-shm files beside the database.
			for _, suffix := range []string{"-wal", "-shm"} {
				if side, err := os.Stat(p + suffix); err == nil {
					total += side.Size()
				}
			}
			continue
		}
		_ = filepath.Walk(p, func(_ string, fi os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			if fi != nil && !fi.IsDir() {
				total += fi.Size()
			}
			return nil
		})
	}
	return total
}
