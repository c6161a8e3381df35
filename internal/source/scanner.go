package source

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/theirongolddev/revtrack/internal/model"
)

const exportPrefix = "revenue_export_"

// ScanDir walks dir and discovers every .csv file under it, sorted by path.
// A missing directory yields no files.
func ScanDir(dir string) ([]DiscoveredFile, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return []DiscoveredFile{discovered(dir)}, nil
	}

	var files []DiscoveredFile
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // skip unreadable entries
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".csv") {
			return nil
		}
		files = append(files, discovered(path))
		return nil
	})

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, err
}

func discovered(path string) DiscoveredFile {
	return DiscoveredFile{Path: path, ExportedOn: exportDate(filepath.Base(path))}
}

// exportDate extracts the day from an export file name:
//
//	"revenue_export_2025-01-19.csv" -> 2025-01-19
//	"revenue_export_2025-01-19 (1).csv" -> 2025-01-19
//	"ledger.csv" -> zero
func exportDate(name string) time.Time {
	if !strings.HasPrefix(name, exportPrefix) {
		return time.Time{}
	}
	rest := strings.TrimPrefix(name, exportPrefix)
	if len(rest) < len("2006-01-02") {
		return time.Time{}
	}
	d, err := model.ParseDay(rest[:len("2006-01-02")])
	if err != nil {
		return time.Time{}
	}
	return d
}
