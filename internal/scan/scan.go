// Package scan walks the hand-written site tree for files to publish.
package scan

import (
	"os"
	"path/filepath"
	"strings"
)

type FileInfo struct {
	Path  string
	Rel   string // slash-separated path under the site root
	Mtime int64
	Size  int64
}

// IsHTML reports whether the asset is a page that receives the shared
// navigation and theme switcher.
func (f FileInfo) IsHTML() bool {
	return strings.EqualFold(filepath.Ext(f.Path), ".html")
}

// Assets lists every publishable file under root. Hidden files and
// directories are skipped. A missing root yields no files.
func Assets(root string) ([]FileInfo, error) {
	var files []FileInfo
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil // skip unreadable entries
		}
		base := filepath.Base(path)
		if info.IsDir() {
			if path != root && strings.HasPrefix(base, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(base, ".") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		files = append(files, FileInfo{
			Path:  path,
			Rel:   filepath.ToSlash(rel),
			Mtime: info.ModTime().Unix(),
			Size:  info.Size(),
		})
		return nil
	})
	if os.IsNotExist(err) {
		return nil, nil
	}
	return files, err
}

// Unchanged reports whether dst already holds a copy of f, judged by size
// and modification time.
func Unchanged(f FileInfo, dst string) bool {
	info, err := os.Stat(dst)
	if err != nil {
		return false
	}
	return info.Size() == f.Size && info.ModTime().Unix() == f.Mtime
}
