// Package fsx is the file-manager backend for browsing mounted volumes:
// directory listing with hidden-file awareness, copy/move/delete, and
// volume usage for the status line.
package fsx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/disk"
)

// Entry is one directory member.
type Entry struct {
	Path    string
	Name    string
	IsDir   bool
	Size    int64
	ModTime time.Time
	Hidden  bool
}

// ListOptions controls directory listing.
type ListOptions struct {
	IncludeHidden bool
}

// Service performs filesystem operations on behalf of the UI layer. It is
// stateless; every call works directly against the filesystem.
type Service struct{}

func NewService() *Service { return &Service{} }

// List returns the entries of dir sorted by name, case-insensitively.
// Hidden entries are skipped unless opts.IncludeHidden is set.
func (s *Service) List(dir string, opts ListOptions) ([]Entry, error) {
	members, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(members))
	for _, member := range members {
		path := filepath.Join(dir, member.Name())
		hidden := isHidden(path, member.Name())
		if hidden && !opts.IncludeHidden {
			continue
		}

		info, err := member.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Path:    path,
			Name:    member.Name(),
			IsDir:   member.IsDir(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
			Hidden:  hidden,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
	return entries, nil
}

// Copy copies a file or a directory tree. The destination must not exist.
func (s *Service) Copy(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("destination already exists: %s", dst)
	}
	if info.IsDir() {
		return copyDir(src, dst)
	}
	return copyFile(src, dst, info.Mode())
}

// Move renames src to dst, falling back to copy-then-delete across
// volumes.
func (s *Service) Move(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := s.Copy(src, dst); err != nil {
		return err
	}
	return s.Delete(src)
}

// Delete removes a file or a directory tree.
func (s *Service) Delete(path string) error {
	return os.RemoveAll(path)
}

// CreateDir creates a directory and any missing parents.
func (s *Service) CreateDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// CreateFile creates an empty file, failing when it already exists.
func (s *Service) CreateFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	return f.Close()
}

// Usage reports capacity statistics for the volume holding path.
func (s *Service) Usage(path string) (*disk.UsageStat, error) {
	return disk.Usage(path)
}

func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, mode.Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}

func copyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		return copyFile(path, target, info.Mode())
	})
}
