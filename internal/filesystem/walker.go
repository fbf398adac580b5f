package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/karrick/godirwalk"
	"go.uber.org/zap"

	"dircensus/internal/config"
	"dircensus/pkg/models"
)

// Visitor receives traversal events. File is required, Dir and Err are optional.
type Visitor struct {
	File func(*models.FileRecord) error // called for each regular file
	Dir  func(path string)              // called for each visited directory
	Err  func(path string, err error)   // called for entries whose metadata cannot be read
}

// Walker walks the filesystem and builds file records
type Walker struct {
	config  *config.Config
	logger  *zap.Logger
	exclude map[string]bool
}

// NewWalker creates a new filesystem walker
func NewWalker(cfg *config.Config, logger *zap.Logger) *Walker {
	// Build exclude map for fast lookup
	exclude := make(map[string]bool)
	for _, dir := range cfg.Exclude {
		exclude[dir] = true
	}

	return &Walker{
		config:  cfg,
		logger:  logger,
		exclude: exclude,
	}
}

// Walk visits root according to the configured recursion mode.
// Entries that cannot be read are reported through the Err hook and the
// walk continues with the remaining entries.
func (w *Walker) Walk(root string, visitor Visitor) error {
	if w.config.Recursive {
		return w.walkTree(root, visitor)
	}
	return w.walkShallow(root, visitor)
}

// walkTree recursively walks the directory tree
func (w *Walker) walkTree(root string, visitor Visitor) error {
	return godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if de.IsDir() {
				if path != root && w.shouldExclude(de.Name()) {
					w.logger.Debug("Skipping excluded directory", zap.String("path", path))
					return filepath.SkipDir
				}
				if visitor.Dir != nil {
					visitor.Dir(path)
				}
				return nil
			}
			return w.visitFile(path, de.IsSymlink(), visitor)
		},
		ErrorCallback: func(path string, err error) godirwalk.ErrorAction {
			w.logger.Warn("Error accessing path", zap.String("path", path), zap.Error(err))
			if visitor.Err != nil {
				visitor.Err(path, err)
			}
			return godirwalk.SkipNode // Continue walking
		},
	})
}

// walkShallow lists only the immediate children of root
func (w *Walker) walkShallow(root string, visitor Visitor) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("failed to list directory: %w", err)
	}

	if visitor.Dir != nil {
		visitor.Dir(root)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(root, entry.Name())
		isSymlink := entry.Type()&os.ModeSymlink != 0
		if err := w.visitFile(path, isSymlink, visitor); err != nil {
			return err
		}
	}

	return nil
}

// visitFile stats a single entry and passes the record to the visitor.
// Non-regular entries (broken symlinks, sockets, devices) are skipped.
func (w *Walker) visitFile(path string, isSymlink bool, visitor Visitor) error {
	if !w.config.IncludeHidden && isHidden(filepath.Base(path)) {
		w.logger.Debug("Skipping hidden file", zap.String("path", path))
		return nil
	}

	// Stat follows symlinks so the record describes the target
	info, err := os.Stat(path)
	if err != nil {
		if isSymlink {
			w.logger.Debug("Skipping broken symlink", zap.String("path", path))
			return nil
		}
		w.logger.Warn("Error reading file metadata", zap.String("path", path), zap.Error(err))
		if visitor.Err != nil {
			visitor.Err(path, err)
		}
		return nil
	}

	if !info.Mode().IsRegular() {
		w.logger.Debug("Skipping non-regular file", zap.String("path", path))
		return nil
	}

	record := &models.FileRecord{
		Path:       path,
		Name:       filepath.Base(path),
		Extension:  GetExtension(path),
		Size:       info.Size(),
		ModTime:    info.ModTime(),
		ChangeTime: getChangeTime(info),
		IsSymlink:  isSymlink,
		IsHidden:   isHidden(filepath.Base(path)),
	}

	return visitor.File(record)
}

// shouldExclude checks if a directory should be excluded
func (w *Walker) shouldExclude(name string) bool {
	if w.exclude[name] {
		return true
	}
	if !w.config.IncludeHidden && isHidden(name) {
		return true
	}
	return false
}

// isHidden checks if a file is hidden
func isHidden(name string) bool {
	// Unix-like systems: files starting with dot
	if len(name) > 0 && name[0] == '.' {
		return true
	}
	// TODO: Windows hidden attribute check
	return false
}

// GetExtension returns the file extension without dot
func GetExtension(path string) string {
	ext := filepath.Ext(path)
	if len(ext) > 0 && ext[0] == '.' {
		return ext[1:]
	}
	return ext
}
