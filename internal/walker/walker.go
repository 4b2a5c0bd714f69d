// Package walker discovers the files of an asset tree.
package walker

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
)

// DefaultMaxFileSize is the largest asset copied into a build (20 MB).
const DefaultMaxFileSize int64 = 20 << 20

// FileInfo holds metadata about a single file discovered during traversal.
type FileInfo struct {
	RelPath     string // Slash-separated path relative to the root.
	Size        int64
	ContentHash string // SHA-256 hex digest of the file content.
}

// Config controls the behaviour of Walk.
type Config struct {
	Include     []string // Glob patterns; only matching files are included.
	Exclude     []string // Glob patterns; matching files are excluded.
	MaxFileSize int64    // Larger files are skipped (0 = use default).
}

// Walk traverses fsys and returns metadata for every regular file that
// passes filtering, in lexical order.
func Walk(fsys fs.FS, config Config) ([]FileInfo, error) {
	if fsys == nil {
		return nil, fmt.Errorf("walker: nil file system")
	}
	maxSize := config.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	var files []FileInfo
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if p == "." {
			return nil
		}
		if shouldExclude(d.Name()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		if !MatchesInclude(p, config.Include) || MatchesExclude(p, config.Exclude) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.Size() > maxSize {
			return nil
		}

		hash, err := HashFile(fsys, p)
		if err != nil {
			return err
		}
		files = append(files, FileInfo{RelPath: p, Size: info.Size(), ContentHash: hash})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walker: traversal: %w", err)
	}
	return files, nil
}

// HashFile computes the SHA-256 digest of the named file.
func HashFile(fsys fs.FS, name string) (string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
