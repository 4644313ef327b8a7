// Package artifact packages model directories and sample payloads into
// tar.gz archives and pushes them to platform object storage. Archives are
// opaque to the platform; only their storage URIs matter downstream.
package artifact

import (
	"archive/tar"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Info describes a packed archive.
type Info struct {
	Path      string
	SizeBytes int64
	SHA256    string
	Files     int
}

// Pack archives the contents of srcDir into a tar.gz at outPath and returns
// the archive's size and digest. Paths inside the archive are relative to
// srcDir. Symlinks and other non-regular files are skipped; model archives
// carry weights and scripts, nothing else.
func Pack(srcDir, outPath string) (Info, error) {
	var info Info

	stat, err := os.Stat(srcDir)
	if err != nil {
		return info, fmt.Errorf("stat source dir: %w", err)
	}
	if !stat.IsDir() {
		return info, fmt.Errorf("source %q is not a directory", srcDir)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return info, fmt.Errorf("create archive: %w", err)
	}
	defer out.Close()

	hash := sha256.New()
	gz := gzip.NewWriter(io.MultiWriter(out, hash))
	tw := tar.NewWriter(gz)

	err = filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return err
		}

		name := filepath.ToSlash(rel)
		if d.IsDir() {
			hdr := &tar.Header{
				Name:     name + "/",
				Mode:     int64(fi.Mode().Perm()),
				Typeflag: tar.TypeDir,
				ModTime:  fi.ModTime(),
			}
			return tw.WriteHeader(hdr)
		}
		if !fi.Mode().IsRegular() {
			return nil
		}

		hdr := &tar.Header{
			Name:    name,
			Mode:    int64(fi.Mode().Perm()),
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if _, err := io.Copy(tw, f); err != nil {
			return err
		}
		info.Files++
		return nil
	})
	if err != nil {
		return info, fmt.Errorf("pack %q: %w", srcDir, err)
	}

	if err := tw.Close(); err != nil {
		return info, fmt.Errorf("finalize tar: %w", err)
	}
	if err := gz.Close(); err != nil {
		return info, fmt.Errorf("finalize gzip: %w", err)
	}
	if err := out.Sync(); err != nil {
		return info, fmt.Errorf("sync archive: %w", err)
	}

	outStat, err := out.Stat()
	if err != nil {
		return info, fmt.Errorf("stat archive: %w", err)
	}

	info.Path = outPath
	info.SizeBytes = outStat.Size()
	info.SHA256 = hex.EncodeToString(hash.Sum(nil))
	return info, nil
}

// ValidateModelDir checks that a model directory carries the inference
// entry-point script the serving container expects.
func ValidateModelDir(dir, entryScript string) error {
	if entryScript == "" {
		return nil
	}
	path := filepath.Join(dir, entryScript)
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("entry-point script %q not found in %s", entryScript, dir)
		}
		return fmt.Errorf("stat entry-point script: %w", err)
	}
	if stat.IsDir() {
		return fmt.Errorf("entry-point %q is a directory", entryScript)
	}
	return nil
}

// FileSHA256 hashes a file on disk.
func FileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, f); err != nil {
		return "", fmt.Errorf("hash %q: %w", path, err)
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

// DefaultKey derives an object-storage key for an archive from a caller
// prefix and the archive filename.
func DefaultKey(prefix, archivePath string) string {
	prefix = strings.Trim(prefix, "/")
	base := filepath.Base(archivePath)
	if prefix == "" {
		return base
	}
	return prefix + "/" + base
}
