// Package cache implements the on-disk half of the Batch Driver (spec
// §4.10, §6 "On-disk cache layout"): a content-addressed store for parsed
// reference corpora and built indices, keyed by source-file modification
// times plus a configuration fingerprint.
package cache

import (
	"bytes"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/klauspost/pgzip"
)

// SchemaVersion is bumped whenever the on-disk metadata or blob format
// changes incompatibly; a mismatch is treated as a cache miss, never fatal
// (spec §7 "Cache errors").
const SchemaVersion = 1

// Kind names one of the cached artifact directories named in spec §6:
// parsed copyright, parsed renewal, indices, generic-title model.
type Kind string

const (
	KindRegistration Kind = "registration"
	KindRenewal      Kind = "renewal"
	KindIndex        Kind = "index"
	KindGenericModel Kind = "generic_model"
)

// metadata is the JSON sidecar written next to each blob file, recording
// what would invalidate it.
type metadata struct {
	SchemaVersion int               `json:"schema_version"`
	SourcePaths   []string          `json:"source_paths"`
	SourceMtimes  map[string]int64  `json:"source_mtimes"` // unix nanos, keyed by path
	Fingerprint   string            `json:"fingerprint"`
	WrittenAt     time.Time         `json:"written_at"`
}

// Cache is a directory-rooted content-addressed store. It is read-only
// while a run is executing; writes happen only at cache-build time before
// workers start (spec §5).
type Cache struct {
	dir          string
	forceRefresh bool
	disabled     bool
}

// New builds a Cache rooted at dir.
func New(dir string, forceRefresh, disabled bool) *Cache {
	return &Cache{dir: dir, forceRefresh: forceRefresh, disabled: disabled}
}

func (c *Cache) kindDir(kind Kind) string {
	return filepath.Join(c.dir, string(kind))
}

func (c *Cache) paths(kind Kind, fingerprint string) (metaPath, blobPath string) {
	base := filepath.Join(c.kindDir(kind), fingerprint)
	return base + ".meta.json", base + ".blob.gz"
}

// Fingerprint hashes a configuration string together with the modification
// times of every file under sourcePaths, producing the cache key spec §6
// describes as "source-directory content fingerprint". CRC32 is used for
// the same reason eutils/cache.go reaches for hash/crc32: a fast, good-enough
// checksum for cache-key purposes, not a cryptographic guarantee.
func Fingerprint(sourcePaths []string, configFingerprint string) (string, map[string]int64, error) {
	mtimes := make(map[string]int64)
	var allFiles []string

	for _, root := range sourcePaths {
		err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}
			mtimes[path] = info.ModTime().UnixNano()
			allFiles = append(allFiles, path)
			return nil
		})
		if err != nil {
			return "", nil, fmt.Errorf("fingerprinting %s: %w", root, err)
		}
	}

	sort.Strings(allFiles)
	h := crc32.NewIEEE()
	io.WriteString(h, configFingerprint)
	for _, f := range allFiles {
		fmt.Fprintf(h, "%s:%d;", f, mtimes[f])
	}

	return fmt.Sprintf("%08x", h.Sum32()), mtimes, nil
}

// Load returns the cached blob for (kind, fingerprint) if present and still
// valid (recorded mtimes match current ones). A miss, corruption, or
// schema mismatch all return (nil, false, nil): cache errors are never
// fatal (spec §7).
func (c *Cache) Load(kind Kind, fingerprint string, sourcePaths []string) ([]byte, bool, error) {
	if c.disabled || c.forceRefresh {
		return nil, false, nil
	}

	metaPath, blobPath := c.paths(kind, fingerprint)

	metaBytes, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, false, nil
	}
	var meta metadata
	if err := json.Unmarshal(metaBytes, &meta); err != nil {
		return nil, false, nil
	}
	if meta.SchemaVersion != SchemaVersion || meta.Fingerprint != fingerprint {
		return nil, false, nil
	}
	if !mtimesStillValid(meta.SourceMtimes, sourcePaths) {
		return nil, false, nil
	}

	blobFile, err := os.Open(blobPath)
	if err != nil {
		return nil, false, nil
	}
	defer blobFile.Close()

	gz, err := pgzip.NewReader(blobFile)
	if err != nil {
		return nil, false, nil
	}
	defer gz.Close()

	data, err := io.ReadAll(gz)
	if err != nil {
		return nil, false, nil
	}

	return data, true, nil
}

func mtimesStillValid(recorded map[string]int64, sourcePaths []string) bool {
	_, current, err := Fingerprint(sourcePaths, "")
	if err != nil {
		return false
	}
	if len(current) != len(recorded) {
		return false
	}
	for path, mtime := range recorded {
		if current[path] != mtime {
			return false
		}
	}
	return true
}

// Store writes data as the blob for (kind, fingerprint), gzip-compressed via
// pgzip, alongside metadata recording sourcePaths' mtimes.
func (c *Cache) Store(kind Kind, fingerprint string, sourcePaths []string, data []byte) error {
	if c.disabled {
		return nil
	}

	dir := c.kindDir(kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating cache dir %s: %w", dir, err)
	}

	_, mtimes, err := Fingerprint(sourcePaths, "")
	if err != nil {
		return err
	}

	metaPath, blobPath := c.paths(kind, fingerprint)

	meta := metadata{
		SchemaVersion: SchemaVersion,
		SourcePaths:   sourcePaths,
		SourceMtimes:  mtimes,
		Fingerprint:   fingerprint,
		WrittenAt:     time.Now(),
	}
	metaBytes, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(metaPath, metaBytes, 0o644); err != nil {
		return fmt.Errorf("writing cache metadata %s: %w", metaPath, err)
	}

	var buf bytes.Buffer
	gz := pgzip.NewWriter(&buf)
	if _, err := gz.Write(data); err != nil {
		return fmt.Errorf("compressing cache blob: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("closing cache blob writer: %w", err)
	}
	if err := os.WriteFile(blobPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing cache blob %s: %w", blobPath, err)
	}

	return nil
}

// EntryInfo describes one cached artifact for the `cache info` subcommand.
type EntryInfo struct {
	Kind        Kind
	Fingerprint string
	SizeBytes   int64
	WrittenAt   time.Time
}

// Info enumerates every cached artifact under the cache directory, grouped
// by kind, for the `cache info` CLI subcommand (spec §6).
func (c *Cache) Info() ([]EntryInfo, error) {
	var entries []EntryInfo
	kinds := []Kind{KindRegistration, KindRenewal, KindIndex, KindGenericModel}

	for _, kind := range kinds {
		dir := c.kindDir(kind)
		files, err := os.ReadDir(dir)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if filepath.Ext(f.Name()) != ".json" {
				continue
			}
			metaBytes, err := os.ReadFile(filepath.Join(dir, f.Name()))
			if err != nil {
				continue
			}
			var meta metadata
			if err := json.Unmarshal(metaBytes, &meta); err != nil {
				continue
			}
			_, blobPath := c.paths(kind, meta.Fingerprint)
			size := int64(0)
			if stat, err := os.Stat(blobPath); err == nil {
				size = stat.Size()
			}
			entries = append(entries, EntryInfo{
				Kind:        kind,
				Fingerprint: meta.Fingerprint,
				SizeBytes:   size,
				WrittenAt:   meta.WrittenAt,
			})
		}
	}

	return entries, nil
}

// ClearAll removes the entire cache directory (spec §6 "clear_all
// operation").
func (c *Cache) ClearAll() error {
	return os.RemoveAll(c.dir)
}
