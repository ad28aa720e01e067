package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	srcDir := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(srcDir, 0o755))
	srcFile := filepath.Join(srcDir, "reg.xml")
	require.NoError(t, os.WriteFile(srcFile, []byte("<records/>"), 0o644))

	c := New(filepath.Join(dir, "cache"), false, false)
	fp, _, err := Fingerprint([]string{srcDir}, "cfg-v1")
	require.NoError(t, err)

	require.NoError(t, c.Store(KindRegistration, fp, []string{srcDir}, []byte("blob-payload")))

	data, ok, err := c.Load(KindRegistration, fp, []string{srcDir})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("blob-payload"), data)
}

func TestLoadMissesWhenSourceFileChanges(t *testing.T) {
	dir := t.TempDir()
	srcDir := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(srcDir, 0o755))
	srcFile := filepath.Join(srcDir, "reg.xml")
	require.NoError(t, os.WriteFile(srcFile, []byte("<records/>"), 0o644))

	c := New(filepath.Join(dir, "cache"), false, false)
	fp, _, err := Fingerprint([]string{srcDir}, "cfg-v1")
	require.NoError(t, err)
	require.NoError(t, c.Store(KindRegistration, fp, []string{srcDir}, []byte("blob-payload")))

	require.NoError(t, os.WriteFile(srcFile, []byte("<records><r/></records>"), 0o644))

	_, ok, err := c.Load(KindRegistration, fp, []string{srcDir})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLoadMissesWhenForceRefresh(t *testing.T) {
	dir := t.TempDir()
	srcDir := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(srcDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "reg.xml"), []byte("x"), 0o644))

	c := New(filepath.Join(dir, "cache"), false, false)
	fp, _, err := Fingerprint([]string{srcDir}, "cfg-v1")
	require.NoError(t, err)
	require.NoError(t, c.Store(KindRegistration, fp, []string{srcDir}, []byte("blob-payload")))

	refreshing := New(filepath.Join(dir, "cache"), true, false)
	_, ok, err := refreshing.Load(KindRegistration, fp, []string{srcDir})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLoadMissesOnCorruptMetadata(t *testing.T) {
	dir := t.TempDir()
	srcDir := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(srcDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "reg.xml"), []byte("x"), 0o644))

	c := New(filepath.Join(dir, "cache"), false, false)
	fp, _, err := Fingerprint([]string{srcDir}, "cfg-v1")
	require.NoError(t, err)
	require.NoError(t, c.Store(KindRegistration, fp, []string{srcDir}, []byte("blob-payload")))

	metaPath, _ := c.paths(KindRegistration, fp)
	require.NoError(t, os.WriteFile(metaPath, []byte("{not json"), 0o644))

	_, ok, err := c.Load(KindRegistration, fp, []string{srcDir})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestInfoListsStoredEntries(t *testing.T) {
	dir := t.TempDir()
	srcDir := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(srcDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "reg.xml"), []byte("x"), 0o644))

	c := New(filepath.Join(dir, "cache"), false, false)
	fp, _, err := Fingerprint([]string{srcDir}, "cfg-v1")
	require.NoError(t, err)
	require.NoError(t, c.Store(KindRegistration, fp, []string{srcDir}, []byte("blob-payload")))

	entries, err := c.Info()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, KindRegistration, entries[0].Kind)
	require.Positive(t, entries[0].SizeBytes)
}

func TestClearAllRemovesCacheDir(t *testing.T) {
	dir := t.TempDir()
	srcDir := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(srcDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "reg.xml"), []byte("x"), 0o644))

	cacheDir := filepath.Join(dir, "cache")
	c := New(cacheDir, false, false)
	fp, _, err := Fingerprint([]string{srcDir}, "cfg-v1")
	require.NoError(t, err)
	require.NoError(t, c.Store(KindRegistration, fp, []string{srcDir}, []byte("blob-payload")))

	require.NoError(t, c.ClearAll())
	_, err = os.Stat(cacheDir)
	require.True(t, os.IsNotExist(err))
}

func TestDisabledCacheNeverStoresOrLoads(t *testing.T) {
	dir := t.TempDir()
	srcDir := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(srcDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "reg.xml"), []byte("x"), 0o644))

	c := New(filepath.Join(dir, "cache"), false, true)
	fp, _, err := Fingerprint([]string{srcDir}, "cfg-v1")
	require.NoError(t, err)
	require.NoError(t, c.Store(KindRegistration, fp, []string{srcDir}, []byte("blob-payload")))

	_, ok, err := c.Load(KindRegistration, fp, []string{srcDir})
	require.NoError(t, err)
	require.False(t, ok)
}
