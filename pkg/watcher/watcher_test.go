package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const debounce = 50 * time.Millisecond

func startWatcher(t *testing.T) *FileWatcher {
	t.Helper()
	fw, err := NewFileWatcher(debounce, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		fw.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		fw.Close()
	})
	return fw
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestCallbackOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.yaml")
	writeFile(t, path, "a")

	fw := startWatcher(t)
	changed := make(chan string, 1)
	require.NoError(t, fw.Watch(path, func(p string) { changed <- p }))

	writeFile(t, path, "b")

	select {
	case p := <-changed:
		assert.Equal(t, filepath.Base(path), filepath.Base(p))
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestCallbackOnAtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.yaml")
	writeFile(t, path, "a")

	fw := startWatcher(t)
	var calls atomic.Int32
	require.NoError(t, fw.Watch(path, func(string) { calls.Add(1) }))

	tmp := filepath.Join(dir, ".project.yaml.tmp")
	writeFile(t, tmp, "b")
	require.NoError(t, os.Rename(tmp, path))

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 5*time.Second, 10*time.Millisecond)
}

func TestWritesAreDebounced(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.yaml")
	writeFile(t, path, "a")

	fw := startWatcher(t)
	var calls atomic.Int32
	require.NoError(t, fw.Watch(path, func(string) { calls.Add(1) }))

	for i := 0; i < 5; i++ {
		writeFile(t, path, "burst")
	}

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 5*time.Second, 10*time.Millisecond)
	time.Sleep(10 * debounce)
	assert.Equal(t, int32(1), calls.Load())
}

func TestOtherFilesAreIgnored(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.yaml")
	writeFile(t, path, "a")

	fw := startWatcher(t)
	var calls atomic.Int32
	require.NoError(t, fw.Watch(path, func(string) { calls.Add(1) }))

	writeFile(t, filepath.Join(dir, "other.yaml"), "x")
	time.Sleep(10 * debounce)
	assert.Zero(t, calls.Load())
}

func TestUnwatch(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.yaml")
	second := filepath.Join(dir, "second.yaml")
	writeFile(t, first, "a")
	writeFile(t, second, "a")

	fw := startWatcher(t)
	var firstCalls, secondCalls atomic.Int32
	require.NoError(t, fw.Watch(first, func(string) { firstCalls.Add(1) }))
	require.NoError(t, fw.Watch(second, func(string) { secondCalls.Add(1) }))

	require.NoError(t, fw.Unwatch(first))
	writeFile(t, first, "b")
	writeFile(t, second, "b")

	assert.Eventually(t, func() bool { return secondCalls.Load() >= 1 }, 5*time.Second, 10*time.Millisecond)
	assert.Zero(t, firstCalls.Load())

	// unwatching twice is harmless
	require.NoError(t, fw.Unwatch(first))
	require.NoError(t, fw.Unwatch(second))
}

func TestWatchMissingDirectory(t *testing.T) {
	fw, err := NewFileWatcher(debounce, nil)
	require.NoError(t, err)
	defer fw.Close()

	err = fw.Watch(filepath.Join(t.TempDir(), "missing", "project.yaml"), func(string) {})
	assert.Error(t, err)
}
