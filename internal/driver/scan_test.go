package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"layoutlex/internal/config"
	"layoutlex/internal/diag"
	"layoutlex/internal/parse"
)

func optsWithDelimiter(d string) parse.Options {
	return parse.Options{Delimiter: d}
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return dir
}

type eventLog struct {
	mu     sync.Mutex
	events []Event
}

func (l *eventLog) OnEvent(evt Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, evt)
}

func scanTree() map[string]string {
	return map[string]string{
		"a.py":         "# one\nx = 1\n",
		"sub/b.py":     "def f():\n    # doc\n    return 1  \n",
		"c.txt":        "ignored\n",
		".hidden/d.py": "x\n",
	}
}

func TestScanDirectory(t *testing.T) {
	dir := writeTree(t, scanTree())
	events := &eventLog{}
	var phases []string

	res, err := Scan(context.Background(), ScanRequest{
		Dir:      dir,
		Scan:     config.Scan{Extensions: []string{".py"}, Jobs: 2, MaxDiagnostics: 10},
		Parse:    mustConfig(t, optsWithDelimiter("#")),
		Progress: events,
		Observer: func(evt PhaseEvent) {
			if evt.Status == PhaseEnd {
				phases = append(phases, evt.Name)
			}
		},
	})
	require.NoError(t, err)
	require.Len(t, res.Files, 2)

	a, b := res.Files[0], res.Files[1]
	assert.Equal(t, filepath.ToSlash(filepath.Join(dir, "a.py")), a.Path)
	assert.Equal(t, filepath.ToSlash(filepath.Join(dir, "sub", "b.py")), b.Path)

	assert.Equal(t, 10, a.Tokens)
	assert.Equal(t, 2, a.Lines)
	assert.Equal(t, 1, a.Anchors)
	assert.Equal(t, 1, a.Comments)
	assert.Equal(t, []string{"one", "x", "1"}, a.Symbols)
	assert.Equal(t, 3, a.Kinds["symbol"])
	assert.Zero(t, a.Bag.Len())

	assert.Equal(t, 1, b.Anchors)
	trailing := findCode(b.Bag, diag.LexTrailingSpace)
	require.Len(t, trailing, 1)
	assert.Equal(t, uint32(2), trailing[0].Primary.Line)

	totals := res.Totals()
	assert.Equal(t, 2, totals.Files)
	assert.Equal(t, 2, totals.Anchors)
	assert.Equal(t, 2, totals.Comments)
	assert.Equal(t, 7, totals.Symbols)
	assert.Zero(t, totals.Errors)
	assert.Zero(t, totals.Cached)

	assert.Equal(t, []string{"walk", "load", "tokenize"}, phases)

	require.NotEmpty(t, events.events)
	last := events.events[len(events.events)-1]
	assert.Empty(t, last.File)
	assert.Equal(t, StatusDone, last.Status)
	loaded := 0
	for _, evt := range events.events {
		if evt.Stage == StageLoad && evt.Status == StatusDone {
			loaded++
		}
	}
	assert.Equal(t, 2, loaded)
}

func TestScanUsesCache(t *testing.T) {
	dir := writeTree(t, scanTree())
	cache, err := OpenDiskCacheAt(t.TempDir())
	require.NoError(t, err)

	req := ScanRequest{
		Dir:   dir,
		Scan:  config.Scan{Extensions: []string{".py"}, MaxDiagnostics: 10},
		Parse: mustConfig(t, optsWithDelimiter("#")),
		Cache: cache,
	}
	first, err := Scan(context.Background(), req)
	require.NoError(t, err)
	assert.Zero(t, first.Totals().Cached)

	second, err := Scan(context.Background(), req)
	require.NoError(t, err)
	firstTotals, secondTotals := first.Totals(), second.Totals()
	assert.Equal(t, 2, secondTotals.Cached)
	firstTotals.Cached = secondTotals.Cached
	assert.Equal(t, firstTotals, secondTotals)

	trailing := findCode(second.Files[1].Bag, diag.LexTrailingSpace)
	require.Len(t, trailing, 1)
	assert.Equal(t, "  ", trailing[0].Primary.Text)

	// другой разделитель даёт другой ключ
	req.Parse = mustConfig(t, optsWithDelimiter("//"))
	third, err := Scan(context.Background(), req)
	require.NoError(t, err)
	assert.Zero(t, third.Totals().Cached)
	assert.Zero(t, third.Totals().Anchors)
}

func TestScanCacheRespectsDiagnosticsLimit(t *testing.T) {
	dir := writeTree(t, map[string]string{"t.py": strings.Repeat("x \n", 5)})
	cache, err := OpenDiskCacheAt(t.TempDir())
	require.NoError(t, err)

	scanWith := func(limit int) FileSummary {
		t.Helper()
		res, err := Scan(context.Background(), ScanRequest{
			Dir:   dir,
			Scan:  config.Scan{Extensions: []string{".py"}, MaxDiagnostics: limit},
			Parse: mustConfig(t, optsWithDelimiter("#")),
			Cache: cache,
		})
		require.NoError(t, err)
		require.Len(t, res.Files, 1)
		return res.Files[0]
	}

	cold := scanWith(2)
	assert.False(t, cold.Cached)
	assert.Len(t, findCode(cold.Bag, diag.LexTrailingSpace), 2)
	assert.Equal(t, 3, cold.Bag.Dropped())

	// больший лимит не должен брать обрезанный список из кэша
	wide := scanWith(100)
	assert.False(t, wide.Cached)
	assert.Len(t, findCode(wide.Bag, diag.LexTrailingSpace), 5)
	assert.Zero(t, wide.Bag.Dropped())

	warm := scanWith(2)
	assert.True(t, warm.Cached)
	assert.Len(t, findCode(warm.Bag, diag.LexTrailingSpace), 2)
	assert.Equal(t, 3, warm.Bag.Dropped())
}

func TestScanEmptyDirectory(t *testing.T) {
	res, err := Scan(context.Background(), ScanRequest{Dir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, res.Files)
	assert.Zero(t, res.Totals().Symbols)
}

func TestScanMissingDirectory(t *testing.T) {
	_, err := Scan(context.Background(), ScanRequest{Dir: filepath.Join(t.TempDir(), "missing")})
	require.Error(t, err)
}

func TestScanCancelled(t *testing.T) {
	dir := writeTree(t, scanTree())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Scan(ctx, ScanRequest{Dir: dir, Scan: config.Scan{Extensions: []string{".py"}}})
	require.ErrorIs(t, err, context.Canceled)
}
