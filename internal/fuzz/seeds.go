package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

// layoutSeeds mixes every line ending style with comments, indentation,
// control bytes and multi-byte runes.
var layoutSeeds = []string{
	"",
	"\n",
	"\r",
	"\r\n",
	"\n\r",
	"\r\r\n\n",
	"a\r\nb\rc\nd",
	"# one\n# two\nvalue = 1\n",
	"# one\r\n  # nested\r\n  value\r\n",
	"\t# tab\n\t\t# deeper\n\tx\n",
	"    # four\n  # two\n    y\n",
	"x = 1 # trailing\n# dangling\n",
	"# only comments\n# at the end",
	"   \t  \r\n\t\n",
	"1_000 0x10 007 __ _1 1_",
	"ünïcödé # комментарий\r\n日本 = 1\n",
	"\x00\x01\x1b[0m\x7f\n",
	"\xff\xfe\xc3\x28\n",
	"a+b-(c*d)/e;{}[]<>!?@$%^&|~`'\"\\",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range layoutSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("testdata", "seeds")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
