package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

var languageSeeds = []string{
	"x = 1\n",
	"def add(a, b=2):\n    return a + b\n\nprint(add(1))\n",
	"if x < 3:\n    y = 'a'\nelif x == 4:\n    y = 'b'\nelse:\n    pass\n",
	"while i < 10:\n    i += 1\n    if i % 2:\n        continue\n",
	"for i in range(0, 10, 2):\n    print(i)\n",
	"class Point:\n    def __init__(self, x):\n        self.x = x\n",
	"xs = [1, 2, 3]\nd = {'a': 1}\nprint(xs[0], d['a'])\n",
	"s = f'{x} and {y!r:>10}'\n",
	"import os\nfrom math import sqrt as root\n",
	"try:\n    f()\nexcept ValueError as e:\n    raise\nfinally:\n    done()\n",
	"with open(p) as fh, lock:\n    data = fh.read()\n",
	"y = (lambda a: a * 2)(3) if z else [v for v in w if v]\n",
	"# comment only\n\n\n",
	"x = (1 +\n     2)\n  y = 3\n",
	"def f(:\n",
	"s = '''unterminated\n",
	"\tif x:\n  \ty = 1\n",
	"a = b = c = 0x1F + 0o17 + 0b101 + 1_000 + 1e-3 + 2j\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, seed := range languageSeeds {
		f.Add([]byte(seed))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds подхватывает *.py из testdata, если каталог есть.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".py" {
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

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
