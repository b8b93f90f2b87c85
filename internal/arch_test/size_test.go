package arch_test

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	maxFilesPerPackage = 20
	maxLinesPerFile    = 400
)

// TestPackageFileCounts keeps internal packages small enough to hold in your
// head; a package approaching the cap wants splitting.
func TestPackageFileCounts(t *testing.T) {
	t.Parallel()

	dir := internalDirPath(t)
	for _, pkg := range internalPackages(t) {
		if n := len(goFilesIn(t, filepath.Join(dir, pkg))); n > maxFilesPerPackage {
			t.Errorf("internal/%s has %d non-test files, cap is %d", pkg, n, maxFilesPerPackage)
		}
	}
}

// TestFileLineCounts bounds individual file size, test files included.
func TestFileLineCounts(t *testing.T) {
	t.Parallel()

	dir := internalDirPath(t)
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".go") {
			return err
		}
		if n := countLines(t, path); n > maxLinesPerFile {
			t.Errorf("%s has %d lines, cap is %d", path, n, maxLinesPerFile)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walking %s: %v", dir, err)
	}
}

func countLines(t *testing.T, path string) int {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	n := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		n++
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan %s: %v", path, err)
	}
	return n
}
