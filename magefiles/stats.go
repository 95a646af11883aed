package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// skipDirs are never walked by Stats.
var skipDirs = map[string]bool{
	".git":      true,
	"_examples": true,
	binDir:      true,
}

// lineCount is the non-blank Go line tally for one top-level directory.
type lineCount struct {
	Prod int
	Test int
}

// Stats prints non-blank Go lines per top-level directory, split into
// production and test code, and the word count of the root markdown files.
func Stats() error {
	counts, err := countGoLines(".")
	if err != nil {
		return err
	}
	words, err := countDocWords(".")
	if err != nil {
		return err
	}

	dirs := make([]string, 0, len(counts))
	for d := range counts {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)

	var total lineCount
	for _, d := range dirs {
		c := counts[d]
		total.Prod += c.Prod
		total.Test += c.Test
		fmt.Printf("  %-12s prod %6d  test %6d\n", d, c.Prod, c.Test)
	}
	fmt.Printf("Lines of code (Go, production): %d\n", total.Prod)
	fmt.Printf("Lines of code (Go, tests):       %d\n", total.Test)
	fmt.Printf("Words (root markdown):           %d\n", words)
	return nil
}

// countGoLines tallies non-blank lines of .go files under root, keyed by
// the first path element below root. Files directly in root count as ".".
func countGoLines(root string) (map[string]lineCount, error) {
	counts := map[string]lineCount{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		n, err := nonBlankLines(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		top := "."
		if i := strings.IndexRune(rel, filepath.Separator); i >= 0 {
			top = rel[:i]
		}
		c := counts[top]
		if strings.HasSuffix(path, "_test.go") {
			c.Test += n
		} else {
			c.Prod += n
		}
		counts[top] = c
		return nil
	})
	return counts, err
}

func nonBlankLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		if len(bytes.TrimSpace(sc.Bytes())) > 0 {
			n++
		}
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	return n, nil
}

// countDocWords counts whitespace-separated words in the *.md files directly
// under root.
func countDocWords(root string) (int, error) {
	paths, err := filepath.Glob(filepath.Join(root, "*.md"))
	if err != nil {
		return 0, err
	}
	total := 0
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return 0, fmt.Errorf("reading %s: %w", p, err)
		}
		total += len(bytes.Fields(data))
	}
	return total, nil
}
