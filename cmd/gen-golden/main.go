package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"pkt.systems/htree"
)

func main() {
	widths := []int{80}
	root := "testdata"
	var paths []string
	widthsByBase := map[string][]int{}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".html") {
			paths = append(paths, path)
			return nil
		}
		if strings.HasSuffix(path, ".golden") {
			if base, width, ok := parseGoldenWidth(root, path); ok {
				widthsByBase[base] = append(widthsByBase[base], width)
			}
		}
		return nil
	})
	if err != nil {
		fatalf("walk %s: %v", root, err)
	}
	if len(paths) == 0 {
		fatalf("no html files found under %s", root)
	}
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			fatalf("read %s: %v", path, err)
		}
		base := goldenBase(root, path)
		useWidths := widthsByBase[base]
		if len(useWidths) == 0 {
			useWidths = widths
		}
		for _, width := range useWidths {
			var out bytes.Buffer
			err := htree.Render(htree.RenderRequest{
				Reader: bytes.NewReader(src),
				Writer: &out,
				Width:  width,
				Theme:  htree.BoringTheme(),
			})
			if err != nil {
				fatalf("render %s width %d: %v", path, width, err)
			}
			goldenPath := filepath.Join(root, fmt.Sprintf("%s.w%d.golden", base, width))
			if err := os.WriteFile(goldenPath, out.Bytes(), 0o644); err != nil {
				fatalf("write %s: %v", goldenPath, err)
			}
			fmt.Fprintf(os.Stdout, "wrote %s\n", goldenPath)
		}
	}
}

// goldenBase flattens nested inputs so testdata/a/b.html becomes a__b.
func goldenBase(root, htmlPath string) string {
	rel, err := filepath.Rel(root, htmlPath)
	if err != nil {
		rel = htmlPath
	}
	name := strings.TrimSuffix(rel, ".html")
	return strings.ReplaceAll(filepath.ToSlash(name), "/", "__")
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func parseGoldenWidth(root, goldenPath string) (string, int, bool) {
	rel, err := filepath.Rel(root, goldenPath)
	if err != nil {
		return "", 0, false
	}
	name := strings.TrimSuffix(filepath.ToSlash(rel), ".golden")
	idx := strings.LastIndex(name, ".w")
	if idx == -1 {
		return "", 0, false
	}
	width, err := strconv.Atoi(name[idx+2:])
	if err != nil || width <= 0 {
		return "", 0, false
	}
	return name[:idx], width, true
}
