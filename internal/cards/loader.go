package cards

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// DefaultPattern matches the usual raster formats.
const DefaultPattern = "*.{png,jpg,jpeg,gif,bmp,tif,tiff}"

// LoadDir lists image files in dir matching pattern, sorted by name so
// pagination is reproducible. Brace alternatives in pattern are expanded.
func LoadDir(dir, pattern string) ([]Ref, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	seen := map[string]bool{}
	var paths []string
	for _, p := range expandBraces(pattern) {
		matches, err := filepath.Glob(filepath.Join(dir, p))
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", p, err)
		}
		for _, m := range matches {
			if fi, err := os.Stat(m); err != nil || fi.IsDir() || seen[m] {
				continue
			}
			seen[m] = true
			paths = append(paths, m)
		}
	}
	sort.Strings(paths)
	return Refs(paths...), nil
}

// expandBraces turns "a.{x,y}" into ["a.x", "a.y"]. Only one group is
// supported, which covers extension lists.
func expandBraces(pattern string) []string {
	open := strings.Index(pattern, "{")
	end := strings.Index(pattern, "}")
	if open < 0 || end < open {
		return []string{pattern}
	}
	var out []string
	for _, alt := range strings.Split(pattern[open+1:end], ",") {
		out = append(out, pattern[:open]+alt+pattern[end+1:])
	}
	return out
}

// LoadManifest reads a CSV with an "image" column and an optional "count"
// column. Relative image paths resolve against the manifest's directory.
// Rows with count 0 are skipped; a missing or "-" count means 1.
func LoadManifest(path string) ([]Ref, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	r := csv.NewReader(fp)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("csv %s has no header", path)
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols["image"]; !ok {
		return nil, fmt.Errorf("csv %s has no image column", path)
	}

	get := func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	base := filepath.Dir(path)
	out := []Ref{}
	for i, row := range rows[1:] {
		img := get(row, "image")
		if img == "" {
			continue
		}
		count := 1
		if s := get(row, "count"); s != "" && s != "-" {
			count, err = strconv.Atoi(s)
			if err != nil || count < 0 {
				return nil, fmt.Errorf("csv %s line %d: bad count %q", path, i+2, s)
			}
		}
		ref := Ref(img)
		if ref.Kind() == KindFile && !filepath.IsAbs(img) {
			ref = Ref(filepath.Join(base, img))
		}
		for n := 0; n < count; n++ {
			out = append(out, ref)
		}
	}
	return out, nil
}
