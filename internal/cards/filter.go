package cards

import (
	"path/filepath"
	"strings"
)

type FilterOptions struct {
	Include []string // glob patterns matched against the base name
	Exclude []string
}

func matchAny(name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := filepath.Match(strings.ToLower(p), name); ok {
			return true
		}
	}
	return false
}

// Filter keeps refs whose base name matches an Include pattern (all refs
// when Include is empty) and no Exclude pattern. Matching ignores case.
// Order is preserved.
func Filter(refs []Ref, opt FilterOptions) []Ref {
	if len(opt.Include) == 0 && len(opt.Exclude) == 0 {
		return refs
	}
	var out []Ref
	for _, r := range refs {
		name := strings.ToLower(filepath.Base(string(r)))
		if r.Kind() == KindQR {
			name = strings.ToLower(string(r))
		}
		if len(opt.Include) > 0 && !matchAny(name, opt.Include) {
			continue
		}
		if matchAny(name, opt.Exclude) {
			continue
		}
		out = append(out, r)
	}
	return out
}
