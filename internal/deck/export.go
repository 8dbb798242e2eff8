package deck

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/youruser/cardsheet/internal/cards"
)

func Export(d Deck) string {
	lines := []string{}
	if d.Name != "" {
		lines = append(lines, "# "+d.Name)
	}
	for _, e := range d.Entries {
		lines = append(lines, strconv.Itoa(e.Count)+"x "+string(e.Ref))
	}
	return strings.Join(lines, "\n") + "\n"
}

// Parse reads a deck list. Accepted entry forms are "4x ref", "4 ref"
// and a bare "ref" (count 1). Blank lines are ignored; the first "#" line
// names the deck and later ones are comments.
func Parse(r io.Reader) (Deck, error) {
	var d Deck
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if d.Name == "" && len(d.Entries) == 0 {
				d.Name = strings.TrimSpace(strings.TrimPrefix(line, "#"))
			}
			continue
		}
		e, err := parseEntry(line)
		if err != nil {
			return Deck{}, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if e.Count > 0 {
			d.Entries = append(d.Entries, e)
		}
	}
	if err := sc.Err(); err != nil {
		return Deck{}, err
	}
	return d, nil
}

func parseEntry(line string) (Entry, error) {
	head, rest, found := strings.Cut(line, " ")
	if !found {
		lower := strings.ToLower(line)
		if strings.HasSuffix(lower, "x") {
			if n, err := strconv.Atoi(strings.TrimSuffix(lower, "x")); err == nil {
				return Entry{}, fmt.Errorf("missing card after count %d", n)
			}
		}
		return Entry{Count: 1, Ref: cards.Ref(line)}, nil
	}
	countStr := strings.TrimSuffix(strings.ToLower(head), "x")
	n, err := strconv.Atoi(countStr)
	if err != nil {
		// not a count prefix; the whole line is the ref
		return Entry{Count: 1, Ref: cards.Ref(line)}, nil
	}
	if n < 0 {
		return Entry{}, fmt.Errorf("negative count %d", n)
	}
	ref := strings.TrimSpace(rest)
	if ref == "" {
		return Entry{}, fmt.Errorf("missing card after count %d", n)
	}
	return Entry{Count: n, Ref: cards.Ref(ref)}, nil
}

// Load parses the deck list at path. Relative file refs resolve against
// the list's directory.
func Load(path string) (Deck, error) {
	fp, err := os.Open(path)
	if err != nil {
		return Deck{}, err
	}
	defer fp.Close()

	d, err := Parse(fp)
	if err != nil {
		return Deck{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	base := filepath.Dir(path)
	for i, e := range d.Entries {
		if e.Ref.Kind() == cards.KindFile && !filepath.IsAbs(string(e.Ref)) {
			d.Entries[i].Ref = cards.Ref(filepath.Join(base, string(e.Ref)))
		}
	}
	return d, nil
}
