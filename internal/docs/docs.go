// Package docs holds the embedded help topics shown by `todo docs` and the TUI help modal.
package docs

import (
	"bufio"
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed content/*.md
var content embed.FS

// Topic is one embedded markdown page. Title is its first level-one heading, or Name when the
// page has none.
type Topic struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Topics lists every page sorted by name.
func Topics() []Topic {
	names, _ := fs.Glob(content, "content/*.md")
	out := make([]Topic, 0, len(names))
	for _, p := range names {
		name := strings.TrimSuffix(path.Base(p), ".md")
		body, err := content.ReadFile(p)
		if name == "" || err != nil {
			continue
		}
		out = append(out, Topic{Name: name, Title: title(string(body), name)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Get returns the markdown for a topic name, matched case-insensitively.
func Get(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || strings.ContainsAny(name, `/\.`) {
		return "", false
	}
	body, err := content.ReadFile("content/" + name + ".md")
	if err != nil {
		return "", false
	}
	return string(body), true
}

func title(md, fallback string) string {
	sc := bufio.NewScanner(strings.NewReader(md))
	for sc.Scan() {
		if h, ok := strings.CutPrefix(strings.TrimSpace(sc.Text()), "# "); ok {
			if h = strings.TrimSpace(h); h != "" {
				return h
			}
		}
	}
	return fallback
}
