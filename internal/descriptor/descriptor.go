// Package descriptor synthesizes the npm package.json for a compiled wasm
// crate and writes it into the output directory, merging file lists when a
// child package shares the directory with a primary one.
package descriptor

import (
	"sort"

	"github.com/Tarnadas/wasm-pack/internal/manifest"
)

// Descriptor is the synthesized package.json. Field order matches the
// written output; absent values and empty collections are omitted.
type Descriptor struct {
	Name          string               `json:"name"`
	Collaborators []string             `json:"collaborators,omitempty"`
	Description   *string              `json:"description,omitempty"`
	Version       string               `json:"version"`
	License       *string              `json:"license,omitempty"`
	Repository    *manifest.Repository `json:"repository,omitempty"`
	Files         []string             `json:"files,omitempty"`
	Module        string               `json:"module,omitempty"`
	Main          string               `json:"main,omitempty"`
	Browser       string               `json:"browser,omitempty"`
	Homepage      *string              `json:"homepage,omitempty"`
	Types         string               `json:"types,omitempty"`
	SideEffects   bool                 `json:"sideEffects"`
	Keywords      []string             `json:"keywords,omitempty"`
}

// Entry returns the entry field the descriptor sets and its path.
func (d *Descriptor) Entry() (EntryKind, string) {
	switch {
	case d.Module != "":
		return EntryModule, d.Module
	case d.Main != "":
		return EntryMain, d.Main
	case d.Browser != "":
		return EntryBrowser, d.Browser
	}
	return "", ""
}

func (d *Descriptor) setEntry(kind EntryKind, path string) {
	d.Module, d.Main, d.Browser = "", "", ""
	switch kind {
	case EntryModule:
		d.Module = path
	case EntryMain:
		d.Main = path
	case EntryBrowser:
		d.Browser = path
	}
}

// unionFiles merges file lists into one sorted, duplicate-free list.
func unionFiles(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, f := range list {
			if f == "" || seen[f] {
				continue
			}
			seen[f] = true
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out
}
