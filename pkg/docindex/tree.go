// Package docindex builds the compressed documentation index embedded into
// AGENTS.md style files. Documentation files are grouped into a section tree
// by directory, then flattened into a single pipe-delimited line.
package docindex

import (
	"sort"
	"strings"
)

// RootSection is the name of the synthetic section holding files that live
// directly in the docs root
const RootSection = "."

// DocSection is one directory level of the documentation tree
type DocSection struct {
	Name        string
	Files       []string // relative posix paths, sorted
	Subsections []DocSection
}

// BuildTree groups relative file paths into a section tree at most three
// levels deep. Paths nested deeper than section/subsection/sub-subsection
// are kept in the sub-subsection's file list. The result does not depend on
// the order of files.
func BuildTree(files []string) []DocSection {
	var sections []DocSection

	for _, file := range files {
		parts := strings.Split(file, "/")

		if len(parts) == 1 {
			root := findOrCreate(&sections, RootSection)
			root.Files = append(root.Files, file)
			continue
		}

		section := findOrCreate(&sections, parts[0])
		switch len(parts) {
		case 2:
			section.Files = append(section.Files, file)
		case 3:
			sub := findOrCreate(&section.Subsections, parts[1])
			sub.Files = append(sub.Files, file)
		default:
			sub := findOrCreate(&section.Subsections, parts[1])
			subsub := findOrCreate(&sub.Subsections, parts[2])
			subsub.Files = append(subsub.Files, file)
		}
	}

	sortSections(sections)
	return sections
}

// findOrCreate returns a pointer into sections, appending a new section
// when none carries name. The pointer is only valid until the next append.
func findOrCreate(sections *[]DocSection, name string) *DocSection {
	for i := range *sections {
		if (*sections)[i].Name == name {
			return &(*sections)[i]
		}
	}
	*sections = append(*sections, DocSection{Name: name})
	return &(*sections)[len(*sections)-1]
}

func sortSections(sections []DocSection) {
	sort.Slice(sections, func(i, j int) bool {
		return sections[i].Name < sections[j].Name
	})
	for i := range sections {
		sort.Strings(sections[i].Files)
		sortSections(sections[i].Subsections)
	}
}
