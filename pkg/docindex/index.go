package docindex

import (
	"path"
	"strings"
)

// DefaultRegenerateCommand is shown in the index when no command is configured
const DefaultRegenerateCommand = "npx agents-md embed"

// IndexOptions configures the header segments of a docs index.
//
// RootPath is mandatory and printed verbatim as "root: <RootPath>". All other
// fields are optional: an empty ProviderLabel yields the plain "[Docs Index]"
// header, empty Instruction and Description are omitted, and an empty
// RegenerateCommand falls back to DefaultRegenerateCommand, with
// "--output <OutputFile>" appended when OutputFile is set.
type IndexOptions struct {
	RootPath          string
	OutputFile        string
	ProviderLabel     string
	Instruction       string
	Description       string
	RegenerateCommand string
}

// Serialize renders sections as a single pipe-delimited index line. Each
// directory becomes a "<dir>:{a.md,b.md}" segment in depth-first order.
// File and directory names are not escaped.
func Serialize(opts IndexOptions, sections []DocSection) string {
	header := "[Docs Index]"
	if opts.ProviderLabel != "" {
		header = "[" + opts.ProviderLabel + " Docs Index]"
	}

	segments := []string{header, "root: " + opts.RootPath}
	if opts.Instruction != "" {
		segments = append(segments, opts.Instruction)
	}
	if opts.Description != "" {
		segments = append(segments, opts.Description)
	}

	segments = append(segments, "If docs missing, run: "+opts.regenerateCommand())

	for _, group := range groupByDir(flatten(sections)) {
		segments = append(segments, group.dir+":{"+strings.Join(group.files, ",")+"}")
	}

	return strings.Join(segments, "|")
}

// flatten lists files depth-first: a section's own files, then each
// subsection's files followed by its sub-subsections
func flatten(sections []DocSection) []string {
	var files []string
	for _, section := range sections {
		files = append(files, section.Files...)
		files = append(files, flatten(section.Subsections)...)
	}
	return files
}

type dirGroup struct {
	dir   string
	files []string
}

// groupByDir groups file names by parent directory, keeping the order in
// which each directory was first seen
func groupByDir(files []string) []dirGroup {
	var groups []dirGroup
	index := make(map[string]int)

	for _, file := range files {
		dir := path.Dir(file)
		i, ok := index[dir]
		if !ok {
			i = len(groups)
			index[dir] = i
			groups = append(groups, dirGroup{dir: dir})
		}
		groups[i].files = append(groups[i].files, path.Base(file))
	}

	return groups
}

func (o IndexOptions) regenerateCommand() string {
	if o.RegenerateCommand != "" {
		return o.RegenerateCommand
	}
	if o.OutputFile != "" {
		return DefaultRegenerateCommand + " --output " + o.OutputFile
	}
	return DefaultRegenerateCommand
}
