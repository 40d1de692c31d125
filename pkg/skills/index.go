package skills

import "strings"

// DefaultRegenerateCommand is shown in the index when no command is configured
const DefaultRegenerateCommand = "npx agents-md skills embed"

const (
	pluginKind = "plugin"
	remoteKind = "skills-sh"
)

var descriptionEscaper = strings.NewReplacer(
	"|", `\|`,
	";", `\;`,
	":", `\:`,
	"[", `\[`,
	"]", `\]`,
	"{", `\{`,
	"}", `\}`,
)

// EscapeDescription escapes the index delimiters in a skill description.
// Backslashes are not escaped, so a description that already contains a
// backslash before a delimiter is ambiguous once escaped.
func EscapeDescription(description string) string {
	return descriptionEscaper.Replace(description)
}

type group struct {
	kind      string
	origin    string
	hasOrigin bool
	skills    []*Skill
}

// SerializeIndex renders skills as a single pipe-delimited index line.
// Plugin skills are grouped per plugin, then come user and project skills,
// then remote skills grouped per repository. Groups with an origin appear
// in the order their origin was first seen.
func SerializeIndex(skills []*Skill, regenerateCommand string) string {
	var plugins, remotes []*group
	user := &group{kind: string(SourceUser)}
	project := &group{kind: string(SourceProject)}

	for _, s := range skills {
		switch s.Source {
		case SourcePlugin:
			plugins = appendToOrigin(plugins, pluginKind, s)
		case SourceUser:
			user.skills = append(user.skills, s)
		case SourceProject:
			project.skills = append(project.skills, s)
		case SourceRemote:
			remotes = appendToOrigin(remotes, remoteKind, s)
		default:
			panic("skills: unhandled source " + string(s.Source))
		}
	}

	segments := []string{"[Skills Index]"}
	for _, g := range plugins {
		segments = append(segments, g.String())
	}
	for _, g := range []*group{user, project} {
		if len(g.skills) > 0 {
			segments = append(segments, g.String())
		}
	}
	for _, g := range remotes {
		segments = append(segments, g.String())
	}

	if regenerateCommand == "" {
		regenerateCommand = DefaultRegenerateCommand
	}
	segments = append(segments, "Regen: "+regenerateCommand)

	return strings.Join(segments, "|")
}

func appendToOrigin(groups []*group, kind string, s *Skill) []*group {
	for _, g := range groups {
		if g.origin == s.OriginLabel {
			g.skills = append(g.skills, s)
			return groups
		}
	}
	return append(groups, &group{kind: kind, origin: s.OriginLabel, hasOrigin: true, skills: []*Skill{s}})
}

func (g *group) String() string {
	entries := make([]string, 0, len(g.skills))
	for _, s := range g.skills {
		entries = append(entries, serializeEntry(s))
	}

	prefix := g.kind + ":"
	if g.hasOrigin {
		prefix += g.origin + ":"
	}
	return prefix + "{" + strings.Join(entries, ";") + "}"
}

func serializeEntry(s *Skill) string {
	entry := s.Name + ":" + EscapeDescription(s.Description)
	if len(s.SiblingFiles) > 0 {
		entry += "[" + strings.Join(s.SiblingFiles, ",") + "]"
	}
	return entry
}
