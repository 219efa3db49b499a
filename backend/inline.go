package backend

import (
	"strings"

	"github.com/lixenwraith/webgrid/web"
)

// styleAttr is the element attribute carrying the inline declaration
const styleAttr = "style"

// Property is one name/value pair of an inline style declaration.
// Names are unique per declaration, compared case-insensitively.
type Property struct {
	Name  string
	Value string
}

// ParseInline splits inline style text into properties. Statements are
// separated by ';', names from values by the first ':'. Empty statements
// are ignored; malformed statements (no colon, empty name or value) are
// dropped and counted in skipped so leniency stays observable.
// Parsing never fails.
func ParseInline(s string) (props []Property, skipped int) {
	for _, stmt := range strings.Split(s, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		name, value, found := strings.Cut(stmt, ":")
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if !found || name == "" || value == "" {
			skipped++
			continue
		}
		props = append(props, Property{Name: name, Value: value})
	}
	return props, skipped
}

// BuildInline serializes properties back to declaration text, one
// "name: value;" statement per property
func BuildInline(props []Property) string {
	var sb strings.Builder
	for _, p := range props {
		sb.WriteString(p.Name)
		sb.WriteString(": ")
		sb.WriteString(p.Value)
		sb.WriteByte(';')
	}
	return sb.String()
}

// SetField sets or replaces one property in a declaration. The name and
// value are trimmed first. An existing property keeps its position and
// original name casing; duplicates beyond the first are dropped. Absent
// properties append at the end.
func SetField(style, name, value string) string {
	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)
	props, _ := ParseInline(style)
	out := make([]Property, 0, len(props)+1)
	replaced := false
	for _, p := range props {
		if strings.EqualFold(p.Name, name) {
			if replaced {
				continue
			}
			p.Value = value
			replaced = true
		}
		out = append(out, p)
	}
	if !replaced {
		out = append(out, Property{Name: name, Value: value})
	}
	return BuildInline(out)
}

// RemoveField removes every property matching the trimmed name
func RemoveField(style, name string) string {
	name = strings.TrimSpace(name)
	props, _ := ParseInline(style)
	out := make([]Property, 0, len(props))
	for _, p := range props {
		if strings.EqualFold(p.Name, name) {
			continue
		}
		out = append(out, p)
	}
	return BuildInline(out)
}

// writeStyle writes declaration text to the element; an empty declaration
// removes the style attribute entirely
func writeStyle(el web.Element, style string) error {
	if style == "" {
		el.RemoveAttribute(styleAttr)
		return nil
	}
	return el.SetAttribute(styleAttr, style)
}

// SetStyleField updates one property of an element's style attribute
func SetStyleField(el web.Element, name, value string) error {
	current, _ := el.Attribute(styleAttr)
	next := SetField(current, name, value)
	if next == current {
		return nil
	}
	return writeStyle(el, next)
}

// RemoveStyleField removes one property from an element's style attribute,
// dropping the attribute when the declaration empties
func RemoveStyleField(el web.Element, name string) error {
	current, _ := el.Attribute(styleAttr)
	next := RemoveField(current, name)
	if next == current {
		return nil
	}
	return writeStyle(el, next)
}

// PatchStyle converges an element's style attribute on exactly the target
// properties: surviving properties keep their current position, new ones
// append at the end, stale ones drop. The attribute is written at most
// once, and not at all when the declaration is already converged.
func PatchStyle(el web.Element, target []Property) error {
	current, _ := el.Attribute(styleAttr)
	existing, _ := ParseInline(current)

	want := make(map[string]string, len(target))
	for _, p := range target {
		want[strings.ToLower(p.Name)] = p.Value
	}

	out := make([]Property, 0, len(target))
	seen := make(map[string]bool, len(target))
	for _, p := range existing {
		key := strings.ToLower(p.Name)
		value, ok := want[key]
		if !ok || seen[key] {
			continue
		}
		p.Value = value
		out = append(out, p)
		seen[key] = true
	}
	for _, p := range target {
		key := strings.ToLower(p.Name)
		if !seen[key] {
			out = append(out, p)
			seen[key] = true
		}
	}

	next := BuildInline(out)
	if next == current {
		return nil
	}
	return writeStyle(el, next)
}
