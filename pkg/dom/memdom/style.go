package memdom

import (
	"strings"
	"unicode"
)

// Style is an ordered inline style declaration. Every change is mirrored to
// the owner's style attribute.
type Style struct {
	owner *Element
	props []prop
}

type prop struct {
	name  string
	value string
}

// Set assigns a property by its scripting name ("backgroundColor").
func (s *Style) Set(name, value string) {
	s.SetProperty(cssName(name), value)
}

// SetProperty assigns a property by its CSS name. An empty value removes it.
func (s *Style) SetProperty(name, value string) {
	if !strings.HasPrefix(name, "--") {
		name = strings.ToLower(name)
	}

	s.owner.mu.Lock()
	idx := -1
	for i, p := range s.props {
		if p.name == name {
			idx = i
			break
		}
	}
	switch {
	case value == "" && idx >= 0:
		s.props = append(s.props[:idx], s.props[idx+1:]...)
	case value == "":
	case idx >= 0:
		s.props[idx].value = value
	default:
		s.props = append(s.props, prop{name: name, value: value})
	}
	text := s.cssText()
	s.owner.mu.Unlock()

	if text == "" {
		s.owner.RemoveAttribute("style")
		return
	}
	s.owner.SetAttribute("style", text)
}

// GetPropertyValue returns the value of a CSS property, or "".
func (s *Style) GetPropertyValue(name string) string {
	if !strings.HasPrefix(name, "--") {
		name = strings.ToLower(name)
	}
	s.owner.mu.Lock()
	defer s.owner.mu.Unlock()
	for _, p := range s.props {
		if p.name == name {
			return p.value
		}
	}
	return ""
}

// Len returns the number of declared properties.
func (s *Style) Len() int {
	s.owner.mu.Lock()
	defer s.owner.mu.Unlock()
	return len(s.props)
}

// CSSText returns the serialized declaration block.
func (s *Style) CSSText() string {
	s.owner.mu.Lock()
	defer s.owner.mu.Unlock()
	return s.cssText()
}

func (s *Style) cssText() string {
	parts := make([]string, 0, len(s.props))
	for _, p := range s.props {
		parts = append(parts, p.name+": "+p.value+";")
	}
	return strings.Join(parts, " ")
}

// cssName maps a scripting property name to its CSS name:
// backgroundColor -> background-color, WebkitTransition -> -webkit-transition.
func cssName(name string) string {
	if name == "cssFloat" {
		return "float"
	}
	var sb strings.Builder
	for _, r := range name {
		if unicode.IsUpper(r) {
			sb.WriteByte('-')
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
