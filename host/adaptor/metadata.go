package adaptor

import "strings"

// Meta describes a registered adaptor for listing and UI.
type Meta struct {
	Name         string   `json:"name"`
	Display      Display  `json:"display"`
	Determinator []string `json:"determinator"`
}

func buildMeta(a Adaptor) Meta {
	display := a.Display()
	if display.Name == "" {
		display.Name = a.Name()
	}
	tokens := append([]string(nil), a.Determinator()...)
	return Meta{
		Name:         a.Name(),
		Display:      display,
		Determinator: tokens,
	}
}

// normalizeName prepares an adaptor name for lookup.
func normalizeName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	trimmed = strings.TrimPrefix(trimmed, "@")
	return strings.ToLower(strings.TrimSpace(trimmed))
}
