package domain

// VisibilityMask records which fields the user has suppressed from the editing
// surface. It is a user preference and is independent of any period.
type VisibilityMask map[string]bool

// Suppressed reports whether key is hidden.
func (m VisibilityMask) Suppressed(key string) bool {
	return m[key]
}

// IsShown applies the rendering rule: in optimize mode every field is shown
// (suppressed ones dimmed), otherwise only fields that are not suppressed.
func (m VisibilityMask) IsShown(key string, optimizeMode bool) bool {
	return optimizeMode || !m[key]
}

// Toggle flips the suppressed flag for key and returns the new flag.
func (m VisibilityMask) Toggle(key string) bool {
	m[key] = !m[key]
	return m[key]
}

// Clone returns an independent copy.
func (m VisibilityMask) Clone() VisibilityMask {
	out := make(VisibilityMask, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
