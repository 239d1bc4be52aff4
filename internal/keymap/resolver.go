package keymap

import "strings"

// Resolver maps key strings to actions.
type Resolver struct {
	bindings []Binding
	byKey    map[string]Action   // key -> action
	byAction map[Action][]string // action -> keys (for help)
}

// NewResolver creates a resolver from bindings.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings: bindings,
		byKey:    make(map[string]Action),
		byAction: make(map[Action][]string),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.byKey[key] = b.Action
		}
		r.byAction[b.Action] = append(r.byAction[b.Action], b.Keys...)
	}
	// Deduplicate keys per action
	for action, keys := range r.byAction {
		r.byAction[action] = dedupe(keys)
	}
	return r
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(key string) Action {
	return r.byKey[key]
}

// KeysFor returns the keys bound to an action.
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}

// HelpLine is one row of the help listing.
type HelpLine struct {
	Keys        string
	Description string
}

// Help lists the bindings in declaration order. Keys are joined with "/";
// digit runs collapse to "0-9".
func (r *Resolver) Help() []HelpLine {
	lines := make([]HelpLine, 0, len(r.bindings))
	for _, b := range r.bindings {
		lines = append(lines, HelpLine{Keys: joinKeys(b.Keys), Description: b.Description})
	}
	return lines
}

func joinKeys(keys []string) string {
	if len(keys) == 10 && keys[0] == "0" && keys[9] == "9" {
		return "0-9"
	}
	labels := make([]string, len(keys))
	for i, k := range keys {
		labels[i] = DisplayKey(k)
	}
	return strings.Join(labels, "/")
}

// dedupe removes duplicate strings from a slice.
func dedupe(s []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(s))
	for _, v := range s {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}
