// Package describer turns region crops into structured section
// descriptions using the Gemini API, and merges child descriptions into
// parent ones on the way back up the region tree.
package describer

import "strings"

// Section is the description payload attached to every region of the
// segmentation tree. Leaves get it straight from the vision model;
// internal nodes get it assembled from their children.
type Section struct {
	Kind      string   `json:"kind"`      // header, navigation, hero, content, sidebar, footer, unknown
	Summary   string   `json:"summary"`   // one-sentence visual description
	Text      []string `json:"text"`      // visible text fragments, top to bottom
	Colors    []string `json:"colors"`    // dominant colors as hex codes
	Layout    string   `json:"layout"`    // stack, columns or grid
	Component string   `json:"component"` // suggested component file, e.g. components/Header.jsx
	Failed    bool     `json:"failed,omitempty"`
}

// Placeholder is the substitute payload for a region whose description
// failed; assembly continues over it so one bad leaf never sinks the
// rest of the tree.
func Placeholder(name string) Section {
	return Section{
		Kind:    "unknown",
		Summary: "description unavailable for " + name,
		Failed:  true,
	}
}

// Merge assembles a parent section locally from its children in order:
// text concatenates, colors union, the kind generalizes. Used for
// interior nodes where a model round-trip adds cost but little signal.
func Merge(children []Section, layout string) Section {
	out := Section{
		Kind:   "content",
		Layout: layout,
	}

	seen := map[string]bool{}
	var summaries []string
	for _, c := range children {
		out.Text = append(out.Text, c.Text...)
		for _, col := range c.Colors {
			if !seen[col] {
				seen[col] = true
				out.Colors = append(out.Colors, col)
			}
		}
		if c.Summary != "" {
			summaries = append(summaries, c.Summary)
		}
		if c.Failed {
			out.Failed = true
		}
	}
	out.Summary = strings.Join(summaries, "; ")
	return out
}
