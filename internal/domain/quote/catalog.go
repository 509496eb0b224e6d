package quote

import (
	"slices"
	"sort"
)

// Option is one selectable catalog entry
type Option struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// Catalog is an ordered list of options
type Catalog []Option

// Layout controls how a selector lays out its cards
type Layout string

const (
	LayoutRow  Layout = "row"  // one line, single choice
	LayoutGrid Layout = "grid" // wrapped grid, multi choice
)

// Selector describes a catalog-backed input surface
type Selector struct {
	Options Catalog `json:"options"`
	Layout  Layout  `json:"layout"`
	Multi   bool    `json:"multi"`
}

// Objectives is the fixed objective catalog
var Objectives = Catalog{
	{ID: ObjectiveAwareness, Label: "Awareness", Description: "Maximize reach", Icon: "📢"},
	{ID: ObjectiveConsideration, Label: "Consideration", Description: "Engage & inform", Icon: "🤔"},
	{ID: ObjectiveConversion, Label: "Conversion", Description: "Drive sales now", Icon: "💰"},
}

// Inventory is the fixed campaign channel catalog
var Inventory = Catalog{
	{ID: "onsite-banners", Label: "Onsite Banners", Icon: "🎯"},
	{ID: "paid-media", Label: "Paid Media with Custom Audiences", Icon: "📱"},
	{ID: "crm", Label: "CRM (Push, WhatsApp, SMS)", Icon: "💬"},
	{ID: "influencers", Label: "Influencers", Icon: "⭐"},
	{ID: "social-posts", Label: "Social Posts", Icon: "📸"},
	{ID: "sponsored-product", Label: "Sponsored Product", Icon: "🛒"},
	{ID: "offline-activations", Label: "Offline Activations", Icon: "🎪"},
	{ID: "out-of-home", Label: "Out-of-Home (Street clocks, bus shelters, subway)", Icon: "🚌"},
	{ID: "special-actions", Label: "Special Actions (Custom bags, etc.)", Icon: "🎁"},
}

// Has reports whether id belongs to the catalog
func (c Catalog) Has(id string) bool {
	return c.index(id) >= 0
}

// Lookup returns the option with the given id
func (c Catalog) Lookup(id string) (Option, bool) {
	if i := c.index(id); i >= 0 {
		return c[i], true
	}
	return Option{}, false
}

// Label returns the option label, or the id itself when unknown
func (c Catalog) Label(id string) string {
	if o, ok := c.Lookup(id); ok {
		return o.Label
	}
	return id
}

// Labels maps ids to labels preserving order
func (c Catalog) Labels(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.Label(id))
	}
	return out
}

// Normalize drops duplicates and returns ids in catalog order.
// Unknown ids are reported separately.
func (c Catalog) Normalize(ids []string) (known []string, unknown []string) {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if !c.Has(id) {
			unknown = append(unknown, id)
			continue
		}
		known = append(known, id)
	}
	sort.SliceStable(known, func(i, j int) bool {
		return c.index(known[i]) < c.index(known[j])
	})
	if known == nil {
		known = []string{}
	}
	return known, unknown
}

func (c Catalog) index(id string) int {
	return slices.IndexFunc(c, func(o Option) bool { return o.ID == id })
}

// Toggle adds id when absent and removes it when present
func Toggle(selected []string, id string) []string {
	if i := slices.Index(selected, id); i >= 0 {
		out := slices.Clone(selected)
		return slices.Delete(out, i, i+1)
	}
	out := slices.Clone(selected)
	if out == nil {
		out = []string{}
	}
	return append(out, id)
}

// SameOptions compares two selections ignoring order
func SameOptions(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x := slices.Clone(a)
	y := slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}
