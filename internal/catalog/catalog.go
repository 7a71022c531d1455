// Package catalog defines the items a caregiver keeps at the nursery.
package catalog

import "github.com/shopspring/decimal"

// Category is the kind of a trackable item.
type Category string

const (
	CategoryUnderwear   Category = "underwear"
	CategoryShortSleeve Category = "short_sleeve"
	CategoryLongSleeve  Category = "long_sleeve"
	CategoryPants       Category = "pants"
	CategoryTowel       Category = "towel"
	CategorySwimsuit    Category = "swimsuit"
	CategoryBedCover    Category = "bed_cover"
	CategoryPillowTowel Category = "pillow_towel"
	CategoryContactBook Category = "contact_book"
	CategoryStrawMug    Category = "straw_mug"
	CategoryPlasticBag  Category = "plastic_bag"
)

// Cadence is how often an item's requirement resets.
type Cadence string

const (
	CadenceDaily        Cadence = "daily"
	CadenceWeeklyMonday Cadence = "weekly_monday"
	CadenceWeeklyFriday Cadence = "weekly_friday"
)

// Weekly reports whether the cadence is tied to a weekday.
func (c Cadence) Weekly() bool {
	return c == CadenceWeeklyMonday || c == CadenceWeeklyFriday
}

// Item is one catalog entry.
type Item struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category Category        `json:"category"`
	Required decimal.Decimal `json:"required"`
	Cadence  Cadence         `json:"cadence"`
	Icon     string          `json:"icon"`
	Unit     string          `json:"unit"`

	// Group members share one combined requirement.
	Group         string          `json:"group,omitempty"`
	GroupRequired *decimal.Decimal `json:"groupRequired,omitempty"`

	// TakesHomeDaily items travel home every evening and come back every morning.
	TakesHomeDaily bool `json:"takesHomeDaily,omitempty"`
}

// Grouped reports whether the item belongs to a group.
func (i Item) Grouped() bool {
	return i.Group != ""
}

// Group describes a set of items tracked against one threshold.
type Group struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
	Unit string `json:"unit"`
}

// Catalog is an ordered, immutable set of items.
type Catalog struct {
	items  []Item
	index  map[string]int
	groups map[string]Group
}

// New builds a catalog from items in display order.
func New(items []Item, groups []Group) *Catalog {
	c := &Catalog{
		items:  append([]Item(nil), items...),
		index:  make(map[string]int, len(items)),
		groups: make(map[string]Group, len(groups)),
	}
	for i, it := range c.items {
		c.index[it.ID] = i
	}
	for _, g := range groups {
		c.groups[g.ID] = g
	}
	return c
}

// Items returns every item in catalog order.
func (c *Catalog) Items() []Item {
	return append([]Item(nil), c.items...)
}

// Item looks up an item by id.
func (c *Catalog) Item(id string) (Item, bool) {
	i, ok := c.index[id]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

// Has reports whether id names a catalog item.
func (c *Catalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// ByCadence returns the items with the given cadence in catalog order.
func (c *Catalog) ByCadence(cadence Cadence) []Item {
	var out []Item
	for _, it := range c.items {
		if it.Cadence == cadence {
			out = append(out, it)
		}
	}
	return out
}

// Daily returns the daily-cadence items.
func (c *Catalog) Daily() []Item {
	return c.ByCadence(CadenceDaily)
}

// Weekly returns the items with a weekday cadence.
func (c *Catalog) Weekly() []Item {
	var out []Item
	for _, it := range c.items {
		if it.Cadence.Weekly() {
			out = append(out, it)
		}
	}
	return out
}

// Members returns the items of a group in catalog order.
func (c *Catalog) Members(groupID string) []Item {
	var out []Item
	for _, it := range c.items {
		if it.Group == groupID {
			out = append(out, it)
		}
	}
	return out
}

// Group returns the display metadata of a group. Unknown groups fall back to
// the first member's icon and unit.
func (c *Catalog) Group(groupID string) Group {
	if g, ok := c.groups[groupID]; ok {
		return g
	}
	g := Group{ID: groupID, Name: groupID}
	if members := c.Members(groupID); len(members) > 0 {
		g.Icon = members[0].Icon
		g.Unit = members[0].Unit
	}
	return g
}

// Defaults returns the catalog required count of every item.
func (c *Catalog) Defaults() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(c.items))
	for _, it := range c.items {
		out[it.ID] = it.Required
	}
	return out
}
