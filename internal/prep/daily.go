package prep

import (
	"github.com/shopspring/decimal"

	"nursery-prep-backend/internal/catalog"
)

// GroupNeedID is the synthetic item id of a group's combined need.
func GroupNeedID(groupID string) string {
	return "group:" + groupID
}

// DailyNeed is one line of tomorrow's pack list.
type DailyNeed struct {
	ItemID      string `json:"itemId"`
	ItemName    string `json:"itemName"`
	NeedToBring int    `json:"needToBring"`
	Icon        string `json:"icon"`
	Unit        string `json:"unit"`
	IsGrouped   bool   `json:"isGrouped,omitempty"`
	IsChecked   bool   `json:"isChecked"`
}

// NeedToBring is ceil(max(0, required - stock)). A half garment still has to
// be packed as a whole one.
func NeedToBring(required decimal.Decimal, stock int) int {
	gap := required.Sub(decimal.NewFromInt(int64(stock)))
	if !gap.IsPositive() {
		return 0
	}
	return int(gap.Ceil().IntPart())
}

// DailyNeeds computes what to pack for tomorrow. Groups are evaluated once,
// at their first member's position; items that go home every evening always
// need exactly one unless their requirement is zero.
func DailyNeeds(c *catalog.Catalog, r Resolver, snap Snapshot) []DailyNeed {
	needs := []DailyNeed{}
	seenGroups := make(map[string]bool)

	for _, it := range c.Daily() {
		if it.Grouped() {
			if seenGroups[it.Group] {
				continue
			}
			seenGroups[it.Group] = true
			if need, ok := groupNeed(c, r, snap, it.Group); ok {
				needs = append(needs, need)
			}
			continue
		}

		var n int
		if it.TakesHomeDaily {
			if r.Required(it.ID).IsPositive() {
				n = 1
			}
		} else {
			n = NeedToBring(r.Required(it.ID), snap.Stock(it.ID))
		}
		if n > 0 {
			needs = append(needs, DailyNeed{
				ItemID:      it.ID,
				ItemName:    it.Name,
				NeedToBring: n,
				Icon:        it.Icon,
				Unit:        it.Unit,
			})
		}
	}
	return needs
}

func groupNeed(c *catalog.Catalog, r Resolver, snap Snapshot, groupID string) (DailyNeed, bool) {
	var morning, evening int
	for _, m := range c.Members(groupID) {
		morning += snap.Morning.Count(m.ID)
		evening += snap.Evening.Count(m.ID)
	}
	n := NeedToBring(r.GroupRequired(groupID), NurseryStock(morning, evening))
	if n <= 0 {
		return DailyNeed{}, false
	}
	g := c.Group(groupID)
	return DailyNeed{
		ItemID:      GroupNeedID(groupID),
		ItemName:    g.Name,
		NeedToBring: n,
		Icon:        g.Icon,
		Unit:        g.Unit,
		IsGrouped:   true,
	}, true
}
