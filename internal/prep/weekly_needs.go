package prep

import (
	"fmt"
	"time"

	"nursery-prep-backend/internal/calendar"
	"nursery-prep-backend/internal/catalog"
)

// Action is what to do with a weekly item.
type Action string

const (
	ActionBring    Action = "bring"
	ActionTakeHome Action = "take_home"
)

// WeeklyNeed is a bring or take-home suggestion for tomorrow.
type WeeklyNeed struct {
	ItemID      string `json:"itemId"`
	BaseItemID  string `json:"baseItemId"`
	ItemName    string `json:"itemName"`
	DayOfWeek   string `json:"dayOfWeek"`
	Action      Action `json:"action"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	IsChecked   bool   `json:"isChecked"`
}

// ReturnItemID is the synthetic id of a take-home need.
func ReturnItemID(itemID string) string {
	return itemID + "_return"
}

// EvaluateWeeklyRules applies the weekday rules to every weekly item and
// returns every match, possibly several per item.
func EvaluateWeeklyRules(c *catalog.Catalog, statuses map[string]WeeklyItemStatus, tomorrow calendar.Date) []WeeklyNeed {
	var needs []WeeklyNeed
	day := tomorrow.Weekday()

	for _, it := range c.Weekly() {
		st, ok := statuses[it.ID]
		if !ok {
			st = WeeklyItemStatus{ItemID: it.ID, CurrentStatus: AtHome}
		}

		switch it.Cadence {
		case catalog.CadenceWeeklyMonday:
			broughtForWeek := false
			if day == time.Monday && st.CurrentStatus == AtHome {
				needs = append(needs, bringNeed(it, "monday", fmt.Sprintf("新しい%sを持参（金曜日まで保育園で保管）", it.Name)))
				broughtForWeek = true
			}
			if day == time.Friday && st.CurrentStatus == AtNursery {
				needs = append(needs, takeHomeNeed(it, fmt.Sprintf("今週使った%sを持ち帰り", it.Name)))
			}
			if !broughtForWeek && catchUpDue(st, tomorrow) {
				needs = append(needs, bringNeed(it, "monday", fmt.Sprintf("今週まだ持参していない%s（いつでも持参可能）", it.Name)))
			}
		case catalog.CadenceWeeklyFriday:
			if day == time.Friday && st.CurrentStatus == AtHome {
				needs = append(needs, bringNeed(it, "friday", "新しいものを持参し、使用済みを持ち帰り"))
			}
		}
	}
	return needs
}

// catchUpDue covers a Monday item still at home later in the week. Monday
// itself is left to the regular rule.
func catchUpDue(st WeeklyItemStatus, tomorrow calendar.Date) bool {
	day := tomorrow.Weekday()
	if st.CurrentStatus != AtHome || day < time.Tuesday || day > time.Friday {
		return false
	}
	if st.LastBroughtDate == nil {
		return true
	}
	return st.LastBroughtDate.WeekNumber() < tomorrow.WeekNumber()
}

// WeeklyNeeds is EvaluateWeeklyRules de-duplicated by item id, first match wins.
func WeeklyNeeds(c *catalog.Catalog, statuses map[string]WeeklyItemStatus, tomorrow calendar.Date) []WeeklyNeed {
	out := []WeeklyNeed{}
	seen := make(map[string]bool)
	for _, n := range EvaluateWeeklyRules(c, statuses, tomorrow) {
		if seen[n.ItemID] {
			continue
		}
		seen[n.ItemID] = true
		out = append(out, n)
	}
	return out
}

func bringNeed(it catalog.Item, day, description string) WeeklyNeed {
	return WeeklyNeed{
		ItemID:      it.ID,
		BaseItemID:  it.ID,
		ItemName:    it.Name,
		DayOfWeek:   day,
		Action:      ActionBring,
		Description: description,
		Icon:        it.Icon,
	}
}

func takeHomeNeed(it catalog.Item, description string) WeeklyNeed {
	return WeeklyNeed{
		ItemID:      ReturnItemID(it.ID),
		BaseItemID:  it.ID,
		ItemName:    it.Name,
		DayOfWeek:   "friday",
		Action:      ActionTakeHome,
		Description: description,
		Icon:        it.Icon,
	}
}
