package prep

import (
	"github.com/shopspring/decimal"

	"nursery-prep-backend/internal/calendar"
	"nursery-prep-backend/internal/catalog"
	"nursery-prep-backend/internal/model"
)

// Snapshot is the morning baseline and the evening take-home record that
// applies to it.
type Snapshot struct {
	Morning *model.Observation
	Evening *model.Observation
}

// NewSnapshot pairs the latest morning with the latest evening. An evening
// dated before the morning belongs to an earlier baseline and is dropped.
func NewSnapshot(morning, evening *model.Observation) Snapshot {
	if morning == nil || (evening != nil && evening.Date.Before(morning.Date)) {
		evening = nil
	}
	return Snapshot{Morning: morning, Evening: evening}
}

// HasBaseline reports whether any morning count exists.
func (s Snapshot) HasBaseline() bool {
	return s.Morning != nil
}

// Stock returns what is left at the nursery of one item.
func (s Snapshot) Stock(itemID string) int {
	return NurseryStock(s.Morning.Count(itemID), s.Evening.Count(itemID))
}

// NurseryStock is max(0, morning - evening).
func NurseryStock(morning, evening int) int {
	if evening >= morning {
		return 0
	}
	return morning - evening
}

// StockStatus is the display tier of a stock entry.
type StockStatus string

const (
	StockSufficient   StockStatus = "sufficient"
	StockWarning      StockStatus = "warning"
	StockInsufficient StockStatus = "insufficient"
)

var half = decimal.RequireFromString("0.5")

// Status classifies current stock against the required count. A zero
// requirement is always sufficient.
func Status(current int, required decimal.Decimal) StockStatus {
	if !required.IsPositive() {
		return StockSufficient
	}
	ratio := decimal.NewFromInt(int64(current)).Div(required)
	switch {
	case ratio.GreaterThanOrEqual(decimal.NewFromInt(1)):
		return StockSufficient
	case ratio.GreaterThanOrEqual(half):
		return StockWarning
	default:
		return StockInsufficient
	}
}

// FormatQuantity rounds to one decimal place and drops a trailing ".0".
func FormatQuantity(d decimal.Decimal) string {
	return d.Round(1).String()
}

// StockEntry is the derived stock of one daily item.
type StockEntry struct {
	ItemID          string          `json:"itemId"`
	ItemName        string          `json:"itemName"`
	Icon            string          `json:"icon"`
	Unit            string          `json:"unit"`
	CurrentStock    int             `json:"currentStock"`
	RequiredStock   decimal.Decimal `json:"requiredStock"`
	RequiredDisplay string          `json:"requiredDisplay"`
	Status          StockStatus     `json:"status"`
	IsGrouped       bool            `json:"isGrouped,omitempty"`
	GroupName       string          `json:"groupName,omitempty"`
}

// StockReport is the nursery stock view. Without a morning baseline it has
// no entries, which is not the same as every item being at zero.
type StockReport struct {
	HasBaseline bool           `json:"hasBaseline"`
	MorningDate *calendar.Date `json:"morningDate,omitempty"`
	EveningDate *calendar.Date `json:"eveningDate,omitempty"`
	Entries     []StockEntry   `json:"entries"`
}

// BuildStockReport computes current stock for every daily item in catalog order.
func BuildStockReport(c *catalog.Catalog, r Resolver, snap Snapshot) StockReport {
	report := StockReport{HasBaseline: snap.HasBaseline(), Entries: []StockEntry{}}
	if !snap.HasBaseline() {
		return report
	}
	md := snap.Morning.Date
	report.MorningDate = &md
	if snap.Evening != nil {
		ed := snap.Evening.Date
		report.EveningDate = &ed
	}

	for _, it := range c.Daily() {
		current := snap.Stock(it.ID)
		required := r.Required(it.ID)
		entry := StockEntry{
			ItemID:          it.ID,
			ItemName:        it.Name,
			Icon:            it.Icon,
			Unit:            it.Unit,
			CurrentStock:    current,
			RequiredStock:   required,
			RequiredDisplay: FormatQuantity(required),
			Status:          Status(current, required),
		}
		if it.Grouped() {
			entry.IsGrouped = true
			entry.GroupName = c.Group(it.Group).Name
		}
		report.Entries = append(report.Entries, entry)
	}
	return report
}
