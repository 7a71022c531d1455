package catalog

import "github.com/shopspring/decimal"

// GroupTops combines short and long sleeve tops.
const GroupTops = "tops"

const (
	unitPieces = "枚"
	unitItems  = "個"
)

var (
	one   = decimal.NewFromInt(1)
	three = decimal.NewFromInt(3)
	half3 = decimal.RequireFromString("1.5")

	topsRequired = three
)

// Default is the catalog of a single child's nursery kit.
var Default = New([]Item{
	{ID: "underwear", Name: "肌着", Category: CategoryUnderwear, Required: three, Cadence: CadenceDaily, Icon: "👕", Unit: unitPieces},
	{ID: "short_sleeve", Name: "上着（半袖）", Category: CategoryShortSleeve, Required: half3, Cadence: CadenceDaily, Icon: "👚", Unit: unitPieces, Group: GroupTops, GroupRequired: &topsRequired},
	{ID: "long_sleeve", Name: "上着（長袖）", Category: CategoryLongSleeve, Required: half3, Cadence: CadenceDaily, Icon: "👔", Unit: unitPieces, Group: GroupTops, GroupRequired: &topsRequired},
	{ID: "pants", Name: "ズボン", Category: CategoryPants, Required: three, Cadence: CadenceDaily, Icon: "👖", Unit: unitPieces},
	{ID: "towel", Name: "タオル", Category: CategoryTowel, Required: one, Cadence: CadenceDaily, Icon: "🛏️", Unit: unitPieces, TakesHomeDaily: true},
	{ID: "contact_book", Name: "連絡帳", Category: CategoryContactBook, Required: one, Cadence: CadenceDaily, Icon: "📝", Unit: unitItems, TakesHomeDaily: true},
	{ID: "straw_mug", Name: "ストローマグ", Category: CategoryStrawMug, Required: one, Cadence: CadenceDaily, Icon: "🥤", Unit: unitItems, TakesHomeDaily: true},
	{ID: "plastic_bag", Name: "ビニール袋", Category: CategoryPlasticBag, Required: one, Cadence: CadenceDaily, Icon: "🛍️", Unit: unitPieces, TakesHomeDaily: true},
	{ID: "swimsuit", Name: "水着", Category: CategorySwimsuit, Required: one, Cadence: CadenceWeeklyMonday, Icon: "👙", Unit: unitPieces},
	{ID: "bed_cover", Name: "敷布団カバー", Category: CategoryBedCover, Required: one, Cadence: CadenceWeeklyFriday, Icon: "🛌", Unit: unitPieces},
	{ID: "pillow_towel", Name: "枕用タオル", Category: CategoryPillowTowel, Required: one, Cadence: CadenceWeeklyFriday, Icon: "🧺", Unit: unitPieces},
}, []Group{
	{ID: GroupTops, Name: "上着（半袖・長袖）", Icon: "👚", Unit: unitPieces},
})
