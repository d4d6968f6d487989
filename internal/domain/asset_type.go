package domain

import "strings"

// AssetType classifies a holding. Every type maps to exactly one category
// through the static table below.
type AssetType string

const (
	AssetTypeStock     AssetType = "stock"
	AssetTypeFund      AssetType = "fund"
	AssetTypeCrypto    AssetType = "crypto"
	AssetTypeCommodity AssetType = "commodity"
	// AssetTypeOther collects anything the table does not know.
	AssetTypeOther AssetType = "other"
)

// CategoryMeta is the display metadata attached to an asset type.
type CategoryMeta struct {
	Type  AssetType `json:"type"`
	Label string    `json:"label"`
	Icon  string    `json:"icon"`
	Color string    `json:"color"`
}

var knownAssetTypes = []AssetType{
	AssetTypeStock,
	AssetTypeFund,
	AssetTypeCrypto,
	AssetTypeCommodity,
}

var categoryTable = map[AssetType]CategoryMeta{
	AssetTypeStock:     {Type: AssetTypeStock, Label: "BIST Hisse", Icon: "📈", Color: "bg-blue-500"},
	AssetTypeFund:      {Type: AssetTypeFund, Label: "Yatırım Fonu", Icon: "🏦", Color: "bg-indigo-500"},
	AssetTypeCrypto:    {Type: AssetTypeCrypto, Label: "Kripto", Icon: "₿", Color: "bg-orange-500"},
	AssetTypeCommodity: {Type: AssetTypeCommodity, Label: "Emtia & Altın", Icon: "🟡", Color: "bg-amber-500"},
}

var otherCategory = CategoryMeta{Type: AssetTypeOther, Label: "Diğer", Icon: "📦", Color: "bg-gray-500"}

// KnownAssetTypes returns the recognised types in display order.
func KnownAssetTypes() []AssetType {
	out := make([]AssetType, len(knownAssetTypes))
	copy(out, knownAssetTypes)
	return out
}

// ParseAssetType normalises s and reports whether it is a recognised type.
func ParseAssetType(s string) (AssetType, bool) {
	t := AssetType(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := categoryTable[t]; ok {
		return t, true
	}
	return AssetTypeOther, false
}

// Normalize maps unrecognised values to AssetTypeOther.
func (t AssetType) Normalize() AssetType {
	norm, _ := ParseAssetType(string(t))
	return norm
}

// CategoryFor returns the display metadata of t. Unknown types get the
// "other" metadata instead of failing.
func CategoryFor(t AssetType) CategoryMeta {
	if meta, ok := categoryTable[t.Normalize()]; ok {
		return meta
	}
	return otherCategory
}

// DefaultCategories lists the categories seeded at startup.
func DefaultCategories() []Category {
	out := make([]Category, 0, len(knownAssetTypes))
	for _, t := range knownAssetTypes {
		meta := categoryTable[t]
		out = append(out, Category{
			Name:      meta.Label,
			Icon:      meta.Icon,
			Color:     meta.Color,
			AssetType: t,
		})
	}
	return out
}
