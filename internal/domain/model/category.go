package model

// カテゴリslugとproducts.categoryの表示名
var categoryNames = map[string]string{
	"accessori-donna":    "Accessori Donna",
	"jeans-donna":        "Jeans Donna",
	"giacche-donna":      "Giacche Donna",
	"pantaloncini-donna": "Pantaloncini Donna",
	"gonne-donna":        "Gonne Donna",
}

// CategoryNameはslugを表示名に変換。未知のslugはそのまま
func CategoryName(slug string) string {
	if name, ok := categoryNames[slug]; ok {
		return name
	}
	return slug
}
