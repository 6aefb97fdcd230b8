package search

import "strings"

// knownProducts is scanned in order against listing text. "автокад" is the
// Cyrillic spelling of AutoCAD commonly used in Russian-language postings.
var knownProducts = []string{
	"AutoCAD", "Revit", "Inventor", "Fusion 360", "Fusion", "Advance Steel",
	"Civil 3D", "Civil3D", "InfraWorks", "Navisworks", "BIM360", "BIM 360",
	"Autodesk", "3ds Max", "3DS Max", "PowerMill", "FeatureCAM", "Autodesk CFD",
	"автокад",
}

// DetectProducts returns every known product mentioned in textLower, in scan
// order. When nothing matches, the originating search keyword stands in as
// the single detected product.
func DetectProducts(textLower, sourceKeyword string) []string {
	var mentioned []string
	for _, product := range knownProducts {
		if strings.Contains(textLower, strings.ToLower(product)) {
			mentioned = append(mentioned, product)
		}
	}
	if len(mentioned) == 0 {
		mentioned = []string{sourceKeyword}
	}
	return mentioned
}

// MatchesAny reports whether any requested product appears in textLower,
// case-insensitively.
func MatchesAny(textLower string, products []string) bool {
	for _, product := range products {
		if strings.Contains(textLower, strings.ToLower(product)) {
			return true
		}
	}
	return false
}
