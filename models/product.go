package models

import "fmt"

// Product categories
const (
	CategoryApparel     = "apparel"
	CategoryAccessories = "accessories"
	CategoryStickers    = "stickers"
	CategoryBundle      = "bundle"
)

// Product is an immutable catalog entry. Prices are in cents.
type Product struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Price           int      `json:"price"`
	Image           string   `json:"image"`
	Category        string   `json:"category"`
	Sizes           []string `json:"sizes,omitempty"`
	InStock         bool     `json:"inStock"`
	MemberExclusive bool     `json:"memberExclusive,omitempty"`
}

// WelcomePackage is the member-exclusive bundle, claimable once per wallet.
var WelcomePackage = Product{
	ID:              "member-welcome-package",
	Name:            "Member Welcome Package",
	Description:     "Exclusive package for WAA members. Includes: WAA Classic Tee, Sticker Pack, and Holographic Sticker. One-time claim.",
	Price:           0,
	Image:           "/images/merch/welcome-package.png",
	Category:        CategoryBundle,
	Sizes:           []string{"S", "M", "L", "XL", "2XL"},
	InStock:         true,
	MemberExclusive: true,
}

// Products is the catalog. It is fixed at build time and never mutated.
var Products = []Product{
	{
		ID:          "waa-tshirt-black",
		Name:        "WAA Classic Tee - Black",
		Description: "Premium cotton t-shirt with the classic WAA logo. Embrace the future in style.",
		Price:       2500,
		Image:       "/images/merch/tshirt-black.png",
		Category:    CategoryApparel,
		Sizes:       []string{"S", "M", "L", "XL", "2XL"},
		InStock:     true,
	},
	{
		ID:          "waa-tshirt-white",
		Name:        "WAA Classic Tee - White",
		Description: "Premium cotton t-shirt with the inverted WAA logo. Clean and minimal.",
		Price:       2500,
		Image:       "/images/merch/tshirt-white.png",
		Category:    CategoryApparel,
		Sizes:       []string{"S", "M", "L", "XL", "2XL"},
		InStock:     true,
	},
	{
		ID:          "waa-hoodie-black",
		Name:        "WAA Essential Hoodie",
		Description: "Cozy heavyweight hoodie with embroidered WAA logo. Perfect for hackathon nights.",
		Price:       5500,
		Image:       "/images/merch/hoodie-black.png",
		Category:    CategoryApparel,
		Sizes:       []string{"S", "M", "L", "XL", "2XL"},
		InStock:     true,
	},
	{
		ID:          "waa-cap",
		Name:        "WAA Dad Cap",
		Description: "Structured dad cap with embroidered WAA logo. Adjustable strap.",
		Price:       2000,
		Image:       "/images/merch/cap.png",
		Category:    CategoryAccessories,
		InStock:     true,
	},
	{
		ID:          "waa-beanie",
		Name:        "WAA Beanie",
		Description: "Knit beanie with woven WAA patch. Stay warm while building the future.",
		Price:       1800,
		Image:       "/images/merch/beanie.png",
		Category:    CategoryAccessories,
		InStock:     true,
	},
	{
		ID:          "waa-sticker-pack",
		Name:        "WAA Sticker Pack",
		Description: "Pack of 5 vinyl stickers featuring WAA logos and Web3 designs. Laptop approved.",
		Price:       800,
		Image:       "/images/merch/stickers.png",
		Category:    CategoryStickers,
		InStock:     true,
	},
	{
		ID:          "waa-holographic-sticker",
		Name:        "Holographic WAA Sticker",
		Description: "Limited edition holographic sticker. Catches light like an NFT catches attention.",
		Price:       500,
		Image:       "/images/merch/holographic-sticker.png",
		Category:    CategoryStickers,
		InStock:     true,
	},
	{
		ID:          "waa-tote",
		Name:        "WAA Canvas Tote",
		Description: "Heavy-duty canvas tote bag. Carry your laptop and dreams in style.",
		Price:       1500,
		Image:       "/images/merch/tote.png",
		Category:    CategoryAccessories,
		InStock:     true,
	},
}

// GetProductByID looks up a catalog product, including the welcome package.
func GetProductByID(id string) (Product, bool) {
	if id == WelcomePackage.ID {
		return WelcomePackage, true
	}
	for _, p := range Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// GetProductsByCategory returns all catalog products in the given category.
func GetProductsByCategory(category string) []Product {
	var result []Product
	for _, p := range Products {
		if p.Category == category {
			result = append(result, p)
		}
	}
	return result
}

// FormatPrice renders a price in cents as a dollar string, e.g. 2500 -> "$25.00".
func FormatPrice(priceInCents int) string {
	return fmt.Sprintf("$%.2f", float64(priceInCents)/100)
}
