package model

// ProductVariant is a sellable variation (size, colour) of a product.
type ProductVariant struct {
	ID                 int64    `json:"id,omitempty"`
	VariantType        string   `json:"variantType"`
	VariantValue       string   `json:"variantValue"`
	VariantDescription string   `json:"variantDescription,omitempty"`
	Price              float64  `json:"price"`
	CompareAtPrice     *float64 `json:"compareAtPrice,omitempty"`
	StockQuantity      *int     `json:"stockQuantity,omitempty"`
	SortOrder          *int     `json:"sortOrder,omitempty"`
}

// ProductImage is an image reference attached to a product.
type ProductImage struct {
	ImageURL  string `json:"imageUrl"`
	AltText   string `json:"altText,omitempty"`
	IsPrimary bool   `json:"isPrimary,omitempty"`
	SortOrder int    `json:"sortOrder,omitempty"`
}

// CategoryRef is the category summary embedded in a product.
type CategoryRef struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Product is the backend product representation.
type Product struct {
	ID               int64            `json:"id"`
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	ShortDescription string           `json:"shortDescription"`
	SKU              string           `json:"sku"`
	Price            float64          `json:"price"`
	CompareAtPrice   *float64         `json:"compareAtPrice,omitempty"`
	StockQuantity    int              `json:"stockQuantity"`
	IsActive         bool             `json:"isActive"`
	IsFeatured       bool             `json:"isFeatured"`
	Weight           *float64         `json:"weight,omitempty"`
	Dimensions       string           `json:"dimensions,omitempty"`
	Tags             string           `json:"tags,omitempty"`
	AverageRating    float64          `json:"averageRating"`
	ReviewCount      int              `json:"reviewCount"`
	PrimaryImageURL  string           `json:"primaryImageUrl"`
	AllImageURLs     []string         `json:"allImageUrls"`
	Category         CategoryRef      `json:"category"`
	Variants         []ProductVariant `json:"variants,omitempty"`
}

// InStock reports whether the product has stock left.
func (p Product) InStock() bool {
	return p.StockQuantity > 0
}

// ProductCreateRequest is the admin create payload.
type ProductCreateRequest struct {
	Name             string           `json:"name"`
	Description      string           `json:"description,omitempty"`
	ShortDescription string           `json:"shortDescription,omitempty"`
	SKU              string           `json:"sku"`
	Price            float64          `json:"price"`
	CompareAtPrice   *float64         `json:"compareAtPrice,omitempty"`
	StockQuantity    *int             `json:"stockQuantity,omitempty"`
	CategoryID       int64            `json:"categoryId"`
	Tags             string           `json:"tags,omitempty"`
	Weight           *float64         `json:"weight,omitempty"`
	Dimensions       string           `json:"dimensions,omitempty"`
	Images           []ProductImage   `json:"images,omitempty"`
	Variants         []ProductVariant `json:"variants,omitempty"`
}

// ProductUpdateRequest is the admin update payload.
type ProductUpdateRequest struct {
	Name             string   `json:"name"`
	Description      string   `json:"description,omitempty"`
	ShortDescription string   `json:"shortDescription,omitempty"`
	Price            float64  `json:"price"`
	CompareAtPrice   *float64 `json:"compareAtPrice,omitempty"`
	StockQuantity    *int     `json:"stockQuantity,omitempty"`
	CategoryID       int64    `json:"categoryId"`
	Tags             string   `json:"tags,omitempty"`
	Weight           *float64 `json:"weight,omitempty"`
	Dimensions       string   `json:"dimensions,omitempty"`
}

// ProductSearchRequest is the /api/products/search payload.
type ProductSearchRequest struct {
	SearchTerm    string   `json:"searchTerm,omitempty"`
	CategoryID    *int64   `json:"categoryId,omitempty"`
	MinPrice      *float64 `json:"minPrice,omitempty"`
	MaxPrice      *float64 `json:"maxPrice,omitempty"`
	InStock       *bool    `json:"inStock,omitempty"`
	SortBy        string   `json:"sortBy,omitempty"`
	SortDirection string   `json:"sortDirection,omitempty"`
	Page          int      `json:"page,omitempty"`
	Size          int      `json:"size,omitempty"`
}

// Category is a node of the category hierarchy.
type Category struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	ImageURL         string `json:"imageUrl"`
	Icon             string `json:"icon"`
	IsActive         bool   `json:"isActive"`
	IsFeatured       bool   `json:"isFeatured"`
	SortOrder        int    `json:"sortOrder"`
	ParentID         *int64 `json:"parentId,omitempty"`
	SubcategoryCount int    `json:"subcategoryCount"`
	CreatedAt        string `json:"createdAt"`
	UpdatedAt        string `json:"updatedAt"`
}

// IsRoot reports whether the category has no parent.
func (c Category) IsRoot() bool {
	return c.ParentID == nil
}

// CategoryCreateRequest is the admin create payload.
type CategoryCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Icon        string `json:"icon,omitempty"`
	IsActive    *bool  `json:"isActive,omitempty"`
	IsFeatured  *bool  `json:"isFeatured,omitempty"`
	SortOrder   *int   `json:"sortOrder,omitempty"`
	ParentID    *int64 `json:"parentId,omitempty"`
}

// CategoryUpdateRequest is the admin update payload; nil fields are left unchanged.
type CategoryUpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
	IsFeatured  *bool   `json:"isFeatured,omitempty"`
	SortOrder   *int    `json:"sortOrder,omitempty"`
	ParentID    *int64  `json:"parentId,omitempty"`
}
