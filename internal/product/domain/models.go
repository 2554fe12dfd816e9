package domain

import (
	"strings"
	"time"

	categorydomain "github.com/dripstore/catalog/internal/category/domain"
	"github.com/shopspring/decimal"
)

const (
	OptionTypeText  = "text"
	OptionTypeColor = "color"
)

// ValidOptionType reports whether t is in the closed option-type set.
func ValidOptionType(t string) bool {
	return t == OptionTypeText || t == OptionTypeColor
}

type Product struct {
	ID                int64                     `json:"id" gorm:"primaryKey"`
	Name              string                    `json:"name" gorm:"type:text;not null"`
	Slug              string                    `json:"slug" gorm:"type:text;not null;uniqueIndex:ux_products_slug"`
	Price             decimal.Decimal           `json:"price" gorm:"type:decimal(10,2);not null"`
	PriceWithDiscount *decimal.Decimal          `json:"price_with_discount" gorm:"column:price_with_discount;type:decimal(10,2)"`
	Stock             int                       `json:"stock" gorm:"not null;default:0"`
	Description       string                    `json:"description" gorm:"type:text"`
	Enabled           bool                      `json:"enabled" gorm:"not null;default:false"`
	CreatedAt         time.Time                 `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt         time.Time                 `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	Images            []ProductImage            `json:"images" gorm:"foreignKey:ProductID"`
	Options           []ProductOption           `json:"options" gorm:"foreignKey:ProductID"`
	Categories        []categorydomain.Category `json:"categories" gorm:"many2many:product_categories;joinForeignKey:ProductID;joinReferences:CategoryID"`
}

func (Product) TableName() string { return "products" }

type ProductImage struct {
	ID        int64  `json:"id" gorm:"primaryKey"`
	ProductID int64  `json:"product_id" gorm:"column:product_id;not null;index:ix_product_images_product"`
	Path      string `json:"path" gorm:"type:text;not null"`
	Position  int    `json:"position" gorm:"not null;default:0"`
}

func (ProductImage) TableName() string { return "product_images" }

type ProductOption struct {
	ID        int64  `json:"id" gorm:"primaryKey"`
	ProductID int64  `json:"product_id" gorm:"column:product_id;not null;index:ix_product_options_product"`
	Title     string `json:"title" gorm:"type:text;not null"`
	Type      string `json:"type" gorm:"type:text;not null;default:text"`
	Values    string `json:"values" gorm:"column:values;type:text;not null"`
	Position  int    `json:"position" gorm:"not null;default:0"`
}

func (ProductOption) TableName() string { return "product_options" }

// ValueList splits the stored comma-joined value string.
func (o ProductOption) ValueList() []string {
	if o.Values == "" {
		return nil
	}
	return strings.Split(o.Values, ",")
}

// JoinValues stores an ordered value set the way the options table keeps it.
func JoinValues(values []string) string {
	clean := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			clean = append(clean, v)
		}
	}
	return strings.Join(clean, ",")
}
