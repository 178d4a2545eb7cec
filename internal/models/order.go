package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DateTimeLayout is the second-precision format order timestamps are stored with.
const DateTimeLayout = "2006-01-02 15:04:05"

// MonthLayout is the grouping key format derived from the order timestamp.
const MonthLayout = "2006-01"

// Order is one customer transaction record. ID is a surrogate key used only
// by the database-backed repository; the workbook keeps rows in sheet order.
type Order struct {
	ID                 uint            `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderID            string          `json:"order_id" gorm:"column:order_id;uniqueIndex;not null"`
	FullName           string          `json:"full_name"`
	FirstName          string          `json:"first_name"`
	LastName           string          `json:"last_name"`
	WeightKg           string          `json:"weight_kg"`
	HeightCm           string          `json:"height_cm"`
	Address            string          `json:"address"`
	Phone              string          `json:"phone"`
	SocialLink         string          `json:"social_link"`
	OrderLink          string          `json:"order_link"`
	ProductDescription string          `json:"product_description"`
	Comment            string          `json:"comment"`
	CostPrice          decimal.Decimal `json:"cost_price" gorm:"type:numeric"`
	SalePrice          decimal.Decimal `json:"sale_price" gorm:"type:numeric"`
	OtherCost          decimal.Decimal `json:"other_cost" gorm:"type:numeric"`
	Profit             decimal.Decimal `json:"profit" gorm:"type:numeric"`
	OrderDateTime      string          `json:"order_datetime"`
	OrderMonth         string          `json:"order_month"`
	ShippingMethod     string          `json:"shipping_method"`
	DiscountType       string          `json:"discount_type"`
	DiscountValue      string          `json:"discount_value"`
	DiscountNotes      string          `json:"discount_notes"`
	PaymentMethod      string          `json:"payment_method"`
	OrderStatus        string          `json:"order_status"`
	ImagePath          string          `json:"image_path"`
}

// OrderDate returns the date portion of the creation timestamp.
func (o *Order) OrderDate() string {
	if o.OrderDateTime == "" {
		return ""
	}
	return strings.SplitN(o.OrderDateTime, " ", 2)[0]
}
