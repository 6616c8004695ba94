package domain

import (
	"time"
)

// Depreciation methods recorded on assets and complementary items.
const (
	MethodStraightLine     = "Straight-Line"
	MethodDecliningBalance = "Declining Balance"
)

// Asset is the root catalog entity. The id is vendor-assigned at creation
// time, not generated. Dates are stored as YYYY-MM-DD strings, same as the
// archive records, so form input round-trips without timezone surprises.
type Asset struct {
	ID                  string    `gorm:"column:id;primaryKey" json:"id"`
	Name                string    `gorm:"column:name;not null" json:"name"`
	Brand               string    `gorm:"column:brand" json:"brand"`
	Model               string    `gorm:"column:model" json:"model"`
	SerialNumber        string    `gorm:"column:serial_number" json:"serial_number"`
	PartNumber          string    `gorm:"column:part_number" json:"part_number"`
	Category            string    `gorm:"column:category" json:"category"`
	SubCategory         string    `gorm:"column:sub_category" json:"sub_category"`
	DepartmentOwner     string    `gorm:"column:department_owner" json:"department_owner"`
	PurchasePrice       float64   `gorm:"column:purchase_price;type:decimal(18,2);not null;default:0" json:"purchase_price"`
	PurchaseOrderNumber string    `gorm:"column:purchase_order_number" json:"purchase_order_number"`
	VendorSupplier      string    `gorm:"column:vendor_supplier" json:"vendor_supplier"`
	ExpectedLifespan    float64   `gorm:"column:expected_lifespan;not null;default:0" json:"expected_lifespan"`
	DepreciationMethod  string    `gorm:"column:depreciation_method" json:"depreciation_method"`
	DepreciationRate    float64   `gorm:"column:depreciation_rate;not null;default:0" json:"depreciation_rate"`
	PurchaseDate        string    `gorm:"column:purchase_date" json:"purchase_date"`
	Status              string    `gorm:"column:status;type:varchar(20);default:'Active'" json:"status"`
	Warranty            string    `gorm:"column:warranty" json:"warranty"`
	ActiveDate          string    `gorm:"column:active_date" json:"active_date"`
	ImageURL            string    `gorm:"column:image_url" json:"image_url"`
	PrimaryUser         string    `gorm:"column:primary_user" json:"primary_user"`
	Notes               string    `gorm:"column:notes" json:"notes"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (Asset) TableName() string {
	return "assets"
}
