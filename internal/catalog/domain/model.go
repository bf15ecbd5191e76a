package domain

// Product is a catalog entry keyed by scan code. Column names follow the
// legacy schema shared with existing deployments.
type Product struct {
	ID    int64  `json:"prdId" gorm:"column:PRD_ID;primaryKey;autoIncrement"`
	Code  string `json:"code" gorm:"column:CODE;type:varchar(64);not null;uniqueIndex:ux_products_code"`
	Name  string `json:"name" gorm:"column:NAME;type:varchar(255);not null"`
	Price int64  `json:"price" gorm:"column:PRICE;not null;default:0"`
}

func (Product) TableName() string { return "products" }
