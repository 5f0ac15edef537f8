package models

import "time"

// Trade is the header of one completed sale. Totals are derived from the
// owned lines and never supplied by the caller.
type Trade struct {
	ID           uint      `gorm:"column:trd_id;primaryKey;autoIncrement" json:"trd_id"`
	OccurredAt   time.Time `gorm:"column:datetime;not null;index:idx_trades_datetime" json:"datetime"`
	EmployeeCode string    `gorm:"column:emp_cd;size:10;not null" json:"emp_cd"`
	StoreCode    string    `gorm:"column:store_cd;size:5;not null" json:"store_cd"`
	PosNo        string    `gorm:"column:pos_no;size:3;not null" json:"pos_no"`
	TotalExTax   int64     `gorm:"column:ttl_amt_ex_tax;not null;default:0" json:"ttl_amt_ex_tax"`
	TotalTax     int64     `gorm:"column:ttl_tax;not null;default:0" json:"ttl_tax"`
	TotalAmt     int64     `gorm:"column:total_amt;not null;default:0" json:"total_amt"`

	// Lines are owned by the trade and ordered by LineNo.
	Lines []TradeLine `gorm:"foreignKey:TradeID;references:ID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT" json:"trade_lines,omitempty"`
}

// TableName sets the database table name.
func (Trade) TableName() string { return "trades" }

// TradeLine is one line item of a trade. The product fields are a snapshot
// taken at registration time. Product only declares the prd_id foreign key
// for schema migration; it is never preloaded or serialized.
type TradeLine struct {
	TradeID   uint `gorm:"column:trd_id;primaryKey;autoIncrement:false" json:"trd_id"`
	LineNo    uint `gorm:"column:dtl_id;primaryKey;autoIncrement:false" json:"dtl_id"`
	ProductID uint `gorm:"column:prd_id;not null;index:idx_trade_lines_prd_id" json:"prd_id"`

	ProductCode  string  `gorm:"column:prd_code;size:25;not null" json:"prd_code"`
	ProductName  string  `gorm:"column:prd_name;size:50;not null" json:"prd_name"`
	ProductPrice int64   `gorm:"column:prd_price;not null" json:"prd_price"`
	TaxCode      TaxCode `gorm:"column:tax_cd;type:char(2);not null" json:"tax_cd"`

	Qty        int64 `gorm:"column:qty;not null;default:1;check:chk_trade_lines_qty,qty >= 1" json:"qty"`
	LineExTax  int64 `gorm:"column:line_amt_ex_tax;not null;default:0" json:"line_amt_ex_tax"`
	LineTax    int64 `gorm:"column:line_tax;not null;default:0" json:"line_tax"`
	LineAmount int64 `gorm:"column:line_amt;not null;default:0" json:"line_amt"`

	Product *Product `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT" json:"-"`
}

// TableName sets the database table name.
func (TradeLine) TableName() string { return "trade_lines" }
