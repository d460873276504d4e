package models

import "github.com/shopspring/decimal"

func init() {
	// quantity и net_price отдаются в JSON числами, а не строками
	decimal.MarshalJSONWithoutQuotes = true
}

// Item — строка таблицы items, создаётся только загрузкой XML.
// Record — внешний идентификатор из исходного документа, ни на что не ссылается.
type Item struct {
	ID       uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Record   int64           `gorm:"not null" json:"record"`
	Name     string          `gorm:"type:TEXT;not null" json:"name"`
	Quantity decimal.Decimal `gorm:"type:numeric;not null" json:"quantity" swaggertype:"number"`
	NetPrice decimal.Decimal `gorm:"type:numeric;not null" json:"net_price" swaggertype:"number"`
}
