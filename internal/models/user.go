package models

// User — запись таблицы users.
type User struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"type:TEXT;not null" json:"name"`
	Email string `gorm:"type:TEXT;uniqueIndex;not null" json:"email"`
}
