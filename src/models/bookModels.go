package models

// BookModel is a single catalog entry (one physical copy per row).
// IsAvailable and UserId are a denormalized view of the open loan in the
// ledger; only the loan service writes them, inside the same transaction
// that writes the loan row.
type BookModel struct {
	Id          int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string `json:"title" gorm:"type:varchar(255);not null"`
	Author      string `json:"author" gorm:"type:varchar(255);not null"`
	Publisher   string `json:"publisher" gorm:"type:varchar(255)"`
	Genre       string `json:"genre" gorm:"type:varchar(100)"`
	IsAvailable bool   `json:"isAvailable" gorm:"type:boolean;default:true;not null"`
	UserId      *int   `json:"userId" gorm:"column:user_id"`
}
