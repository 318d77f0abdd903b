package models

import "time"

// LoanModel is one row of the loan ledger: a book held by a user between
// BorrowedAt and ReturnedAt. The ledger is the source of truth for borrow
// state; closed loans are kept forever as history.
type LoanModel struct {
	Id         int        `json:"id" gorm:"primaryKey;autoIncrement"`
	BookId     int        `json:"bookId" gorm:"column:book_id;index;not null"`
	Book       *BookModel `json:"book,omitempty" gorm:"foreignKey:BookId;references:Id"`
	UserId     int        `json:"userId" gorm:"column:user_id;index;not null"`
	User       *UserModel `json:"user,omitempty" gorm:"foreignKey:UserId;references:Id"`
	BorrowedAt time.Time  `json:"borrowedAt" gorm:"not null"`
	Returned   bool       `json:"returned" gorm:"type:boolean;default:false;not null"`
	ReturnedAt *time.Time `json:"returnedAt"`
}
