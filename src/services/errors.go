package services

import "errors"

// Business-rule rejections. Controllers translate these to HTTP statuses;
// anything else coming out of a service is a server fault.
var (
	ErrNotFound           = errors.New("record not found")
	ErrAlreadyBorrowed    = errors.New("book is already borrowed")
	ErrNotBorrowed        = errors.New("book is not currently borrowed")
	ErrBookBorrowed       = errors.New("cannot delete a borrowed book, it must be returned first")
	ErrHasOpenLoans       = errors.New("must return all books before closing account")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
