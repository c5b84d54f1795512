//go:build !wasm
// +build !wasm

// Package gorm provides a GORM implementation of the gatehouse UserStore for
// applications that keep credentials in a relational database.  The caller
// supplies the *gorm.DB (and therefore the driver); run AutoMigrate once at
// startup to create the users table with its unique reservation-key index.
//
// NewUserStore enables TranslateError on the session so constraint
// violations arrive as gorm.ErrDuplicatedKey on every driver.
package gorm
