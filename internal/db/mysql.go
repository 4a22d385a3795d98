package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewMySQL returns a connected GORM DB instance.
//
// TranslateError is enabled so duplicate-key violations surface as
// gorm.ErrDuplicatedKey; the service layer relies on that to turn a
// concurrent double insert of a unique (user, recipe) or (user, author)
// pair into a conflict instead of corrupt data.
func NewMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}
