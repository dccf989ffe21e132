package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const (
	errMySQLDuplicatedRecord uint16 = 1062
)

func limitAndOffset(limit, offset int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if offset > 0 {
			db = db.Offset(offset)
		}
		if limit > 0 {
			db = db.Limit(limit)
		}
		return db
	}
}

func isMySQLDuplicatedRecordErr(err error) bool {
	var merr *mysql.MySQLError
	if !errors.As(err, &merr) {
		return false
	}
	return merr.Number == errMySQLDuplicatedRecord
}

func dbExists(tx *gorm.DB, where interface{}) (exists bool, err error) {
	var c int64
	err = tx.Model(where).Where(where).Limit(1).Count(&c).Error
	return c > 0, err
}

func convertError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	default:
		return err
	}
}
