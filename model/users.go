package model

import (
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"time"

	"github.com/gofrs/uuid"

	"github.com/recetario/recetario/utils"
)

// ErrWrongPassword パスワードが一致しない
var ErrWrongPassword = errors.New("password is wrong")

// UserAccountStatus ユーザーアカウント状態
type UserAccountStatus int

const (
	// UserAccountStatusDeactivated ユーザーアカウント状態: 凍結
	UserAccountStatusDeactivated UserAccountStatus = 0
	// UserAccountStatusActive ユーザーアカウント状態: 有効
	UserAccountStatusActive UserAccountStatus = 1
)

// Valid 有効な値かどうか
func (v UserAccountStatus) Valid() bool {
	switch v {
	case UserAccountStatusDeactivated, UserAccountStatusActive:
		return true
	default:
		return false
	}
}

// User ユーザー構造体
type User struct {
	ID          uuid.UUID         `gorm:"type:char(36);not null;primaryKey"  json:"id"`
	Name        string            `gorm:"type:varchar(32);not null;unique"   json:"name"`
	DisplayName string            `gorm:"type:varchar(64);not null;default:''" json:"displayName"`
	Password    string            `gorm:"type:char(128);not null;default:''" json:"-"`
	Salt        string            `gorm:"type:char(128);not null;default:''" json:"-"`
	Role        string            `gorm:"type:varchar(30);not null;default:'member'" json:"role"`
	Status      UserAccountStatus `gorm:"type:tinyint;not null;default:1"    json:"status"`
	CreatedAt   time.Time         `gorm:"precision:6"                        json:"createdAt"`
	UpdatedAt   time.Time         `gorm:"precision:6"                        json:"updatedAt"`
}

// TableName User構造体のテーブル名
func (*User) TableName() string {
	return "users"
}

// IsActive アカウントが有効かどうか
func (u *User) IsActive() bool {
	return u.Status == UserAccountStatusActive
}

// Authenticate パスワード認証を行います
func (u *User) Authenticate(pass string) error {
	if len(u.Password) == 0 {
		return ErrWrongPassword
	}
	stored, err := hex.DecodeString(u.Password)
	if err != nil {
		return err
	}
	salt, err := hex.DecodeString(u.Salt)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare(utils.HashPassword(pass, salt), stored) != 1 {
		return ErrWrongPassword
	}
	return nil
}

// GetResponseDisplayName 表示名が空の場合にユーザー名で埋めた表示名を返します
func (u *User) GetResponseDisplayName() string {
	if len(u.DisplayName) == 0 {
		return u.Name
	}
	return u.DisplayName
}
