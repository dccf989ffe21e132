package utils

import (
	crand "crypto/rand"
	"crypto/sha512"

	"golang.org/x/crypto/pbkdf2"
)

// HashPassword パスワードをハッシュ化します
func HashPassword(pass string, salt []byte) []byte {
	return pbkdf2.Key([]byte(pass), salt, 65536, 64, sha512.New)[:]
}

// GenerateSalt ソルトを生成します
func GenerateSalt() []byte {
	salt := make([]byte, 64)
	if _, err := crand.Read(salt); err != nil {
		panic(err)
	}
	return salt
}
