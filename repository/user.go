package repository

import (
	"github.com/gofrs/uuid"

	"github.com/recetario/recetario/model"
)

// CreateUserArgs ユーザー作成引数
type CreateUserArgs struct {
	Name        string
	DisplayName string
	// Password 空の場合はパスワードログイン不可のユーザーになります
	Password string
	Role     string
}

// UserRepository ユーザーリポジトリ
type UserRepository interface {
	// CreateUser ユーザーを作成します
	//
	// 成功した場合、ユーザーとnilを返します。
	// Nameが重複している場合、ErrAlreadyExistsを返します。
	// 引数に問題がある場合、ArgumentErrorを返します。
	// DBによるエラーを返すことがあります。
	CreateUser(args CreateUserArgs) (*model.User, error)
	// GetUser 指定したIDのユーザーを取得します
	//
	// 成功した場合、ユーザーとnilを返します。
	// 存在しない場合、ErrNotFoundを返します。
	// 引数にuuid.Nilを指定した場合、ErrNilIDを返します。
	GetUser(id uuid.UUID) (*model.User, error)
	// GetUserByName 指定した名前のユーザーを取得します
	//
	// 成功した場合、ユーザーとnilを返します。
	// 存在しない場合、ErrNotFoundを返します。
	GetUserByName(name string) (*model.User, error)
	// UserExists 指定したIDのユーザーが存在するかどうか
	UserExists(id uuid.UUID) (bool, error)
}
