package services

import (
	"context"
	"strconv"

	"gorm.io/gorm"
)

// Identity resolves bearer credentials for the WebSocket hub: token -> subject
// username -> user id.
type Identity struct {
	db *gorm.DB
}

// NewIdentity 创建身份校验器
func NewIdentity(db *gorm.DB) *Identity {
	return &Identity{db: db}
}

// VerifyCredential validates the JWT and returns the subject username.
func (i *Identity) VerifyCredential(_ context.Context, credential string) (string, error) {
	return VerifyToken(credential)
}

// ResolveUserIDByName looks the username up in the database and returns the
// user id as a string, the form session and room tables key on.
func (i *Identity) ResolveUserIDByName(ctx context.Context, username string) (string, error) {
	user, err := GetUserByName(i.db.WithContext(ctx), username)
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(uint64(user.ID), 10), nil
}
