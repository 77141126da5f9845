package model

import "github.com/google/uuid"

type UserInfo struct {
	ID    uuid.UUID `db:"id" json:"id"`
	Name  string    `db:"name" json:"name"`
	Email string    `db:"email" json:"email"`
}

type UserInfoList []UserInfo
