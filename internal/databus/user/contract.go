//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
package user

import "context"

type DBRepo interface {
	UpdateUserName(ctx context.Context, userUUID, newName string) error
	UpdateUserEmail(ctx context.Context, userUUID, newEmail string) error
}

type UserCache interface {
	DropUserInfo(ctx context.Context, userUUID string) error
}
