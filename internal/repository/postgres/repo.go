package postgres

import (
	"context"
	"fmt"
	"log"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/s21platform/dialog-service/internal/config"
	"github.com/s21platform/dialog-service/internal/model"
)

type txKey string

const keySqlxTx = txKey("sqlx_tx")

type queryer interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

type Repository struct {
	connection *sqlx.DB
}

func New(cfg *config.Config) *Repository {
	conStr := fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%s sslmode=disable",
		cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Database, cfg.Postgres.Host, cfg.Postgres.Port)

	conn, err := sqlx.Connect("postgres", conStr)
	if err != nil {
		log.Fatal("error connect: ", err)
	}

	return &Repository{
		connection: conn,
	}
}

func (r *Repository) Close() {
	_ = r.connection.Close()
}

func (r *Repository) WithTx(ctx context.Context, cb func(ctx context.Context) error) error {
	transaction, err := r.connection.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}

	ctx = context.WithValue(ctx, keySqlxTx, transaction)

	if err := cb(ctx); err != nil {
		_ = transaction.Rollback()
		return err
	}

	return transaction.Commit()
}

// Chk picks the in-flight transaction from the context when there is one.
func (r *Repository) Chk(ctx context.Context) queryer {
	if transaction, ok := ctx.Value(keySqlxTx).(*sqlx.Tx); ok {
		return transaction
	}
	return r.connection
}

func (r *Repository) SaveMessage(ctx context.Context, message *model.Message) error {
	query := sq.Insert("messages").
		Columns("id", "sender_id", "receiver_id", "kind", "text", "attachment_key", "sent_at").
		Values(message.ID, message.SenderID, message.ReceiverID, message.Kind, message.Text, message.AttachmentKey, message.SentAt).
		PlaceholderFormat(sq.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.Chk(ctx).ExecContext(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to save message: %v", err)
	}

	return nil
}

func (r *Repository) SaveAttachment(ctx context.Context, attachment *model.Attachment) error {
	query := sq.Insert("attachments").
		Columns("key", "original_name", "size_bytes", "created_at").
		Values(attachment.Key, attachment.OriginalName, attachment.SizeBytes, attachment.CreatedAt).
		PlaceholderFormat(sq.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.Chk(ctx).ExecContext(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to save attachment: %v", err)
	}

	return nil
}

func (r *Repository) GetAttachment(ctx context.Context, key string) (*model.Attachment, error) {
	query, args, err := sq.Select("key", "original_name", "size_bytes", "created_at").
		From("attachments").
		Where(sq.Eq{"key": key}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var attachment model.Attachment
	err = r.Chk(ctx).GetContext(ctx, &attachment, query, args...)
	if err != nil {
		return nil, err
	}

	return &attachment, nil
}

// GetConversation returns every message between the two users, in either
// direction, oldest first. Message id breaks sent_at ties so re-reads are
// stable.
func (r *Repository) GetConversation(ctx context.Context, userA, userB string) (*model.MessageList, error) {
	queryBuilder := sq.Select(
		"m.id",
		"m.sender_id",
		"m.receiver_id",
		"m.kind",
		"m.text",
		"m.attachment_key",
		"a.original_name as attachment_name",
		"m.sent_at",
	).
		From("messages m").
		LeftJoin("attachments a ON a.key = m.attachment_key").
		Where(sq.Or{
			sq.And{sq.Eq{"m.sender_id": userA}, sq.Eq{"m.receiver_id": userB}},
			sq.And{sq.Eq{"m.sender_id": userB}, sq.Eq{"m.receiver_id": userA}},
		}).
		OrderBy("m.sent_at ASC", "m.id ASC")

	query, args, err := queryBuilder.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var messages model.MessageList
	err = r.Chk(ctx).SelectContext(ctx, &messages, query, args...)
	if err != nil {
		return nil, err
	}

	return &messages, nil
}

func (r *Repository) AddNewUser(ctx context.Context, userInfo *model.UserInfo) error {
	query, args, err := sq.Insert("users").
		Columns("id", "name", "email").
		Values(userInfo.ID, userInfo.Name, userInfo.Email).
		Suffix("ON CONFLICT (id) DO NOTHING").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.Chk(ctx).ExecContext(ctx, query, args...)

	return err
}

func (r *Repository) GetUsersInfo(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]model.UserInfo, error) {
	if len(userIDs) == 0 {
		return map[uuid.UUID]model.UserInfo{}, nil
	}

	query, args, err := sq.Select("id", "name", "email").
		From("users").
		Where(sq.Eq{"id": userIDs}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var users model.UserInfoList
	err = r.Chk(ctx).SelectContext(ctx, &users, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get users info: %v", err)
	}

	result := make(map[uuid.UUID]model.UserInfo, len(users))
	for _, user := range users {
		result[user.ID] = user
	}

	return result, nil
}

func (r *Repository) ListContacts(ctx context.Context, excludeID string) (*model.UserInfoList, error) {
	query, args, err := sq.Select("id", "name", "email").
		From("users").
		Where(sq.NotEq{"id": excludeID}).
		OrderBy("name ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var contacts model.UserInfoList
	err = r.Chk(ctx).SelectContext(ctx, &contacts, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %v", err)
	}

	return &contacts, nil
}

func (r *Repository) UpdateUserName(ctx context.Context, userUUID, newName string) error {
	query, args, err := sq.Update("users").
		Set("name", newName).
		Where(sq.Eq{"id": userUUID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.Chk(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateUserEmail(ctx context.Context, userUUID, newEmail string) error {
	query, args, err := sq.Update("users").
		Set("email", newEmail).
		Where(sq.Eq{"id": userUUID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.Chk(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	return nil
}
