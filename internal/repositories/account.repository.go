package repositories

import (
	"context"

	. "gearguard/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type AccountRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*Account, error)
	GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*Account, error)
	Exists(ctx context.Context, tx *gorm.DB, id int) (bool, error)
	Create(ctx context.Context, tx *gorm.DB, account *Account) error
	Update(ctx context.Context, tx *gorm.DB, id int, updates map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, id int) error
}

type accountRepository struct {
	log logger.Logger
}

func NewAccountRepository() AccountRepository {
	return &accountRepository{log: logger.New("accountRepository")}
}

func (r *accountRepository) GetByID(ctx context.Context, tx *gorm.DB, id int) (*Account, error) {
	log := r.log.TraceFromContext(ctx).Function("GetByID")

	account, err := gorm.G[Account](tx).Where("id = ?", id).First(ctx)
	if err != nil {
		return nil, fail(log, "failed to get account", err, "account", "accountID", id)
	}

	return &account, nil
}

func (r *accountRepository) GetByUsername(
	ctx context.Context,
	tx *gorm.DB,
	username string,
) (*Account, error) {
	log := r.log.TraceFromContext(ctx).Function("GetByUsername")

	account, err := gorm.G[Account](tx).Where("username = ?", username).First(ctx)
	if err != nil {
		return nil, fail(log, "failed to get account by username", err, "account", "username", username)
	}

	return &account, nil
}

func (r *accountRepository) Exists(ctx context.Context, tx *gorm.DB, id int) (bool, error) {
	log := r.log.TraceFromContext(ctx).Function("Exists")

	var count int64
	if err := tx.WithContext(ctx).Model(&Account{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, log.Err("failed to check account", err, "accountID", id)
	}

	return count > 0, nil
}

func (r *accountRepository) Create(ctx context.Context, tx *gorm.DB, account *Account) error {
	log := r.log.TraceFromContext(ctx).Function("Create")

	if err := tx.WithContext(ctx).Create(account).Error; err != nil {
		return fail(log, "failed to create account", err, "account", "username", account.Username)
	}

	return nil
}

func (r *accountRepository) Update(
	ctx context.Context,
	tx *gorm.DB,
	id int,
	updates map[string]any,
) error {
	log := r.log.TraceFromContext(ctx).Function("Update")

	if len(updates) == 0 {
		return nil
	}

	result := tx.WithContext(ctx).Model(&Account{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fail(log, "failed to update account", result.Error, "account", "accountID", id)
	}
	if result.RowsAffected == 0 {
		return notFound("account", id)
	}

	return nil
}

func (r *accountRepository) Delete(ctx context.Context, tx *gorm.DB, id int) error {
	log := r.log.TraceFromContext(ctx).Function("Delete")

	result := tx.WithContext(ctx).Delete(&Account{}, id)
	if result.Error != nil {
		return failDelete(log, "failed to delete account", result.Error, "account", "accountID", id)
	}
	if result.RowsAffected == 0 {
		return notFound("account", id)
	}

	return nil
}
