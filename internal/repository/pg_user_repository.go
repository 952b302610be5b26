package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"storybook-server/internal/interfaces"
	"storybook-server/internal/models"
)

const (
	getUserByIDQuery = `
		SELECT id, email, name, password_hash, profile_picture, stripe_customer_id,
		       subscription_status, subscription_tier, subscription_plan_id, subscription_period_end,
		       payment_method_id, payment_method_brand, payment_method_last4,
		       payment_method_exp_month, payment_method_exp_year,
		       created_at, updated_at
		FROM users
		WHERE id = $1;
	`
	updateSubscriptionQuery = `
		UPDATE users SET
			subscription_status = $2,
			subscription_tier = $3,
			subscription_plan_id = $4,
			subscription_period_end = $5,
			updated_at = NOW()
		WHERE id = $1;
	`
	updatePaymentMethodQuery = `
		UPDATE users SET
			payment_method_id = $2,
			payment_method_brand = $3,
			payment_method_last4 = $4,
			payment_method_exp_month = $5,
			payment_method_exp_year = $6,
			updated_at = NOW()
		WHERE id = $1;
	`
)

// Убедимся, что pgUserRepository реализует интерфейс
var _ interfaces.UserRepository = (*pgUserRepository)(nil)

type pgUserRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

func NewUserRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.UserRepository {
	return &pgUserRepository{
		db:     db,
		logger: logger.Named("user_repo"),
	}
}

// GetUserByID загружает пользователя вместе со снимком подписки и способа оплаты.
func (r *pgUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(ctx, getUserByIDQuery, id).Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.ProfilePicture, &user.StripeCustomerID,
		&user.Subscription.Status, &user.Subscription.Tier, &user.Subscription.PlanID, &user.Subscription.CurrentPeriodEnd,
		&user.PaymentMethod.ID, &user.PaymentMethod.Brand, &user.PaymentMethod.Last4,
		&user.PaymentMethod.ExpMonth, &user.PaymentMethod.ExpYear,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user by ID", zap.String("userID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("db error getting user: %w", err)
	}
	return &user, nil
}

// UpdateSubscription сохраняет свежесинхронизированное состояние подписки.
func (r *pgUserRepository) UpdateSubscription(ctx context.Context, userID uuid.UUID, sub models.Subscription) error {
	cmdTag, err := r.db.Exec(ctx, updateSubscriptionQuery,
		userID, sub.Status, sub.Tier, sub.PlanID, sub.CurrentPeriodEnd)
	if err != nil {
		r.logger.Error("Failed to update subscription",
			zap.String("userID", userID.String()),
			zap.String("tier", string(sub.Tier)),
			zap.Error(err),
		)
		return fmt.Errorf("db error updating subscription: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrUserNotFound
	}

	r.logger.Debug("Subscription snapshot updated",
		zap.String("userID", userID.String()),
		zap.String("status", sub.Status),
		zap.String("tier", string(sub.Tier)),
	)
	return nil
}

// UpdatePaymentMethod обновляет сводку способа оплаты пользователя.
func (r *pgUserRepository) UpdatePaymentMethod(ctx context.Context, userID uuid.UUID, pm models.PaymentMethod) error {
	cmdTag, err := r.db.Exec(ctx, updatePaymentMethodQuery,
		userID, pm.ID, pm.Brand, pm.Last4, pm.ExpMonth, pm.ExpYear)
	if err != nil {
		r.logger.Error("Failed to update payment method", zap.String("userID", userID.String()), zap.Error(err))
		return fmt.Errorf("db error updating payment method: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrUserNotFound
	}
	return nil
}
