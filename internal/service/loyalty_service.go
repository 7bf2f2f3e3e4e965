package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Heytechmate/overtime-cafe/internal/domain"
	"github.com/Heytechmate/overtime-cafe/internal/repository"
)

// LoyaltyService owns the stamp card: staff punches, redemptions and the
// member-facing card view. Accrual on order collection goes through the
// same repository path from OrderService.
type LoyaltyService struct {
	Users         repository.UserRepository
	Loyalty       repository.LoyaltyRepository
	Settings      repository.SettingsRepository
	Notifications repository.NotificationRepository
	Logs          repository.ActivityLogRepository
	Logger        *slog.Logger
}

type Card struct {
	MemberID    string
	Name        string
	CoffeeCount int
	FreeCoffees int
	Goal        int
}

// Card returns the member's current stamp card against the live goal.
func (s LoyaltyService) Card(ctx context.Context, userID int64) (*Card, error) {
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	settings, err := s.Settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &Card{
		MemberID:    user.MemberID,
		Name:        user.Name,
		CoffeeCount: user.CoffeeCount,
		FreeCoffees: user.FreeCoffees,
		Goal:        settings.CoffeeGoal,
	}, nil
}

// Punch accrues stamps for a member identified by card ID. The staff punch
// is a single point unless the till passes a larger quantity.
func (s LoyaltyService) Punch(ctx context.Context, actor, memberID string, points int) (*Card, error) {
	if points <= 0 {
		points = 1
	}
	user, err := s.Users.GetByMemberID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	settings, err := s.Settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	bal, err := s.Loyalty.AddPoints(ctx, user.ID, points, settings.CoffeeGoal)
	if err != nil {
		return nil, err
	}

	if bal.FreeEarned > 0 {
		s.notifyFreeCoffee(ctx, user.ID, bal.FreeEarned)
	}
	s.log(ctx, actor, "Stamp punched",
		fmt.Sprintf("%s earned %d stamp(s), balance %d/%d", user.MemberID, points, bal.CoffeeCount, settings.CoffeeGoal))

	return &Card{
		MemberID:    user.MemberID,
		Name:        user.Name,
		CoffeeCount: bal.CoffeeCount,
		FreeCoffees: bal.FreeCoffees,
		Goal:        settings.CoffeeGoal,
	}, nil
}

// Redeem spends one free coffee for the member.
func (s LoyaltyService) Redeem(ctx context.Context, actor, memberID string) (*Card, error) {
	user, err := s.Users.GetByMemberID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	bal, err := s.Loyalty.RedeemFree(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	settings, err := s.Settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	s.log(ctx, actor, "Free coffee redeemed",
		fmt.Sprintf("%s redeemed a free coffee, %d remaining", user.MemberID, bal.FreeCoffees))

	return &Card{
		MemberID:    user.MemberID,
		Name:        user.Name,
		CoffeeCount: bal.CoffeeCount,
		FreeCoffees: bal.FreeCoffees,
		Goal:        settings.CoffeeGoal,
	}, nil
}

// ChangeGoal updates the stamps-per-free-coffee target. Existing balances
// are reinterpreted against the new goal on their next accrual.
func (s LoyaltyService) ChangeGoal(ctx context.Context, actor string, goal int) (*domain.Settings, error) {
	if goal < 1 {
		return nil, fmt.Errorf("coffee goal must be at least 1")
	}
	settings, err := s.Settings.SetCoffeeGoal(ctx, goal)
	if err != nil {
		return nil, err
	}
	s.log(ctx, actor, "Coffee goal changed", fmt.Sprintf("goal set to %d", goal))
	return settings, nil
}

func (s LoyaltyService) notifyFreeCoffee(ctx context.Context, userID int64, earned int) {
	title := "Free coffee unlocked!"
	msg := "You completed your stamp card. Your next coffee is on us."
	if earned > 1 {
		msg = fmt.Sprintf("You earned %d free coffees. Enjoy!", earned)
	}
	if _, err := s.Notifications.Create(ctx, repository.CreateNotificationInput{
		UserID:  userID,
		Title:   title,
		Message: msg,
		Type:    domain.NotificationInfo,
	}); err != nil {
		s.Logger.Warn("free coffee notification failed", "user_id", userID, "error", err)
	}
}

func (s LoyaltyService) log(ctx context.Context, actor, title, message string) {
	if _, err := s.Logs.Create(ctx, repository.CreateActivityLogInput{
		Title:   title,
		Message: message,
		Actor:   actor,
		Type:    domain.LogInfo,
	}); err != nil {
		s.Logger.Warn("activity log write failed", "title", title, "error", err)
	}
}
