package service

import (
	"context"
	"fmt"
	"strings"

	"tradepulse/internal/dashboard/config"
	"tradepulse/internal/dashboard/dto"
	"tradepulse/internal/dashboard/repository"
	"tradepulse/internal/entity"
	"tradepulse/pkg/common"
	"tradepulse/pkg/logger"
	redisPkg "tradepulse/pkg/redis"
	"tradepulse/pkg/telegram"
	"tradepulse/pkg/utils"
)

// AlertService manages price alerts and runs the periodic check that
// fires them.
type AlertService interface {
	CreateAlert(ctx context.Context, req *dto.CreateAlertRequest) (*entity.PriceAlert, error)
	GetAllAlerts(ctx context.Context) ([]entity.PriceAlert, error)
	DeleteAlert(ctx context.Context, id uint) error
	CheckAlerts(ctx context.Context)
}

type alertService struct {
	cfg              *config.Config
	logger           *logger.Logger
	alertRepo        repository.AlertRepository
	quoteRepo        repository.QuoteRepository
	redisClient      *redisPkg.Client
	telegramNotifier telegram.Notifier
}

// NewAlertService creates a new AlertService. telegramNotifier may be
// nil when notifications are disabled.
func NewAlertService(cfg *config.Config, log *logger.Logger, alertRepo repository.AlertRepository, quoteRepo repository.QuoteRepository, redisClient *redisPkg.Client, telegramNotifier telegram.Notifier) AlertService {
	return &alertService{
		cfg:              cfg,
		logger:           log,
		alertRepo:        alertRepo,
		quoteRepo:        quoteRepo,
		redisClient:      redisClient,
		telegramNotifier: telegramNotifier,
	}
}

// CreateAlert registers a new price alert.
func (s *alertService) CreateAlert(ctx context.Context, req *dto.CreateAlertRequest) (*entity.PriceAlert, error) {
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if !tickerShape.MatchString(symbol) {
		return nil, fmt.Errorf("invalid ticker symbol %q", req.Symbol)
	}
	condition := entity.AlertCondition(req.Condition)
	if condition != entity.AlertConditionAbove && condition != entity.AlertConditionBelow {
		return nil, fmt.Errorf("invalid alert condition %q", req.Condition)
	}
	if req.TargetPrice <= 0 {
		return nil, fmt.Errorf("target price must be positive")
	}

	alert := &entity.PriceAlert{
		Symbol:      symbol,
		Condition:   condition,
		TargetPrice: req.TargetPrice,
		Active:      true,
		Notes:       req.Notes,
	}
	if err := s.alertRepo.Create(ctx, alert); err != nil {
		return nil, err
	}
	return alert, nil
}

// GetAllAlerts lists every alert, newest first.
func (s *alertService) GetAllAlerts(ctx context.Context) ([]entity.PriceAlert, error) {
	return s.alertRepo.FindAll(ctx)
}

// DeleteAlert removes an alert.
func (s *alertService) DeleteAlert(ctx context.Context, id uint) error {
	return s.alertRepo.Delete(ctx, id)
}

// CheckAlerts evaluates every active alert against a fresh quote. Quote
// failures skip that alert until the next run; a Redis cooldown key
// dedups notifications for alerts that keep matching run after run.
func (s *alertService) CheckAlerts(ctx context.Context) {
	alerts, err := s.alertRepo.FindActive(ctx)
	if err != nil {
		s.logger.Error("Failed to load active alerts", logger.ErrorField(err))
		return
	}

	quotes := map[string]*dto.Quote{}
	for _, alert := range alerts {
		if !utils.ShouldContinue(ctx, s.logger) {
			return
		}

		quote, ok := quotes[alert.Symbol]
		if !ok {
			quote, err = s.quoteRepo.GetQuote(ctx, alert.Symbol)
			if err != nil {
				s.logger.Warn("Failed to fetch quote for alert",
					logger.ErrorField(err),
					logger.StringField("symbol", alert.Symbol),
				)
				continue
			}
			quotes[alert.Symbol] = quote
		}

		if !conditionMet(alert, quote.Price) {
			continue
		}
		s.fire(ctx, alert, quote.Price)
	}
}

func conditionMet(alert entity.PriceAlert, price float64) bool {
	if alert.Condition == entity.AlertConditionAbove {
		return price >= alert.TargetPrice
	}
	return price <= alert.TargetPrice
}

func (s *alertService) fire(ctx context.Context, alert entity.PriceAlert, price float64) {
	if s.redisClient != nil {
		key := fmt.Sprintf(common.RedisKeyAlertCooldown, alert.ID)
		acquired, err := s.redisClient.SetNX(ctx, key, "1", s.cfg.Alerts.NotifyCooldown).Result()
		if err != nil {
			s.logger.Warn("Alert cooldown check failed", logger.ErrorField(err), logger.IntField("alert_id", int(alert.ID)))
		} else if !acquired {
			return
		}
	}

	now := utils.TimeNowET()
	alert.TriggeredAt = &now
	if err := s.alertRepo.Update(ctx, &alert); err != nil {
		s.logger.Error("Failed to record alert trigger", logger.ErrorField(err), logger.IntField("alert_id", int(alert.ID)))
	}

	s.logger.Info("Price alert triggered",
		logger.StringField("symbol", alert.Symbol),
		logger.StringField("condition", string(alert.Condition)),
		logger.Float64Field("target_price", alert.TargetPrice),
		logger.Float64Field("price", price),
	)

	if s.telegramNotifier != nil {
		msg := fmt.Sprintf("*Price Alert* %s is %s %.2f (now %.2f)",
			alert.Symbol, alert.Condition, alert.TargetPrice, price)
		if err := s.telegramNotifier.SendMessage(msg); err != nil {
			s.logger.Error("Failed to send alert notification", logger.ErrorField(err), logger.IntField("alert_id", int(alert.ID)))
		}
	}
}
