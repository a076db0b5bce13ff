package notifierimpl

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/social-post-scheduler/internal/domain"
	"github.com/orgball2608/social-post-scheduler/internal/notifier"
	"github.com/orgball2608/social-post-scheduler/pkg/config"
	apperrors "github.com/orgball2608/social-post-scheduler/pkg/errors"
	"github.com/orgball2608/social-post-scheduler/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type TelegramImpl struct {
	bot      *tgbotapi.BotAPI
	operator int64
	logger   logger.Logger
}

// New returns a Telegram-backed notifier, or a no-op one when no bot token is
// configured.
func New(opts Opts) (notifier.Client, error) {
	log := opts.Logger.WithComponent("Notifier")

	if opts.Config.Telegram.Token == "" {
		log.Info("Telegram notifications disabled, no bot token configured")
		return &Noop{}, nil
	}

	bot, err := tgbotapi.NewBotAPI(opts.Config.Telegram.Token)
	if err != nil {
		log.Error("Error creating bot", "Error", err)
		return nil, apperrors.Wrap(err, "failed to create telegram bot")
	}

	return &TelegramImpl{
		bot:      bot,
		operator: opts.Config.Telegram.Operator,
		logger:   log,
	}, nil
}

var _ notifier.Client = (*TelegramImpl)(nil)

func (t *TelegramImpl) NotifyPublishFailure(post *domain.ScheduledPost, reason string) {
	t.SendMessage(fmt.Sprintf("Failed to publish %s post %d: %s", post.Platform, post.ID, reason))
}

func (t *TelegramImpl) SendMessage(text string) {
	msg := tgbotapi.NewMessage(t.operator, text)
	if _, err := t.bot.Send(msg); err != nil {
		t.logger.Error("Failed to send telegram notification", "error", err)
	}
}

// Noop swallows notifications when Telegram is not configured.
type Noop struct{}

var _ notifier.Client = (*Noop)(nil)

func (n *Noop) NotifyPublishFailure(_ *domain.ScheduledPost, _ string) {}
func (n *Noop) SendMessage(_ string)                                  {}
