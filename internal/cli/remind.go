package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/fideltutor/internal/notify"
	"github.com/example/fideltutor/internal/review"
	"github.com/example/fideltutor/internal/scheduler"
)

func newRemindCmd(a *app) *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Send review reminders",
		Long: "Checks every hour inside the notification window whether cards are due and " +
			"sends at most one reminder a day, to Telegram when TELEGRAM_BOT_TOKEN and " +
			"TELEGRAM_CHAT_ID are set, otherwise to the log. The first check runs at startup " +
			"and a failure there ends the command. Runs until interrupted.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			notifier, err := newNotifier(a)
			if err != nil {
				return err
			}
			sel := review.NewSelector(a.store.Cards, a.store.States, a.logger)
			window := scheduler.Window{StartHour: a.cfg.NotificationStartHour, EndHour: a.cfg.NotificationEndHour}
			s := scheduler.New(sel, notifier, window, a.now, a.logger)

			if once {
				n, err := s.CheckAndSendReminders(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reminded about %d cards\n", n)
				return nil
			}

			return s.Run(ctx)
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "Check once and exit")
	return cmd
}

func newNotifier(a *app) (scheduler.Notifier, error) {
	if !a.cfg.TelegramEnabled() {
		return notify.NewLog(a.logger), nil
	}
	return notify.NewTelegram(a.cfg.TelegramBotToken, a.cfg.TelegramChatID, a.logger)
}
