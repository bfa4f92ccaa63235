package handlers

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/futbolrp/transferbot/transferbot/config"
)

// logged runs an interaction handler with start/finish logging and a
// hard timeout so a wedged handler surfaces instead of hanging the
// event loop silently.
func logged(kind, name string, user discord.User, run func() error) error {
	start := time.Now()

	slog.Info("Interaction started",
		slog.String("type", kind),
		slog.String("name", name),
		slog.String("user_id", user.ID.String()),
		slog.String("user_name", user.Username),
	)

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("interaction %s panicked: %v", name, r)
			}
		}()
		done <- run()
	}()

	select {
	case err := <-done:
		duration := time.Since(start)
		attrs := []any{
			slog.String("type", kind),
			slog.String("name", name),
			slog.String("user_id", user.ID.String()),
			slog.String("user_name", user.Username),
			slog.Duration("took", duration),
		}

		switch {
		case err != nil:
			slog.Error("Interaction failed", append(attrs,
				slog.Any("error", err),
				slog.String("status", "failed"),
			)...)
		case duration > 2*time.Second:
			slog.Warn("Interaction executed slowly", append(attrs,
				slog.String("status", "slow"),
			)...)
		default:
			slog.Info("Interaction completed", append(attrs,
				slog.String("status", "success"),
			)...)
		}
		return err

	case <-time.After(config.CommandExecutionTimeout):
		slog.Error("Interaction timed out",
			slog.String("type", kind),
			slog.String("name", name),
			slog.String("user_id", user.ID.String()),
			slog.String("status", "timeout"),
		)
		return fmt.Errorf("interaction timed out after %s", config.CommandExecutionTimeout)
	}
}

// guildOnlyMessage turns away DM invocations. Every handler assumes a
// guild context, so none of them runs outside one.
var guildOnlyMessage = discord.MessageCreate{
	Content: "This command only works inside a server.",
	Flags:   discord.MessageFlagEphemeral,
}

// WrapWithLogging wraps a command handler with logging functionality
func WrapWithLogging(name string, h handler.CommandHandler) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if e.GuildID() == nil {
			return e.CreateMessage(guildOnlyMessage)
		}
		return logged("cmd", name, e.User(), func() error { return h(e) })
	}
}

// WrapComponentWithLogging wraps a component handler with logging functionality
func WrapComponentWithLogging(name string, h handler.ComponentHandler) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		if e.GuildID() == nil {
			return e.CreateMessage(guildOnlyMessage)
		}
		return logged("component", name, e.User(), func() error { return h(e) })
	}
}

// WrapModalWithLogging wraps a modal handler with logging functionality
func WrapModalWithLogging(name string, h handler.ModalHandler) handler.ModalHandler {
	return func(e *handler.ModalEvent) error {
		if e.GuildID() == nil {
			return e.CreateMessage(guildOnlyMessage)
		}
		return logged("modal", name, e.User(), func() error { return h(e) })
	}
}
