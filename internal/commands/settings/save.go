package settingscmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-cms-l10n/internal/commands"
	"github.com/goliatone/go-cms-l10n/internal/settings"
	"github.com/goliatone/go-cms-l10n/pkg/interfaces"
)

const saveSettingsMessageType = "l10n.settings.save"

// SaveSettingsCommand replaces the stored language configuration.
type SaveSettingsCommand struct {
	Languages        []string `json:"languages"`
	DefaultLanguage  string   `json:"default_language,omitempty"`
	AliasSuffix      bool     `json:"alias_suffix"`
	AddLanguageToURL bool     `json:"add_language_to_url"`
	FolderURL        bool     `json:"folder_url"`
}

// Type implements command.Message.
func (SaveSettingsCommand) Type() string { return saveSettingsMessageType }

// Validate checks the shape of the command; catalog and consistency checks
// happen in the settings service.
func (m SaveSettingsCommand) Validate() error {
	errs := validation.Errors{}
	if len(m.Languages) == 0 {
		errs["languages"] = validation.NewError("l10n.settings.save.languages_required", "at least one language is required")
	}
	for _, code := range m.Languages {
		if strings.TrimSpace(code) == "" {
			errs["languages"] = validation.NewError("l10n.settings.save.language_blank", "language codes cannot be blank")
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SaveHandler persists settings through the settings service.
type SaveHandler struct {
	inner *commands.Handler[SaveSettingsCommand]
}

func NewSaveHandler(service *settings.Service, logger interfaces.Logger, opts ...commands.HandlerOption[SaveSettingsCommand]) *SaveHandler {
	baseLogger := commands.EnsureLogger(logger)
	exec := func(ctx context.Context, msg SaveSettingsCommand) error {
		_, err := service.Save(ctx, settings.Input{
			Languages:        msg.Languages,
			DefaultLanguage:  msg.DefaultLanguage,
			AliasSuffix:      msg.AliasSuffix,
			AddLanguageToURL: msg.AddLanguageToURL,
			FolderURL:        msg.FolderURL,
		})
		return err
	}
	handlerOpts := []commands.HandlerOption[SaveSettingsCommand]{
		commands.WithLogger[SaveSettingsCommand](baseLogger),
		commands.WithOperation[SaveSettingsCommand]("settings.save"),
		commands.WithMessageFields(func(msg SaveSettingsCommand) map[string]any {
			return map[string]any{"languages": strings.Join(msg.Languages, ",")}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SaveSettingsCommand](baseLogger)),
	}
	return &SaveHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[SaveSettingsCommand].Execute.
func (h *SaveHandler) Execute(ctx context.Context, msg SaveSettingsCommand) error {
	return h.inner.Execute(ctx, msg)
}
