package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	settingscmd "github.com/goliatone/go-cms-l10n/internal/commands/settings"
	"github.com/goliatone/go-cms-l10n/internal/logging"
	"github.com/goliatone/go-cms-l10n/internal/pages"
	"github.com/goliatone/go-cms-l10n/internal/settings"
	"github.com/goliatone/go-cms-l10n/internal/translations"
	"github.com/goliatone/go-cms-l10n/pkg/interfaces"
)

// DefaultBasePath is where the admin routes mount when no base is configured.
const DefaultBasePath = "/admin/l10n"

// SettingsSaver executes settings save commands.
type SettingsSaver interface {
	Execute(ctx context.Context, msg settingscmd.SaveSettingsCommand) error
}

// AdminAPI registers the translator, settings and localization endpoints.
type AdminAPI struct {
	basePath      string
	translator    *translations.Controller
	settings      *settings.Service
	saver         SettingsSaver
	localizations pages.LocalizationRepository
	labels        interfaces.Labels
	logger        interfaces.Logger
}

// AdminOption mutates the AdminAPI configuration.
type AdminOption func(*AdminAPI)

// NewAdminAPI constructs an AdminAPI instance.
func NewAdminAPI(opts ...AdminOption) *AdminAPI {
	api := &AdminAPI{
		basePath: DefaultBasePath,
		labels:   plainLabels{},
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base path (defaults to "/admin/l10n").
func WithBasePath(path string) AdminOption {
	return func(api *AdminAPI) {
		if api == nil {
			return
		}
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithTranslator wires the generic field translator.
func WithTranslator(controller *translations.Controller) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.translator = controller
		}
	}
}

// WithSettings wires the settings service used for reads and snapshots.
func WithSettings(service *settings.Service) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.settings = service
		}
	}
}

// WithSettingsSaver routes settings writes through a command handler.
func WithSettingsSaver(saver SettingsSaver) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.saver = saver
		}
	}
}

func WithLocalizations(repo pages.LocalizationRepository) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.localizations = repo
		}
	}
}

func WithLabels(labels interfaces.Labels) AdminOption {
	return func(api *AdminAPI) {
		if api != nil && labels != nil {
			api.labels = labels
		}
	}
}

func WithLogger(logger interfaces.Logger) AdminOption {
	return func(api *AdminAPI) {
		if api != nil && logger != nil {
			api.logger = logger
		}
	}
}

// BasePath returns the mount point of the admin routes.
func (api *AdminAPI) BasePath() string {
	return joinPath(api.basePath, "")
}

// Register attaches the admin endpoints to the provided mux.
func (api *AdminAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	base := api.BasePath()
	api.registerTranslatorRoutes(mux, base)
	api.registerLocalizationRoutes(mux, base)
	api.registerSettingsRoutes(mux, base)
	api.registerOpenAPIRoute(mux, base)
	return nil
}

type plainLabels struct{}

func (plainLabels) Label(_ context.Context, key string, args ...any) string {
	if len(args) == 0 {
		return key
	}
	return fmt.Sprintf("%s %v", key, args)
}
