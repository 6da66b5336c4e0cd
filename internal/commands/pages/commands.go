package pagescmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-cms-l10n/internal/runtimeconfig"
	"github.com/google/uuid"
)

const (
	propagateMessageType = "l10n.pages.propagate"
	syncMessageType      = "l10n.pages.sync_language"
	cleanupMessageType   = "l10n.pages.delete_localizations"
)

// SnapshotFunc returns the language configuration for one operation.
type SnapshotFunc func(ctx context.Context) (runtimeconfig.Snapshot, error)

// PropagateLocalizationsCommand creates the localization rows of a stored page.
type PropagateLocalizationsCommand struct {
	PageID uuid.UUID `json:"page_id"`
	IsNew  bool      `json:"is_new"`
}

// Type implements command.Message.
func (PropagateLocalizationsCommand) Type() string { return propagateMessageType }

func (m PropagateLocalizationsCommand) Validate() error {
	return requirePageID(m.PageID, propagateMessageType)
}

// SyncDefaultLanguageCommand pushes a root page's language down its subtree.
type SyncDefaultLanguageCommand struct {
	PageID uuid.UUID `json:"page_id"`
}

// Type implements command.Message.
func (SyncDefaultLanguageCommand) Type() string { return syncMessageType }

func (m SyncDefaultLanguageCommand) Validate() error {
	return requirePageID(m.PageID, syncMessageType)
}

// DeleteLocalizationsCommand removes the localization rows of a page and its
// descendants.
type DeleteLocalizationsCommand struct {
	PageID uuid.UUID `json:"page_id"`
}

// Type implements command.Message.
func (DeleteLocalizationsCommand) Type() string { return cleanupMessageType }

func (m DeleteLocalizationsCommand) Validate() error {
	return requirePageID(m.PageID, cleanupMessageType)
}

func requirePageID(id uuid.UUID, messageType string) error {
	if id == uuid.Nil {
		return validation.Errors{
			"page_id": validation.NewError(messageType+".page_id_required", "page_id is required"),
		}
	}
	return nil
}
