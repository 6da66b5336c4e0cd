package settings

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
)

const settingsRowID = 1

// BunRepository persists the single settings row.
type BunRepository struct {
	db          *bun.DB
	broadcaster *changeBroadcaster
}

func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{db: db, broadcaster: newChangeBroadcaster()}
}

func (r *BunRepository) Get(ctx context.Context) (Settings, error) {
	if r.db == nil {
		return Settings{}, errors.New("settings: bun repository requires a database")
	}
	var model settingsModel
	if err := r.db.NewSelect().Model(&model).Where("id = ?", settingsRowID).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Settings{}, ErrSettingsNotFound
		}
		return Settings{}, err
	}
	return model.toSettings(), nil
}

func (r *BunRepository) Upsert(ctx context.Context, settings Settings) (Settings, error) {
	if r.db == nil {
		return Settings{}, errors.New("settings: bun repository requires a database")
	}

	created := false
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var existing settingsModel
		err := tx.NewSelect().Model(&existing).Where("id = ?", settingsRowID).Scan(ctx)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			created = true
		case err != nil:
			return err
		}

		model := modelFromSettings(settings)
		model.ID = settingsRowID
		model.UpdatedAt = time.Now().UTC()

		if created {
			_, err = tx.NewInsert().Model(&model).Exec(ctx)
			return err
		}
		_, err = tx.NewUpdate().
			Model(&model).
			Column("languages", "default_language", "alias_suffix", "add_language_to_url",
				"host_add_language_to_url", "folder_url", "updated_at").
			WherePK().
			Exec(ctx)
		return err
	})
	if err != nil {
		return Settings{}, err
	}

	stored, err := r.Get(ctx)
	if err != nil {
		return Settings{}, err
	}
	eventType := ChangeUpdated
	if created {
		eventType = ChangeCreated
	}
	r.broadcaster.Broadcast(newChangeEvent(eventType, stored))
	return stored, nil
}

func (r *BunRepository) Delete(ctx context.Context) error {
	if r.db == nil {
		return errors.New("settings: bun repository requires a database")
	}
	res, err := r.db.NewDelete().Model((*settingsModel)(nil)).Where("id = ?", settingsRowID).Exec(ctx)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrSettingsNotFound
	}
	r.broadcaster.Broadcast(newChangeEvent(ChangeDeleted, Settings{}))
	return nil
}

func (r *BunRepository) Subscribe(ctx context.Context) (<-chan ChangeEvent, error) {
	return r.broadcaster.Subscribe(ctx)
}

// SettingsModel exposes the table model for migrations and test setup.
func SettingsModel() any {
	return (*settingsModel)(nil)
}

type settingsModel struct {
	bun.BaseModel `bun:"table:l10n_settings"`

	ID                   int       `bun:",pk"`
	Languages            []string  `bun:"languages,type:jsonb"`
	DefaultLanguage      string    `bun:"default_language"`
	AliasSuffix          bool      `bun:"alias_suffix"`
	AddLanguageToURL     bool      `bun:"add_language_to_url"`
	HostAddLanguageToURL bool      `bun:"host_add_language_to_url"`
	FolderURL            bool      `bun:"folder_url"`
	UpdatedAt            time.Time `bun:"updated_at"`
}

func modelFromSettings(settings Settings) settingsModel {
	return settingsModel{
		Languages:            settings.clone().Languages,
		DefaultLanguage:      settings.DefaultLanguage,
		AliasSuffix:          settings.AliasSuffix,
		AddLanguageToURL:     settings.AddLanguageToURL,
		HostAddLanguageToURL: settings.HostAddLanguageToURL,
		FolderURL:            settings.FolderURL,
	}
}

func (m *settingsModel) toSettings() Settings {
	if m == nil {
		return Settings{}
	}
	return Settings{
		Languages:            m.Languages,
		DefaultLanguage:      m.DefaultLanguage,
		AliasSuffix:          m.AliasSuffix,
		AddLanguageToURL:     m.AddLanguageToURL,
		HostAddLanguageToURL: m.HostAddLanguageToURL,
		FolderURL:            m.FolderURL,
	}
}
