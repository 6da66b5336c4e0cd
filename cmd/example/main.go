package main

import (
	"context"
	"fmt"
	"log"
	"os"

	l10n "github.com/goliatone/go-cms-l10n"
	"github.com/goliatone/go-cms-l10n/internal/domain"
	"github.com/goliatone/go-cms-l10n/internal/translations"
	"github.com/google/uuid"
)

func main() {
	ctx := context.Background()

	cfg := l10n.DefaultConfig()
	cfg.Languages = []string{"en", "de", "bg"}
	cfg.DefaultLanguage = "en"

	module, err := l10n.New(cfg, l10n.WithFields(l10n.FieldDefinition{
		Table:       "tl_news",
		Field:       "headline",
		StorageType: "varchar(255) NOT NULL default ''",
		Widget:      l10n.WidgetDefinition{InputType: l10n.InputText, Label: "Headline", Required: true, MaxLength: 120},
	}))
	if err != nil {
		log.Fatalf("initialise l10n: %v", err)
	}
	defer module.Close()

	rootID := uuid.New()
	root, err := module.Pages().Create(ctx, &l10n.Page{
		ID:        rootID,
		Type:      domain.PageTypeRoot,
		Title:     "Website",
		Language:  "en",
		Languages: cfg.Languages,
		DNS:       "example.com",
	})
	if err != nil {
		log.Fatalf("create root: %v", err)
	}
	if err := module.SubmitPage(ctx, root, true); err != nil {
		log.Fatalf("submit root: %v", err)
	}

	about, err := module.Pages().Create(ctx, &l10n.Page{
		ID:       uuid.New(),
		ParentID: &rootID,
		Type:     domain.PageTypeRegular,
		Title:    "About us",
		Language: "en",
	})
	if err != nil {
		log.Fatalf("create page: %v", err)
	}
	if err := module.SubmitPage(ctx, about, true); err != nil {
		log.Fatalf("submit page: %v", err)
	}

	locs, err := module.Localizations(ctx, about.ID)
	if err != nil {
		log.Fatalf("list localizations: %v", err)
	}
	for _, loc := range locs {
		fmt.Printf("%s\t%s\t%d\n", loc.Language, loc.Alias, loc.Sorting)
	}

	req := l10n.TranslatorInput{
		Key:        "demo",
		Table:      "tl_news",
		Field:      "headline",
		ParentID:   "1",
		RequestURI: "/admin/l10n/translator?key=demo&table=tl_news&field=headline&id=1",
		FormSubmit: translations.FormID("tl_news", "headline", "1"),
		Values: map[string]string{
			translations.WidgetName("tl_news", "headline", "1", "de"): "Neuigkeiten",
			translations.WidgetName("tl_news", "headline", "1", "bg"): "Новини",
		},
	}
	result, err := module.Translate(ctx, req)
	if err != nil {
		log.Fatalf("translate: %v", err)
	}
	fmt.Printf("saved languages: %v\n", result.Saved)
	if err := result.Form.Render(os.Stdout); err != nil {
		log.Fatalf("render form: %v", err)
	}
}
