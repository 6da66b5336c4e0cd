package logging

import (
	"maps"
	"strings"

	"github.com/goliatone/go-cms-l10n/pkg/interfaces"
)

const (
	fieldPageID    = "page_id"
	fieldLanguage  = "language"
	fieldTable     = "table"
	fieldField     = "field"
	fieldRecordID  = "record_id"
	fieldOperation = "operation"
)

// WithFields attaches structured fields when the logger implements
// interfaces.FieldsLogger. Nil or empty maps return the logger unchanged.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(maps.Clone(fields))
	}
	return logger
}

// WithPageContext tags entries with the page id and, when set, the language
// being propagated.
func WithPageContext(logger interfaces.Logger, pageID, language string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(pageID); trimmed != "" {
		fields[fieldPageID] = trimmed
	}
	if trimmed := strings.TrimSpace(language); trimmed != "" {
		fields[fieldLanguage] = trimmed
	}
	return WithFields(logger, fields)
}

// WithTranslationContext tags entries with the (table, field, record) tuple a
// generic translation belongs to.
func WithTranslationContext(logger interfaces.Logger, table, field, recordID string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(table); trimmed != "" {
		fields[fieldTable] = trimmed
	}
	if trimmed := strings.TrimSpace(field); trimmed != "" {
		fields[fieldField] = trimmed
	}
	if trimmed := strings.TrimSpace(recordID); trimmed != "" {
		fields[fieldRecordID] = trimmed
	}
	return WithFields(logger, fields)
}

// WithOperation tags entries with the operation name.
func WithOperation(logger interfaces.Logger, operation string) interfaces.Logger {
	if strings.TrimSpace(operation) == "" {
		return logger
	}
	return WithFields(logger, map[string]any{fieldOperation: operation})
}
