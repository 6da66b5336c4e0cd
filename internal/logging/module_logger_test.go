package logging

import (
	"context"
	"maps"
	"testing"

	"github.com/goliatone/go-cms-l10n/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	r.fields = append(r.fields, maps.Clone(fields))
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "l10n.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger.Debug("noop")
}

func TestModuleLoggerAnnotatesModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	PagesLogger(provider)

	if len(provider.requested) != 1 || provider.requested[0] != pagesModule {
		t.Fatalf("expected module %s, got %v", pagesModule, provider.requested)
	}
	if len(rec.fields) != 1 || rec.fields[0]["module"] != pagesModule {
		t.Fatalf("expected module field %s, got %v", pagesModule, rec.fields)
	}
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	provider := &stubProvider{logger: &recordingLogger{}}
	ModuleLogger(provider, "")
	if provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
}

func TestWithTranslationContextSkipsEmptyValues(t *testing.T) {
	rec := &recordingLogger{}
	WithTranslationContext(rec, "tl_content", " ", "42")

	if len(rec.fields) != 1 {
		t.Fatalf("expected one WithFields call, got %d", len(rec.fields))
	}
	got := rec.fields[0]
	if got[fieldTable] != "tl_content" || got[fieldRecordID] != "42" {
		t.Fatalf("unexpected fields %v", got)
	}
	if _, ok := got[fieldField]; ok {
		t.Fatalf("expected blank field to be skipped, got %v", got)
	}
}

func TestWithPageContextNoFieldsLeavesLoggerUntouched(t *testing.T) {
	rec := &recordingLogger{}
	WithPageContext(rec, "", "")
	if len(rec.fields) != 0 {
		t.Fatalf("expected no WithFields call, got %v", rec.fields)
	}
}

func TestContextWithFieldsMerges(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"a": 1})
	ctx = WithRequestID(ctx, "req-1")

	fields := ContextFields(ctx)
	if fields["a"] != 1 || fields["request_id"] != "req-1" {
		t.Fatalf("unexpected context fields %v", fields)
	}

	fields["a"] = 2
	if ContextFields(ctx)["a"] != 1 {
		t.Fatalf("expected ContextFields to return a copy")
	}
}
