package hooks

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-cms-l10n/internal/logging"
	"github.com/goliatone/go-cms-l10n/internal/pages"
	"github.com/goliatone/go-cms-l10n/pkg/interfaces"
	"github.com/google/uuid"
)

// Event names a host callback point.
type Event string

const (
	EventPageSubmit Event = "page.submit"
	EventPageDelete Event = "page.delete"
	EventPageLoad   Event = "page.load"
)

// PageSubmit is dispatched after the host stored a page.
type PageSubmit struct {
	Page  *pages.Page
	IsNew bool
}

// PageDelete is dispatched before the host removes a page.
type PageDelete struct {
	PageID uuid.UUID
}

// PageLoad is dispatched when the page edit form opens. Handlers fill the
// output fields.
type PageLoad struct {
	PageID   uuid.UUID
	ParentID *uuid.UUID
	IsNew    bool

	DefaultLanguage string
	RequiresDNS     bool
	Notices         []pages.Notice
}

// Handler is one registered callback. Lower priorities run first.
type Handler[T any] struct {
	Name     string
	Module   string
	Priority int
	Fn       func(ctx context.Context, payload *T) error
}

type chain[T any] []Handler[T]

func (c chain[T]) insert(h Handler[T]) chain[T] {
	out := append(c, h)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}

func (c chain[T]) without(module string) chain[T] {
	out := make(chain[T], 0, len(c))
	for _, h := range c {
		if h.Module != module {
			out = append(out, h)
		}
	}
	return out
}

// Registry holds typed callbacks for the page lifecycle. The host calls the
// Dispatch methods; components register at startup.
type Registry struct {
	mu     sync.RWMutex
	submit chain[PageSubmit]
	del    chain[PageDelete]
	load   chain[PageLoad]
	logger interfaces.Logger
}

func NewRegistry(logger interfaces.Logger) *Registry {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Registry{logger: logger}
}

func (r *Registry) OnPageSubmit(h Handler[PageSubmit]) {
	r.mu.Lock()
	r.submit = r.submit.insert(h)
	r.mu.Unlock()
	r.registered(EventPageSubmit, h.Name, h.Module, h.Priority)
}

func (r *Registry) OnPageDelete(h Handler[PageDelete]) {
	r.mu.Lock()
	r.del = r.del.insert(h)
	r.mu.Unlock()
	r.registered(EventPageDelete, h.Name, h.Module, h.Priority)
}

func (r *Registry) OnPageLoad(h Handler[PageLoad]) {
	r.mu.Lock()
	r.load = r.load.insert(h)
	r.mu.Unlock()
	r.registered(EventPageLoad, h.Name, h.Module, h.Priority)
}

func (r *Registry) registered(event Event, name, module string, priority int) {
	r.logger.Debug("hook registered", "hook", string(event), "handler", name, "module", module, "priority", priority)
}

// DispatchPageSubmit runs the submit handlers in order and stops at the
// first error.
func (r *Registry) DispatchPageSubmit(ctx context.Context, payload *PageSubmit) error {
	r.mu.RLock()
	handlers := append(chain[PageSubmit](nil), r.submit...)
	r.mu.RUnlock()
	return dispatch(ctx, r.logger, EventPageSubmit, handlers, payload)
}

func (r *Registry) DispatchPageDelete(ctx context.Context, payload *PageDelete) error {
	r.mu.RLock()
	handlers := append(chain[PageDelete](nil), r.del...)
	r.mu.RUnlock()
	return dispatch(ctx, r.logger, EventPageDelete, handlers, payload)
}

func (r *Registry) DispatchPageLoad(ctx context.Context, payload *PageLoad) error {
	r.mu.RLock()
	handlers := append(chain[PageLoad](nil), r.load...)
	r.mu.RUnlock()
	return dispatch(ctx, r.logger, EventPageLoad, handlers, payload)
}

func dispatch[T any](ctx context.Context, logger interfaces.Logger, event Event, handlers chain[T], payload *T) error {
	if payload == nil {
		return fmt.Errorf("hook %s: payload is required", event)
	}
	if len(handlers) == 0 {
		return nil
	}
	logger.Debug("calling hooks", "hook", string(event), "handlers", len(handlers))
	for _, h := range handlers {
		if err := h.Fn(ctx, payload); err != nil {
			logger.Error("hook handler error", "hook", string(event), "handler", h.Name, "module", h.Module, "error", err)
			return fmt.Errorf("hook %s handler %s: %w", event, h.Name, err)
		}
	}
	return nil
}

// HandlerCount returns the number of handlers registered for event.
func (r *Registry) HandlerCount(event Event) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	switch event {
	case EventPageSubmit:
		return len(r.submit)
	case EventPageDelete:
		return len(r.del)
	case EventPageLoad:
		return len(r.load)
	default:
		return 0
	}
}

// UnregisterModule drops every handler registered by module.
func (r *Registry) UnregisterModule(module string) {
	r.mu.Lock()
	r.submit = r.submit.without(module)
	r.del = r.del.without(module)
	r.load = r.load.without(module)
	r.mu.Unlock()
	r.logger.Debug("hooks unregistered", "module", module)
}
