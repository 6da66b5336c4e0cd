package pages

import (
	"context"
	"strings"

	"github.com/goliatone/go-cms-l10n/internal/domain"
	"github.com/google/uuid"
)

// NoticeCode identifies a root-domain consistency notice.
type NoticeCode string

const (
	NoticeMissingDNS    NoticeCode = "missing_dns"
	NoticeDuplicatedDNS NoticeCode = "duplicated_dns"
)

// Notice is a non-blocking consistency warning about root pages.
type Notice struct {
	Code    NoticeCode `json:"code"`
	PageID  uuid.UUID  `json:"page_id"`
	Title   string     `json:"title"`
	DNS     string     `json:"dns,omitempty"`
	Message string     `json:"message"`
}

// Advisor answers questions the editor UI asks while a page form loads.
type Advisor struct {
	pages PageRepository
	opts  options
}

func NewAdvisor(pages PageRepository, opts ...Option) *Advisor {
	return &Advisor{pages: pages, opts: resolveOptions(opts)}
}

// DefaultLanguage returns the language of the root above parentID, which is
// the initial language of a page being created under it. A nil or unknown
// parent yields "".
func (a *Advisor) DefaultLanguage(ctx context.Context, parentID *uuid.UUID) (string, error) {
	if parentID == nil || *parentID == uuid.Nil {
		return "", nil
	}
	root, err := FindRoot(ctx, a.pages, *parentID)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return "", nil
		}
		return "", err
	}
	if root == nil || !root.IsRoot() {
		return "", nil
	}
	return strings.TrimSpace(root.Language), nil
}

// RequiresDNS reports whether more than one root exists, in which case each
// root needs its own domain.
func (a *Advisor) RequiresDNS(ctx context.Context) (bool, error) {
	roots, err := a.pages.ListRoots(ctx)
	if err != nil {
		return false, err
	}
	return len(roots) > 1, nil
}

// CheckRootDomains reports roots without DNS and roots sharing a DNS value.
// Nothing is reported while there is at most one root.
func (a *Advisor) CheckRootDomains(ctx context.Context) ([]Notice, error) {
	roots, err := a.pages.ListRoots(ctx)
	if err != nil {
		return nil, err
	}
	if len(roots) <= 1 {
		return nil, nil
	}

	notices := []Notice{}
	byDNS := map[string][]*Page{}
	order := []string{}
	for _, root := range roots {
		dns := strings.ToLower(strings.TrimSpace(root.DNS))
		if dns == "" {
			notices = append(notices, Notice{
				Code:    NoticeMissingDNS,
				PageID:  root.ID,
				Title:   root.Title,
				Message: "root page \"" + root.Title + "\" has no domain although several root pages exist",
			})
			continue
		}
		if _, seen := byDNS[dns]; !seen {
			order = append(order, dns)
		}
		byDNS[dns] = append(byDNS[dns], root)
	}
	for _, dns := range order {
		group := byDNS[dns]
		if len(group) < 2 {
			continue
		}
		for _, root := range group {
			notices = append(notices, Notice{
				Code:    NoticeDuplicatedDNS,
				PageID:  root.ID,
				Title:   root.Title,
				DNS:     dns,
				Message: "domain " + dns + " is used by more than one root page",
			})
		}
	}
	if len(notices) > 0 {
		a.opts.logger.Warn("pages.roots.inconsistent", "notices", len(notices))
	}
	return notices, nil
}
