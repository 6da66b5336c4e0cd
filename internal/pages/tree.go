package pages

import (
	"context"

	"github.com/google/uuid"
)

// CollectDescendantIDs walks the subtree below rootID breadth-first and
// returns every descendant id. rootID itself is not included.
func CollectDescendantIDs(ctx context.Context, repo PageRepository, rootID uuid.UUID) ([]uuid.UUID, error) {
	visited := map[uuid.UUID]struct{}{rootID: {}}
	queue := []uuid.UUID{rootID}
	out := []uuid.UUID{}
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		current := queue[0]
		queue = queue[1:]
		children, err := repo.ListChildren(ctx, current)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			if _, seen := visited[child.ID]; seen {
				continue
			}
			visited[child.ID] = struct{}{}
			out = append(out, child.ID)
			queue = append(queue, child.ID)
		}
	}
	return out, nil
}

// FindRoot follows ParentID links from id up to the topmost page. It returns
// nil when id does not exist.
func FindRoot(ctx context.Context, repo PageRepository, id uuid.UUID) (*Page, error) {
	visited := map[uuid.UUID]struct{}{}
	var last *Page
	current := &id
	for current != nil {
		if _, seen := visited[*current]; seen {
			return nil, ErrParentCycle
		}
		visited[*current] = struct{}{}
		page, err := repo.GetByID(ctx, *current)
		if err != nil {
			if last == nil {
				return nil, err
			}
			// dangling parent link; the last resolved page is the top
			return last, nil
		}
		if page.IsRoot() {
			return page, nil
		}
		last = page
		current = page.ParentID
	}
	return last, nil
}
