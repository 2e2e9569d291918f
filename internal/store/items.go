package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreateItem allocates a new folder or session under parentID ("" = root).
// Sessions start active with a single question and the marking scheme copied
// from the current settings defaults. The parent, when given, must be an
// existing folder — sessions are leaves and can never be parents.
func (s *Store) CreateItem(title string, typ ItemType, parentID string) (*Item, error) {
	if parentID != "" {
		parent := s.GetItem(parentID)
		if parent == nil {
			return nil, fmt.Errorf("create item: parent %q not found", parentID)
		}
		if parent.Type != TypeFolder {
			return nil, fmt.Errorf("create item: parent %q is not a folder", parentID)
		}
	}

	now := time.Now()
	it := &Item{
		ID:           uuid.NewString(),
		Title:        title,
		Type:         typ,
		ParentID:     parentID,
		Color:        Colors[0],
		CreatedAt:    now,
		Status:       StatusActive,
		Questions:    []int{1},
		Answers:      map[int]int{},
		Results:      map[int]Result{},
		Bookmarks:    []int{},
		Notes:        map[int]string{},
		PositiveMark: s.settings.DefaultPositive,
		NegativeMark: s.settings.DefaultNegative,
		AutoAdvance:  s.settings.AutoAdvance,
		LastAccessed: now,
	}
	s.items = append(s.items, it)
	if err := s.save(); err != nil {
		return nil, err
	}
	return it, nil
}

// GetItem returns the item with the given id, or nil.
func (s *Store) GetItem(id string) *Item {
	for _, it := range s.items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// UpdateItem applies fn to the item with the given id and persists the
// snapshot. LastAccessed is refreshed unconditionally. Unknown ids are a
// no-op.
func (s *Store) UpdateItem(id string, fn func(*Item)) error {
	it := s.GetItem(id)
	if it == nil {
		return nil
	}
	fn(it)
	it.LastAccessed = time.Now()
	return s.save()
}

// DeleteItem removes the item and every transitive descendant in one
// snapshot replace. Deleting an unknown id is a no-op.
func (s *Store) DeleteItem(id string) error {
	if s.GetItem(id) == nil {
		return nil
	}

	doomed := map[string]bool{id: true}
	// Children always appear after their parent would be marked eventually,
	// but insertion order gives no such guarantee after re-creation, so
	// sweep until the marked set stops growing.
	for {
		grew := false
		for _, it := range s.items {
			if !doomed[it.ID] && doomed[it.ParentID] {
				doomed[it.ID] = true
				grew = true
			}
		}
		if !grew {
			break
		}
	}

	kept := s.items[:0]
	for _, it := range s.items {
		if !doomed[it.ID] {
			kept = append(kept, it)
		}
	}
	s.items = kept
	return s.save()
}

// ListChildren returns all items whose parent is parentID ("" = root), in
// insertion order.
func (s *Store) ListChildren(parentID string) []*Item {
	var children []*Item
	for _, it := range s.items {
		if it.ParentID == parentID {
			children = append(children, it)
		}
	}
	return children
}

// PathTo walks parent links from folderID up to the root and returns the
// chain root-first. Unknown or empty ids yield an empty path. Traversal is
// capped by the collection size, so a corrupted parent cycle cannot hang it.
func (s *Store) PathTo(folderID string) []*Item {
	var path []*Item
	current := s.GetItem(folderID)
	for i := 0; current != nil && i < len(s.items); i++ {
		path = append([]*Item{current}, path...)
		current = s.GetItem(current.ParentID)
	}
	return path
}

// SubmitSession moves an active session into grading mode, stamping the end
// time. Grading is one-way: nothing transitions a session back to active.
func (s *Store) SubmitSession(id string) error {
	it := s.GetItem(id)
	if it == nil || it.Type != TypeSession || it.Graded() {
		return nil
	}
	now := time.Now()
	return s.UpdateItem(id, func(i *Item) {
		i.Status = StatusGraded
		i.EndTime = &now
	})
}
