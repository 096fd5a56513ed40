package service

import (
	"sort"
	"strings"

	"cms-ui/logger"
	"cms-ui/storage"
	"cms-ui/util/common"
	"cms-ui/web/entity"

	"github.com/goccy/go-json"
)

// navigationDoc is the reserved document name the navigation list is
// stored under.
const navigationDoc = "navigation"

var defaultNavigation = []entity.NavItem{
	{Id: "home", Label: "Home", Href: "/", Order: 1},
}

// NavigationService reads and writes the site navigation list as one
// serialized document: the primary store's copy wins, the file tier is
// the fallback, and the built-in default is the last resort.
type NavigationService struct{}

// ReadNavigation returns the navigation items sorted by order.
// Inactive items are filtered out unless includeInactive is set.
func (s *NavigationService) ReadNavigation(includeInactive bool) []entity.NavItem {
	items := defaultNavigation
	if data, ok := storage.Settings().ReadDoc(navigationDoc); ok {
		stored := make([]entity.NavItem, 0)
		if err := json.Unmarshal(data, &stored); err != nil {
			logger.Warning("stored navigation document is corrupt, serving default:", err)
		} else {
			items = stored
		}
	}

	result := make([]entity.NavItem, 0, len(items))
	for _, item := range items {
		if !includeInactive && !item.IsActive() {
			continue
		}
		result = append(result, item)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Order < result[j].Order
	})
	return result
}

// WriteNavigation normalizes and persists the whole navigation list.
// One malformed entry rejects the document as a whole.
func (s *NavigationService) WriteNavigation(items []entity.NavItem) error {
	normalized, err := normalizeNavigation(items)
	if err != nil {
		return err
	}
	data, err := json.Marshal(normalized)
	if err != nil {
		return err
	}
	storage.Settings().WriteDoc(navigationDoc, data)
	return nil
}

// UpsertNavItem replaces the entry with the same id or appends the
// item, then persists the document.
func (s *NavigationService) UpsertNavItem(item entity.NavItem) error {
	items := s.ReadNavigation(true)
	replaced := false
	for i := range items {
		if items[i].Id == item.Id {
			items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, item)
	}
	return s.WriteNavigation(items)
}

// DeleteNavItem removes the entry with the given id. Deleting an id
// that is already gone is not an error.
func (s *NavigationService) DeleteNavItem(id string) error {
	items := s.ReadNavigation(true)
	kept := make([]entity.NavItem, 0, len(items))
	for _, item := range items {
		if item.Id != id {
			kept = append(kept, item)
		}
	}
	return s.WriteNavigation(kept)
}

// normalizeNavigation enforces the document invariants: non-empty
// string id, label and target, unique ids, and an active flag that
// defaults to true unless explicitly false.
func normalizeNavigation(items []entity.NavItem) ([]entity.NavItem, error) {
	seen := make(map[string]bool, len(items))
	normalized := make([]entity.NavItem, 0, len(items))
	for _, item := range items {
		item.Id = strings.TrimSpace(item.Id)
		item.Label = strings.TrimSpace(item.Label)
		item.Href = strings.TrimSpace(item.Href)
		if item.Id == "" {
			return nil, common.NewValidationErrorf("navigation entry %q has no id", item.Label)
		}
		if item.Label == "" {
			return nil, common.NewValidationErrorf("navigation entry %q has no label", item.Id)
		}
		if item.Href == "" {
			return nil, common.NewValidationErrorf("navigation entry %q has no target", item.Id)
		}
		if seen[item.Id] {
			return nil, common.NewValidationErrorf("navigation entry %q appears twice", item.Id)
		}
		seen[item.Id] = true
		if item.Active == nil {
			active := true
			item.Active = &active
		}
		normalized = append(normalized, item)
	}
	return normalized, nil
}
