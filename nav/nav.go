package nav

import (
	"errors"

	"github.com/bkaya/pricelist-api/models"
)

// Root is the current-folder sentinel for the implicit root folder.
const Root = ""

// RootIndex is the "before the first breadcrumb" index; jumping to
// it is the same as jumping to root.
const RootIndex = -1

var ErrEmptyFolderId = errors.New("nav: descend into empty folder id")

// State tracks the open folder and the breadcrumb trail from root
// (exclusive) down to it. Pure state machine, does no fetching.
//
// Invariant: the trail is empty exactly when the root is open, and
// otherwise its last entry is the open folder.
type State struct {
	current string
	crumbs  []models.Breadcrumb
}

func NewState() *State {
	return &State{current: Root}
}

// Current returns the open folder id, Root for the root folder.
func (s *State) Current() string { return s.current }

// Breadcrumbs returns a copy of the trail so callers can hold it
// across later transitions.
func (s *State) Breadcrumbs() []models.Breadcrumb {
	crumbs := make([]models.Breadcrumb, len(s.crumbs))
	copy(crumbs, s.crumbs)
	return crumbs
}

// Descend opens a child folder, appending it to the trail.
func (s *State) Descend(folderId, folderName string) error {
	if folderId == "" {
		return ErrEmptyFolderId
	}
	s.current = folderId
	s.crumbs = append(s.crumbs, models.Breadcrumb{Id: folderId, Name: folderName})
	return nil
}

// JumpToRoot reopens the root folder and clears the trail.
func (s *State) JumpToRoot() {
	s.current = Root
	s.crumbs = nil
}

// JumpToBreadcrumb reopens the folder at index, truncating the trail
// to [0..index]. RootIndex behaves like JumpToRoot. An out-of-range
// index is rejected without touching the trail and returns false.
func (s *State) JumpToBreadcrumb(index int) bool {
	if index == RootIndex {
		s.JumpToRoot()
		return true
	}
	if index < 0 || index >= len(s.crumbs) {
		return false
	}
	s.crumbs = s.crumbs[:index+1]
	s.current = s.crumbs[index].Id
	return true
}
