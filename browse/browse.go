package browse

import (
	"context"
	"errors"
	"sync"

	"github.com/bkaya/pricelist-api/listing"
	"github.com/bkaya/pricelist-api/models"
	"github.com/bkaya/pricelist-api/nav"
)

// ErrSuperseded marks a fetch whose result was discarded because a
// newer navigation started before it completed. The newer fetch is
// authoritative; the caller should not surface this as a failure.
var ErrSuperseded = errors.New("browse: listing superseded by a newer navigation")

// ErrBadCrumb rejects a jump to a breadcrumb index that is neither
// RootIndex nor inside the trail.
var ErrBadCrumb = errors.New("browse: breadcrumb index out of range")

// Controller owns one browsing session: the navigation state, the
// entries of the open folder and the fetch generation. Every
// navigation replaces the entry set wholesale with a fresh fetch.
type Controller struct {
	lister models.Lister

	mu         sync.Mutex
	nav        *nav.State
	entries    []models.FileEntry
	generation uint64
}

func NewController(lister models.Lister) *Controller {
	return &Controller{
		lister: lister,
		nav:    nav.NewState(),
	}
}

// load fetches the given folder and installs the result, unless a
// newer navigation bumped the generation while the fetch was in
// flight. mutate runs under the lock before the generation is
// stamped, so the nav transition and the fetch it triggers cannot
// be split by a competing navigation.
func (c *Controller) load(ctx context.Context, mutate func() error) error {
	c.mu.Lock()
	if mutate != nil {
		if err := mutate(); err != nil {
			c.mu.Unlock()
			return err
		}
	}
	c.generation++
	gen := c.generation
	folderId := c.nav.Current()
	c.mu.Unlock()

	entries, err := c.lister.ListFolder(ctx, folderId)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return ErrSuperseded
	}
	if err != nil {
		return err
	}
	c.entries = entries
	return nil
}

// Open descends into a child folder and lists it.
func (c *Controller) Open(ctx context.Context, folderId, folderName string) error {
	return c.load(ctx, func() error {
		return c.nav.Descend(folderId, folderName)
	})
}

// JumpTo reopens the folder at a breadcrumb index (nav.RootIndex
// for the root) and lists it.
func (c *Controller) JumpTo(ctx context.Context, index int) error {
	return c.load(ctx, func() error {
		if !c.nav.JumpToBreadcrumb(index) {
			return ErrBadCrumb
		}
		return nil
	})
}

// Root reopens the root folder and lists it.
func (c *Controller) Root(ctx context.Context) error {
	return c.load(ctx, func() error {
		c.nav.JumpToRoot()
		return nil
	})
}

// Refresh re-lists the open folder without moving.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.load(ctx, nil)
}

// Project returns the filtered and sorted view of the open folder
// plus the breadcrumb trail. Pure over the current snapshot; it
// never triggers a fetch.
func (c *Controller) Project(search string, key listing.SortKey) ([]models.FileEntry, []models.Breadcrumb) {
	c.mu.Lock()
	entries := c.entries
	crumbs := c.nav.Breadcrumbs()
	c.mu.Unlock()

	return listing.Project(entries, search, key), crumbs
}
