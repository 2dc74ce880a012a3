// Package editor holds the edit-modal session: which record is being edited and the single draft the modal renders.
//
// A session is Closed or Open. [Controller.Open] seeds the draft from a record and replaces any open session.
// [Controller.Submit] produces the update request but leaves the session open; the caller reports the outcome with
// [Controller.Succeeded] or [Controller.Failed]. A failed update keeps the user's input.
//
// The draft returned by [Controller.Form] is the only copy of the user's edits. Views read their field values from it
// and write keystrokes into it, so there is never a separate rendering state to reconcile.
package editor

import (
	"fmt"

	"github.com/desertthunder/zhuifan/internal/models"
	"github.com/desertthunder/zhuifan/internal/shared"
)

// Request is an update ready to send to the store.
type Request struct {
	ID    int64
	Draft models.Draft
}

// Controller manages one edit session slot.
type Controller struct {
	open     bool
	targetID int64
	title    string // title of the record when it was opened, for headers
	form     models.Form
	err      error
}

// New returns a closed controller.
func New() *Controller {
	return &Controller{form: models.NewForm()}
}

// Open seeds the draft from a and opens the session, replacing any session already open.
func (c *Controller) Open(a models.Anime) {
	c.form = models.FormFromAnime(a)
	c.targetID = a.ID
	c.title = a.Title
	c.err = nil
	c.open = true
}

// Cancel discards the draft and closes the session. It never touches the store.
func (c *Controller) Cancel() {
	c.close()
}

// DismissBackground handles a dismissal gesture outside the modal content; it behaves like [Controller.Cancel].
func (c *Controller) DismissBackground() {
	c.Cancel()
}

// Submit returns the update request for the open session.
//
// The platform is reconciled back: a custom platform replaces the [models.PlatformOther] sentinel.
// The session stays open until [Controller.Succeeded] or [Controller.Failed] is called.
func (c *Controller) Submit() (Request, error) {
	if !c.open {
		return Request{}, shared.ErrEditorClosed
	}
	return Request{ID: c.targetID, Draft: c.form.Draft()}, nil
}

// Succeeded closes the session after the store accepted the update.
func (c *Controller) Succeeded() {
	c.close()
}

// Failed records err and keeps the session and its draft as they are.
func (c *Controller) Failed(err error) {
	if !c.open {
		return
	}
	c.err = fmt.Errorf("update %d failed: %w", c.targetID, err)
}

// IsOpen reports whether a session is open.
func (c *Controller) IsOpen() bool { return c.open }

// TargetID returns the id of the record being edited, zero when closed.
func (c *Controller) TargetID() int64 { return c.targetID }

// Title returns the title the record had when the session opened.
func (c *Controller) Title() string { return c.title }

// Form returns the session's draft. Edits made through the pointer are the edits that will be submitted.
func (c *Controller) Form() *models.Form { return &c.form }

// Err returns the last update failure of the open session.
func (c *Controller) Err() error { return c.err }

func (c *Controller) close() {
	c.open = false
	c.targetID = 0
	c.title = ""
	c.err = nil
	c.form.Reset()
}
