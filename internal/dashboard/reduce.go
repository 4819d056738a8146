package dashboard

import (
	"fmt"

	"github.com/five82/tally/internal/catalog"
	"github.com/five82/tally/internal/inventory"
	"github.com/five82/tally/internal/state"
)

// Event is a user gesture or a completed request.
type Event interface{ isEvent() }

type (
	SearchChanged    struct{ Term string }
	SortRequested    struct{ Key catalog.SortKey }
	PrevPage         struct{}
	NextPage         struct{}
	RefreshRequested struct{}
	FormSubmitted    struct{}
	EditOpened       struct{ Product inventory.Product }
	EditCancelled    struct{}
	EditSubmitted    struct{}
	DeleteRequested  struct{ ID inventory.ID }
	DeleteCancelled  struct{}
	DeleteConfirmed  struct{}
)

// FormChanged sets one input of the add-product form.
type FormChanged struct {
	Field Field
	Value string
}

// EditChanged sets one input of the edit modal.
type EditChanged struct {
	Field Field
	Value string
}

// RefreshFinished carries the store snapshot after a refresh; Err is the
// refresh error, if any.
type RefreshFinished struct {
	Snapshot state.Snapshot
	Err      error
}

// MutationFinished carries the outcome of a store mutation helper and the
// store snapshot taken after it returned.
type MutationFinished struct {
	Op       state.Op
	Snapshot state.Snapshot
	Err      error
}

func (SearchChanged) isEvent()    {}
func (SortRequested) isEvent()    {}
func (PrevPage) isEvent()         {}
func (NextPage) isEvent()         {}
func (RefreshRequested) isEvent() {}
func (RefreshFinished) isEvent()  {}
func (FormChanged) isEvent()      {}
func (FormSubmitted) isEvent()    {}
func (EditOpened) isEvent()       {}
func (EditChanged) isEvent()      {}
func (EditCancelled) isEvent()    {}
func (EditSubmitted) isEvent()    {}
func (DeleteRequested) isEvent()  {}
func (DeleteCancelled) isEvent()  {}
func (DeleteConfirmed) isEvent()  {}
func (MutationFinished) isEvent() {}

// Effect is work Reduce asks the caller to perform.
type Effect interface{ isEffect() }

type (
	Refresh       struct{}
	CreateProduct struct{ Input inventory.ProductInput }
	DeleteProduct struct{ ID inventory.ID }
	Notify        struct{ Notice Notice }
)

// UpdateProduct asks for a PUT of the edit buffer.
type UpdateProduct struct {
	ID    inventory.ID
	Input inventory.ProductInput
}

func (Refresh) isEffect()       {}
func (CreateProduct) isEffect() {}
func (UpdateProduct) isEffect() {}
func (DeleteProduct) isEffect() {}
func (Notify) isEffect()        {}

// Reduce applies ev to s. It never performs I/O; requests and notifications
// come back as effects.
func Reduce(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case SearchChanged:
		s.Search = ev.Term
		s.Page = 1
		return s, nil

	case SortRequested:
		s.Sort = s.Sort.Toggle(ev.Key)
		return s, nil

	case PrevPage:
		if s.Page > 1 {
			s.Page--
		}
		return s, nil

	case NextPage:
		if s.Page < s.TotalPages() {
			s.Page++
		}
		return s, nil

	case RefreshRequested:
		s = s.begin()
		return s, []Effect{Refresh{}}

	case RefreshFinished:
		s = s.finish()
		s = s.adopt(ev.Snapshot)
		if ev.Err != nil {
			return s, []Effect{Notify{fetchFailedNotice}}
		}
		return s, nil

	case FormChanged:
		s.Create = s.Create.With(ev.Field, ev.Value)
		return s, nil

	case FormSubmitted:
		in, err := s.Create.Parse()
		if err != nil {
			return s, []Effect{Notify{invalidInputNotice(err)}}
		}
		s = s.begin()
		return s, []Effect{CreateProduct{Input: in}}

	case EditOpened:
		s.Editing = true
		s.Edit = NewEditBuffer(ev.Product)
		return s, nil

	case EditChanged:
		if !s.Editing {
			return s, nil
		}
		s.Edit.Form = s.Edit.Form.With(ev.Field, ev.Value)
		return s, nil

	case EditCancelled:
		s.Editing = false
		s.Edit = EditBuffer{}
		return s, nil

	case EditSubmitted:
		if !s.Editing {
			return s, nil
		}
		in, err := s.Edit.Parse()
		if err != nil {
			return s, []Effect{Notify{invalidInputNotice(err)}}
		}
		s = s.begin()
		return s, []Effect{UpdateProduct{ID: s.Edit.ID, Input: in}}

	case DeleteRequested:
		s.ConfirmingDelete = true
		s.PendingDelete = ev.ID
		return s, nil

	case DeleteCancelled:
		s.ConfirmingDelete = false
		s.PendingDelete = inventory.ID{}
		return s, nil

	case DeleteConfirmed:
		if !s.ConfirmingDelete {
			return s, nil
		}
		id := s.PendingDelete
		s.ConfirmingDelete = false
		s.PendingDelete = inventory.ID{}
		s = s.begin()
		return s, []Effect{DeleteProduct{ID: id}}

	case MutationFinished:
		return s.finishMutation(ev)
	}
	return s, nil
}

func (s State) finishMutation(ev MutationFinished) (State, []Effect) {
	s = s.finish()
	if ev.Err != nil && !state.IsFetchError(ev.Err) {
		// Form and modal stay as they are so the user can retry or cancel.
		return s, []Effect{Notify{mutationNotice(ev.Op, false)}}
	}

	switch ev.Op {
	case state.OpCreate:
		s.Create = Form{}
	case state.OpUpdate:
		s.Editing = false
		s.Edit = EditBuffer{}
	}
	s = s.adopt(ev.Snapshot)

	effects := []Effect{Notify{mutationNotice(ev.Op, true)}}
	if ev.Err != nil {
		effects = append(effects, Notify{fetchFailedNotice})
	}
	return s, effects
}

// adopt takes a new store snapshot and pulls the page back into range if the
// list shrank underneath it. Results can arrive out of order, so a snapshot
// older than the one already shown is ignored.
func (s State) adopt(snap state.Snapshot) State {
	if snap.Version < s.Snapshot.Version {
		return s
	}
	s.Snapshot = snap
	s.Page = catalog.ClampPage(s.Page, s.TotalPages())
	return s
}

func invalidInputNotice(err error) Notice {
	return Notice{Level: LevelError, Text: fmt.Sprintf("Invalid %v", err)}
}
