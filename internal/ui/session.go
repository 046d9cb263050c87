package ui

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/five82/statekit/internal/binding"
	"github.com/five82/statekit/internal/model"
)

// session owns the provider and the panels. Model is copied on every
// Update, session is shared by all copies.
type session struct {
	provider *binding.Provider[model.State]
	ctx      *binding.Context[model.State]
	store    *model.Store
	panels   panels

	newStore func(logPath, theme string) *model.Store
	onAttach func(store *model.Store, contextID string) error
	logger   *slog.Logger

	swaps  int
	closed bool
}

func (s *session) attach(store *model.Store) error {
	ctx, err := s.provider.Attach(store)
	if err != nil {
		return fmt.Errorf("attach store: %w", err)
	}
	s.ctx = ctx
	s.store = store
	if s.onAttach != nil {
		if err := s.onAttach(store, ctx.ID); err != nil {
			return fmt.Errorf("attach hook: %w", err)
		}
	}
	return nil
}

// sync renders every panel that needs it, lets the provider catch up, then
// renders whatever the catch-up refreshed.
func (s *session) sync() error {
	for _, p := range s.panels.all() {
		p.sync(s.ctx, true)
	}
	if err := s.provider.Commit(); err != nil {
		return err
	}
	for _, p := range s.panels.all() {
		p.sync(s.ctx, false)
	}
	return nil
}

func (s *session) dispatch(payload model.State) error {
	dispatch, err := binding.UseDispatch(s.ctx)
	if err != nil {
		return err
	}
	if _, err := dispatch(payload); err != nil {
		return fmt.Errorf("dispatch: %w", err)
	}
	return nil
}

func (s *session) state() (model.State, error) {
	store, err := binding.UseStore(s.ctx)
	if err != nil {
		return nil, err
	}
	return store.GetState()
}

// swap replaces the store with a fresh one. The theme, log tail and poll
// status carry over, the counter starts again from zero.
func (s *session) swap() error {
	current, err := s.state()
	if err != nil {
		return err
	}
	next := s.newStore(model.LogPath(current), model.Theme(current))
	if err := s.attach(next); err != nil {
		return err
	}

	carry := model.State{}
	for _, k := range []string{model.KeyLogs, model.KeyPolledAt, model.KeyPollError, model.KeyRemote} {
		if v, ok := current[k]; ok {
			carry[k] = v
		}
	}
	if _, err := next.Dispatch(carry); err != nil {
		return fmt.Errorf("seed swapped store: %w", err)
	}
	s.swaps++
	s.logger.Info("store swapped", "context", s.ctx.ID, "swaps", s.swaps)
	return nil
}

func (s *session) close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	for _, p := range s.panels.all() {
		p.unmount()
	}
	return s.provider.Close()
}

// panelErr joins the selector errors currently shown by the panels.
func (s *session) panelErr() error {
	var errs []error
	for _, p := range s.panels.all() {
		if err := p.Err(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
		}
	}
	return errors.Join(errs...)
}
