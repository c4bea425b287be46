package shop

import (
	"context"

	"github.com/shoptodo/shoptodo-backend/internal/persist"
	"github.com/shoptodo/shoptodo-backend/internal/todos"
)

// AddTodo appends a todo. Blank text is rejected with a validation error.
func (s *Shop) AddTodo(ctx context.Context, text string) (todos.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, _, err := s.require(ctx)
	if err != nil {
		return todos.Item{}, err
	}
	item, err := s.todos.Add(text, s.ids.Next(), s.now().UTC())
	if err != nil {
		return todos.Item{}, err
	}
	s.persist(ctx, persist.KeyTodos)
	return item, nil
}

// ToggleTodo flips completion; an unknown id is a no-op.
func (s *Shop) ToggleTodo(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, _, err := s.require(ctx)
	if err != nil {
		return err
	}
	if _, ok := s.todos.Toggle(id); ok {
		s.persist(ctx, persist.KeyTodos)
	}
	return nil
}

// DeleteTodo removes id; an unknown id is a no-op.
func (s *Shop) DeleteTodo(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, _, err := s.require(ctx)
	if err != nil {
		return err
	}
	if s.todos.Delete(id) {
		s.persist(ctx, persist.KeyTodos)
	}
	return nil
}

func (s *Shop) Todos() []todos.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.todos.Items()
}
