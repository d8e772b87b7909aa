package content

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// EditBuffer holds one mutable draft of a document. Reads see the last
// saved document; mutations build up a draft that only becomes visible
// once Save hands it to the persistence function and it succeeds. A failed
// save keeps the draft so the edit is not lost.
type EditBuffer[T any] struct {
	mu    sync.Mutex
	base  T
	draft T
	dirty bool
	save  func(context.Context, T) error
}

// NewEditBuffer creates a buffer seeded with doc. save is invoked by Save
// with the current draft.
func NewEditBuffer[T any](doc T, save func(context.Context, T) error) *EditBuffer[T] {
	return &EditBuffer[T]{base: doc, draft: clone(doc), save: save}
}

// Current returns a deep copy of the last saved document.
func (b *EditBuffer[T]) Current() T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return clone(b.base)
}

// Draft returns a deep copy of the working draft.
func (b *EditBuffer[T]) Draft() T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return clone(b.draft)
}

// Set replaces the draft with the value mutate returns. mutate receives a
// deep copy, so edits never alias the saved document.
func (b *EditBuffer[T]) Set(mutate func(T) T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.draft = mutate(clone(b.draft))
	b.dirty = true
}

// Dirty reports whether the draft differs from the saved document by at
// least one Set since the last Save or Discard.
func (b *EditBuffer[T]) Dirty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dirty
}

// Discard throws the draft away and restores the saved document.
func (b *EditBuffer[T]) Discard() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.draft = clone(b.base)
	b.dirty = false
}

// Save hands the draft to the persistence function. On success the draft
// becomes the saved document; on failure both are left untouched.
func (b *EditBuffer[T]) Save(ctx context.Context) error {
	b.mu.Lock()
	draft := clone(b.draft)
	b.mu.Unlock()

	if err := b.save(ctx, draft); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}

	b.mu.Lock()
	b.base = draft
	b.draft = clone(draft)
	b.dirty = false
	b.mu.Unlock()
	return nil
}

// clone deep-copies a document through its JSON form. Documents are plain
// data, so the round trip is lossless.
func clone[T any](doc T) T {
	data, err := json.Marshal(doc)
	if err != nil {
		panic(fmt.Sprintf("content: document not marshalable: %v", err))
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		panic(fmt.Sprintf("content: document not unmarshalable: %v", err))
	}
	return out
}
