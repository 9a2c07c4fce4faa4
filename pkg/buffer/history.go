package buffer

import (
	"fmt"

	"github.com/google/uuid"
)

// edit records enough of a single mutation to invert it. start is the
// offset the edit happened at in the buffer state of that moment.
type edit struct {
	start    int
	deleted  string
	inserted string
}

// EditGroup is a run of edits that undo reverts as one action. Every
// refactoring operation wraps its mutations in a group so a failed or
// unwanted transform rolls back atomically.
type EditGroup struct {
	ID    uuid.UUID
	Label string
	edits []edit
}

// Size returns the number of recorded edits in the group.
func (g *EditGroup) Size() int { return len(g.edits) }

type history struct {
	groups []*EditGroup
	open   *EditGroup
}

func newHistory() *history {
	return &history{}
}

func (h *history) record(e edit) {
	if h.open != nil {
		h.open.edits = append(h.open.edits, e)
		return
	}
	h.groups = append(h.groups, &EditGroup{
		ID:    uuid.New(),
		edits: []edit{e},
	})
}

// BeginGroup opens an undo group. Every mutation until EndGroup is
// recorded into it. Groups do not nest; beginning a new group closes
// the open one first.
func (b *Buffer) BeginGroup(label string) uuid.UUID {
	b.EndGroup()
	g := &EditGroup{ID: uuid.New(), Label: label}
	b.history.open = g
	return g.ID
}

// EndGroup closes the open undo group, discarding it when it recorded
// no edits.
func (b *Buffer) EndGroup() {
	g := b.history.open
	if g == nil {
		return
	}
	b.history.open = nil
	if len(g.edits) > 0 {
		b.history.groups = append(b.history.groups, g)
	}
}

// Groups returns the closed undo groups, oldest first.
func (b *Buffer) Groups() []*EditGroup {
	return b.history.groups
}

// Undo reverts the most recent undo group and returns its ID.
func (b *Buffer) Undo() (uuid.UUID, error) {
	b.EndGroup()
	n := len(b.history.groups)
	if n == 0 {
		return uuid.Nil, fmt.Errorf("nothing to undo")
	}
	g := b.history.groups[n-1]
	b.history.groups = b.history.groups[:n-1]
	for i := len(g.edits) - 1; i >= 0; i-- {
		e := g.edits[i]
		// Invert in place without recording.
		b.text = b.text[:e.start] + e.deleted + b.text[e.start+len(e.inserted):]
	}
	b.cursor = b.clamp(b.cursor)
	return g.ID, nil
}
