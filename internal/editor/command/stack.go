package command

import "github.com/keel3d/engine/internal/core/event"

// Executed is published after a command runs for the first time or is redone.
type Executed struct{ Name string }

// Undone is published after a command is reverted.
type Undone struct{ Name string }

// Dropped is published after a command is finalized and discarded.
type Dropped struct{ Name string }

// Stack is the undo/redo history. It is the sole caller of Finalize: a
// command is finalized exactly once, at the moment the stack discards it
// (redo-tail truncation, depth eviction, or Clear), and never while it can
// still be reverted or redone.
type Stack struct {
	commands []Command
	// top is the number of currently-applied commands; commands[top:] is the
	// redo tail.
	top   int
	limit int
}

// NewStack creates a history keeping at most limit undoable commands.
// limit <= 0 means unbounded.
func NewStack(limit int) *Stack {
	return &Stack{limit: limit}
}

// Do executes cmd and pushes it. Any redo tail is finalized and discarded
// first; the oldest entry is evicted (and finalized) when the history
// exceeds its depth limit.
func (s *Stack) Do(ctx *Context, cmd Command) {
	for _, dropped := range s.commands[s.top:] {
		s.drop(ctx, dropped)
	}
	s.commands = s.commands[:s.top]

	cmd.Execute(ctx)
	s.commands = append(s.commands, cmd)
	s.top++
	s.publish(ctx, cmd, execute)

	if s.limit > 0 && len(s.commands) > s.limit {
		s.drop(ctx, s.commands[0])
		s.commands = s.commands[1:]
		s.top--
	}
}

// Undo reverts the most recent applied command. Returns false when there is
// nothing to undo.
func (s *Stack) Undo(ctx *Context) bool {
	if s.top == 0 {
		return false
	}
	s.top--
	cmd := s.commands[s.top]
	cmd.Revert(ctx)
	s.publish(ctx, cmd, undo)
	return true
}

// Redo re-executes the most recently undone command.
func (s *Stack) Redo(ctx *Context) bool {
	if s.top == len(s.commands) {
		return false
	}
	cmd := s.commands[s.top]
	cmd.Execute(ctx)
	s.top++
	s.publish(ctx, cmd, execute)
	return true
}

// Clear finalizes every held command and empties the history.
func (s *Stack) Clear(ctx *Context) {
	for _, cmd := range s.commands {
		s.drop(ctx, cmd)
	}
	s.commands = s.commands[:0]
	s.top = 0
}

func (s *Stack) CanUndo() bool { return s.top > 0 }
func (s *Stack) CanRedo() bool { return s.top < len(s.commands) }

// UndoName returns the display label of the command Undo would revert.
func (s *Stack) UndoName(ctx *Context) string {
	if !s.CanUndo() {
		return ""
	}
	return s.commands[s.top-1].Name(ctx)
}

// RedoName returns the display label of the command Redo would re-execute.
func (s *Stack) RedoName(ctx *Context) string {
	if !s.CanRedo() {
		return ""
	}
	return s.commands[s.top].Name(ctx)
}

// Len returns the number of commands currently held, applied or not.
func (s *Stack) Len() int { return len(s.commands) }

func (s *Stack) drop(ctx *Context, cmd Command) {
	name := cmd.Name(ctx)
	cmd.Finalize(ctx)
	if ctx.Bus != nil {
		event.Publish(ctx.Bus, Dropped{Name: name})
	}
}

type stackOp int

const (
	execute stackOp = iota
	undo
)

func (s *Stack) publish(ctx *Context, cmd Command, op stackOp) {
	if ctx.Bus == nil {
		return
	}
	name := cmd.Name(ctx)
	if op == undo {
		event.Publish(ctx.Bus, Undone{Name: name})
	} else {
		event.Publish(ctx.Bus, Executed{Name: name})
	}
}
