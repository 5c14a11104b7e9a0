package command

// Command is a reversible mutation of editor state.
//
// A command captures the state slice it touches when it is constructed, so
// Undo restores that snapshot rather than computing an inverse. Commands are
// driven by an Invoker and are not meant to be executed directly.
type Command interface {
	Execute()
	Undo()
}

// Invoker keeps a linear undo/redo timeline of executed commands.
//
// Executed commands live on the applied stack. Undo moves the most recent
// one to the reverted stack and Redo moves it back. Executing a new command
// discards the reverted stack.
//
// Invoker is not safe for concurrent use; the editor serializes access.
type Invoker struct {
	applied  []Command
	reverted []Command
}

// NewInvoker returns an invoker with empty history.
func NewInvoker() *Invoker {
	return &Invoker{}
}

// Execute runs cmd and records it as the most recent command.
func (i *Invoker) Execute(cmd Command) {
	cmd.Execute()
	i.applied = append(i.applied, cmd)
	i.reverted = nil
}

// Undo reverts the most recent command. It returns false, doing nothing,
// when there is nothing to undo.
func (i *Invoker) Undo() bool {
	n := len(i.applied)
	if n == 0 {
		return false
	}
	cmd := i.applied[n-1]
	i.applied = i.applied[:n-1]
	cmd.Undo()
	i.reverted = append(i.reverted, cmd)
	return true
}

// Redo re-executes the most recently undone command. It returns false,
// doing nothing, when there is nothing to redo.
func (i *Invoker) Redo() bool {
	n := len(i.reverted)
	if n == 0 {
		return false
	}
	cmd := i.reverted[n-1]
	i.reverted = i.reverted[:n-1]
	cmd.Execute()
	i.applied = append(i.applied, cmd)
	return true
}

// CanUndo reports whether Undo would do anything.
func (i *Invoker) CanUndo() bool { return len(i.applied) > 0 }

// CanRedo reports whether Redo would do anything.
func (i *Invoker) CanRedo() bool { return len(i.reverted) > 0 }

// Len returns the number of applied commands.
func (i *Invoker) Len() int { return len(i.applied) }

// Peek returns the command Undo would revert, or nil.
func (i *Invoker) Peek() Command {
	if len(i.applied) == 0 {
		return nil
	}
	return i.applied[len(i.applied)-1]
}

// Clear drops all history without touching state.
func (i *Invoker) Clear() {
	i.applied = nil
	i.reverted = nil
}
