package command

import (
	"fmt"

	"github.com/nerrad567/gray-logic-hub/internal/device"
)

// MacroCommand runs a fixed sequence of commands as one catalog entry.
//
// A macro may span device families. Children must be unbound when the
// macro is registered, and a command instance may appear only once.
type MacroCommand struct {
	name     string
	children []Command
	bound    bool
}

// Macro returns a composite command named name.
func Macro(name string, children ...Command) *MacroCommand {
	return &MacroCommand{name: name, children: children}
}

// Name implements Command.
func (c *MacroCommand) Name() string { return c.name }

// Category implements Command.
func (c *MacroCommand) Category() Category { return CategoryComposite }

// Steps returns the child commands in execution order.
func (c *MacroCommand) Steps() []Command {
	out := make([]Command, len(c.children))
	copy(out, c.children)
	return out
}

// Bind implements Command. Each child is bound through the resolver
// scoped to its own category. Every step is checked before any is bound,
// and if a step still fails to bind the steps bound before it are unbound
// again, so a rejected macro leaves its children reusable.
func (c *MacroCommand) Bind(r Resolver) error {
	if c.bound {
		return ErrAlreadyBound
	}
	if err := c.checkSteps(make(map[Command]struct{})); err != nil {
		return err
	}
	for i, child := range c.children {
		if err := bindStep(child, r); err != nil {
			c.unbindSteps(i)
			return fmt.Errorf("binding step %d (%s): %w", i, child.Name(), err)
		}
	}
	c.bound = true
	return nil
}

// checkSteps fails if the macro tree is empty anywhere, holds a bound
// command, or holds the same command instance twice.
func (c *MacroCommand) checkSteps(seen map[Command]struct{}) error {
	if len(c.children) == 0 {
		return ErrEmptyMacro
	}
	for i, child := range c.children {
		if child.Bound() {
			return fmt.Errorf("step %d (%s): %w", i, child.Name(), ErrAlreadyBound)
		}
		if _, dup := seen[child]; dup {
			return fmt.Errorf("step %d (%s): %w", i, child.Name(), ErrDuplicateStep)
		}
		seen[child] = struct{}{}
		if m, ok := child.(*MacroCommand); ok {
			if err := m.checkSteps(seen); err != nil {
				return fmt.Errorf("step %d (%s): %w", i, child.Name(), err)
			}
		}
	}
	return nil
}

func bindStep(child Command, r Resolver) error {
	scoped, ok := Scope(r, child.Category())
	if !ok {
		return fmt.Errorf("%w %q", ErrNoRoute, child.Category())
	}
	return child.Bind(scoped)
}

// unbindSteps undoes the bindings of the first n children.
func (c *MacroCommand) unbindSteps(n int) {
	for i := n - 1; i >= 0; i-- {
		if u, ok := c.children[i].(unbinder); ok {
			u.unbind()
		}
	}
}

func (c *MacroCommand) unbind() {
	c.unbindSteps(len(c.children))
	c.bound = false
}

// Bound implements Command.
func (c *MacroCommand) Bound() bool { return c.bound }

// Execute implements Command. Every child runs even if an earlier one
// reports not-ready; the macro reports the first not-ready status.
func (c *MacroCommand) Execute() Result {
	if !c.bound {
		panic("command: " + c.name + " executed before binding")
	}

	res := Result{
		Command:  c.name,
		Category: CategoryComposite,
		Status:   device.StatusOK,
		Children: make([]Result, 0, len(c.children)),
	}
	for _, child := range c.children {
		r := child.Execute()
		if !r.Ready() && res.Ready() {
			res.Status = r.Status
			res.Message = r.Command + ": " + r.Message
		}
		res.Children = append(res.Children, r)
	}
	return res
}
