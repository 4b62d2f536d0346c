// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

import "github.com/pkg/errors"

// A Conditional is a procedural statement of a combinational or sequential
// block. The set of conditionals is closed: *Assign, *If, *Case and *Group.
//
type Conditional interface {
	// Drivers returns the signals read by the conditional and its
	// sub-conditionals, in order of first appearance.
	Drivers() []*Signal
	// Receivers returns the signals written by the conditional and its
	// sub-conditionals, in order of first appearance.
	Receivers() []*Signal
	// Conditionals returns the direct sub-conditionals.
	Conditionals() []Conditional

	conditional()
}

// Assign drives Receiver with the value of Driver.
//
type Assign struct {
	Receiver *Signal
	Driver   *Signal
}

// Branch is a branch of an If statement. A nil condition denotes the else
// branch.
//
type Branch struct {
	Cond *Signal
	Body []Conditional
}

// If executes the body of the first branch whose condition is 1.
//
type If struct {
	Branches []Branch
	cache
}

// CaseKind selects how case items are matched.
//
type CaseKind int

// Case kinds.
//
const (
	CaseExact    CaseKind = iota // items must be equal to the expression
	CaseWildcard                 // Z bits in items match anything
)

// CaseMode is the optional priority or uniqueness qualifier of a case.
//
type CaseMode int

// Case modes.
//
const (
	CaseNone CaseMode = iota
	CasePriority
	CaseUnique
)

func (m CaseMode) String() string {
	switch m {
	case CasePriority:
		return "priority"
	case CaseUnique:
		return "unique"
	}
	return ""
}

// CaseItem is a value/body pair of a Case statement.
//
type CaseItem struct {
	Value *Signal
	Body  []Conditional
}

// Case executes the body of the first item matching Expr, or the default body
// if none matches.
//
type Case struct {
	Expr  *Signal
	Items []CaseItem
	Kind  CaseKind
	Mode  CaseMode

	def        []Conditional
	hasDefault bool
	synthetic  bool
	cache
}

// Group is an ordered list of conditionals.
//
type Group struct {
	Body []Conditional
	cache
}

func (*Assign) conditional() {}
func (*If) conditional()     {}
func (*Case) conditional()   {}
func (*Group) conditional()  {}

// NewIf returns an If statement with a single branch.
//
func NewIf(cond *Signal, body ...Conditional) *If {
	return &If{Branches: []Branch{{Cond: cond, Body: body}}}
}

// ElseIf adds a branch to i.
//
func (i *If) ElseIf(cond *Signal, body ...Conditional) *If {
	i.Branches = append(i.Branches, Branch{Cond: cond, Body: body})
	return i
}

// Else adds an else branch to i.
//
func (i *If) Else(body ...Conditional) *If {
	i.Branches = append(i.Branches, Branch{Body: body})
	return i
}

func (i *If) hasElse() bool {
	return len(i.Branches) > 0 && i.Branches[len(i.Branches)-1].Cond == nil
}

// Item returns a case item.
//
func Item(value *Signal, body ...Conditional) CaseItem {
	return CaseItem{Value: value, Body: body}
}

// NewCase returns a case statement with exact matching.
//
func NewCase(expr *Signal, items ...CaseItem) *Case {
	return &Case{Expr: expr, Items: items}
}

// NewCaseZ returns a case statement where Z bits of item values match
// anything.
//
func NewCaseZ(expr *Signal, items ...CaseItem) *Case {
	return &Case{Expr: expr, Items: items, Kind: CaseWildcard}
}

// Default sets the default body of c.
//
func (c *Case) Default(body ...Conditional) *Case {
	c.def, c.hasDefault = body, true
	return c
}

// DefaultBody returns the default body of c and whether c has one.
//
func (c *Case) DefaultBody() ([]Conditional, bool) { return c.def, c.hasDefault }

// Priority sets the priority mode on c.
//
func (c *Case) Priority() *Case { c.Mode = CasePriority; return c }

// Unique sets the unique mode on c.
//
func (c *Case) Unique() *Case { c.Mode = CaseUnique; return c }

// NewGroup returns a group of conditionals.
//
func NewGroup(body ...Conditional) *Group {
	return &Group{Body: body}
}

// cache memoizes drivers and receivers. Conditionals must not be modified once
// they have been queried.
type cache struct {
	drivers   []*Signal
	receivers []*Signal
	done      bool
}

func (c *cache) get(self Conditional) *cache {
	if !c.done {
		c.drivers = collect(self, true, nil, make(map[*Signal]bool))
		c.receivers = collect(self, false, nil, make(map[*Signal]bool))
		c.done = true
	}
	return c
}

func collectList(cs []Conditional, drivers bool, acc []*Signal, seen map[*Signal]bool) []*Signal {
	for _, c := range cs {
		acc = collect(c, drivers, acc, seen)
	}
	return acc
}

func collect(c Conditional, drivers bool, acc []*Signal, seen map[*Signal]bool) []*Signal {
	add := func(s *Signal) {
		if !seen[s] {
			seen[s] = true
			acc = append(acc, s)
		}
	}
	switch c := c.(type) {
	case *Assign:
		if drivers {
			add(c.Driver)
		} else {
			add(c.Receiver)
		}
	case *If:
		for _, b := range c.Branches {
			if drivers && b.Cond != nil {
				add(b.Cond)
			}
			acc = collectList(b.Body, drivers, acc, seen)
		}
	case *Case:
		if drivers {
			add(c.Expr)
		}
		for _, it := range c.Items {
			if drivers {
				add(it.Value)
			}
			acc = collectList(it.Body, drivers, acc, seen)
		}
		acc = collectList(c.def, drivers, acc, seen)
	case *Group:
		acc = collectList(c.Body, drivers, acc, seen)
	default:
		panic(errors.Errorf("unknown conditional type %T", c))
	}
	return acc
}

func (a *Assign) Drivers() []*Signal          { return []*Signal{a.Driver} }
func (a *Assign) Receivers() []*Signal        { return []*Signal{a.Receiver} }
func (a *Assign) Conditionals() []Conditional { return nil }

func (i *If) Drivers() []*Signal   { return i.get(i).drivers }
func (i *If) Receivers() []*Signal { return i.get(i).receivers }
func (i *If) Conditionals() []Conditional {
	var cs []Conditional
	for _, b := range i.Branches {
		cs = append(cs, b.Body...)
	}
	return cs
}

func (c *Case) Drivers() []*Signal   { return c.get(c).drivers }
func (c *Case) Receivers() []*Signal { return c.get(c).receivers }
func (c *Case) Conditionals() []Conditional {
	var cs []Conditional
	for _, it := range c.Items {
		cs = append(cs, it.Body...)
	}
	return append(cs, c.def...)
}

func (g *Group) Drivers() []*Signal          { return g.get(g).drivers }
func (g *Group) Receivers() []*Signal        { return g.get(g).receivers }
func (g *Group) Conditionals() []Conditional { return g.Body }

// validate checks widths and structure of a conditional tree.
func validate(c Conditional) error {
	switch c := c.(type) {
	case *Assign:
		if c.Receiver == nil || c.Driver == nil {
			return errors.Wrap(ErrInvalidConditional, "nil signal in assignment")
		}
		if c.Receiver.width != c.Driver.width {
			return errors.Wrapf(ErrWidthMismatch, "assign %s to %s", c.Driver, c.Receiver)
		}
	case *If:
		if len(c.Branches) == 0 {
			return errors.Wrap(ErrInvalidConditional, "if without branches")
		}
		for i, b := range c.Branches {
			if b.Cond == nil {
				if i != len(c.Branches)-1 {
					return errors.Wrap(ErrInvalidConditional, "else must be the last branch")
				}
			} else if b.Cond.width != 1 {
				return errors.Wrapf(ErrNotOneBit, "if condition %s", b.Cond)
			}
			if err := validateList(b.Body); err != nil {
				return err
			}
		}
	case *Case:
		if c.Expr == nil {
			return errors.Wrap(ErrInvalidConditional, "nil case expression")
		}
		for _, it := range c.Items {
			if it.Value == nil {
				return errors.Wrap(ErrInvalidConditional, "nil case item")
			}
			if it.Value.width != c.Expr.width {
				return errors.Wrapf(ErrWidthMismatch, "case %s item %s", c.Expr, it.Value)
			}
			if err := validateList(it.Body); err != nil {
				return err
			}
		}
		return validateList(c.def)
	case *Group:
		return validateList(c.Body)
	case nil:
		return errors.Wrap(ErrInvalidConditional, "nil conditional")
	default:
		return errors.Wrapf(ErrInvalidConditional, "unknown conditional type %T", c)
	}
	return nil
}

func validateList(cs []Conditional) error {
	for _, c := range cs {
		if err := validate(c); err != nil {
			return err
		}
	}
	return nil
}
