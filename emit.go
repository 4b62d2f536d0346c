// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

import (
	"strings"

	"github.com/pkg/errors"
)

type emitter struct {
	b     strings.Builder
	names map[*Signal]string
	op    string
}

func (e *emitter) name(s *Signal) string {
	if n, ok := e.names[s]; ok {
		return n
	}
	if s.kind == kindConst {
		return s.Value().String()
	}
	return s.name
}

func (e *emitter) line(indent int, parts ...string) {
	e.b.WriteString(strings.Repeat("  ", indent))
	for _, p := range parts {
		e.b.WriteString(p)
	}
	e.b.WriteByte('\n')
}

func (e *emitter) list(cs []Conditional, indent int) {
	for _, c := range cs {
		e.emit(c, indent)
	}
}

func (e *emitter) emit(c Conditional, indent int) {
	switch c := c.(type) {
	case *Assign:
		e.line(indent, e.name(c.Receiver), " ", e.op, " ", e.name(c.Driver), ";")
	case *If:
		for i, b := range c.Branches {
			var head string
			switch {
			case i == 0:
				head = "if (" + e.name(b.Cond) + ") begin"
			case b.Cond != nil:
				head = "end else if (" + e.name(b.Cond) + ") begin"
			default:
				head = "end else begin"
			}
			e.line(indent, head)
			e.list(b.Body, indent+1)
		}
		e.line(indent, "end")
	case *Case:
		kw := "case"
		if c.Kind == CaseWildcard {
			kw = "casez"
		}
		if c.Mode != CaseNone {
			kw = c.Mode.String() + " " + kw
		}
		e.line(indent, kw, " (", e.name(c.Expr), ")")
		for _, it := range c.Items {
			e.line(indent+1, e.name(it.Value), " : begin")
			e.list(it.Body, indent+2)
			e.line(indent+1, "end")
		}
		// unique and priority cases with no match drive X, whatever the
		// SSA pass appended.
		if c.hasDefault && !(c.synthetic && c.Mode != CaseNone) {
			e.line(indent+1, "default : begin")
			e.list(c.def, indent+2)
			e.line(indent+1, "end")
		}
		e.line(indent, "endcase")
	case *Group:
		e.list(c.Body, indent)
	default:
		panic(errors.Errorf("unknown conditional type %T", c))
	}
}

// Emit returns the SystemVerilog text of c, indented by indent levels of two
// spaces. names maps signals to the identifiers to use. Constants not found in
// names are emitted as literals, other signals by their own name. op is the
// assignment operator, "=" or "<=".
//
func Emit(c Conditional, indent int, names map[*Signal]string, op string) string {
	e := emitter{names: names, op: op}
	e.emit(c, indent)
	return e.b.String()
}

func (b *always) portNames() map[*Signal]string {
	m := make(map[*Signal]string, len(b.names))
	for s, n := range b.names {
		if s.kind != kindConst {
			m[s] = n
		}
	}
	return m
}

func (b *always) verilog(head, op string) string {
	e := emitter{names: b.portNames(), op: op}
	e.line(0, head, " begin")
	e.list(b.conds, 1)
	e.line(0, "end")
	return e.b.String()
}

// Verilog returns the SystemVerilog text of the block.
//
func (c *Combinational) Verilog() string {
	return c.verilog(c.Keyword(), c.AssignOperator())
}

// Verilog returns the SystemVerilog text of the block.
//
func (s *Sequential) Verilog() string {
	var b strings.Builder
	b.WriteString(s.Keyword())
	b.WriteString(" @(")
	for i, t := range s.triggers {
		if i > 0 {
			b.WriteString(" or ")
		}
		b.WriteString(t.Edge.String())
		b.WriteByte(' ')
		b.WriteString(s.names[t.Signal])
	}
	b.WriteByte(')')
	return s.verilog(b.String(), s.AssignOperator())
}
