// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

import (
	"strconv"

	"github.com/pkg/errors"
)

type ssaProxy struct {
	ref *Signal
	ctx int
}

// Remap returns a fresh SSA proxy of a signal. Proxies written by an
// assignment become new versions of the signal, and proxies that are read
// resolve to the latest version visible where they are read.
//
type Remap func(s *Signal) *Signal

type ssaPass struct {
	d        *Design
	ctx      int
	refs     []*Signal // in order of first remap
	proxies  []*Signal
	writes   map[*Signal]bool
	resolved map[*Signal]bool
	upstream map[*Signal][]*Signal // signal -> read proxies it depends on
	nphi     int
}

// NewCombinationalSSA creates a combinational block where signals can be
// assigned several times through SSA proxies.
//
// build is called once with a remap function. Every proxy it returns for a
// signal s denotes a version of s: assigning a proxy defines a new version,
// reading one reads the version reaching that point. Divergent versions across
// branches of If and Case statements are merged with phi signals, and the
// final version of every remapped signal is assigned to the signal itself.
//
func NewCombinationalSSA(d *Design, name string, build func(s Remap) []Conditional) (*Combinational, error) {
	d.ssa++
	p := &ssaPass{
		d:        d,
		ctx:      d.ssa,
		writes:   make(map[*Signal]bool),
		resolved: make(map[*Signal]bool),
		upstream: make(map[*Signal][]*Signal),
	}
	seen := make(map[*Signal]bool)
	conds := build(func(s *Signal) *Signal {
		if !seen[s] {
			seen[s] = true
			p.refs = append(p.refs, s)
		}
		px := d.newSignal(s.name+"_ssa"+strconv.Itoa(p.ctx)+"_"+strconv.Itoa(len(p.proxies)), s.width)
		px.ssa = &ssaProxy{ref: s, ctx: p.ctx}
		p.proxies = append(p.proxies, px)
		return px
	})
	if err := validateList(conds); err != nil {
		return nil, errors.Wrapf(err, "block %s", name)
	}
	if err := p.scanWrites(conds); err != nil {
		return nil, errors.Wrapf(err, "block %s", name)
	}
	p.walk()

	m, err := p.processList(conds, make(map[*Signal]*Signal))
	if err != nil {
		return nil, errors.Wrapf(err, "block %s", name)
	}
	var final []Conditional
	for _, ref := range p.refs {
		if v := m[ref]; v != nil {
			final = append(final, ref.Assign(v))
		}
	}
	for _, px := range p.proxies {
		if p.writes[px] || p.resolved[px] {
			continue
		}
		if err = p.resolveProxy(px, m); err != nil {
			return nil, errors.Wrapf(err, "block %s", name)
		}
	}
	if len(final) > 0 {
		conds = append(conds, NewGroup(final...))
	}
	return NewCombinational(d, name, conds...)
}

func (p *ssaPass) scanWrites(cs []Conditional) error {
	for _, c := range cs {
		if a, ok := c.(*Assign); ok {
			r := a.Receiver
			if r.ssa == nil {
				continue
			}
			if r.ssa.ctx != p.ctx || r.src != nil {
				return errors.Wrapf(ErrSSAResolved, "assign %s", r)
			}
			p.writes[r] = true
			continue
		}
		if err := p.scanWrites(c.Conditionals()); err != nil {
			return err
		}
	}
	return nil
}

// walk records, for every signal downstream of a read proxy, which proxies
// feed it.
func (p *ssaPass) walk() {
	for _, px := range p.proxies {
		if p.writes[px] {
			continue
		}
		visited := map[*Signal]bool{px: true}
		q := []*Signal{px}
		for len(q) > 0 {
			s := q[0]
			q = q[1:]
			p.upstream[s] = append(p.upstream[s], px)
			for _, f := range s.fanout {
				if !visited[f] {
					visited[f] = true
					q = append(q, f)
				}
			}
		}
	}
}

func (p *ssaPass) resolveProxy(px *Signal, m map[*Signal]*Signal) error {
	v := m[px.ssa.ref]
	if v == nil {
		return errors.Wrapf(ErrUninitializedSSA, "%s read before assignment", px.ssa.ref)
	}
	p.resolved[px] = true
	if v == px {
		return nil
	}
	return px.Connect(v)
}

// resolve connects the read proxies feeding s to the versions in m.
func (p *ssaPass) resolve(s *Signal, m map[*Signal]*Signal) error {
	for _, px := range p.upstream[s] {
		if p.resolved[px] {
			continue
		}
		if err := p.resolveProxy(px, m); err != nil {
			return err
		}
	}
	return nil
}

func copyMapping(m map[*Signal]*Signal) map[*Signal]*Signal {
	c := make(map[*Signal]*Signal, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

func (p *ssaPass) processList(cs []Conditional, m map[*Signal]*Signal) (map[*Signal]*Signal, error) {
	var err error
	for _, c := range cs {
		if m, err = p.process(c, m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (p *ssaPass) process(c Conditional, m map[*Signal]*Signal) (map[*Signal]*Signal, error) {
	switch c := c.(type) {
	case *Assign:
		if err := p.resolve(c.Driver, m); err != nil {
			return nil, err
		}
		if p.writes[c.Receiver] {
			m = copyMapping(m)
			m[c.Receiver.ssa.ref] = c.Receiver
		}
		return m, nil
	case *If:
		if !c.hasElse() {
			c.Else()
		}
		for _, b := range c.Branches {
			if b.Cond != nil {
				if err := p.resolve(b.Cond, m); err != nil {
					return nil, err
				}
			}
		}
		bodies := make([]*[]Conditional, len(c.Branches))
		for i := range c.Branches {
			bodies[i] = &c.Branches[i].Body
		}
		return p.branches(bodies, m)
	case *Case:
		if err := p.resolve(c.Expr, m); err != nil {
			return nil, err
		}
		for _, it := range c.Items {
			if err := p.resolve(it.Value, m); err != nil {
				return nil, err
			}
		}
		if !c.hasDefault {
			c.hasDefault, c.synthetic = true, true
		}
		bodies := make([]*[]Conditional, 0, len(c.Items)+1)
		for i := range c.Items {
			bodies = append(bodies, &c.Items[i].Body)
		}
		bodies = append(bodies, &c.def)
		return p.branches(bodies, m)
	case *Group:
		return p.processList(c.Body, m)
	}
	return nil, errors.Errorf("unknown conditional type %T", c)
}

// branches processes alternative bodies and merges the versions they produce
// with phi signals assigned at the end of every body.
func (p *ssaPass) branches(bodies []*[]Conditional, m map[*Signal]*Signal) (map[*Signal]*Signal, error) {
	maps := make([]map[*Signal]*Signal, len(bodies))
	for i, b := range bodies {
		bm, err := p.processList(*b, copyMapping(m))
		if err != nil {
			return nil, err
		}
		maps[i] = bm
	}
	out := copyMapping(m)
	phis := make([][]Conditional, len(bodies))
	for _, ref := range p.refs {
		diverge := false
		for _, bm := range maps {
			if bm[ref] != m[ref] {
				diverge = true
				break
			}
		}
		if !diverge {
			continue
		}
		phi := p.d.newSignal(ref.name+"_phi"+strconv.Itoa(p.nphi), ref.width)
		p.nphi++
		for i, bm := range maps {
			v := bm[ref]
			if v == nil {
				v = p.d.ConstUint(ref.width, 0)
			}
			phis[i] = append(phis[i], phi.Assign(v))
		}
		out[ref] = phi
	}
	for i, b := range bodies {
		if len(phis[i]) > 0 {
			*b = append(*b, NewGroup(phis[i]...))
		}
	}
	return out, nil
}
