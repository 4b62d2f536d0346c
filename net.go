// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

import (
	"github.com/db47h/rtlsim/logic"
	"github.com/pkg/errors"
)

type net struct {
	drivers []*Signal
}

// Net returns a tri-state net. Connecting a net to a source adds the source
// to the net's drivers. The value of the net is the combination of the values
// of all its drivers: floating drivers are ignored and conflicting drivers
// yield X.
//
func (d *Design) Net(name string, width int) *Signal {
	s := d.Signal(name, width)
	s.kind = kindNet
	s.net = new(net)
	return s
}

// Drivers returns the drivers of a tri-state net.
//
func (s *Signal) Drivers() []*Signal {
	if s.net == nil {
		return nil
	}
	return s.net.drivers
}

func (n *net) addDriver(s, src *Signal) (err error) {
	if s.width != src.width {
		return errors.Wrapf(ErrWidthMismatch, "connect net %s to %s", s, src)
	}
	if src == s {
		return errors.Wrapf(ErrSelfConnection, "connect net %s", s)
	}
	for _, drv := range n.drivers {
		if drv == src {
			return nil
		}
	}
	n.drivers = append(n.drivers, src)
	src.fanout = append(src.fanout, s)
	src.Glitch(func(Change) { n.update(s) })
	defer catch(&err)
	n.update(s)
	return nil
}

func (n *net) update(s *Signal) {
	v := logic.Z(s.width)
	for _, drv := range n.drivers {
		v = v.Combine(drv.Value())
	}
	s.d.put(s.id, v)
}
