package setup

import (
	"github.com/pkg/errors"

	"github.com/llehouerou/go-vorbis/internal/bits"
)

// Mapping is a type 0 channel mapping.
type Mapping struct {
	Submaps int // 1..16

	// ChMux assigns every channel to a submap; nil with a single submap.
	ChMux []int

	// Per submap floor and residue numbers.
	FloorSubmap   []int
	ResidueSubmap []int

	// Coupling steps as magnitude/angle channel pairs.
	CouplingMag []int
	CouplingAng []int
}

// Ported from: mapping0_unpack() in libvorbis lib/mapping0.c
func loadMapping(f *bits.FieldReader, channels, floors, residues int) (*Mapping, error) {
	t := f.Int(16)
	if f.Err != nil {
		return nil, f.Err
	}
	if t != 0 {
		return nil, errors.Wrapf(ErrMappingType, "type %d", t)
	}

	m := &Mapping{Submaps: 1}
	if f.Flag() {
		m.Submaps = f.Int(4) + 1
	}

	chbits := bits.Ilog(channels - 1)
	if f.Flag() {
		steps := f.Int(8) + 1
		m.CouplingMag = make([]int, steps)
		m.CouplingAng = make([]int, steps)
		for i := 0; i < steps; i++ {
			mag := f.Int(chbits)
			ang := f.Int(chbits)
			if f.Err != nil {
				return nil, f.Err
			}
			if mag == ang || mag >= channels || ang >= channels {
				return nil, errors.Wrapf(ErrMapping, "coupling step %d: %d/%d over %d channels", i, mag, ang, channels)
			}
			m.CouplingMag[i] = mag
			m.CouplingAng[i] = ang
		}
	}

	if reserved := f.Int(2); reserved != 0 && f.Err == nil {
		return nil, errors.Wrapf(ErrMapping, "reserved bits %d", reserved)
	}

	if m.Submaps > 1 {
		m.ChMux = make([]int, channels)
		for i := range m.ChMux {
			m.ChMux[i] = f.Int(4)
			if m.ChMux[i] >= m.Submaps && f.Err == nil {
				return nil, errors.Wrapf(ErrMapping, "channel %d in submap %d of %d", i, m.ChMux[i], m.Submaps)
			}
		}
	}

	m.FloorSubmap = make([]int, m.Submaps)
	m.ResidueSubmap = make([]int, m.Submaps)
	for i := 0; i < m.Submaps; i++ {
		f.Int(8) // unused time submap
		m.FloorSubmap[i] = f.Int(8)
		m.ResidueSubmap[i] = f.Int(8)
		if f.Err != nil {
			return nil, f.Err
		}
		if m.FloorSubmap[i] >= floors {
			return nil, errors.Wrapf(ErrMapping, "submap %d floor %d of %d", i, m.FloorSubmap[i], floors)
		}
		if m.ResidueSubmap[i] >= residues {
			return nil, errors.Wrapf(ErrMapping, "submap %d residue %d of %d", i, m.ResidueSubmap[i], residues)
		}
	}
	return m, f.Err
}

// Ported from: mapping0_pack() in libvorbis lib/mapping0.c
func (m *Mapping) pack(f *bits.FieldWriter, channels int) error {
	if m.Submaps < 1 || m.Submaps > 16 || len(m.FloorSubmap) != m.Submaps || len(m.ResidueSubmap) != m.Submaps {
		return errors.Wrapf(ErrMapping, "%d submaps", m.Submaps)
	}
	if m.Submaps > 1 && len(m.ChMux) != channels {
		return errors.Wrapf(ErrMapping, "channel mux for %d of %d channels", len(m.ChMux), channels)
	}
	if len(m.CouplingMag) != len(m.CouplingAng) || len(m.CouplingMag) > 256 {
		return errors.Wrapf(ErrMapping, "%d/%d coupling channels", len(m.CouplingMag), len(m.CouplingAng))
	}

	f.PutInt(0, 16)
	if m.Submaps > 1 {
		f.PutFlag(true)
		f.PutInt(m.Submaps-1, 4)
	} else {
		f.PutFlag(false)
	}

	if len(m.CouplingMag) > 0 {
		chbits := bits.Ilog(channels - 1)
		f.PutFlag(true)
		f.PutInt(len(m.CouplingMag)-1, 8)
		for i := range m.CouplingMag {
			f.PutInt(m.CouplingMag[i], chbits)
			f.PutInt(m.CouplingAng[i], chbits)
		}
	} else {
		f.PutFlag(false)
	}

	f.PutInt(0, 2)

	if m.Submaps > 1 {
		for _, c := range m.ChMux {
			f.PutInt(c, 4)
		}
	}
	for i := 0; i < m.Submaps; i++ {
		f.PutInt(0, 8)
		f.PutInt(m.FloorSubmap[i], 8)
		f.PutInt(m.ResidueSubmap[i], 8)
	}
	return nil
}

// Mode selects a block size and mapping for an audio packet.
type Mode struct {
	BlockFlag     bool
	WindowType    int
	TransformType int
	Mapping       int
}

func loadMode(f *bits.FieldReader, maps int) (*Mode, error) {
	m := &Mode{}
	m.BlockFlag = f.Flag()
	m.WindowType = f.Int(16)
	m.TransformType = f.Int(16)
	m.Mapping = f.Int(8)
	if f.Err != nil {
		return nil, f.Err
	}
	switch {
	case m.WindowType != 0:
		return nil, errors.Wrapf(ErrMode, "window type %d", m.WindowType)
	case m.TransformType != 0:
		return nil, errors.Wrapf(ErrMode, "transform type %d", m.TransformType)
	case m.Mapping >= maps:
		return nil, errors.Wrapf(ErrMode, "mapping %d of %d", m.Mapping, maps)
	}
	return m, nil
}

func (m *Mode) pack(f *bits.FieldWriter) {
	f.PutFlag(m.BlockFlag)
	f.PutInt(m.WindowType, 16)
	f.PutInt(m.TransformType, 16)
	f.PutInt(m.Mapping, 8)
}
