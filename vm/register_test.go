package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/lsvm/strip"
)

func TestRegisterKind(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		reg  Register
		name string
		kind RegisterKind
	}){
		{REG_RCS, "rcs", KIND_BOOL},
		{REG_RCR, "rcr", KIND_NARROW},
		{REG_RCG, "rcg", KIND_NARROW},
		{REG_RCB, "rcb", KIND_NARROW},
		{REG_RGD, "rgd", KIND_WIDE},
		{REG_RGP, "rgp", KIND_WIDE},
		{REG_RGI, "rgi", KIND_WIDE},
		{REG_RGO, "rgo", KIND_WIDE},
		{REG_RGL, "rgl", KIND_WIDE},
	}

	regs := &Registers{}
	for _, entry := range table {
		kind, ok := entry.reg.Kind()
		assert.True(ok, entry.name)
		assert.Equal(entry.kind, kind, entry.name)
		assert.Equal(entry.name, entry.reg.String())
		assert.Equal(map[RegisterKind]string{KIND_BOOL: "bool", KIND_NARROW: "narrow", KIND_WIDE: "wide"}[entry.kind], kind.String())

		reg, ok := RegisterByName(entry.name)
		assert.True(ok, entry.name)
		assert.Equal(entry.reg, reg)

		// Exactly one accessor matches.
		_, narrow := regs.Narrow(entry.reg)
		_, wide := regs.Wide(entry.reg)
		assert.Equal(entry.kind == KIND_NARROW, narrow, entry.name)
		assert.Equal(entry.kind == KIND_WIDE, wide, entry.name)
	}

	for _, reg := range []Register{0x00, 0x0a, 0xff} {
		_, ok := reg.Kind()
		assert.False(ok)
		_, err := regs.Lookup(reg)
		assert.Equal(ErrRegister(reg), err)
		_, ok = regs.Narrow(reg)
		assert.False(ok)
		_, ok = regs.Wide(reg)
		assert.False(ok)
	}

	_, ok := RegisterByName("r0")
	assert.False(ok)
}

func TestRegisterRef(t *testing.T) {
	assert := assert.New(t)

	regs := &Registers{}

	rcr, err := regs.Lookup(REG_RCR)
	assert.NoError(err)
	rcr.Set(0x1234)
	assert.Equal(uint32(0x34), rcr.Get())
	assert.Equal(uint8(0x34), regs.Channel[0])

	rgd, err := regs.Lookup(REG_RGD)
	assert.NoError(err)
	rgd.Set(0xdeadbeef)
	assert.Equal(uint32(0xdeadbeef), rgd.Get())
	assert.Equal(uint32(0xdeadbeef), regs.General[0])

	rcs, err := regs.Lookup(REG_RCS)
	assert.NoError(err)
	assert.Equal(uint32(0), rcs.Get())
	rcs.Set(0x100)
	assert.True(regs.State())
	assert.Equal(uint32(1), rcs.Get())
	rcs.Set(0)
	assert.False(regs.State())
}

func TestRegisterCopy(t *testing.T) {
	assert := assert.New(t)

	values := []uint32{0, 1, 0x7f, 0xff, 0x100, 0x1ff, 0xffffffff}

	for src := REG_RCS; src <= REG_RGL; src++ {
		for dst := REG_RCS; dst <= REG_RGL; dst++ {
			for _, value := range values {
				regs := &Registers{}
				from, _ := regs.Lookup(src)
				to, _ := regs.Lookup(dst)

				from.Set(value)
				before := from.Get()
				to.Set(before)

				switch to.Kind {
				case KIND_WIDE:
					assert.Equal(before, to.Get(), "%v -> %v", src, dst)
				case KIND_NARROW:
					assert.Equal(before&0xff, to.Get(), "%v -> %v", src, dst)
				case KIND_BOOL:
					expect := uint32(0)
					if before != 0 {
						expect = 1
					}
					assert.Equal(expect, to.Get(), "%v -> %v", src, dst)
				}
			}
		}
	}
}

func TestRegisterState(t *testing.T) {
	assert := assert.New(t)

	bridge := &recordBridge{}
	regs := &Registers{Bridge: bridge}

	regs.SetState(true)
	regs.SetState(false)

	ref, _ := regs.Lookup(REG_RCS)
	ref.Set(5)

	// Narrow and wide writes have no hardware effect.
	ref, _ = regs.Lookup(REG_RCG)
	ref.Set(5)
	ref, _ = regs.Lookup(REG_RGO)
	ref.Set(5)

	assert.Equal([]strip.State{strip.STATE_ON, strip.STATE_OFF, strip.STATE_ON}, bridge.States)
	assert.Empty(bridge.Colors)

	// Bridge failures never reach the caller.
	bridge.Fail = true
	regs.SetState(false)
	assert.False(regs.State())

	regs.Reset()
	assert.Equal([3]uint8{}, regs.Channel)
	assert.Equal([5]uint32{}, regs.General)
	assert.Len(bridge.States, 4)
}

func TestRegistersString(t *testing.T) {
	assert := assert.New(t)

	regs := &Registers{}
	regs.Channel[0] = 0xab
	regs.General[4] = 0x12345678

	text := regs.String()
	assert.Contains(text, "  rcs: off\n")
	assert.Contains(text, "  rcr: AB\n")
	assert.Contains(text, "  rgl: 1234_5678\n")
}
