/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parameters

import (
	"strconv"
	"strings"
	"time"

	"github.com/npillmayer/lexilens/core"
	"github.com/npillmayer/lexilens/core/percent"
	"github.com/npillmayer/schuko"
)

// ModifierParameter is a key into the modifier registers.
type ModifierParameter int

//go:generate stringer -type=ModifierParameter
const (
	none ModifierParameter = iota
	P_BOLDPERCENT
	P_LONGWORD
	P_LONGWORDCAP
	P_SEPARATOR
	P_MINSPLITLENGTH
	P_FRAMEBUDGET
	P_OWNUI
	P_STOPPER
)

// Bounds for the bold-percentage of bionic reading.
const (
	MinBoldPercent = percent.Percent(30)
	MaxBoldPercent = percent.Percent(70)
)

type parameterGroup struct {
	params map[ModifierParameter]interface{}
	level  int
	next   *parameterGroup
}

// Registers hold the parameters of the text modifiers. Base values are
// initialized with defaults and may be overwritten from a configuration.
// Groups layer temporary values on top of the base values; the engine opens
// a group for every enable-cycle.
type Registers struct {
	base       [P_STOPPER]interface{}
	groups     *parameterGroup
	grouplevel int
}

// NewRegisters creates a set of registers initialized with defaults.
func NewRegisters() *Registers {
	regs := &Registers{}
	initParameters(&regs.base)
	return regs
}

func initParameters(p *[P_STOPPER]interface{}) {
	p[P_BOLDPERCENT] = 50                            // percentage (int)
	p[P_LONGWORD] = 15                               // # of runes
	p[P_LONGWORDCAP] = 40                            // percentage (int)
	p[P_SEPARATOR] = "·"                             // a string
	p[P_MINSPLITLENGTH] = 4                          // # of runes
	p[P_FRAMEBUDGET] = 12 * time.Millisecond         // duration
	p[P_OWNUI] = "[data-lexilens], .lexilens-widget" // CSS selector
}

// Begingroup opens a new group level.
func (regs *Registers) Begingroup() {
	regs.grouplevel++
}

// Endgroup drops all values pushed since the matching Begingroup.
func (regs *Registers) Endgroup() {
	if regs.grouplevel == 0 {
		return
	}
	if regs.groups != nil && regs.groups.level == regs.grouplevel {
		regs.groups = regs.groups.next
	}
	regs.grouplevel--
}

// Level returns the current group level, 0 being the base level.
func (regs *Registers) Level() int {
	return regs.grouplevel
}

// Push sets a value in the innermost group, or in the base registers if no
// group is open.
func (regs *Registers) Push(key ModifierParameter, value interface{}) {
	if key <= none || key >= P_STOPPER {
		panic("parameter key outside range of modifier parameters")
	}
	if regs.grouplevel == 0 {
		regs.base[key] = value
		return
	}
	if regs.groups == nil || regs.groups.level < regs.grouplevel {
		regs.groups = &parameterGroup{
			params: make(map[ModifierParameter]interface{}),
			level:  regs.grouplevel,
			next:   regs.groups,
		}
	}
	regs.groups.params[key] = value
}

// Get returns the innermost value for key.
func (regs *Registers) Get(key ModifierParameter) interface{} {
	if key <= none || key >= P_STOPPER {
		panic("parameter key outside range of modifier parameters")
	}
	for g := regs.groups; g != nil; g = g.next {
		if value, ok := g.params[key]; ok {
			return value
		}
	}
	return regs.base[key]
}

func (regs *Registers) S(key ModifierParameter) string {
	return regs.Get(key).(string)
}

func (regs *Registers) N(key ModifierParameter) int {
	return regs.Get(key).(int)
}

func (regs *Registers) D(key ModifierParameter) time.Duration {
	return regs.Get(key).(time.Duration)
}

// P returns a percentage parameter.
func (regs *Registers) P(key ModifierParameter) percent.Percent {
	return percent.FromInt(regs.N(key))
}

// --- Configuration ---------------------------------------------------------

// Configuration keys read by LoadConfiguration.
const (
	KeyBoldPercent = "bionic.percent"
	KeyLongWord    = "bionic.longword"
	KeySeparator   = "syllable.separator"
	KeyMinSplit    = "syllable.minlength"
	KeyFrameBudget = "engine.framebudget"
	KeyOwnUI       = "engine.ownui"
)

// LoadConfiguration overwrites base values with settings from conf.
// Unset keys keep their defaults.
func (regs *Registers) LoadConfiguration(conf schuko.Configuration) error {
	if conf == nil {
		return nil
	}
	if s := strings.TrimSpace(conf.GetString(KeyBoldPercent)); s != "" {
		p, err := percent.FromString(s)
		if err != nil {
			return core.WrapError(err, core.EINVALID, "configuration %s=%q", KeyBoldPercent, s)
		}
		if !p.Within(MinBoldPercent, MaxBoldPercent) {
			return core.Error(core.EINVALID, "bold percentage %v outside %v…%v", p, MinBoldPercent, MaxBoldPercent)
		}
		regs.base[P_BOLDPERCENT] = int(p)
	}
	for key, param := range map[string]ModifierParameter{KeyLongWord: P_LONGWORD, KeyMinSplit: P_MINSPLITLENGTH} {
		if s := strings.TrimSpace(conf.GetString(key)); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 {
				return core.WrapError(err, core.EINVALID, "configuration %s=%q", key, s)
			}
			regs.base[param] = n
		}
	}
	if s := conf.GetString(KeySeparator); s != "" {
		regs.base[P_SEPARATOR] = s
	}
	if s := strings.TrimSpace(conf.GetString(KeyFrameBudget)); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d <= 0 {
			return core.WrapError(err, core.EINVALID, "configuration %s=%q", KeyFrameBudget, s)
		}
		regs.base[P_FRAMEBUDGET] = d
	}
	if s := strings.TrimSpace(conf.GetString(KeyOwnUI)); s != "" {
		regs.base[P_OWNUI] = s
	}
	return nil
}
