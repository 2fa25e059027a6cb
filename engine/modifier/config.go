package modifier

import (
	"time"

	"github.com/npillmayer/lexilens/core"
	"github.com/npillmayer/lexilens/core/parameters"
	"github.com/npillmayer/lexilens/core/percent"
	"github.com/npillmayer/schuko"
)

// Config is the configuration of an enable-cycle. Zero fields are filled
// from the engine's registers when the engine is enabled.
type Config struct {
	Separator      string          // syllable separator
	BoldPercent    percent.Percent // bionic bold-prefix percentage, 30…70
	FrameBudget    time.Duration   // time budget of a processing step
	LongWord       int             // bionic: words longer than this are capped
	LongWordCap    percent.Percent // bionic: percentage for long words
	MinSplitLength int             // syllable: minimum length of words to split
}

// ConfigFromRegisters reads a complete configuration from regs.
func ConfigFromRegisters(regs *parameters.Registers) Config {
	return Config{
		Separator:      regs.S(parameters.P_SEPARATOR),
		BoldPercent:    regs.P(parameters.P_BOLDPERCENT),
		FrameBudget:    regs.D(parameters.P_FRAMEBUDGET),
		LongWord:       regs.N(parameters.P_LONGWORD),
		LongWordCap:    regs.P(parameters.P_LONGWORDCAP),
		MinSplitLength: regs.N(parameters.P_MINSPLITLENGTH),
	}
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return ConfigFromRegisters(parameters.NewRegisters())
}

// ConfigFrom creates a configuration from the defaults, overwritten by the
// settings in conf.
func ConfigFrom(conf schuko.Configuration) (Config, error) {
	regs := parameters.NewRegisters()
	if err := regs.LoadConfiguration(conf); err != nil {
		return Config{}, err
	}
	return ConfigFromRegisters(regs), nil
}

// Validate checks the non-zero fields of a configuration.
func (c Config) Validate() error {
	if c.BoldPercent != 0 && !c.BoldPercent.Within(parameters.MinBoldPercent, parameters.MaxBoldPercent) {
		return core.Error(core.EINVALID, "bold percentage %v outside %v…%v",
			c.BoldPercent, parameters.MinBoldPercent, parameters.MaxBoldPercent)
	}
	if c.FrameBudget < 0 {
		return core.Error(core.EINVALID, "negative frame budget %v", c.FrameBudget)
	}
	if c.LongWord < 0 || c.MinSplitLength < 0 {
		return core.Error(core.EINVALID, "word lengths must not be negative")
	}
	if c.LongWordCap > 100 {
		return core.Error(core.EINVALID, "long-word cap %v exceeds 100%%", c.LongWordCap)
	}
	return nil
}

// push sets the non-zero fields of c in the innermost group of regs.
func (c Config) push(regs *parameters.Registers) {
	if c.Separator != "" {
		regs.Push(parameters.P_SEPARATOR, c.Separator)
	}
	if c.BoldPercent != 0 {
		regs.Push(parameters.P_BOLDPERCENT, int(c.BoldPercent))
	}
	if c.FrameBudget != 0 {
		regs.Push(parameters.P_FRAMEBUDGET, c.FrameBudget)
	}
	if c.LongWord != 0 {
		regs.Push(parameters.P_LONGWORD, c.LongWord)
	}
	if c.LongWordCap != 0 {
		regs.Push(parameters.P_LONGWORDCAP, int(c.LongWordCap))
	}
	if c.MinSplitLength != 0 {
		regs.Push(parameters.P_MINSPLITLENGTH, c.MinSplitLength)
	}
}
