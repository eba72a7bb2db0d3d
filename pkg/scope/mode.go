package scope

import "fmt"

// Mode selects what the instrument shows.
type Mode int

const (
	ModeScope Mode = iota
	ModeVoltage
	ModeFrequency
)

var modeNames = [...]string{
	ModeScope:     "scope",
	ModeVoltage:   "voltage",
	ModeFrequency: "frequency",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Next returns the mode the mode button switches to.
func (m Mode) Next() Mode {
	switch m {
	case ModeScope:
		return ModeVoltage
	case ModeVoltage:
		return ModeFrequency
	default:
		return ModeScope
	}
}

// ParseMode parses a mode name as used in the configuration file.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return Mode(m), nil
		}
	}
	return ModeScope, fmt.Errorf("unknown display mode %q", s)
}
