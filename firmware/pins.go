//go:build rp2040

package main

import (
	"machine"
	"time"
)

const (
	// Input: LittleBits signal through the 15k/27k divider
	PIN_SIGNAL = machine.ADC0
	PIN_LED    = machine.LED

	// ADC readings are 16 bit scaled; the engine works on 10 bits
	ADC_SHIFT = 6

	// Status print interval
	REPORT_INTERVAL = 500 * time.Millisecond
)
