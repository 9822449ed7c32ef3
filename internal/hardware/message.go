// Package hardware reads the physical panel over a serial port. The
// panel emits one line per state change: 20 pipe-separated integers,
// four raw slider values (0-1023) followed by sixteen button states.
package hardware

import (
	"fmt"
	"strconv"
	"strings"
)

// SliderCount and ButtonCount describe the fixed panel layout.
const (
	SliderCount = 4
	ButtonCount = 16

	// SliderMaxRaw is the panel ADC ceiling.
	SliderMaxRaw = 1023
)

// Message is one parsed panel frame.
type Message struct {
	Sliders [SliderCount]int
	Buttons [ButtonCount]int
}

// parseFrame parses a raw serial line. Frames with too few fields or
// non-numeric values are rejected; extra trailing fields are ignored
// for forward compatibility with firmware revisions.
func parseFrame(line string) (Message, error) {
	parts := strings.Split(line, "|")
	if len(parts) < SliderCount+ButtonCount {
		return Message{}, fmt.Errorf("frame has %d fields, want at least %d", len(parts), SliderCount+ButtonCount)
	}

	var msg Message
	for i := 0; i < SliderCount; i++ {
		value, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return Message{}, fmt.Errorf("slider field %d: %w", i, err)
		}
		msg.Sliders[i] = value
	}
	for i := 0; i < ButtonCount; i++ {
		value, err := strconv.Atoi(strings.TrimSpace(parts[SliderCount+i]))
		if err != nil {
			return Message{}, fmt.Errorf("button field %d: %w", i, err)
		}
		msg.Buttons[i] = value
	}
	return msg, nil
}

// SliderPercent converts a raw slider value to a 0-100 percentage.
func SliderPercent(raw int) int {
	if raw < 0 {
		return 0
	}
	if raw > SliderMaxRaw {
		return 100
	}
	return (raw*100 + SliderMaxRaw/2) / SliderMaxRaw
}
