// Package settings defines the persisted panel configuration: slider
// and button bindings, the serial connection block, and the physical
// board layout used by external editors.
package settings

import "fmt"

// Physical board geometry in millimeters. These mirror the shipped
// hardware panel; binding defaults place controls at their real
// positions so layout editors render correctly out of the box.
const (
	BoardWidthMM    = 656.641
	BoardHeightMM   = 180.0
	ButtonWidthMM   = 14.07
	ButtonHeightMM  = 14.07
	ButtonSpacingMM = 10.6
	ButtonRow1TopMM = 46.0
	SliderTopMM     = 56.981
	SliderHeightMM  = 65.0
	SliderWidthMM   = 32.0

	buttonBankWidthMM = ButtonWidthMM*8 + ButtonSpacingMM*7
)

const (
	SliderCount = 4
	ButtonCount = 16
)

// SliderBinding maps one physical slider to a volume action.
// ActionType is "system_volume" or "app_volume"; Target names the
// process hint for app_volume.
type SliderBinding struct {
	ID         string  `yaml:"id"`
	ActionType string  `yaml:"action_type"`
	Target     string  `yaml:"target,omitempty"`
	Label      string  `yaml:"label,omitempty"`
	XMM        float64 `yaml:"x_mm"`
	YMM        float64 `yaml:"y_mm"`
	WidthMM    float64 `yaml:"width_mm"`
	HeightMM   float64 `yaml:"height_mm"`
}

// ButtonBinding maps one physical button to an action. ActionType is
// one of "noop", "open_app", "run_script", "send_keystroke".
type ButtonBinding struct {
	ID         string   `yaml:"id"`
	ActionType string   `yaml:"action_type"`
	Target     string   `yaml:"target,omitempty"`
	Arguments  []string `yaml:"arguments,omitempty"`
	Label      string   `yaml:"label,omitempty"`
	XMM        float64  `yaml:"x_mm"`
	YMM        float64  `yaml:"y_mm"`
	WidthMM    float64  `yaml:"width_mm"`
	HeightMM   float64  `yaml:"height_mm"`
}

// Serial holds the hardware panel connection parameters.
type Serial struct {
	Port     string `yaml:"port"`
	Baudrate int    `yaml:"baudrate"`
	Enabled  bool   `yaml:"enabled"`
}

// Layout holds the board canvas dimensions.
type Layout struct {
	BoardWidthMM  float64 `yaml:"board_width_mm"`
	BoardHeightMM float64 `yaml:"board_height_mm"`
}

// Settings is the whole persisted document.
type Settings struct {
	Sliders []SliderBinding `yaml:"sliders"`
	Buttons []ButtonBinding `yaml:"buttons"`
	Serial  Serial          `yaml:"serial"`
	Layout  Layout          `yaml:"layout"`
}

// Default returns settings for a factory panel: four system-volume
// sliders and two eight-button banks, all buttons unbound.
func Default() *Settings {
	return &Settings{
		Sliders: defaultSliders(),
		Buttons: defaultButtons(),
		Serial:  Serial{Port: "COM3", Baudrate: 9600},
		Layout:  Layout{BoardWidthMM: BoardWidthMM, BoardHeightMM: BoardHeightMM},
	}
}

func defaultSliders() []SliderBinding {
	positions := []float64{165.344, 205.852, 447.852, 489.296}
	sliders := make([]SliderBinding, 0, len(positions))
	for i, x := range positions {
		sliders = append(sliders, SliderBinding{
			ID:         fmt.Sprintf("slider%d", i+1),
			ActionType: "system_volume",
			Label:      fmt.Sprintf("Slider %d", i+1),
			XMM:        x,
			YMM:        SliderTopMM,
			WidthMM:    SliderWidthMM,
			HeightMM:   SliderHeightMM,
		})
	}
	return sliders
}

// rightBankOffsetMM returns the left offset of the right-hand button
// bank for a given board width.
func rightBankOffsetMM(boardWidth float64) float64 {
	offset := boardWidth - buttonBankWidthMM
	if offset < 0 {
		return 0
	}
	return offset
}

func defaultButtons() []ButtonBinding {
	banks := []struct {
		baseX, baseY float64
	}{
		{baseX: 0, baseY: ButtonRow1TopMM},
		{baseX: rightBankOffsetMM(BoardWidthMM), baseY: ButtonRow1TopMM + ButtonHeightMM + ButtonSpacingMM},
	}
	buttons := make([]ButtonBinding, 0, ButtonCount)
	for row, bank := range banks {
		for col := 0; col < 8; col++ {
			index := row*8 + col
			buttons = append(buttons, ButtonBinding{
				ID:         fmt.Sprintf("btn%d", index),
				ActionType: "noop",
				Label:      fmt.Sprintf("Button %02d", index),
				XMM:        bank.baseX + float64(col)*(ButtonWidthMM+ButtonSpacingMM),
				YMM:        bank.baseY,
				WidthMM:    ButtonWidthMM,
				HeightMM:   ButtonHeightMM,
			})
		}
	}
	return buttons
}

// Slider returns the binding for slider index, extending the list with
// an unbound default when an older document has fewer entries.
func (s *Settings) Slider(index int) SliderBinding {
	for index >= len(s.Sliders) {
		s.Sliders = append(s.Sliders, SliderBinding{
			ID:         fmt.Sprintf("slider%d", len(s.Sliders)+1),
			ActionType: "system_volume",
			YMM:        SliderTopMM,
			WidthMM:    SliderWidthMM,
			HeightMM:   SliderHeightMM,
		})
	}
	return s.Sliders[index]
}

// Button returns the binding for button index, extending the list with
// a noop default when an older document has fewer entries.
func (s *Settings) Button(index int) ButtonBinding {
	for index >= len(s.Buttons) {
		s.Buttons = append(s.Buttons, ButtonBinding{
			ID:         fmt.Sprintf("btn%d", len(s.Buttons)),
			ActionType: "noop",
			YMM:        ButtonRow1TopMM,
			WidthMM:    ButtonWidthMM,
			HeightMM:   ButtonHeightMM,
		})
	}
	return s.Buttons[index]
}
