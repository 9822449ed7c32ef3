// Package panel coordinates settings, hardware input, and action
// dispatch. It owns the in-memory panel state: current slider
// percentages, button states, and the hardware/test mode.
package panel

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/perhorst1234/dashboard-app/internal/audio"
	"github.com/perhorst1234/dashboard-app/internal/dispatch"
	"github.com/perhorst1234/dashboard-app/internal/hardware"
	"github.com/perhorst1234/dashboard-app/internal/keyseq"
	"github.com/perhorst1234/dashboard-app/internal/settings"
)

// Modes the panel can run in. Test mode takes slider/button input from
// the control surface only; hardware mode also consumes serial frames.
const (
	ModeHardware = "hardware"
	ModeTest     = "test"
)

// Panel is the live state manager for one dashboard.
type Panel struct {
	dispatcher *dispatch.Dispatcher

	mu              sync.Mutex
	settings        *settings.Settings
	mode            string
	sliderPercents  [settings.SliderCount]int
	buttonStates    [settings.ButtonCount]int
	previousButtons [settings.ButtonCount]int
}

// New returns a Panel in test mode.
func New(s *settings.Settings, d *dispatch.Dispatcher) *Panel {
	return &Panel{
		dispatcher: d,
		settings:   s,
		mode:       ModeTest,
	}
}

// Mode returns the current mode.
func (p *Panel) Mode() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode
}

// SetMode switches between ModeHardware and ModeTest.
func (p *Panel) SetMode(mode string) error {
	if mode != ModeHardware && mode != ModeTest {
		return fmt.Errorf("mode must be %q or %q", ModeHardware, ModeTest)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = mode
	return nil
}

// ApplySettings swaps in a new settings document (live reload).
func (p *Panel) ApplySettings(s *settings.Settings) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.settings = s
	slog.Info("[panel] settings applied", "sliders", len(s.Sliders), "buttons", len(s.Buttons))
}

// SetSliderPercent records a slider position (from the control surface)
// and fires its bound action.
func (p *Panel) SetSliderPercent(index, percent int) error {
	if index < 0 || index >= settings.SliderCount {
		return fmt.Errorf("slider index %d out of range", index)
	}
	percent = audio.ClampPercent(percent)

	p.mu.Lock()
	p.sliderPercents[index] = percent
	binding := p.settings.Slider(index)
	p.mu.Unlock()

	p.dispatcher.PerformSlider(binding.ActionType, binding.Target, percent)
	return nil
}

// SliderPercent returns the last known position of slider index.
func (p *Panel) SliderPercent(index int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if index < 0 || index >= settings.SliderCount {
		return 0
	}
	return p.sliderPercents[index]
}

// TriggerButton fires the action bound to button index.
func (p *Panel) TriggerButton(index int) error {
	if index < 0 || index >= settings.ButtonCount {
		return fmt.Errorf("button index %d out of range", index)
	}

	p.mu.Lock()
	binding := p.settings.Button(index)
	p.buttonStates[index] = 1
	p.previousButtons[index] = 1
	p.mu.Unlock()

	p.dispatcher.PerformButton(binding.ActionType, binding.Target, binding.Arguments)
	return nil
}

// ReleaseButton clears the pressed state of button index.
func (p *Panel) ReleaseButton(index int) error {
	if index < 0 || index >= settings.ButtonCount {
		return fmt.Errorf("button index %d out of range", index)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.buttonStates[index] = 0
	p.previousButtons[index] = 0
	return nil
}

// HandleMessage applies one hardware frame: slider moves fire their
// bound actions when the percentage actually changes, and buttons fire
// on rising edges only.
func (p *Panel) HandleMessage(msg hardware.Message) {
	type firing struct {
		binding settings.SliderBinding
		percent int
	}
	var sliderFirings []firing
	var buttonFirings []settings.ButtonBinding

	p.mu.Lock()
	for i, raw := range msg.Sliders {
		percent := hardware.SliderPercent(raw)
		if percent == p.sliderPercents[i] {
			continue
		}
		p.sliderPercents[i] = percent
		sliderFirings = append(sliderFirings, firing{binding: p.settings.Slider(i), percent: percent})
	}
	for i, state := range msg.Buttons {
		previous := p.previousButtons[i]
		p.buttonStates[i] = state
		p.previousButtons[i] = state
		if state != 0 && previous == 0 {
			buttonFirings = append(buttonFirings, p.settings.Button(i))
		}
	}
	p.mu.Unlock()

	for _, f := range sliderFirings {
		p.dispatcher.PerformSlider(f.binding.ActionType, f.binding.Target, f.percent)
	}
	for _, binding := range buttonFirings {
		p.dispatcher.PerformButton(binding.ActionType, binding.Target, binding.Arguments)
	}
}

// Run consumes hardware frames until the channel closes.
func (p *Panel) Run(messages <-chan hardware.Message) {
	for msg := range messages {
		p.HandleMessage(msg)
	}
	slog.Info("[panel] hardware stream ended")
}

// SliderDisplayName returns a human-readable name for slider index.
func (p *Panel) SliderDisplayName(index int) string {
	p.mu.Lock()
	binding := p.settings.Slider(index)
	p.mu.Unlock()

	switch {
	case binding.Label != "":
		return binding.Label
	case binding.ActionType == dispatch.ActionAppVolume && binding.Target != "":
		return "App Volume: " + binding.Target
	case binding.ActionType == dispatch.ActionSystemVolume:
		return "System Volume"
	default:
		return fmt.Sprintf("Slider %d", index+1)
	}
}

// ButtonDisplayName returns a human-readable name for button index.
func (p *Panel) ButtonDisplayName(index int) string {
	p.mu.Lock()
	binding := p.settings.Button(index)
	p.mu.Unlock()

	switch {
	case binding.Label != "":
		return binding.Label
	case binding.ActionType == dispatch.ActionOpenApp && binding.Target != "":
		return "Launch " + binding.Target
	case binding.ActionType == dispatch.ActionRunScript && binding.Target != "":
		return "Run " + binding.Target
	case binding.ActionType == dispatch.ActionKeystroke && binding.Target != "":
		if display := keyseq.Format(keyseq.Split(binding.Target)); display != "" {
			return "Keys: " + display
		}
		return "Send Keys"
	default:
		return fmt.Sprintf("Button %02d", index)
	}
}
