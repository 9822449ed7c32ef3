package hardware

import (
	"io"
	"testing"
	"time"
)

func TestParseFrame(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantErr bool
		check   func(t *testing.T, msg Message)
	}{
		{
			name: "valid frame",
			line: "0|512|1023|100|1|0|0|0|0|0|0|0|0|0|0|0|0|0|0|1",
			check: func(t *testing.T, msg Message) {
				if msg.Sliders != [4]int{0, 512, 1023, 100} {
					t.Fatalf("sliders = %v", msg.Sliders)
				}
				if msg.Buttons[0] != 1 || msg.Buttons[15] != 1 {
					t.Fatalf("buttons = %v", msg.Buttons)
				}
			},
		},
		{
			name: "extra trailing fields ignored",
			line: "0|0|0|0|0|0|0|0|0|0|0|0|0|0|0|0|0|0|0|0|42|43",
			check: func(t *testing.T, msg Message) {
				if msg.Sliders != [4]int{} {
					t.Fatalf("sliders = %v", msg.Sliders)
				}
			},
		},
		{
			name:    "too few fields",
			line:    "1|2|3",
			wantErr: true,
		},
		{
			name:    "non-numeric slider",
			line:    "a|0|0|0|0|0|0|0|0|0|0|0|0|0|0|0|0|0|0|0",
			wantErr: true,
		},
		{
			name:    "non-numeric button",
			line:    "0|0|0|0|x|0|0|0|0|0|0|0|0|0|0|0|0|0|0|0",
			wantErr: true,
		},
		{
			name:    "empty line",
			line:    "",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := parseFrame(tt.line)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseFrame(%q) succeeded, want error", tt.line)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseFrame(%q) = %v", tt.line, err)
			}
			tt.check(t, msg)
		})
	}
}

func TestSliderPercent(t *testing.T) {
	tests := []struct {
		raw  int
		want int
	}{
		{raw: 0, want: 0},
		{raw: 1023, want: 100},
		{raw: 512, want: 50},
		{raw: -5, want: 0},
		{raw: 2000, want: 100},
	}
	for _, tt := range tests {
		if got := SliderPercent(tt.raw); got != tt.want {
			t.Fatalf("SliderPercent(%d) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestReaderDeliversFramesAndStops(t *testing.T) {
	pr, pw := io.Pipe()
	restore := openPort
	openPort = func(portName string, baudrate int) (io.ReadCloser, error) {
		return pr, nil
	}
	defer func() { openPort = restore }()

	r, err := Open("COM3", 9600)
	if err != nil {
		t.Fatalf("Open = %v", err)
	}

	go func() {
		pw.Write([]byte("garbage\n"))
		pw.Write([]byte("10|20|30|40|0|0|0|0|0|0|0|0|0|0|0|0|0|0|0|0\n"))
	}()

	select {
	case msg := <-r.Messages():
		if msg.Sliders != [4]int{10, 20, 30, 40} {
			t.Fatalf("sliders = %v", msg.Sliders)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no frame delivered")
	}

	pw.Close()
	r.Stop()

	if _, open := <-r.Messages(); open {
		// Drain any buffered frame; the channel must eventually close.
		for range r.Messages() {
		}
	}
}

func TestReaderStopUnblocksReadLoop(t *testing.T) {
	pr, _ := io.Pipe()
	restore := openPort
	openPort = func(portName string, baudrate int) (io.ReadCloser, error) {
		return pr, nil
	}
	defer func() { openPort = restore }()

	r, err := Open("COM3", 9600)
	if err != nil {
		t.Fatalf("Open = %v", err)
	}

	done := make(chan struct{})
	go func() {
		r.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not unblock the read loop")
	}
}
