package models

import (
	"time"

	"github.com/colorix/api/colors"
)

// Slot is one color picker of the mixer.
type Slot struct {
	Color colors.Color `json:"hex"`
	Name  *string      `json:"name,omitempty"`
}

// DefaultSlots are the picker colors a new session starts with.
var DefaultSlots = [colors.MaxMixColors]Slot{
	{Color: colors.New(0xff, 0x6b, 0x6b)},
	{Color: colors.New(0x4d, 0xab, 0xf7)},
	{Color: colors.New(0xff, 0xd1, 0x66)},
}

// Session is everything one visitor works with: the current color card,
// the mixer and the saved palette. It lives only in memory.
type Session struct {
	ID        string
	Current   *ColorCard
	Mode      int
	Slots     [colors.MaxMixColors]Slot
	LastMix   *MixResult
	MixName   *string
	Palette   Palette
	CreatedAt time.Time
	LastSeen  time.Time
}

func NewSession(id string, now time.Time) Session {
	return Session{
		ID:        id,
		Mode:      colors.MinMixColors,
		Slots:     DefaultSlots,
		Palette:   Palette{},
		CreatedAt: now,
		LastSeen:  now,
	}
}

// ActiveSlots returns the first Mode slots as a mix request.
func (s Session) ActiveSlots() MixRequest {
	inputs := make([]NamedColor, 0, s.Mode)
	for _, slot := range s.Slots[:s.Mode] {
		inputs = append(inputs, NamedColor{Color: slot.Color, Name: slot.Name})
	}
	return MixRequest{Inputs: inputs}
}

// MixerState is the client view of the mixer.
type MixerState struct {
	Mode    int        `json:"mode"`
	Slots   []Slot     `json:"slots"`
	LastMix *MixResult `json:"lastMix,omitempty"`
	MixName *string    `json:"mixName,omitempty"`
}

func (s Session) Mixer() MixerState {
	slots := make([]Slot, s.Mode)
	copy(slots, s.Slots[:s.Mode])
	return MixerState{
		Mode:    s.Mode,
		Slots:   slots,
		LastMix: s.LastMix,
		MixName: s.MixName,
	}
}
