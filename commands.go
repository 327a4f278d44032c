package esphome

import "github.com/LRuesink-WebArray/esphome-native-api/internal/api"

// SetSwitch sets a switch entity's on/off state. Commands are
// fire-and-forget at the protocol level; observable success is the
// subsequent state update delivered via OnState.
func (c *Client) SetSwitch(key uint32, state bool) error {
	return c.sendAuthenticated(api.TypeSwitchCommandRequest, (&api.SwitchCommandRequest{Key: key, State: state}).Marshal())
}

// LightCommand carries the optional fields a light command may set. Each
// Has* flag mirrors the protocol's "optional field present" convention:
// only fields whose flag is true are applied by the device.
type LightCommand struct {
	HasState bool
	State    bool

	HasBrightness bool
	Brightness    float32

	HasRGB           bool
	Red, Green, Blue float32

	HasColorTemperature bool
	ColorTemperature    float32

	HasTransitionLength bool
	TransitionLength    uint32
}

// SetLight issues a light command for the given entity key.
func (c *Client) SetLight(key uint32, cmd LightCommand) error {
	req := &api.LightCommandRequest{
		Key:                 key,
		HasState:            cmd.HasState,
		State:               cmd.State,
		HasBrightness:       cmd.HasBrightness,
		Brightness:          cmd.Brightness,
		HasRGB:              cmd.HasRGB,
		Red:                 cmd.Red,
		Green:               cmd.Green,
		Blue:                cmd.Blue,
		HasColorTemperature: cmd.HasColorTemperature,
		ColorTemperature:    cmd.ColorTemperature,
		HasTransitionLength: cmd.HasTransitionLength,
		TransitionLength:    cmd.TransitionLength,
	}
	return c.sendAuthenticated(api.TypeLightCommandRequest, req.Marshal())
}

// CoverCommand carries the optional fields a cover command may set.
type CoverCommand struct {
	HasPosition bool
	Position    float32

	HasTilt bool
	Tilt    float32

	Stop bool
}

// SetCover issues a cover command for the given entity key.
func (c *Client) SetCover(key uint32, cmd CoverCommand) error {
	req := &api.CoverCommandRequest{
		Key:         key,
		HasPosition: cmd.HasPosition,
		Position:    cmd.Position,
		HasTilt:     cmd.HasTilt,
		Tilt:        cmd.Tilt,
		Stop:        cmd.Stop,
	}
	return c.sendAuthenticated(api.TypeCoverCommandRequest, req.Marshal())
}

// FanCommand carries the optional fields a fan command may set.
type FanCommand struct {
	HasState bool
	State    bool

	HasSpeed bool
	Speed    uint32

	HasOscillating bool
	Oscillating    bool

	HasDirection bool
	Direction    uint32

	HasSpeedLevel bool
	SpeedLevel    uint32
}

// SetFan issues a fan command for the given entity key.
func (c *Client) SetFan(key uint32, cmd FanCommand) error {
	req := &api.FanCommandRequest{
		Key:            key,
		HasState:       cmd.HasState,
		State:          cmd.State,
		HasSpeed:       cmd.HasSpeed,
		Speed:          cmd.Speed,
		HasOscillating: cmd.HasOscillating,
		Oscillating:    cmd.Oscillating,
		HasDirection:   cmd.HasDirection,
		Direction:      cmd.Direction,
		HasSpeedLevel:  cmd.HasSpeedLevel,
		SpeedLevel:     cmd.SpeedLevel,
	}
	return c.sendAuthenticated(api.TypeFanCommandRequest, req.Marshal())
}
