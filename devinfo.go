package esphome

import (
	"context"

	"github.com/LRuesink-WebArray/esphome-native-api/internal/api"
)

// DeviceInfo returns the device descriptor cached from the handshake's
// DeviceInfoResponse step. Returns ErrNotConnected if no successful
// handshake has completed yet.
func (c *Client) DeviceInfo() (*api.DeviceInfoResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handshakeInfo == nil {
		return nil, ErrNotConnected
	}
	return c.handshakeInfo.DeviceInfo, nil
}

// RefreshDeviceInfo re-requests DeviceInfoResponse and updates the cached
// copy, for callers that want current data without a full reconnect.
func (c *Client) RefreshDeviceInfo(ctx context.Context) (*api.DeviceInfoResponse, error) {
	if err := c.sendAuthenticated(api.TypeDeviceInfoRequest, (&api.DeviceInfoRequest{}).Marshal()); err != nil {
		return nil, err
	}
	payload, err := c.Await(ctx, api.TypeDeviceInfoResponse)
	if err != nil {
		return nil, err
	}
	msg, ok, err := api.Decode(api.TypeDeviceInfoResponse, payload)
	if err != nil || !ok {
		return nil, newError(KindInvalidMessage, "refresh-device-info", err)
	}
	info := msg.(*api.DeviceInfoResponse)

	c.mu.Lock()
	if c.handshakeInfo != nil {
		c.handshakeInfo.DeviceInfo = info
	}
	c.mu.Unlock()

	return info, nil
}
