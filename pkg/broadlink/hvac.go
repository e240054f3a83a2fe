package broadlink

// HvacDevice is the facade for an air conditioner controller.
type HvacDevice struct {
	info DeviceInfo
}

// Info returns this device's identifying and session state.
func (h *HvacDevice) Info() DeviceInfo { return h.info }

func (h *HvacDevice) device() *Device {
	return &Device{k: kindHvac, hvac: h}
}

func (h *HvacDevice) sendHvacCommand(cmd hvacDataCommand, payload []byte) ([]byte, error) {
	packed := newHvacDataMessage(cmd).packWithPayload(payload)
	reply, err := h.device().sendRaw(hvacDataPacketType, packed)
	if err != nil {
		return nil, err
	}
	return unpackHvacDataPayload(reply)
}

// GetState retrieves the air conditioner's currently configured state.
func (h *HvacDevice) GetState() (*AirCondState, error) {
	payload, err := h.sendHvacCommand(hvacCmdGetState, nil)
	if err != nil {
		return nil, err
	}
	return unpackAirCondState(payload)
}

// SetState pushes a new configuration to the air conditioner. The caller is
// responsible for setting state.TargetTempInt via SetTargetTemp first.
func (h *HvacDevice) SetState(state *AirCondState) error {
	_, err := h.sendHvacCommand(hvacCmdSetState, state.pack())
	return err
}

// GetInfo retrieves the air conditioner's reported ambient status.
func (h *HvacDevice) GetInfo() (*AirCondInfo, error) {
	payload, err := h.sendHvacCommand(hvacCmdGetAcInfo, nil)
	if err != nil {
		return nil, err
	}
	return unpackAirCondInfo(payload)
}
