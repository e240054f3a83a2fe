package broadlink

import (
	"log/slog"
	"time"
)

// learnPollInterval and learnPollAttempts bound every IR/RF learn loop: poll
// once every learnPollInterval, learnPollAttempts times, before giving up.
const (
	learnPollInterval = 3 * time.Second
	learnPollAttempts = 10
)

// RemoteDevice is the facade for an IR/RF blaster (RM4 Pro and similar).
type RemoteDevice struct {
	info DeviceInfo
}

// Info returns this device's identifying and session state.
func (r *RemoteDevice) Info() DeviceInfo { return r.info }

func (r *RemoteDevice) device() *Device {
	return &Device{k: kindRemote, remote: r}
}

func (r *RemoteDevice) sendRemoteCommand(cmd remoteDataCommand, payload []byte) ([]byte, error) {
	packed := newRemoteDataMessage(cmd).packWithPayload(payload)
	reply, err := r.device().sendRaw(remoteDataPacketType, packed)
	if err != nil {
		return nil, err
	}
	return unpackRemoteDataPayload(reply)
}

// SendCode blasts a previously learned IR/RF code.
func (r *RemoteDevice) SendCode(code []byte) error {
	_, err := r.sendRemoteCommand(remoteCmdSendCode, code)
	return err
}

// LearnIR puts the device into IR-learning mode and polls until it reports a
// captured code, or returns ErrLearnTimeout after learnPollAttempts tries.
func (r *RemoteDevice) LearnIR() ([]byte, error) {
	if _, err := r.sendRemoteCommand(remoteCmdStartLearningIR, nil); err != nil {
		return nil, err
	}

	for i := 0; i < learnPollAttempts; i++ {
		time.Sleep(learnPollInterval)
		code, err := r.sendRemoteCommand(remoteCmdGetCode, nil)
		if err != nil {
			return nil, err
		}
		if len(code) > 0 {
			return code, nil
		}
	}
	return nil, ErrLearnTimeout
}

// LearnRF sweeps for an active RF remote's frequency, locks onto it, then
// polls until a code is captured. Both the frequency-lock phase and the
// code-capture phase are bounded by learnPollAttempts tries of
// learnPollInterval each; StopRfSweep is sent if either phase exhausts its
// budget.
func (r *RemoteDevice) LearnRF() ([]byte, error) {
	if _, err := r.sendRemoteCommand(remoteCmdSweepRfFrequencies, nil); err != nil {
		return nil, err
	}

	locked := false
	for i := 0; i < learnPollAttempts; i++ {
		time.Sleep(learnPollInterval)
		status, err := r.sendRemoteCommand(remoteCmdCheckFrequency, nil)
		if err != nil {
			return nil, err
		}
		if len(status) > 0 && status[0] == 1 {
			locked = true
			break
		}
	}
	if !locked {
		if _, err := r.sendRemoteCommand(remoteCmdStopRfSweep, nil); err != nil {
			slog.Warn("broadlink: failed to stop RF sweep after frequency lock failure", "error", err)
		}
		return nil, ErrFrequencyNotFound
	}

	if _, err := r.sendRemoteCommand(remoteCmdStartLearningRF, nil); err != nil {
		return nil, err
	}
	for i := 0; i < learnPollAttempts; i++ {
		time.Sleep(learnPollInterval)
		code, err := r.sendRemoteCommand(remoteCmdGetCode, nil)
		if err != nil {
			return nil, err
		}
		if len(code) > 0 {
			return code, nil
		}
	}

	if _, err := r.sendRemoteCommand(remoteCmdStopRfSweep, nil); err != nil {
		slog.Warn("broadlink: failed to stop RF sweep after learn timeout", "error", err)
	}
	return nil, ErrLearnTimeout
}
