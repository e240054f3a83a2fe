package broadlink

import (
	"fmt"
	"log/slog"
	"net"
	"time"
)

// DeviceInfo holds the identifying and session state common to every
// discovered device, regardless of its variant.
type DeviceInfo struct {
	Address       net.IP
	MAC           [6]byte
	ModelCode     uint16
	FriendlyModel string
	FriendlyType  string
	Name          string
	IsLocked      bool
	AuthID        uint32
	Key           [16]byte
}

// kind tags which variant a Device holds.
type kind uint8

const (
	kindRemote kind = iota
	kindHvac
)

// Device is a classified, authenticated (once Authenticate has been called)
// handle to a single physical unit. It is a tagged union over the two
// supported device classes; callers obtain the concrete facade with AsRemote
// or AsHvac rather than inspecting the tag directly.
type Device struct {
	k      kind
	remote *RemoteDevice
	hvac   *HvacDevice
}

// Info returns the DeviceInfo shared by both variants.
func (d *Device) Info() DeviceInfo {
	if d.k == kindRemote {
		return d.remote.info
	}
	return d.hvac.info
}

// AsRemote returns the Remote facade, or ErrWrongVariant if this Device is
// an HVAC controller.
func (d *Device) AsRemote() (*RemoteDevice, error) {
	if d.k != kindRemote {
		return nil, ErrWrongVariant
	}
	return d.remote, nil
}

// AsHvac returns the HVAC facade, or ErrWrongVariant if this Device is a
// Remote blaster.
func (d *Device) AsHvac() (*HvacDevice, error) {
	if d.k != kindHvac {
		return nil, ErrWrongVariant
	}
	return d.hvac, nil
}

func (d *Device) String() string {
	info := d.Info()
	return fmt.Sprintf("%s [%s %s] (address = %s, mac = %s, locked? = %v)",
		info.Name, info.FriendlyType, info.FriendlyModel, info.Address, macString(info.MAC), info.IsLocked)
}

func macString(mac [6]byte) string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", mac[0], mac[1], mac[2], mac[3], mac[4], mac[5])
}

func (d *Device) saveAuthPair(authID uint32, key [16]byte) {
	if d.k == kindRemote {
		d.remote.info.AuthID = authID
		d.remote.info.Key = key
		return
	}
	d.hvac.info.AuthID = authID
	d.hvac.info.Key = key
}

func (d *Device) setInfo(info DeviceInfo) {
	if d.k == kindRemote {
		d.remote.info = info
		return
	}
	d.hvac.info = info
}

// deviceFromResponse classifies a parsed discoveryResponse into a new,
// not-yet-authenticated Device.
func deviceFromResponse(addr net.IP, resp *discoveryResponse) (*Device, error) {
	friendlyModel, friendlyType, err := classifyModel(resp.modelCode)
	if err != nil {
		return nil, err
	}

	info := DeviceInfo{
		Address:       addr,
		MAC:           resp.mac,
		ModelCode:     resp.modelCode,
		FriendlyModel: friendlyModel,
		FriendlyType:  friendlyType,
		Name:          resp.name,
		IsLocked:      resp.isLocked,
		Key:           InitialKey,
	}

	switch friendlyType {
	case "Remote":
		return &Device{k: kindRemote, remote: &RemoteDevice{info: info}}, nil
	case "Hvac":
		return &Device{k: kindHvac, hvac: &HvacDevice{info: info}}, nil
	default:
		return nil, &UnknownModelError{Code: resp.modelCode}
	}
}

// FromIP probes a single device at addr, classifying and authenticating it
// in one call.
func FromIP(addr net.IP, localIP net.IP) (*Device, error) {
	local, err := localIPOr(localIP)
	if err != nil {
		return nil, err
	}

	msg, err := newDiscoveryMessage(local, discoveryBindPort, time.Now())
	if err != nil {
		return nil, err
	}

	reply, err := sendAndReceiveOne(msg.pack(), addr, discoveryBindPort)
	if err != nil {
		return nil, err
	}

	resp, err := parseDiscoveryResponse(reply)
	if err != nil {
		return nil, err
	}

	dev, err := deviceFromResponse(addr, resp)
	if err != nil {
		return nil, err
	}
	if err := dev.Authenticate(); err != nil {
		return nil, err
	}
	return dev, nil
}

// List broadcasts a discovery probe on bcastAddr (typically the subnet
// broadcast address) and returns every device that answers and is
// successfully authenticated, deduplicated by MAC address (first seen wins;
// duplicate replies for the same physical unit are common on noisy
// networks).
func List(bcastAddr net.IP, localIP net.IP) ([]*Device, error) {
	local, err := localIPOr(localIP)
	if err != nil {
		return nil, err
	}

	msg, err := newDiscoveryMessage(local, discoveryBindPort, time.Now())
	if err != nil {
		return nil, err
	}

	replies, err := sendAndReceiveMany(msg.pack(), bcastAddr, discoveryBindPort)
	if err != nil {
		return nil, err
	}

	seen := make(map[[6]byte]bool)
	var devices []*Device
	for _, r := range replies {
		udpAddr := r.from
		if udpAddr.IP.To4() == nil {
			continue
		}
		resp, err := parseDiscoveryResponse(r.data)
		if err != nil {
			slog.Debug("broadlink: discarding malformed discovery reply", "from", udpAddr, "error", err)
			continue
		}
		if seen[resp.mac] {
			continue
		}

		dev, err := deviceFromResponse(udpAddr.IP, resp)
		if err != nil {
			slog.Debug("broadlink: discarding unclassifiable discovery reply", "from", udpAddr, "error", err)
			continue
		}
		if err := dev.Authenticate(); err != nil {
			slog.Warn("broadlink: device answered discovery but failed to authenticate", "from", udpAddr, "error", err)
			continue
		}

		seen[resp.mac] = true
		devices = append(devices, dev)
	}
	return devices, nil
}

// Authenticate performs the challenge-response handshake, deriving and
// storing the per-session auth ID and AES key this Device will use for every
// subsequent command.
func (d *Device) Authenticate() error {
	info := d.Info()
	auth := newAuthenticationMessage(info.Name)

	envelope, err := d.sendRaw(authPacketType, auth.pack())
	if err != nil {
		return err
	}

	resp, err := parseAuthenticationResponse(envelope)
	if err != nil {
		return err
	}

	slog.Debug("broadlink: authenticated", "name", info.Name, "auth_id", resp.authID)
	d.saveAuthPair(resp.authID, resp.key)
	return nil
}

// ConnectToNetwork broadcasts the on-device Wi-Fi setup message described by
// conn, instructing any device currently in its own factory-mode
// configuration SSID to join the named network. There is no Device to call
// this against yet — the target has no IP address or identity until it has
// joined a real network and answered discovery — so this is a package-level
// operation rather than a method. Devices do not acknowledge this message in
// any documented way, so it returns as soon as the broadcast is sent, without
// waiting for a reply.
func ConnectToNetwork(conn WirelessConnection) error {
	packed, err := conn.pack()
	if err != nil {
		return err
	}
	sock, err := net.ListenUDP("udp4", &net.UDPAddr{})
	if err != nil {
		return &TransportError{Op: "binding local socket", Cause: err}
	}
	defer sock.Close()
	if err := enableBroadcast(sock); err != nil {
		return err
	}
	if _, err := sock.WriteToUDP(packed, &net.UDPAddr{IP: net.IPv4bcast, Port: devicePort}); err != nil {
		return &TransportError{Op: "sending broadcast", Cause: err}
	}
	return nil
}

// sendRaw encrypts payload under this device's current key, wraps it in a
// command envelope with the given packet type, sends it, and returns the
// decrypted inner payload of the reply.
func (d *Device) sendRaw(packetType uint16, payload []byte) ([]byte, error) {
	info := d.Info()
	cmd, err := newCommandMessage(packetType, info.ModelCode, info.MAC, info.AuthID)
	if err != nil {
		return nil, err
	}

	packed, err := cmd.packWithPayload(payload, info.Key)
	if err != nil {
		return nil, err
	}

	reply, err := sendAndReceiveOne(packed, info.Address, 0)
	if err != nil {
		return nil, err
	}

	_, plaintext, err := unpackCommandWithPayload(reply, info.Key)
	if err != nil {
		return nil, err
	}
	return plaintext, nil
}
