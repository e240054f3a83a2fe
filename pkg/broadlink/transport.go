package broadlink

import (
	"net"
	"syscall"
	"time"
)

// devicePort is the UDP port every Broadlink device listens for commands on,
// regardless of the ephemeral source port a client sends from.
const devicePort = 80

// readTimeout bounds how long a client waits for a reply before giving up.
// It is a var rather than a const solely so tests can shorten it.
var readTimeout = 10 * time.Second

const recvBufferSize = 8092

// localIPOr returns preferred if non-nil, otherwise the first non-loopback
// IPv4 address found on any local interface.
func localIPOr(preferred net.IP) (net.IP, error) {
	if preferred != nil {
		return preferred, nil
	}

	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil, &TransportError{Op: "enumerating interfaces", Cause: err}
	}
	for _, a := range addrs {
		ipNet, ok := a.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if v4 := ipNet.IP.To4(); v4 != nil {
			return v4, nil
		}
	}
	return nil, ErrNoLocalAddress
}

// sendAndReceiveOne sends msg to addr:devicePort from a socket bound to
// bindPort (0 for an ephemeral port) and returns the first reply received
// within readTimeout.
func sendAndReceiveOne(msg []byte, addr net.IP, bindPort int) ([]byte, error) {
	return sendAndReceiveOneToPort(msg, addr, devicePort, bindPort)
}

// sendAndReceiveOneToPort is sendAndReceiveOne with an explicit destination
// port, split out so tests can exercise the transport without needing the
// privileges to bind the real device port.
func sendAndReceiveOneToPort(msg []byte, addr net.IP, dstPort, bindPort int) ([]byte, error) {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{Port: bindPort})
	if err != nil {
		return nil, &TransportError{Op: "binding local socket", Cause: err}
	}
	defer conn.Close()

	if err := enableBroadcast(conn); err != nil {
		return nil, err
	}

	if err := conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
		return nil, &TransportError{Op: "setting read deadline", Cause: err}
	}

	if _, err := conn.WriteToUDP(msg, &net.UDPAddr{IP: addr, Port: dstPort}); err != nil {
		return nil, &TransportError{Op: "sending datagram", Cause: err}
	}

	buf := make([]byte, recvBufferSize)
	n, _, err := conn.ReadFromUDP(buf)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return nil, ErrTimeout
		}
		return nil, &TransportError{Op: "receiving datagram", Cause: err}
	}
	return buf[:n], nil
}

// receivedDatagram pairs a received payload with the address it arrived
// from, as required by discovery's sweep-and-collect pattern.
type receivedDatagram struct {
	data []byte
	from *net.UDPAddr
}

// sendAndReceiveMany broadcasts msg to addr:devicePort from a socket bound
// to bindPort and collects every reply that arrives before readTimeout
// elapses since the send.
func sendAndReceiveMany(msg []byte, addr net.IP, bindPort int) ([]receivedDatagram, error) {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{Port: bindPort})
	if err != nil {
		return nil, &TransportError{Op: "binding local socket", Cause: err}
	}
	defer conn.Close()

	if err := enableBroadcast(conn); err != nil {
		return nil, err
	}

	if _, err := conn.WriteToUDP(msg, &net.UDPAddr{IP: addr, Port: devicePort}); err != nil {
		return nil, &TransportError{Op: "sending broadcast", Cause: err}
	}

	deadline := time.Now().Add(readTimeout)
	var out []receivedDatagram
	buf := make([]byte, recvBufferSize)
	for {
		if err := conn.SetReadDeadline(deadline); err != nil {
			return nil, &TransportError{Op: "setting read deadline", Cause: err}
		}
		n, from, err := conn.ReadFromUDP(buf)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				break
			}
			return nil, &TransportError{Op: "receiving datagram", Cause: err}
		}
		data := make([]byte, n)
		copy(data, buf[:n])
		out = append(out, receivedDatagram{data: data, from: from})
	}
	return out, nil
}

// enableBroadcast sets SO_BROADCAST on conn so discovery can send to the
// subnet broadcast address.
func enableBroadcast(conn *net.UDPConn) error {
	raw, err := conn.SyscallConn()
	if err != nil {
		return &TransportError{Op: "accessing raw socket", Cause: err}
	}
	var sockErr error
	ctrlErr := raw.Control(func(fd uintptr) {
		sockErr = syscall.SetsockoptInt(int(fd), syscall.SOL_SOCKET, syscall.SO_BROADCAST, 1)
	})
	if ctrlErr != nil {
		return &TransportError{Op: "enabling broadcast", Cause: ctrlErr}
	}
	if sockErr != nil {
		return &TransportError{Op: "enabling broadcast", Cause: sockErr}
	}
	return nil
}
