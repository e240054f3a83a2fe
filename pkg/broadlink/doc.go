// Package broadlink implements the client side of the proprietary UDP
// protocol spoken by Broadlink IR/RF blasters (RM4 Pro and siblings) and
// HVAC controllers.
//
// # Frame layers
//
// Every exchange nests three layers:
//
//  1. An outer command envelope: a fixed 0x38-byte header (magic bytes,
//     routing metadata, two checksums) followed by an AES-128-CBC encrypted
//     body. Discovery and the on-device Wi-Fi join message skip encryption
//     but share the envelope's additive checksum discipline.
//  2. The encrypted body, zero-padded to the AES block size and encrypted
//     under a fixed IV and either the protocol's universal initial key (used
//     until a device is authenticated) or a per-device session key
//     (returned by Authenticate).
//  3. A device-class sub-payload: a remote-data message for IR/RF blasters,
//     an HVAC data message for air conditioners. Each has its own header
//     and, for HVAC, its own CRC-16/MODBUS checksum distinct from the
//     envelope's.
//
// # Typical use
//
// Discover and authenticate a device, then drive it through its variant
// facade:
//
//	devices, err := broadlink.List(net.IPv4bcast, nil)
//	remote, err := devices[0].AsRemote()
//	err = remote.SendCode(code)
//
// # Session state
//
// A Device is immutable in its variant (Remote vs Hvac) from the moment it
// is classified at discovery time; only its session key and auth ID change,
// as a side effect of Authenticate.
package broadlink
