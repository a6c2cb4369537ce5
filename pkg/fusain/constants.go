// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package fusain provides the length-prefixed, byte-stuffed, CRC-16-CCITT
// packet format cloneforge reuses for its session-event feed: framing,
// CBOR payload encoding, and CRC validation. The message-type byte and
// payload schema above that are left to the caller (see pkg/sessionwire)
// rather than fixed by this package.
package fusain

// Protocol framing bytes
const (
	StartByte = 0x7E
	EndByte   = 0x7F
	EscByte   = 0x7D
	EscXor    = 0x20
)

// Packet size limits
const (
	MaxPacketSize  = 128 // 14 overhead + 114 payload
	MaxPayloadSize = 114
	AddressSize    = 8
)

// CRC-16-CCITT configuration
const (
	crcPolynomial = 0x1021
	crcInitial    = 0xFFFF
)

// Special addresses
const (
	AddressBroadcast = 0x0000000000000000 // All devices
	AddressStateless = 0xFFFFFFFFFFFFFFFF // Routers, subscriptions
)

// Decoder states (internal)
// No separate TYPE state - type is embedded in CBOR payload
const (
	stateIdle = iota
	stateLength
	stateAddress
	statePayload
	stateCRC1
	stateCRC2
)
