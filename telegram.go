// Package elevenq implements the ENQ write-telegram protocol spoken by an
// elevator control unit over its maintenance serial line, plus the tooling
// to emulate and observe it.
package elevenq

import "fmt"

// Wire layout of a write telegram:
//
//	ENQ(1) | Station(4) | Command(1) | DataNumber(4) | DataValue(4) | Checksum(2)
//
// Everything after the leading ENQ byte is ASCII. The checksum covers
// Station through DataValue.
const ENQ = 0x05

// Station is the fixed address of the elevator control unit.
const Station = "0002"

// CmdWrite is the only command the unit accepts on this line.
const CmdWrite = "W"

// Data numbers understood by the control unit.
const (
	DataCurrentFloor  = "0001"
	DataTargetFloor   = "0002"
	DataPassengerLoad = "0003"
)

// LoadValue is the passenger load reported during a stop (0x074E = 1870 kg).
const LoadValue = "074E"

// A Telegram is one addressed message. Fields are fixed-width ASCII and
// are assumed well formed; the unit does no negotiation.
type Telegram struct {
	Station    string
	Command    string
	DataNumber string
	DataValue  string
}

// WriteTelegram builds a write telegram addressed to the elevator station.
func WriteTelegram(dataNumber, dataValue string) Telegram {
	return Telegram{
		Station:    Station,
		Command:    CmdWrite,
		DataNumber: dataNumber,
		DataValue:  dataValue,
	}
}

// Checksum returns the low 8 bits of the byte sum of data as two uppercase
// hex digits. Not a CRC; the unit only does a plain additive check.
func Checksum(data string) string {
	var sum int
	for i := 0; i < len(data); i++ {
		sum += int(data[i])
	}
	return fmt.Sprintf("%02X", sum&0xFF)
}

// Encode serialises the telegram into its on-wire frame.
func (t Telegram) Encode() []byte {
	data := t.Station + t.Command + t.DataNumber + t.DataValue
	frame := make([]byte, 0, 1+len(data)+2)
	frame = append(frame, ENQ)
	frame = append(frame, data...)
	frame = append(frame, Checksum(data)...)
	return frame
}
