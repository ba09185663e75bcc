package protocol

// CRC16 calculates the checksum carried in every serial link frame.
func CRC16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc = crcByte(crc, b)
	}
	return crc
}
