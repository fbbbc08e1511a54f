package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferToStatus(t *testing.T) {
	buf := make([]byte, 64)
	buf[9], buf[10] = 0x03, 0x00  // requested transfer length 3
	buf[11], buf[12] = 0x02, 0x00 // transferred 2
	buf[13] = 7                   // buffer counter
	buf[14] = 26                  // speed divider
	buf[15] = 75                  // timeout
	buf[16], buf[17] = 0x54, 0x00 // current address (8-bit, 0x2A<<1)
	buf[25] = 1                   // read pending

	status := bufferToStatus(buf)
	assert.Equal(t, uint16(3), status.LastWriteRequestedSize)
	assert.Equal(t, uint16(2), status.LastWriteSentSize)
	assert.Equal(t, 7, status.I2CDataBufferCounter)
	assert.Equal(t, 26, status.I2CSpeedDivider)
	assert.Equal(t, 75, status.I2CTimeout)
	assert.Equal(t, "5400", status.CurrentAddress)
	assert.Equal(t, 1, status.ReadPending)
}
