package ofp

import (
	"encoding/gob"
	"testing"

	"github.com/doytsujin/of-protocol/internal/encodingtest"
)

func TestPacketQueue(t *testing.T) {
	props := QueueProps{
		&QueuePropMinRate{42},
		&QueuePropMaxRate{43},
	}

	tests := []encodingtest.MU{
		{ReadWriter: &PacketQueue{
			Queue:      QueueAll,
			Port:       PortNormal,
			Properties: props,
		}, Bytes: []byte{
			0xff, 0xff, 0xff, 0xff, // Queue.
			0xff, 0xff, 0xff, 0xfa, // Port number.
			0x00, 0x30, // Length.
			0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // 6-byte padding.

			// Properties
			0x00, 0x01, // Queue property min rate.
			0x00, 0x10, // Queue property length.
			0x00, 0x00, 0x00, 0x00, // 4-byte padding.
			0x00, 0x2a, // Rate.
			0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // 6-byte padding.

			0x00, 0x02, // Queue property max rate.
			0x00, 0x10, // Queue propertu length.
			0x00, 0x00, 0x00, 0x00,
			0x00, 0x2b, // Rate.
			0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		}},
	}

	gob.Register(QueuePropMinRate{})
	gob.Register(QueuePropMaxRate{})
	encodingtest.RunMU(t, tests)
}

func TestQueuePropExperimenter(t *testing.T) {
	data := []byte{0x00, 0x01, 0x02, 0x03}

	tests := []encodingtest.MU{
		{ReadWriter: &QueuePropExperimenter{
			Experimenter: 359,
			Data:         data,
		}, Bytes: append([]byte{
			0xff, 0xff, // Queue property type.
			0x00, 0x14, // Queue property length.
			0x00, 0x00, 0x00, 0x00, // 4-byte padding.
			0x00, 0x00, 0x01, 0x67, // Experimenter.
			0x00, 0x00, 0x00, 0x00, // 4-byte padding.
		}, data...)},
	}

	encodingtest.RunMU(t, tests)
}

func TestQueueGetConfigRequest(t *testing.T) {
	tests := []encodingtest.MU{
		{ReadWriter: &QueueGetConfigRequest{PortNo(42)}, Bytes: []byte{
			0x00, 0x00, 0x00, 0x2a, // Port number.
			0x00, 0x00, 0x00, 0x00, // 4-byte padding.
		}},
	}

	encodingtest.RunMU(t, tests)
}

func TestQueueGetConfigReply(t *testing.T) {
	props1 := QueueProps{
		&QueuePropMinRate{1},
		&QueuePropMaxRate{2},
	}

	props2 := QueueProps{
		&QueuePropMinRate{3},
		&QueuePropMaxRate{4},
	}

	queues := []PacketQueue{
		{Queue(1), PortNo(4), props1},
		{Queue(2), PortNo(4), props2},
	}

	tests := []encodingtest.MU{
		{ReadWriter: &QueueGetConfigReply{
			Port:   PortNo(43),
			Queues: queues,
		}, Bytes: []byte{
			0x00, 0x00, 0x00, 0x2b, // Port number.
			0x00, 0x00, 0x00, 0x00, // 4-byte padding.

			// Queue #1.
			0x00, 0x00, 0x00, 0x01, // Queue number.
			0x00, 0x00, 0x00, 0x04, // Port number.
			0x00, 0x30, // Length.
			0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // 6-byte padding.
			// Property #1.
			0x00, 0x01, // Queue property min rate.
			0x00, 0x10, // Queue property length.
			0x00, 0x00, 0x00, 0x00, // 4-byte padding.
			0x00, 0x01, // Rate.
			0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // 6-byte padding.
			// Property #2.
			0x00, 0x02, // Queue property max rate.
			0x00, 0x10, // Queue propertu length.
			0x00, 0x00, 0x00, 0x00,
			0x00, 0x02, // Rate.
			0x00, 0x00, 0x00, 0x00, 0x00, 0x00,

			// Queue #2.
			0x00, 0x00, 0x00, 0x02, // Queue number.
			0x00, 0x00, 0x00, 0x04, // Port number.
			0x00, 0x30, // Length.
			0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // 6-byte padding.
			// Property #1.
			0x00, 0x01, // Queue property min rate.
			0x00, 0x10, // Queue property length.
			0x00, 0x00, 0x00, 0x00, // 4-byte padding.
			0x00, 0x03, // Rate.
			0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // 6-byte padding.
			// Property #2.
			0x00, 0x02, // Queue property max rate.
			0x00, 0x10, // Queue propertu length.
			0x00, 0x00, 0x00, 0x00,
			0x00, 0x04, // Rate.
			0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		}},
	}

	encodingtest.RunMU(t, tests)
}
