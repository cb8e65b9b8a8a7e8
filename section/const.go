package section

const (
	// Bit masks of EnvelopeFlag.Options
	WideHeaderMask   = 0x0001 // Mask for pool header width bit (bit 0)
	EndiannessMask   = 0x0002 // Mask for endianness bit (bit 1)
	SlotIndexMask    = 0x0004 // Mask for slot index payload bit (bit 2)
	ReservedBitsMask = 0x0008 // Mask for reserved bit (bit 3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// Magic numbers (bits 4-15)
	MagicEnvelopeV1 = 0xCF10 // MagicEnvelopeV1 is the version 1 magic number of the envelope format.
)

// offset and section sizes
const (
	EnvelopeHeaderSize = 32 // fixed envelope header size in bytes

	CompactPoolHeaderSize = 4 * 2 // pool header of four uint16 byte lengths
	WidePoolHeaderSize    = 4 * 4 // pool header of four uint32 byte lengths
)
