package envelope

import (
	"bytes"
	"fmt"
	"math"

	"github.com/arloliu/cfgpack"
	"github.com/arloliu/cfgpack/compress"
	"github.com/arloliu/cfgpack/errs"
	"github.com/arloliu/cfgpack/internal/pool"
	"github.com/arloliu/cfgpack/record"
	"github.com/arloliu/cfgpack/schema"
	"github.com/arloliu/cfgpack/section"
	"github.com/arloliu/cfgpack/table"
)

// Sealed is an unwrapped envelope.
type Sealed struct {
	// Header is the parsed envelope header.
	Header section.EnvelopeHeader
	// Record is the decompressed record buffer, ready for cfgpack.Codec.Decode.
	Record []byte
	// Index is the attached slot index, nil if the envelope has none.
	Index *cfgpack.SlotIndex
}

// Seal encodes rec with c and wraps it in an envelope.
//
// Available options:
//   - WithCompression(ct)
//   - WithSlotIndex()
//   - WithMaxRecordSize(n)
func Seal(c *cfgpack.Codec, rec record.Record, opts ...Option) ([]byte, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	var raw, indexRaw []byte
	if cfg.index {
		var idx *cfgpack.SlotIndex
		raw, idx, err = c.EncodeIndexed(rec)
		if err != nil {
			return nil, err
		}
		if indexRaw, err = idx.MarshalBinary(); err != nil {
			return nil, err
		}
	} else {
		if raw, err = c.Encode(rec); err != nil {
			return nil, err
		}
	}

	if limit := cfg.recordLimit(c.Config().HeaderWidth()); uint64(len(raw)) > limit {
		return nil, fmt.Errorf("%w: record of %d bytes exceeds the %d byte envelope limit", errs.ErrPoolTooLarge, len(raw), limit)
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}
	payload, err := codec.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("compress record: %w", err)
	}

	if uint64(len(raw)) > math.MaxUint32 || uint64(len(payload)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: record of %d bytes does not fit an envelope", errs.ErrPoolTooLarge, len(raw))
	}

	header := section.NewEnvelopeHeader(c.Schema().Fingerprint(), c.Table().Fingerprint())
	header.PayloadLength = uint32(len(payload))
	header.RawLength = uint32(len(raw))
	header.IndexLength = uint32(len(indexRaw))
	header.Flag.SetCompressionType(cfg.compression)
	header.Flag.SetHeaderWidth(c.Config().HeaderWidth())
	header.Flag.SetHasSlotIndex(cfg.index)
	if c.Config().IsBigEndian() {
		header.Flag.WithBigEndian()
	}

	buf := pool.GetRecordBuffer()
	defer pool.PutRecordBuffer(buf)

	buf.MustWrite(header.Bytes())
	buf.MustWrite(payload)
	buf.MustWrite(indexRaw)

	return bytes.Clone(buf.Bytes()), nil
}

// Peek parses the envelope header without touching the payload.
func Peek(data []byte) (section.EnvelopeHeader, error) {
	header, err := section.ParseEnvelopeHeader(data)
	if err != nil {
		return section.EnvelopeHeader{}, err
	}

	want := uint64(section.EnvelopeHeaderSize) + uint64(header.PayloadLength) + uint64(header.IndexLength)
	switch {
	case uint64(len(data)) < want:
		return section.EnvelopeHeader{}, fmt.Errorf("%w: envelope declares %d bytes, got %d", errs.ErrTruncatedInput, want, len(data))
	case uint64(len(data)) > want:
		return section.EnvelopeHeader{}, fmt.Errorf("%w: %d trailing bytes", errs.ErrInvalidEnvelope, uint64(len(data))-want)
	case header.Flag.HasSlotIndex() != (header.IndexLength > 0):
		return section.EnvelopeHeader{}, fmt.Errorf("%w: slot index flag disagrees with index length %d", errs.ErrInvalidEnvelope, header.IndexLength)
	}

	return header, nil
}

// Unseal checks that data was sealed for c and returns its decompressed contents.
//
// Returns:
//   - errs.ErrSchemaMismatch if the schema fingerprint differs from c's schema
//   - errs.ErrTableMismatch if the table fingerprint differs from c's table
//   - errs.ErrInvalidEnvelope if the header layout options differ from c's configuration,
//     or the declared record size exceeds the limit set by WithMaxRecordSize
func Unseal(c *cfgpack.Codec, data []byte, opts ...Option) (*Sealed, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	header, err := Peek(data)
	if err != nil {
		return nil, err
	}

	if err := checkCodec(c, header); err != nil {
		return nil, err
	}

	raw, err := decompress(header, data, cfg)
	if err != nil {
		return nil, err
	}

	sealed := &Sealed{Header: header, Record: raw}
	if header.Flag.HasSlotIndex() {
		sealed.Index = &cfgpack.SlotIndex{}
		payloadEnd := section.EnvelopeHeaderSize + int(header.PayloadLength)
		if err := sealed.Index.UnmarshalBinary(data[payloadEnd:]); err != nil {
			return nil, err
		}
	}

	return sealed, nil
}

// Payload returns the header and the decompressed record buffer of data without checking
// them against a codec. It is meant for tooling that inspects envelopes of unknown origin.
func Payload(data []byte, opts ...Option) (section.EnvelopeHeader, []byte, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return section.EnvelopeHeader{}, nil, err
	}

	header, err := Peek(data)
	if err != nil {
		return section.EnvelopeHeader{}, nil, err
	}

	raw, err := decompress(header, data, cfg)
	if err != nil {
		return section.EnvelopeHeader{}, nil, err
	}

	return header, raw, nil
}

// decompress bounds the declared record size before handing the payload to the codec, which
// sizes its output from it.
func decompress(header section.EnvelopeHeader, data []byte, cfg *Config) ([]byte, error) {
	width := header.Flag.HeaderWidth()
	if limit := cfg.recordLimit(width); uint64(header.RawLength) > limit {
		return nil, fmt.Errorf("%w: declared record size %d exceeds the %d byte limit for %s pool headers",
			errs.ErrInvalidEnvelope, header.RawLength, limit, width)
	}

	codec, err := compress.GetCodec(header.Flag.CompressionType())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidEnvelope, err)
	}

	payloadEnd := section.EnvelopeHeaderSize + int(header.PayloadLength)
	raw, err := codec.Decompress(data[section.EnvelopeHeaderSize:payloadEnd], int(header.RawLength))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidEnvelope, err)
	}

	return raw, nil
}

// Open unseals data and decodes the record.
func Open(c *cfgpack.Codec, data []byte, opts ...Option) (record.Record, error) {
	sealed, err := Unseal(c, data, opts...)
	if err != nil {
		return nil, err
	}

	return c.Decode(sealed.Record)
}

// OpenSlot unseals data and decodes the named top-level slot through the attached slot index.
// An envelope without an index fails with errs.ErrInvalidIndex.
func OpenSlot(c *cfgpack.Codec, data []byte, name string, opts ...Option) (record.Value, error) {
	sealed, err := Unseal(c, data, opts...)
	if err != nil {
		return record.Value{}, err
	}
	if sealed.Index == nil {
		return record.Value{}, fmt.Errorf("%w: envelope has no slot index", errs.ErrInvalidIndex)
	}

	return c.DecodeSlotByName(sealed.Record, sealed.Index, name)
}

// NewCodec builds the codec that matches the envelope in data.
//
// The table is looked up in reg by the pinned fingerprint and the header layout options are
// taken from the envelope flags. opts are applied afterwards and must not contradict them.
func NewCodec(data []byte, s *schema.Schema, reg *table.Registry, opts ...cfgpack.Option) (*cfgpack.Codec, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: schema is nil", errs.ErrInvalidSchema)
	}

	header, err := Peek(data)
	if err != nil {
		return nil, err
	}

	if s.Fingerprint() != header.SchemaFingerprint {
		return nil, fmt.Errorf("%w: envelope pins schema 0x%016x, got %s (0x%016x)",
			errs.ErrSchemaMismatch, header.SchemaFingerprint, s, s.Fingerprint())
	}

	tbl, ok := reg.Lookup(header.TableFingerprint)
	if !ok {
		return nil, fmt.Errorf("%w: table 0x%016x is not registered", errs.ErrTableMismatch, header.TableFingerprint)
	}

	base := []cfgpack.Option{cfgpack.WithTable(tbl)}
	if header.Flag.IsWideHeader() {
		base = append(base, cfgpack.WithWideHeader())
	}
	if header.Flag.IsBigEndian() {
		base = append(base, cfgpack.WithBigEndian())
	}

	return cfgpack.NewCodec(s, append(base, opts...)...)
}

func checkCodec(c *cfgpack.Codec, header section.EnvelopeHeader) error {
	if fp := c.Schema().Fingerprint(); fp != header.SchemaFingerprint {
		return fmt.Errorf("%w: envelope pins schema 0x%016x, codec has 0x%016x", errs.ErrSchemaMismatch, header.SchemaFingerprint, fp)
	}

	if fp := c.Table().Fingerprint(); fp != header.TableFingerprint {
		return fmt.Errorf("%w: envelope pins table 0x%016x, codec has 0x%016x", errs.ErrTableMismatch, header.TableFingerprint, fp)
	}

	if header.Flag.HeaderWidth() != c.Config().HeaderWidth() {
		return fmt.Errorf("%w: envelope uses %s pool header, codec uses %s",
			errs.ErrInvalidEnvelope, header.Flag.HeaderWidth(), c.Config().HeaderWidth())
	}

	if header.Flag.IsBigEndian() != c.Config().IsBigEndian() {
		return fmt.Errorf("%w: envelope byte order differs from codec", errs.ErrInvalidEnvelope)
	}

	return nil
}
