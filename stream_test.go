package umbf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

const testSigVendor uint32 = 0xDEAD0001

func TestDecodeSkipsUnknownBlock(t *testing.T) {
	reg := DefaultRegistry()
	reg.Register(testSigVendor, RawCodec(testSigVendor))

	f := &File{
		Header: Header{VendorSign: VendorID, TypeSign: FormatImage},
		Blocks: []Block{
			testImage(),
			&Raw{Sig: testSigVendor, Data: []byte{9, 9, 9}},
		},
	}
	var buf bytes.Buffer
	if err := Encode(&buf, f, WithRegistry(reg)); err != nil {
		t.Fatal(err)
	}

	// A reader without the vendor codec keeps the image and drops the
	// frame it cannot interpret.
	got, err := Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(got.Blocks))
	}
	if _, ok := got.Blocks[0].(*Image2D); !ok {
		t.Fatalf("surviving block is %T", got.Blocks[0])
	}

	// A reader that does know the signature keeps both.
	got, err = Decode(bytes.NewReader(buf.Bytes()), WithDecodeRegistry(reg))
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(got.Blocks))
	}
	raw, ok := got.Blocks[1].(*Raw)
	if !ok || !bytes.Equal(raw.Data, []byte{9, 9, 9}) {
		t.Errorf("vendor block lost: %+v", got.Blocks[1])
	}
}

func TestEncodeSkipsUnregisteredBlock(t *testing.T) {
	f := &File{
		Header: Header{TypeSign: FormatImage},
		Blocks: []Block{
			testImage(),
			&Raw{Sig: testSigVendor, Data: []byte{1}},
		},
	}
	var buf bytes.Buffer
	if err := Encode(&buf, f); err != nil {
		t.Fatal(err)
	}
	got, err := Decode(bytes.NewReader(buf.Bytes()), WithDecodeRegistry(func() *Registry {
		r := DefaultRegistry()
		r.Register(testSigVendor, RawCodec(testSigVendor))
		return r
	}()))
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Blocks) != 1 {
		t.Fatalf("unregistered block was written anyway: %d blocks", len(got.Blocks))
	}
}

func TestRegistryFirstWins(t *testing.T) {
	reg := NewRegistry()
	reg.SetLogger(discardLogger())
	first := RawCodec(testSigVendor)
	reg.Register(testSigVendor, first)
	reg.Register(testSigVendor, BlockCodec{}) // ignored

	codec, ok := reg.Lookup(testSigVendor)
	if !ok {
		t.Fatal("codec not found")
	}
	if codec.Decode == nil {
		t.Error("duplicate registration replaced the original codec")
	}
	if reg.Len() != 1 {
		t.Errorf("registry holds %d codecs", reg.Len())
	}
}

func TestDecodeTruncatedFrame(t *testing.T) {
	f := &File{
		Header: Header{TypeSign: FormatImage},
		Blocks: []Block{testImage()},
	}
	var buf bytes.Buffer
	if err := Encode(&buf, f); err != nil {
		t.Fatal(err)
	}
	// Cut inside the image frame's payload.
	raw := buf.Bytes()[:len(buf.Bytes())-12]

	_, err := Decode(bytes.NewReader(raw))
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestDecodeOversizedFrameRejected(t *testing.T) {
	w := NewWriter()
	w.Uint32(Magic)
	w.header(Header{TypeSign: FormatImage})
	frame := make([]byte, 12)
	binary.LittleEndian.PutUint64(frame, 1<<40) // declared size beyond any real payload
	binary.LittleEndian.PutUint32(frame[8:], SigImage2D)
	w.Raw(frame)

	_, err := Decode(bytes.NewReader(w.Bytes()), WithLimits(Limits{MaxBlockSize: 1 << 20}))
	if err == nil {
		t.Fatal("expected an error for an oversized frame")
	}
	if !errors.Is(err, ErrLimitExceeded) && !errors.Is(err, ErrTruncated) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBlockLimit(t *testing.T) {
	blocks := []Block{testImage()}
	for i := 0; i < 5; i++ {
		blocks = append(blocks, testImage())
	}
	f := &File{Header: Header{TypeSign: FormatImage}, Blocks: blocks}
	var buf bytes.Buffer
	if err := Encode(&buf, f); err != nil {
		t.Fatal(err)
	}

	_, err := Decode(bytes.NewReader(buf.Bytes()), WithLimits(Limits{MaxBlocks: 3}))
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("expected ErrLimitExceeded, got %v", err)
	}

	got, err := Decode(bytes.NewReader(buf.Bytes()), WithLimits(Limits{MaxBlocks: 10}))
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Blocks) != 6 {
		t.Errorf("expected 6 blocks, got %d", len(got.Blocks))
	}
}
