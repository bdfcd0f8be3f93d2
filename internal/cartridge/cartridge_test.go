package cartridge_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/memory"
)

func TestCartridge(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Cartridge Suite")
}

// newImage builds a ROM image of the given number of banks, where the
// first byte of every bank holds 0xB0 plus the bank number.
func newImage(kind cartridge.Type, sizeCode uint8, banks int) []byte {
	rom := make([]byte, banks*cartridge.BankSize)
	for i := 0; i < banks; i++ {
		rom[i*cartridge.BankSize] = 0xB0 + uint8(i)
		rom[i*cartridge.BankSize+0x3FFF] = 0xE0 + uint8(i)
	}
	copy(rom[0x0134:], "TESTCART")
	rom[0x0147] = uint8(kind)
	rom[0x0148] = sizeCode
	rom[0x0149] = 0x00

	var sum uint8
	for _, b := range rom[0x0134:0x014D] {
		sum = sum - b - 1
	}
	rom[0x014D] = sum
	return rom
}

var _ = Describe("Header", func() {
	It("should decode the identification bytes", func() {
		rom := newImage(cartridge.MBC1, 0x01, 4)
		rom[0x0149] = 0x03

		c, err := cartridge.New(rom)
		Expect(err).NotTo(HaveOccurred())

		h := c.Header()
		Expect(h.Title).To(Equal("TESTCART"))
		Expect(h.CartridgeType).To(Equal(cartridge.MBC1))
		Expect(h.ROMSize()).To(Equal(uint(64 * 1024)))
		Expect(h.RAMSize()).To(Equal(uint(32 * 1024)))
		Expect(h.Banks()).To(Equal(4))
		Expect(h.String()).To(Equal("TESTCART | MBC1 | ROM Size: 64kB | RAM Size: 32kB"))
	})

	It("should validate the header checksum", func() {
		rom := newImage(cartridge.ROM, 0x00, 2)
		c, err := cartridge.New(rom)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Header().ValidChecksum(rom)).To(BeTrue())

		rom[0x0134] = 'X'
		Expect(c.Header().ValidChecksum(rom)).To(BeFalse())
	})

	It("should report unknown size codes as zero", func() {
		rom := newImage(cartridge.ROM, 0x52, 2)
		rom[0x0149] = 0x09
		c, err := cartridge.New(rom)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Header().ROMSize()).To(BeZero())
		Expect(c.Header().RAMSize()).To(BeZero())
	})
})

var _ = Describe("New", func() {
	It("should reject unsupported cartridge types", func() {
		for _, t := range []cartridge.Type{cartridge.MBC2, cartridge.MBC3, cartridge.MBC5, cartridge.MBC1RAM, 0x42} {
			c, err := cartridge.New(newImage(t, 0x00, 2))
			Expect(err).To(MatchError(cartridge.ErrUnsupportedType))
			Expect(c).To(BeNil())
		}
	})

	It("should reject images without a header", func() {
		c, err := cartridge.New(make([]byte, 0x100))
		Expect(err).To(MatchError(cartridge.ErrHeaderTruncated))
		Expect(c).To(BeNil())
	})

	It("should reject Type1 images that disagree with the size code", func() {
		// header says 64KiB, image holds 32KiB
		c, err := cartridge.New(newImage(cartridge.MBC1, 0x01, 2))
		Expect(err).To(MatchError(cartridge.ErrROMSizeMismatch))
		Expect(c).To(BeNil())

		rom := append(newImage(cartridge.MBC1, 0x00, 2), 0x00)
		_, err = cartridge.New(rom)
		Expect(err).To(MatchError(cartridge.ErrROMSizeMismatch))
	})

	It("should fingerprint the image", func() {
		a, _ := cartridge.New(newImage(cartridge.ROM, 0x00, 2))
		b, _ := cartridge.New(newImage(cartridge.ROM, 0x00, 2))
		rom := newImage(cartridge.ROM, 0x00, 2)
		rom[0x7FFF] = 0x01
		c, _ := cartridge.New(rom)

		Expect(a.Fingerprint()).To(Equal(b.Fingerprint()))
		Expect(a.Fingerprint()).NotTo(Equal(c.Fingerprint()))
	})
})

var _ = Describe("Type0", func() {
	var c *cartridge.Cartridge

	BeforeEach(func() {
		var err error
		c, err = cartridge.New(newImage(cartridge.ROM, 0x00, 2))
		Expect(err).NotTo(HaveOccurred())
	})

	It("should map the whole image", func() {
		Expect(c.Kind()).To(Equal(cartridge.Type0))
		Expect(c.Load(0x0000)).To(Equal(uint8(0xB0)))
		Expect(c.Load(0x4000)).To(Equal(uint8(0xB1)))
		Expect(c.Load(0x7FFF)).To(Equal(uint8(0xE1)))
		Expect(c.Bank()).To(BeZero())

		start, end := c.Window()
		Expect(start).To(Equal(uint16(0x0000)))
		Expect(end).To(Equal(uint16(0x7FFF)))
	})

	It("should be read-only", func() {
		Expect(c.Store(0x2000, 0x02)).To(MatchError(memory.ErrPermissionDenied))
		Expect(c.Load(0x4000)).To(Equal(uint8(0xB1)))
	})

	It("should fail beyond the image", func() {
		_, err := c.Load(0x8000)
		Expect(err).To(MatchError(memory.ErrUnmappedAddress))
	})
})

var _ = Describe("Type1", func() {
	var c *cartridge.Cartridge

	BeforeEach(func() {
		var err error
		// 128KiB, 8 banks
		c, err = cartridge.New(newImage(cartridge.MBC1, 0x02, 8))
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Kind()).To(Equal(cartridge.Type1))
	})

	It("should map bank 1 at power on", func() {
		Expect(c.Bank()).To(Equal(1))
		Expect(c.Load(0x4000)).To(Equal(uint8(0xB1)))
		Expect(c.Load(0x7FFF)).To(Equal(uint8(0xE1)))
	})

	It("should redirect bank 0 to bank 1", func() {
		Expect(c.Store(0x2000, 0x05)).To(Succeed())
		Expect(c.Store(0x2000, 0x00)).To(Succeed())
		Expect(c.Bank()).To(Equal(1))
		Expect(c.Load(0x4000)).To(Equal(uint8(0xB1)))
	})

	It("should switch banks through the control port", func() {
		Expect(c.Store(0x3FFF, 0x03)).To(Succeed())
		Expect(c.Bank()).To(Equal(3))
		Expect(c.Load(0x4000)).To(Equal(uint8(0xB3)))

		Expect(c.Store(0x2000, 0x07)).To(Succeed())
		Expect(c.Load(0x4000)).To(Equal(uint8(0xB7)))
		Expect(c.Load(0x7FFF)).To(Equal(uint8(0xE7)))
	})

	It("should always read the fixed bank below 0x4000", func() {
		for _, bank := range []uint8{0, 2, 5, 7} {
			Expect(c.Store(0x2100, bank)).To(Succeed())
			Expect(c.Load(0x0000)).To(Equal(uint8(0xB0)))
			Expect(c.Load(0x3FFF)).To(Equal(uint8(0xE0)))
		}
	})

	It("should wrap bank numbers beyond the image", func() {
		Expect(c.Store(0x2000, 0x08)).To(Succeed())
		Expect(c.Bank()).To(Equal(1))
		Expect(c.Store(0x2000, 0x0A)).To(Succeed())
		Expect(c.Bank()).To(Equal(3))
	})

	It("should deny writes outside the control port", func() {
		for _, addr := range []uint16{0x0000, 0x1FFF, 0x4000, 0x7FFF} {
			Expect(c.Store(addr, 0x03)).To(MatchError(memory.ErrPermissionDenied))
		}
		Expect(c.Bank()).To(Equal(1))
	})

	It("should not claim addresses past the switchable window", func() {
		_, err := c.Load(0x8000)
		Expect(err).To(MatchError(memory.ErrUnmappedAddress))
		Expect(c.Store(0xA000, 0x01)).To(MatchError(memory.ErrUnmappedAddress))

		start, end := c.Window()
		Expect(start).To(Equal(uint16(0x0000)))
		Expect(end).To(Equal(uint16(0x7FFF)))
	})

	It("should probe without switching", func() {
		Expect(c.Probe(0x2000, true)).To(Succeed())
		Expect(c.Probe(0x5000, false)).To(Succeed())
		Expect(c.Bank()).To(Equal(1))
	})
})
