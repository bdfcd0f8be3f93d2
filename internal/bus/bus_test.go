package bus_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/thelolagemann/gbcore/internal/bus"
	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/memory"
)

func TestBus(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Bus Suite")
}

var _ = Describe("Bus", func() {
	var (
		b   *bus.Bus
		rom *memory.Region
		ram *memory.Region
	)

	BeforeEach(func() {
		b = bus.New()
		rom = memory.NewRegion(0x0000, []byte{0x01, 0x02, 0x03, 0x04}, memory.ReadOnly)
		ram = memory.NewRAM(0x0004, 4)
		Expect(b.Attach("rom", 0x0000, 0x0003, rom)).To(Succeed())
		Expect(b.Attach("ram", 0x0004, 0x0007, ram)).To(Succeed())
	})

	It("should reject overlapping windows", func() {
		err := b.Attach("other", 0x0003, 0x0010, memory.NewRAM(0x0003, 0x0E))
		Expect(err).To(MatchError(bus.ErrOverlap))
	})

	It("should route accesses to the owning device", func() {
		Expect(b.Load8(0x0002)).To(Equal(uint8(0x03)))
		Expect(b.Store8(0x0005, 0x99)).To(Succeed())
		Expect(ram.Load(0x0005)).To(Equal(uint8(0x99)))
	})

	It("should fail accesses nobody claims", func() {
		_, err := b.Load8(0x0008)
		Expect(err).To(MatchError(memory.ErrUnmappedAddress))
		Expect(b.Store8(0xFFFF, 0x00)).To(MatchError(memory.ErrUnmappedAddress))
	})

	It("should propagate device errors", func() {
		Expect(b.Store8(0x0001, 0x00)).To(MatchError(memory.ErrPermissionDenied))
	})

	Describe("16-bit access", func() {
		It("should be little endian", func() {
			Expect(b.Load16(0x0000)).To(Equal(uint16(0x0201)))
			Expect(b.Store16(0x0004, 0xBEEF)).To(Succeed())
			Expect(ram.Load(0x0004)).To(Equal(uint8(0xEF)))
			Expect(ram.Load(0x0005)).To(Equal(uint8(0xBE)))
		})

		It("should span two devices", func() {
			Expect(b.Store16(0x0004, 0x1234)).To(Succeed())
			Expect(b.Load16(0x0003)).To(Equal(uint16(0x3404)))
		})

		It("should fail if either half fails", func() {
			_, err := b.Load16(0x0007)
			Expect(err).To(MatchError(memory.ErrUnmappedAddress))
		})

		It("should not write the low byte when the high byte fails", func() {
			Expect(b.Store16(0x0007, 0xAABB)).To(MatchError(memory.ErrUnmappedAddress))
			Expect(ram.Load(0x0007)).To(Equal(uint8(0x00)))

			Expect(b.Store8(0x0004, 0x11)).To(Succeed())
			Expect(b.Store16(0x0003, 0xAABB)).To(MatchError(memory.ErrPermissionDenied))
			Expect(ram.Load(0x0004)).To(Equal(uint8(0x11)))
		})
	})
})

var _ = Describe("System bus", func() {
	It("should map the cartridge and internal memory", func() {
		rom := make([]byte, 2*cartridge.BankSize)
		rom[0x0000] = 0x31
		rom[0x0147] = uint8(cartridge.ROM)

		cart, err := cartridge.New(rom)
		Expect(err).NotTo(HaveOccurred())

		b, err := bus.NewSystemBus(cart)
		Expect(err).NotTo(HaveOccurred())

		Expect(b.Load8(0x0000)).To(Equal(uint8(0x31)))
		for _, addr := range []uint16{bus.VRAMStart, bus.WRAMEnd, bus.IOStart, bus.HRAMEnd} {
			Expect(b.Store8(addr, 0x5A)).To(Succeed())
			Expect(b.Load8(addr)).To(Equal(uint8(0x5A)))
		}
		for _, addr := range []uint16{0xA000, 0xBFFF, 0xE000, 0xFE00} {
			_, err := b.Load8(addr)
			Expect(err).To(MatchError(memory.ErrUnmappedAddress))
		}
	})
})
