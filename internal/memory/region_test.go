package memory_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/thelolagemann/gbcore/internal/memory"
)

func TestMemory(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Memory Suite")
}

var _ = Describe("Region", func() {
	var (
		data []byte
		rom  *memory.Region
		ram  *memory.Region
	)

	BeforeEach(func() {
		data = []byte{0xDE, 0xAD, 0xBE, 0xEF}
		rom = memory.NewRegion(0x4000, data, memory.ReadOnly)
		ram = memory.NewRAM(0xC000, 0x10)
	})

	Describe("Load", func() {
		It("should read relative to the base address", func() {
			Expect(rom.Load(0x4000)).To(Equal(uint8(0xDE)))
			Expect(rom.Load(0x4003)).To(Equal(uint8(0xEF)))
		})

		It("should fail below the base address", func() {
			_, err := rom.Load(0x3FFF)
			Expect(err).To(MatchError(memory.ErrUnmappedAddress))
		})

		It("should fail past the end", func() {
			_, err := rom.Load(0x4004)
			Expect(err).To(MatchError(memory.ErrUnmappedAddress))
		})
	})

	Describe("Store", func() {
		It("should write to read-write memory", func() {
			Expect(ram.Store(0xC00F, 0x42)).To(Succeed())
			Expect(ram.Load(0xC00F)).To(Equal(uint8(0x42)))
		})

		It("should deny writes to read-only memory without mutating it", func() {
			err := rom.Store(0x4001, 0x00)
			Expect(err).To(MatchError(memory.ErrPermissionDenied))
			Expect(data).To(Equal([]byte{0xDE, 0xAD, 0xBE, 0xEF}))
		})

		It("should report out of range before permission", func() {
			Expect(rom.Store(0x5000, 0x00)).To(MatchError(memory.ErrUnmappedAddress))
			Expect(ram.Store(0xC010, 0x00)).To(MatchError(memory.ErrUnmappedAddress))
		})

		It("should carry the failing address", func() {
			err := rom.Store(0x4002, 0x01)
			var addrErr *memory.AddressError
			Expect(err).To(BeAssignableToTypeOf(addrErr))
			Expect(err.(*memory.AddressError).Address).To(Equal(uint16(0x4002)))
			Expect(err.Error()).To(Equal("store 0x4002: permission denied"))
		})
	})

	Describe("Probe", func() {
		It("should not mutate memory", func() {
			Expect(ram.Probe(0xC000, true)).To(Succeed())
			Expect(ram.Load(0xC000)).To(Equal(uint8(0)))
			Expect(rom.Probe(0x4000, false)).To(Succeed())
			Expect(rom.Probe(0x4000, true)).To(MatchError(memory.ErrPermissionDenied))
		})
	})

	It("should describe its window", func() {
		Expect(rom.Base()).To(Equal(uint16(0x4000)))
		Expect(rom.End()).To(Equal(uint16(0x4003)))
		Expect(rom.Len()).To(Equal(4))
		Expect(rom.String()).To(Equal("[4000-4003] RO"))
	})
})
