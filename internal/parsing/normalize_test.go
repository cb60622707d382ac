package parsing

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ToNumber", func() {
	It("parses a dollar-prefixed amount", func() {
		Expect(ToNumber("$4.99")).To(HaveValue(Equal(4.99)))
	})

	It("strips non-numeric noise around the digits", func() {
		Expect(ToNumber(" 12,401 lbs")).To(HaveValue(Equal(12401.0)))
	})

	It("returns nil for non-numeric input", func() {
		Expect(ToNumber("abc")).To(BeNil())
	})

	It("returns nil for empty input", func() {
		Expect(ToNumber("")).To(BeNil())
	})

	It("returns nil when stripping leaves an unparseable token", func() {
		Expect(ToNumber("1.2.3")).To(BeNil())
	})
})

var _ = Describe("NormalizeUnit", func() {
	DescribeTable("canonicalizes unit spellings",
		func(raw, want string) {
			Expect(NormalizeUnit(raw)).To(Equal(want))
		},
		Entry("gallon", "Gallon", "gal"),
		Entry("gallons", "gallons", "gal"),
		Entry("gal", "gal", "gal"),
		Entry("pounds", "pounds", "lb"),
		Entry("lbs", "LBS", "lb"),
		Entry("kilograms", "kilograms", "kg"),
		Entry("ounce", "ounce", "oz"),
		Entry("litre", "litre", "l"),
		Entry("milliliters", "milliliters", "ml"),
		Entry("pieces", "pieces", "ct"),
		Entry("pack", "pack", "ct"),
		Entry("pk", "pk", "ct"),
	)

	It("passes unrecognized non-empty input through", func() {
		Expect(NormalizeUnit("bushel")).To(Equal("bushel"))
	})

	It("returns empty for empty input", func() {
		Expect(NormalizeUnit("  ")).To(Equal(""))
	})

	It("is idempotent", func() {
		inputs := []string{"Gallon", "lbs", "kilograms", "oz", "litre", "ml", "pieces", "bushel", ""}
		for _, raw := range inputs {
			once := NormalizeUnit(raw)
			Expect(NormalizeUnit(once)).To(Equal(once))
		}
	})
})

var _ = Describe("ComputeUnitPrice", func() {
	f := func(v float64) *float64 { return &v }

	It("returns nil when total is missing", func() {
		Expect(ComputeUnitPrice(nil, f(2), "lb")).To(BeNil())
	})

	It("returns nil when qty is missing", func() {
		Expect(ComputeUnitPrice(f(4.99), nil, "lb")).To(BeNil())
	})

	It("returns nil when qty is zero", func() {
		Expect(ComputeUnitPrice(f(4.99), f(0), "lb")).To(BeNil())
	})

	It("returns nil when qty is negative", func() {
		Expect(ComputeUnitPrice(f(4.99), f(-1), "lb")).To(BeNil())
	})

	It("returns nil when the unit is empty", func() {
		Expect(ComputeUnitPrice(f(4.99), f(2), "")).To(BeNil())
	})

	It("converts pounds to ounces", func() {
		Expect(ComputeUnitPrice(f(16), f(1), "lb")).To(HaveValue(Equal("1 $/oz")))
	})

	It("converts kilograms to grams", func() {
		Expect(ComputeUnitPrice(f(10), f(2), "kg")).To(HaveValue(Equal("0.005 $/g")))
	})

	It("converts milliliters to liters", func() {
		Expect(ComputeUnitPrice(f(3), f(500), "ml")).To(HaveValue(Equal("6 $/l")))
	})

	It("converts gallons to liters", func() {
		Expect(ComputeUnitPrice(f(7.57), f(2), "gal")).To(HaveValue(Equal("1 $/l")))
	})

	It("passes count through as its own base", func() {
		Expect(ComputeUnitPrice(f(5), f(4), "ct")).To(HaveValue(Equal("1.25 $/ct")))
	})

	It("rounds to 4 decimal places", func() {
		Expect(ComputeUnitPrice(f(1), f(3), "ct")).To(HaveValue(Equal("0.3333 $/ct")))
	})
})

var _ = Describe("NormalizeName", func() {
	It("strips standalone packaging-size tokens", func() {
		Expect(NormalizeName("EGGS 12 ct large")).To(Equal("EGGS 12 large"))
	})

	It("strips stray punctuation", func() {
		Expect(NormalizeName("MILK 2% @#!")).To(Equal("MILK 2"))
	})

	It("collapses repeated whitespace", func() {
		Expect(NormalizeName("APPLE   GALA")).To(Equal("APPLE GALA"))
	})

	It("keeps dots and hyphens", func() {
		Expect(NormalizeName("HALF-AND-HALF 0.5")).To(Equal("HALF-AND-HALF 0.5"))
	})

	It("defaults to a placeholder when nothing is left", func() {
		Expect(NormalizeName(" ea pk ")).To(Equal("Item"))
	})

	It("bounds the length", func() {
		long := strings.Repeat("X", 200)
		Expect(len(NormalizeName(long))).To(BeNumerically("<=", 64))
	})
})
