package parsing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FixNumericGlyphs", func() {
	DescribeTable("repairs confusable glyphs",
		func(raw, want string) {
			Expect(FixNumericGlyphs(raw)).To(Equal(want))
		},
		Entry("O for zero", "1O.OO", "10.00"),
		Entry("l for one", "l2.99", "12.99"),
		Entry("S for five", "S.49", "5.49"),
		Entry("U for four", "U.20", "4.20"),
		Entry("mixed", "I2.SO", "12.50"),
	)
})

var _ = Describe("ParseNumericTokens", func() {
	var (
		line   string
		tokens []NumericToken
	)

	JustBeforeEach(func() {
		tokens = ParseNumericTokens(line)
	})

	When("the line has clean numeric tokens", func() {
		BeforeEach(func() {
			line = "MILK 2GAL $4.99"
		})

		It("finds every token in left-to-right order", func() {
			Expect(tokens).To(HaveLen(2))
			Expect(tokens[0].Value).To(Equal(2.0))
			Expect(tokens[1].Value).To(Equal(4.99))
		})

		It("records decimal points and positions", func() {
			Expect(tokens[0].HasDecimal).To(BeFalse())
			Expect(tokens[1].HasDecimal).To(BeTrue())
			Expect(tokens[1].Pos).To(Equal(10))
			Expect(tokens[1].Raw).To(Equal("$4.99"))
		})
	})

	When("a token contains confusable glyphs", func() {
		BeforeEach(func() {
			line = "Price $2.7S9"
		})

		It("repairs the token", func() {
			Expect(tokens).To(HaveLen(1))
			Expect(tokens[0].Cleaned).To(Equal("2.759"))
			Expect(tokens[0].Value).To(Equal(2.759))
		})

		It("never alters the surrounding text", func() {
			Expect(line).To(Equal("Price $2.7S9"))
		})
	})

	When("the line has only alphabetic text", func() {
		BeforeEach(func() {
			line = "Hello SOIls"
		})

		It("finds no tokens", func() {
			Expect(tokens).To(BeEmpty())
		})
	})

	When("the line is empty", func() {
		BeforeEach(func() {
			line = ""
		})

		It("finds no tokens", func() {
			Expect(tokens).To(BeEmpty())
		})
	})
})
