package parsing

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ExtractDateISO", func() {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	It("prefers an explicit Date label", func() {
		text := "Store 42 on 01/02/2023\nDate: 03/15/2024"
		Expect(ExtractDateISO(text, now)).To(Equal("2024-03-15"))
	})

	It("falls back to a bare date token", func() {
		Expect(ExtractDateISO("visited 7/4/2023 noon", now)).To(Equal("2023-07-04"))
	})

	It("expands two-digit years", func() {
		Expect(ExtractDateISO("Date: 12/31/23", now)).To(Equal("2023-12-31"))
	})

	It("falls back to the current date", func() {
		Expect(ExtractDateISO("no dates here", now)).To(Equal("2024-06-01"))
	})
})

var _ = Describe("ExtractFuel", func() {
	var (
		text  string
		now   time.Time
		items []LineItem
		ok    bool
	)

	BeforeEach(func() {
		now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	})

	JustBeforeEach(func() {
		items, ok = ExtractFuel(text, now)
	})

	When("the receipt has a pump block with gallons and price", func() {
		BeforeEach(func() {
			text = "SHELL OIL 1234\nDate: 05/20/24\nPump 3\nGallons 12.401\nPrice $2.799\nThank you"
		})

		It("recognizes the receipt", func() {
			Expect(ok).To(BeTrue())
		})

		It("returns a fuel item and a total summary item", func() {
			Expect(items).To(HaveLen(2))
			Expect(items[0].Name).To(Equal("Fuel (Regular)"))
			Expect(items[1].Name).To(Equal("Total"))
		})

		It("extracts the gallons quantity", func() {
			Expect(items[0].QtyValue).To(HaveValue(BeNumerically("~", 12.401, 0.001)))
			Expect(items[0].QtyUnit).To(Equal("gal"))
		})

		It("computes the line total from gallons and price", func() {
			Expect(items[0].PriceTotal).To(HaveValue(BeNumerically("~", 34.71, 0.01)))
			Expect(items[1].PriceTotal).To(HaveValue(BeNumerically("~", 34.71, 0.01)))
		})

		It("formats the per-gallon unit price", func() {
			Expect(items[0].UnitPrice).To(HaveValue(Equal("2.799 $/gal")))
		})

		It("uses the printed date", func() {
			Expect(items[0].Date).To(Equal("2024-05-20"))
			Expect(items[1].Date).To(Equal("2024-05-20"))
		})

		It("gives the summary item no quantity", func() {
			Expect(items[1].QtyValue).To(BeNil())
			Expect(items[1].QtyUnit).To(Equal(""))
		})
	})

	When("the gallons and price share one line", func() {
		BeforeEach(func() {
			text = "Pump 3   Gallons 12.401   Price $2.799"
		})

		It("separates the two figures", func() {
			Expect(ok).To(BeTrue())
			Expect(items[0].QtyValue).To(HaveValue(BeNumerically("~", 12.401, 0.001)))
			Expect(items[0].UnitPrice).To(HaveValue(Equal("2.799 $/gal")))
		})
	})

	When("OCR dropped the gallons decimal point", func() {
		BeforeEach(func() {
			text = "Pump 2\nGallons 12401\nPrice $2.799"
		})

		It("reinterprets the bare integer", func() {
			Expect(ok).To(BeTrue())
			Expect(items[0].QtyValue).To(HaveValue(BeNumerically("~", 12.401, 0.001)))
		})
	})

	When("OCR garbled glyphs inside the price", func() {
		BeforeEach(func() {
			text = "Pump 1\nGallons 10.000\nPrice $2.7S9"
		})

		It("repairs the price token", func() {
			Expect(ok).To(BeTrue())
			Expect(items[0].UnitPrice).To(HaveValue(Equal("2.759 $/gal")))
		})
	})

	When("the only dollar amount is outside the per-gallon window", func() {
		BeforeEach(func() {
			text = "Pump 4\nGallons 10.000\nPrice $12.99"
		})

		It("does not recognize the receipt", func() {
			Expect(ok).To(BeFalse())
		})
	})

	When("gallons are missing but a printed total exists", func() {
		BeforeEach(func() {
			text = "Pump 7\nPrice $2.500\nTotal Sale $25.00"
		})

		It("derives gallons from the total", func() {
			Expect(ok).To(BeTrue())
			Expect(items[0].QtyValue).To(HaveValue(BeNumerically("~", 10.0, 0.001)))
			Expect(items[0].PriceTotal).To(HaveValue(Equal(25.0)))
		})
	})

	When("a derived gallons figure is implausible", func() {
		BeforeEach(func() {
			text = "Pump 7\nPrice $9.999\nTotal Sale $10.00"
		})

		It("does not recognize the receipt", func() {
			Expect(ok).To(BeFalse())
		})
	})

	When("no line mentions a pump or gallons", func() {
		BeforeEach(func() {
			text = "MILK 2GAL 2% 4.99\nBREAD 2.49"
		})

		It("does not recognize the receipt", func() {
			Expect(ok).To(BeFalse())
		})
	})
})
