package item

import (
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("BoltStore", func() {
	var (
		dbPath string
		store  *BoltStore
	)

	f := func(v float64) *float64 { return &v }

	BeforeEach(func() {
		dbPath = filepath.Join(GinkgoT().TempDir(), "test.db")
		var err error
		store, err = NewBoltStore(dbPath)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if store != nil {
			store.Close()
		}
	})

	Describe("Append", func() {
		var (
			item *Item
			err  error
		)

		BeforeEach(func() {
			item = &Item{
				Name:       "Milk 2",
				PriceTotal: f(4.99),
				Date:       "2024-06-01",
				CreatedAt:  time.Now(),
			}
		})

		JustBeforeEach(func() {
			err = store.Append(item)
		})

		When("appending succeeds", func() {
			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should assign the next sequence number as ID", func() {
				Expect(item.ID).To(Equal(uint64(1)))
			})

			It("should persist the item", func() {
				all, getErr := store.GetAll()
				Expect(getErr).NotTo(HaveOccurred())
				Expect(all).To(HaveLen(1))
				Expect(all[0].Name).To(Equal("Milk 2"))
				Expect(all[0].PriceTotal).To(HaveValue(Equal(4.99)))
			})
		})
	})

	Describe("GetAll", func() {
		When("the store is empty", func() {
			It("returns an empty list", func() {
				all, err := store.GetAll()
				Expect(err).NotTo(HaveOccurred())
				Expect(all).To(BeEmpty())
			})
		})

		When("several items were appended", func() {
			BeforeEach(func() {
				for _, name := range []string{"First", "Second", "Third"} {
					Expect(store.Append(&Item{Name: name, Date: "2024-06-01"})).To(Succeed())
				}
			})

			It("returns them in insertion order", func() {
				all, err := store.GetAll()
				Expect(err).NotTo(HaveOccurred())
				Expect(all).To(HaveLen(3))
				Expect(all[0].Name).To(Equal("First"))
				Expect(all[1].Name).To(Equal("Second"))
				Expect(all[2].Name).To(Equal("Third"))
			})

			It("assigns ascending IDs", func() {
				all, _ := store.GetAll()
				Expect(all[0].ID).To(BeNumerically("<", all[1].ID))
				Expect(all[1].ID).To(BeNumerically("<", all[2].ID))
			})
		})
	})

	Describe("History", func() {
		BeforeEach(func() {
			Expect(store.Append(&Item{Name: "Milk", Date: "2024-06-10", PriceTotal: f(5.29)})).To(Succeed())
			Expect(store.Append(&Item{Name: "Bread", Date: "2024-06-02", PriceTotal: f(2.49)})).To(Succeed())
			Expect(store.Append(&Item{Name: "Milk", Date: "2024-06-01", PriceTotal: f(4.99)})).To(Succeed())
		})

		It("returns only the matching product, ordered by date", func() {
			history, err := store.History("Milk")
			Expect(err).NotTo(HaveOccurred())
			Expect(history).To(HaveLen(2))
			Expect(history[0].Date).To(Equal("2024-06-01"))
			Expect(history[1].Date).To(Equal("2024-06-10"))
		})

		It("returns an empty list for unknown products", func() {
			history, err := store.History("Caviar")
			Expect(err).NotTo(HaveOccurred())
			Expect(history).To(BeEmpty())
		})
	})

	Describe("Names", func() {
		BeforeEach(func() {
			Expect(store.Append(&Item{Name: "Milk", Date: "2024-06-01"})).To(Succeed())
			Expect(store.Append(&Item{Name: "Bread", Date: "2024-06-01"})).To(Succeed())
			Expect(store.Append(&Item{Name: "Milk", Date: "2024-06-02"})).To(Succeed())
		})

		It("returns distinct names sorted", func() {
			names, err := store.Names()
			Expect(err).NotTo(HaveOccurred())
			Expect(names).To(Equal([]string{"Bread", "Milk"}))
		})
	})
})
