package fakedata_test

import (
	"encoding/json"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	fakedata "github.com/goliatone/go-fakedata"
)

func fixedTables() map[string]*fakedata.LocaleTable {
	return map[string]*fakedata.LocaleTable{
		"default": {
			Formats: map[string][]string{
				"full_name": {"{first_name} {last_name}"},
				"email":     {"{first_name:lower}.{last_name:lower}@example.com"},
			},
			Pools: map[string]fakedata.Pool{
				"first_name": {Values: []string{"Ann"}},
				"last_name":  {Values: []string{"Lee"}},
				"city":       {Values: []string{"Springfield"}},
			},
		},
		"ru": {
			Fallback: "default",
			Pools: map[string]fakedata.Pool{
				"first_name": {Values: []string{"Ликид"}},
				"last_name":  {Values: []string{"Геимфари"}},
			},
		},
	}
}

var _ = ginkgo.Describe("Generator", func() {
	var gen *fakedata.Generator

	ginkgo.BeforeEach(func() {
		cfg, err := fakedata.NewConfig(
			fakedata.WithSource(fakedata.NewMapSource(fixedTables())),
			fakedata.WithDefaultLocale("default"),
			fakedata.WithSeed(1),
		)
		gomega.Expect(err).To(gomega.Succeed())
		gen, err = cfg.BuildGenerator()
		gomega.Expect(err).To(gomega.Succeed())
	})

	ginkgo.It("resolves nested formats against the requested locale", func() {
		gomega.Expect(gen.Generate("full_name", "default", nil)).To(gomega.Equal("Ann Lee"))
		gomega.Expect(gen.Generate("full_name", "ru", nil)).To(gomega.Equal("Ликид Геимфари"))
	})

	ginkgo.It("falls back to the default locale for missing keys", func() {
		gomega.Expect(gen.Generate("city", "ru", nil)).To(gomega.Equal("Springfield"))
	})

	ginkgo.It("romanizes on request", func() {
		gomega.Expect(gen.Generate("full_name", "ru", fakedata.Params{"romanize": "true"})).
			To(gomega.Equal("Likid Geimfari"))
	})

	ginkgo.It("applies category post processing", func() {
		gomega.Expect(gen.Generate("email", "default", fakedata.Params{"case": "upper"})).
			To(gomega.Equal("ANN.LEE@EXAMPLE.COM"))
	})

	ginkgo.It("reports unknown categories", func() {
		_, err := gen.Generate("spaceship", "default", nil)
		gomega.Expect(err).To(gomega.MatchError(fakedata.ErrUnknownCategory))
	})

	ginkgo.Describe("structured records", func() {
		spec := fakedata.Spec{
			{Name: "name", Category: "full_name"},
			{Name: "city", Category: "city"},
			{Name: "email", Category: "email"},
		}

		ginkgo.It("keeps the field order of the field list", func() {
			record, err := gen.Build(spec, "default")
			gomega.Expect(err).To(gomega.Succeed())
			gomega.Expect(record.Fields()).To(gomega.Equal([]string{"name", "city", "email"}))

			data, err := json.Marshal(record)
			gomega.Expect(err).To(gomega.Succeed())
			gomega.Expect(string(data)).To(gomega.Equal(
				`{"name":"Ann Lee","city":"Springfield","email":"ann.lee@example.com"}`))
		})

		ginkgo.It("returns no record when a field fails", func() {
			broken := append(fakedata.Spec{}, spec...)
			broken = append(broken, fakedata.Field{Name: "ship", Category: "spaceship"})

			record, err := gen.Build(broken, "default")
			gomega.Expect(record).To(gomega.BeNil())

			var fieldErr *fakedata.FieldError
			gomega.Expect(err).To(gomega.BeAssignableToTypeOf(fieldErr))
			gomega.Expect(err).To(gomega.MatchError(fakedata.ErrUnknownCategory))
			gomega.Expect(err.(*fakedata.FieldError).Field).To(gomega.Equal("ship"))
		})

		ginkgo.It("builds batches", func() {
			records, err := gen.BuildMany(spec, "ru", 3)
			gomega.Expect(err).To(gomega.Succeed())
			gomega.Expect(records).To(gomega.HaveLen(3))
			for _, record := range records {
				city, ok := record.Get("city")
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(city).To(gomega.Equal("Springfield"))
			}
		})
	})
})
