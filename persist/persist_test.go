package persist

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/relaysim/circuit"
	"github.com/sarchlab/relaysim/component"
	"github.com/sarchlab/relaysim/ident"
)

func marshalSchema(schema docSchema) []byte {
	data, err := json.Marshal(schema)
	Expect(err).NotTo(HaveOccurred())
	return data
}

func buildSampleDoc() *circuit.Document {
	doc := circuit.NewDocument(SchemaVersion)
	reg := doc.Registry
	page := circuit.NewPage(reg.New(), "Page 1")
	doc.AddPage(page)

	vccID := reg.New()
	vccPinID, vccTabID := reg.New(), reg.New()
	vcc := component.NewVCC(vccID, vccPinID, vccTabID)
	page.AddComponent(vcc)

	indID := reg.New()
	indPinID, indTabID := reg.New(), reg.New()
	ind := component.NewIndicator(indID, indPinID, indTabID)
	page.AddComponent(ind)

	page.AddWire(&circuit.Wire{ID: reg.New(), StartID: vccTabID, EndID: indTabID})
	return doc
}

var _ = Describe("round-trip", func() {
	It("preserves every identifier through Save then Load", func() {
		doc := buildSampleDoc()
		data, err := Save(doc)
		Expect(err).NotTo(HaveOccurred())

		reloaded, err := Load(data)
		Expect(err).NotTo(HaveOccurred())

		Expect(reloaded.Version).To(Equal(doc.Version))
		Expect(reloaded.Pages).To(HaveLen(1))
		Expect(reloaded.Pages[0].ID).To(Equal(doc.Pages[0].ID))
		Expect(reloaded.Pages[0].Components).To(HaveLen(2))
		Expect(reloaded.Pages[0].Wires).To(HaveLen(1))

		origIDs := make(map[ident.ID]bool)
		for _, c := range doc.Pages[0].Components {
			origIDs[c.ID()] = true
		}
		for _, c := range reloaded.Pages[0].Components {
			Expect(origIDs).To(HaveKey(c.ID()))
		}
	})

	It("round-trips a Thumbwheel's bus wiring configuration", func() {
		doc := circuit.NewDocument(SchemaVersion)
		reg := doc.Registry
		page := circuit.NewPage(reg.New(), "Page 1")
		doc.AddPage(page)

		twID := reg.New()
		pinIDs := make([]ident.ID, 3)
		tabIDs := make([]ident.ID, 3)
		for i := range pinIDs {
			pinIDs[i], tabIDs[i] = reg.New(), reg.New()
		}
		tw := component.NewThumbwheel(twID, pinIDs, tabIDs, 4, 0.5, "BUS")
		page.AddComponent(tw)

		data, err := Save(doc)
		Expect(err).NotTo(HaveOccurred())
		reloaded, err := Load(data)
		Expect(err).NotTo(HaveOccurred())

		got, ok := reloaded.Pages[0].Components[0].(*component.Thumbwheel)
		Expect(ok).To(BeTrue())
		Expect(got.BusName).To(Equal("BUS"))
		Expect(got.StartPin).To(Equal(4))
		Expect(got.PinSpacing).To(Equal(0.5))
	})
})

var _ = Describe("version compatibility", func() {
	It("accepts a matching major version and rejects a mismatched one", func() {
		Expect(checkVersionCompatible("1.2.3")).To(Succeed())
		Expect(checkVersionCompatible("2.0.0")).To(HaveOccurred())
		Expect(checkVersionCompatible("")).To(HaveOccurred())
	})
})

var _ = Describe("identifier uniqueness", func() {
	It("rejects a document with a duplicate component id", func() {
		schema := docSchema{
			Version: SchemaVersion,
			Pages: []pageSchema{{
				PageID: "aaaaaaaa",
				Name:   "Page 1",
				Components: []componentSchema{
					{
						ComponentID: "bbbbbbbb",
						Type:        component.TypeVCC,
						Pins:        []pinSchema{{PinID: "cccccccc", Tabs: []tabSchema{{TabID: "dddddddd"}}}},
					},
					{
						ComponentID: "bbbbbbbb",
						Type:        component.TypeIndicator,
						Pins:        []pinSchema{{PinID: "eeeeeeee", Tabs: []tabSchema{{TabID: "ffffffff"}}}},
					},
				},
			}},
		}
		data := marshalSchema(schema)
		_, err := Load(data)
		Expect(err).To(HaveOccurred())
	})
})
