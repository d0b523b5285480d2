package pptx

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"text/template"
	"time"

	"deckforge/models"
	"deckforge/theme"
)

// Renderer writes a plan as an Office Open XML presentation
type Renderer struct {
	Application string
	Author      string
	Now         func() time.Time
}

// NewRenderer returns a renderer stamping documents with the given application name
func NewRenderer(application string) *Renderer {
	return &Renderer{Application: application, Author: application, Now: time.Now}
}

// Format implements the export renderer contract
func (r *Renderer) Format() models.Format {
	return models.FormatPPTX
}

type slideRef struct {
	Number   int
	SldID    int
	RelID    string
	HasNotes bool
}

type packageData struct {
	Title       string
	Author      string
	Application string
	Created     string
	Width       int
	Height      int
	HasNotes    bool
	NotesCount  int
	Slides      []slideRef
}

// Render builds the presentation archive in memory. Every page becomes one
// slide; images missing from assets are skipped.
func (r *Renderer) Render(ctx context.Context, plan models.Plan, assets models.Assets) ([]byte, error) {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	data := packageData{
		Title:       plan.Title,
		Author:      r.Author,
		Application: r.Application,
		Created:     now().UTC().Format(time.RFC3339),
		Width:       SlideWidthEMU,
		Height:      SlideHeightEMU,
	}
	for i, page := range plan.Pages {
		ref := slideRef{Number: i + 1, SldID: 256 + i, RelID: fmt.Sprintf("rId%d", 10+i), HasNotes: page.Notes != ""}
		if ref.HasNotes {
			data.HasNotes = true
			data.NotesCount++
		}
		data.Slides = append(data.Slides, ref)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	pw := &partWriter{zw: zw}

	pw.template("[Content_Types].xml", contentTypesTmpl, data)
	pw.template("_rels/.rels", rootRelsTmpl, data)
	pw.template("docProps/core.xml", coreTmpl, data)
	pw.template("docProps/app.xml", appTmpl, data)
	pw.template("ppt/presentation.xml", presentationTmpl, data)
	pw.template("ppt/_rels/presentation.xml.rels", presentationRelsTmpl, data)
	pw.raw("ppt/presProps.xml", presProps)
	pw.raw("ppt/viewProps.xml", viewProps)
	pw.raw("ppt/tableStyles.xml", tableStyles)
	pw.raw("ppt/slideMasters/slideMaster1.xml", slideMaster)
	pw.raw("ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRels)
	pw.raw("ppt/slideLayouts/slideLayout1.xml", slideLayout)
	pw.raw("ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRels)
	pw.template("ppt/theme/theme1.xml", themeTmpl, themeData(plan))
	if data.HasNotes {
		pw.template("ppt/theme/theme2.xml", themeTmpl, themeData(plan))
		pw.raw("ppt/notesMasters/notesMaster1.xml", notesMaster)
		pw.raw("ppt/notesMasters/_rels/notesMaster1.xml.rels", notesMasterRels)
	}

	media := newMediaStore(assets)
	for i, page := range plan.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n := i + 1
		rels := &relationships{}
		rels.add(relBase+"slideLayout", "../slideLayouts/slideLayout1.xml")
		sw := &slideWriter{u: newUnits(plan.Canvas), nextID: 1}
		sw.media = func(key string) (string, bool) {
			name, ok := media.part(key)
			if !ok {
				return "", false
			}
			return rels.add(relBase+"image", "../media/"+name), true
		}
		for _, prim := range page.Primitives {
			sw.primitive(prim)
		}
		if page.Notes != "" {
			rels.add(relBase+"notesSlide", fmt.Sprintf("../notesSlides/notesSlide%d.xml", n))
			pw.raw(fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", n), notesDocument(page.Notes))
			notesRels := &relationships{}
			notesRels.add(relBase+"notesMaster", "../notesMasters/notesMaster1.xml")
			notesRels.add(relBase+"slide", fmt.Sprintf("../slides/slide%d.xml", n))
			pw.raw(fmt.Sprintf("ppt/notesSlides/_rels/notesSlide%d.xml.rels", n), notesRels.document())
		}
		pw.raw(fmt.Sprintf("ppt/slides/slide%d.xml", n), sw.document(page))
		pw.raw(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), rels.document())
	}

	for _, m := range media.parts {
		pw.bytes("ppt/media/"+m.name, m.data)
	}

	if pw.err != nil {
		return nil, fmt.Errorf("write pptx part: %w", pw.err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close pptx archive: %w", err)
	}
	return buf.Bytes(), nil
}

func themeData(plan models.Plan) models.Theme {
	return theme.Complete(plan.Theme)
}

// partWriter keeps the first error so the part list reads top to bottom
type partWriter struct {
	zw  *zip.Writer
	err error
}

func (p *partWriter) create(name string) io.Writer {
	if p.err != nil {
		return nil
	}
	w, err := p.zw.Create(name)
	if err != nil {
		p.err = err
		return nil
	}
	return w
}

func (p *partWriter) template(name string, t *template.Template, data any) {
	if w := p.create(name); w != nil {
		if err := t.Execute(w, data); err != nil {
			p.err = fmt.Errorf("%s: %w", name, err)
		}
	}
}

func (p *partWriter) raw(name, content string) {
	p.bytes(name, []byte(content))
}

func (p *partWriter) bytes(name string, content []byte) {
	if w := p.create(name); w != nil {
		if _, err := w.Write(content); err != nil {
			p.err = fmt.Errorf("%s: %w", name, err)
		}
	}
}

type relationship struct {
	id, typ, target string
}

type relationships struct {
	items []relationship
}

func (r *relationships) add(typ, target string) string {
	for _, it := range r.items {
		if it.typ == typ && it.target == target {
			return it.id
		}
	}
	id := fmt.Sprintf("rId%d", len(r.items)+1)
	r.items = append(r.items, relationship{id: id, typ: typ, target: target})
	return id
}

func (r *relationships) document() string {
	var b bytes.Buffer
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for _, it := range r.items {
		fmt.Fprintf(&b, `<Relationship Id="%s" Type="%s" Target="%s"/>`, it.id, it.typ, escape(it.target))
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

type mediaPart struct {
	name string
	data []byte
}

// mediaStore embeds each asset once no matter how many slides use it
type mediaStore struct {
	assets models.Assets
	names  map[string]string
	parts  []mediaPart
}

func newMediaStore(assets models.Assets) *mediaStore {
	return &mediaStore{assets: assets, names: map[string]string{}}
}

func (m *mediaStore) part(key string) (string, bool) {
	if name, ok := m.names[key]; ok {
		return name, true
	}
	if !m.assets.Has(key) {
		return "", false
	}
	payload := m.assets[key]
	name := fmt.Sprintf("image%d.%s", len(m.parts)+1, payload.Extension())
	m.names[key] = name
	m.parts = append(m.parts, mediaPart{name: name, data: payload.Data})
	return name, true
}
