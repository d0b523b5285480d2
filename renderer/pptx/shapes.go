package pptx

import (
	"encoding/xml"
	"fmt"
	"math"
	"strings"

	"deckforge/models"
	"deckforge/utils"
)

const (
	// SlideWidthEMU and SlideHeightEMU are the 16:9 reference slide (10 x 5.625 in)
	SlideWidthEMU  = 9144000
	SlideHeightEMU = 5143500

	emuPerPoint  = 12700
	bulletIndent = 285750
)

// units converts logical canvas units into EMU
type units struct {
	x, y float64
}

func newUnits(canvas models.Size) units {
	if canvas.W <= 0 || canvas.H <= 0 {
		canvas = models.Size{W: 960, H: 540}
	}
	return units{x: SlideWidthEMU / canvas.W, y: SlideHeightEMU / canvas.H}
}

func (u units) rect(r models.Rect) (x, y, cx, cy int64) {
	return emu(r.X * u.x), emu(r.Y * u.y), emu(r.W * u.x), emu(r.H * u.y)
}

func emu(v float64) int64 {
	return int64(math.Round(v))
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

var presets = map[models.ShapeKind]string{
	models.ShapeRect:       "rect",
	models.ShapeEllipse:    "ellipse",
	models.ShapeTriangle:   "triangle",
	models.ShapeLine:       "line",
	models.ShapeRightArrow: "rightArrow",
}

// slideWriter accumulates the shape tree of one slide
type slideWriter struct {
	b      strings.Builder
	u      units
	nextID int
	media  func(key string) (string, bool)
}

func (w *slideWriter) id() int {
	w.nextID++
	return w.nextID
}

func (w *slideWriter) xfrm(r models.Rect, rotate float64) {
	x, y, cx, cy := w.u.rect(r)
	if rotate != 0 {
		fmt.Fprintf(&w.b, `<a:xfrm rot="%d">`, int64(math.Round(rotate*60000)))
	} else {
		w.b.WriteString(`<a:xfrm>`)
	}
	fmt.Fprintf(&w.b, `<a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`, x, y, cx, cy)
}

func (w *slideWriter) color(hex string, transparency int) {
	fmt.Fprintf(&w.b, `<a:srgbClr val="%s">`, utils.HexColor(hex, "000000"))
	if transparency > 0 {
		fmt.Fprintf(&w.b, `<a:alpha val="%d"/>`, (100-clampPercent(transparency))*1000)
	}
	w.b.WriteString(`</a:srgbClr>`)
}

func clampPercent(v int) int {
	return max(0, min(100, v))
}

func (w *slideWriter) primitive(p models.Primitive) {
	switch p.Kind {
	case models.PrimitiveImage:
		w.picture(p)
	case models.PrimitiveText:
		w.shape(p, true)
	default:
		w.shape(p, false)
	}
}

func (w *slideWriter) shape(p models.Primitive, textBox bool) {
	id := w.id()
	w.b.WriteString(`<p:sp><p:nvSpPr>`)
	fmt.Fprintf(&w.b, `<p:cNvPr id="%d" name="%s %d"/>`, id, escape(p.Role), id)
	if textBox {
		w.b.WriteString(`<p:cNvSpPr txBox="1"/>`)
	} else {
		w.b.WriteString(`<p:cNvSpPr/>`)
	}
	w.b.WriteString(`<p:nvPr/></p:nvSpPr><p:spPr>`)
	w.xfrm(p.Rect, p.Rotate)

	preset := presets[p.Shape]
	if preset == "" {
		preset = "rect"
	}
	fmt.Fprintf(&w.b, `<a:prstGeom prst="%s"><a:avLst/></a:prstGeom>`, preset)

	if p.Fill != nil {
		w.b.WriteString(`<a:solidFill>`)
		w.color(p.Fill.Color, p.Fill.Transparency)
		w.b.WriteString(`</a:solidFill>`)
	} else {
		w.b.WriteString(`<a:noFill/>`)
	}

	if p.Line != nil {
		fmt.Fprintf(&w.b, `<a:ln w="%d"><a:solidFill>`, emu(p.Line.Width*emuPerPoint))
		w.color(p.Line.Color, 0)
		w.b.WriteString(`</a:solidFill></a:ln>`)
	} else {
		w.b.WriteString(`<a:ln><a:noFill/></a:ln>`)
	}

	if p.Shadow {
		w.b.WriteString(`<a:effectLst><a:outerShdw blurRad="50800" dist="25400" dir="5400000" algn="t" rotWithShape="0">` +
			`<a:srgbClr val="000000"><a:alpha val="20000"/></a:srgbClr></a:outerShdw></a:effectLst>`)
	}
	w.b.WriteString(`</p:spPr>`)

	if p.Text != nil {
		w.textBody(*p.Text)
	}
	w.b.WriteString(`</p:sp>`)
}

var anchors = map[models.VAlign]string{
	models.VAlignTop:    "t",
	models.VAlignMiddle: "ctr",
	models.VAlignBottom: "b",
}

var aligns = map[models.Align]string{
	models.AlignLeft:   "l",
	models.AlignCenter: "ctr",
	models.AlignRight:  "r",
}

func (w *slideWriter) textBody(t models.TextBlock) {
	anchor := anchors[t.Style.VAlign]
	if anchor == "" {
		anchor = "t"
	}
	fmt.Fprintf(&w.b, `<p:txBody><a:bodyPr wrap="square" lIns="91440" tIns="45720" rIns="91440" bIns="45720" anchor="%s" rtlCol="0"><a:normAutofit/></a:bodyPr><a:lstStyle/>`, anchor)

	if len(t.Paragraphs) == 0 {
		w.b.WriteString(`<a:p><a:endParaRPr lang="en-US" dirty="0"/></a:p>`)
	}
	algn := aligns[t.Style.Align]
	if algn == "" {
		algn = "l"
	}
	for _, para := range t.Paragraphs {
		w.b.WriteString(`<a:p>`)
		if para.Bullet {
			fmt.Fprintf(&w.b, `<a:pPr marL="%d" indent="-%d" algn="%s">`, bulletIndent, bulletIndent, algn)
			if t.Style.BulletColor != "" {
				w.b.WriteString(`<a:buClr>`)
				w.color(t.Style.BulletColor, 0)
				w.b.WriteString(`</a:buClr>`)
			}
			w.b.WriteString(`<a:buFont typeface="Arial"/><a:buChar char="&#8226;"/></a:pPr>`)
		} else {
			fmt.Fprintf(&w.b, `<a:pPr algn="%s"><a:buNone/></a:pPr>`, algn)
		}
		w.b.WriteString(`<a:r>`)
		w.runProps(t.Style)
		fmt.Fprintf(&w.b, `<a:t>%s</a:t></a:r></a:p>`, escape(para.Text))
	}
	w.b.WriteString(`</p:txBody>`)
}

func (w *slideWriter) runProps(s models.TextStyle) {
	fmt.Fprintf(&w.b, `<a:rPr lang="en-US" sz="%d"`, int(math.Round(s.Size*100)))
	if s.Bold {
		w.b.WriteString(` b="1"`)
	}
	w.b.WriteString(` dirty="0"><a:solidFill>`)
	w.color(s.Color, 0)
	w.b.WriteString(`</a:solidFill>`)
	if s.Font != "" {
		f := escape(s.Font)
		fmt.Fprintf(&w.b, `<a:latin typeface="%s"/><a:ea typeface="%s"/><a:cs typeface="%s"/>`, f, f, f)
	}
	w.b.WriteString(`</a:rPr>`)
}

func (w *slideWriter) picture(p models.Primitive) {
	rel, ok := w.media(p.ImageKey)
	if !ok {
		return
	}
	id := w.id()
	w.b.WriteString(`<p:pic><p:nvPicPr>`)
	fmt.Fprintf(&w.b, `<p:cNvPr id="%d" name="Picture %d"/>`, id, id)
	w.b.WriteString(`<p:cNvPicPr><a:picLocks noChangeAspect="1"/></p:cNvPicPr><p:nvPr/></p:nvPicPr>`)
	fmt.Fprintf(&w.b, `<p:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`, rel)
	w.b.WriteString(`<p:spPr>`)
	w.xfrm(p.Rect, p.Rotate)
	w.b.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`)
}

func (w *slideWriter) document(page models.Page) string {
	var out strings.Builder
	out.WriteString(xmlHeader)
	out.WriteString(`<p:sld xmlns:a="` + nsA + `" xmlns:r="` + nsR + `" xmlns:p="` + nsP + `"><p:cSld>`)
	out.WriteString(`<p:bg><p:bgPr><a:solidFill>`)
	fmt.Fprintf(&out, `<a:srgbClr val="%s"/>`, utils.HexColor(page.Background, "FFFFFF"))
	out.WriteString(`</a:solidFill><a:effectLst/></p:bgPr></p:bg><p:spTree>`)
	out.WriteString(emptyTree)
	out.WriteString(w.b.String())
	out.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)
	return out.String()
}

func notesDocument(notes string) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<p:notes xmlns:a="` + nsA + `" xmlns:r="` + nsR + `" xmlns:p="` + nsP + `"><p:cSld><p:spTree>`)
	b.WriteString(emptyTree)
	b.WriteString(`<p:sp><p:nvSpPr><p:cNvPr id="2" name="Slide Image Placeholder 1"/>` +
		`<p:cNvSpPr><a:spLocks noGrp="1" noRot="1" noChangeAspect="1"/></p:cNvSpPr><p:nvPr><p:ph type="sldImg"/></p:nvPr></p:nvSpPr><p:spPr/></p:sp>`)
	b.WriteString(`<p:sp><p:nvSpPr><p:cNvPr id="3" name="Notes Placeholder 2"/>` +
		`<p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr><p:nvPr><p:ph type="body" idx="1"/></p:nvPr></p:nvSpPr><p:spPr/>` +
		`<p:txBody><a:bodyPr/><a:lstStyle/>`)
	for _, line := range strings.Split(notes, "\n") {
		fmt.Fprintf(&b, `<a:p><a:r><a:rPr lang="en-US" dirty="0"/><a:t>%s</a:t></a:r></a:p>`, escape(line))
	}
	b.WriteString(`</p:txBody></p:sp></p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:notes>`)
	return b.String()
}
