package pdf

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"math"
	"strconv"
	"strings"

	"deckforge/models"
	"deckforge/utils"
)

// pxPerInch is the CSS reference resolution the page document is laid out in
const pxPerInch = 96.0

var documentTmpl = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
@page { size: {{.PaperW}}in {{.PaperH}}in; margin: 0; }
html, body { margin: 0; padding: 0; background: #FFFFFF; }
.page { position: relative; width: {{.PageW}}px; height: {{.PageH}}px; overflow: hidden; break-after: page; page-break-after: always; }
.page:last-child { break-after: auto; page-break-after: auto; }
.prim { position: absolute; box-sizing: border-box; margin: 0; }
.text { display: flex; flex-direction: column; padding: 4.8px 9.6px; overflow: hidden; white-space: pre-wrap; overflow-wrap: break-word; line-height: 1.2; }
.text p { margin: 0 0 0.2em 0; }
.text p.bullet { padding-left: 0.3in; text-indent: -0.3in; }
.text .dot { display: inline-block; width: 0.3in; text-indent: 0; }
img.prim { object-fit: fill; }
</style>
</head>
<body>
{{range .Pages}}<section class="page" data-kind="{{.Kind}}" data-slide="{{.SlideID}}" style="{{.Style}}">
{{range .Items}}{{if .Src}}<img class="prim" data-role="{{.Role}}" src="{{.Src}}" style="{{.Style}}" alt="">
{{else}}<div class="prim{{if .Text}} text{{end}}" data-role="{{.Role}}" style="{{.Style}}">{{range .Paras}}<p{{if .Bullet}} class="bullet"{{end}}>{{if .Bullet}}<span class="dot" style="{{.DotStyle}}">&#8226;</span>{{end}}{{.Text}}</p>{{end}}</div>
{{end}}{{end}}</section>
{{end}}</body>
</html>
`))

type documentView struct {
	Title  string
	PaperW template.CSS
	PaperH template.CSS
	PageW  template.CSS
	PageH  template.CSS
	Pages  []pageView
}

type pageView struct {
	Kind    models.PageKind
	SlideID string
	Style   template.CSS
	Items   []itemView
}

type itemView struct {
	Role  string
	Style template.CSS
	Src   template.URL
	Text  bool
	Paras []paraView
}

type paraView struct {
	Text     string
	Bullet   bool
	DotStyle template.CSS
}

// Paper is the printed page size in inches
type Paper struct {
	Width  float64
	Height float64
}

// Pixels returns the paper size in CSS pixels
func (p Paper) Pixels() (int64, int64) {
	return int64(p.Width*pxPerInch + 0.5), int64(p.Height*pxPerInch + 0.5)
}

// PaperFor maps the plan canvas onto paper at one unit per CSS pixel
func PaperFor(canvas models.Size) Paper {
	if canvas.W <= 0 || canvas.H <= 0 {
		canvas = models.Size{W: 960, H: 540}
	}
	return Paper{Width: canvas.W / pxPerInch, Height: canvas.H / pxPerInch}
}

// Document renders the plan as a self-contained HTML page document, one
// section per page, with images inlined as data URIs.
func Document(ctx context.Context, plan models.Plan, assets models.Assets) (string, error) {
	paper := PaperFor(plan.Canvas)
	pw, ph := paper.Pixels()
	view := documentView{
		Title:  plan.Title,
		PaperW: template.CSS(num(paper.Width)),
		PaperH: template.CSS(num(paper.Height)),
		PageW:  template.CSS(strconv.FormatInt(pw, 10)),
		PageH:  template.CSS(strconv.FormatInt(ph, 10)),
	}
	for _, page := range plan.Pages {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		pv := pageView{
			Kind:    page.Kind,
			SlideID: page.SlideID,
			Style:   template.CSS("background:" + utils.CSSColor(page.Background, 0)),
		}
		for _, prim := range page.Primitives {
			if item, ok := primitiveView(prim, assets); ok {
				pv.Items = append(pv.Items, item)
			}
		}
		view.Pages = append(view.Pages, pv)
	}

	var buf bytes.Buffer
	if err := documentTmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render page document: %w", err)
	}
	return buf.String(), nil
}

func primitiveView(p models.Primitive, assets models.Assets) (itemView, bool) {
	item := itemView{Role: p.Role}
	css := &cssBuilder{}
	css.box(p.Rect)
	if p.Rotate != 0 {
		css.set("transform", "rotate("+num(p.Rotate)+"deg)")
	}
	if p.Shadow {
		css.set("box-shadow", "0 2px 4px rgba(0,0,0,0.2)")
	}

	if p.Kind == models.PrimitiveImage {
		if !assets.Has(p.ImageKey) {
			return item, false
		}
		payload := assets[p.ImageKey]
		item.Src = template.URL("data:" + payload.MIME + ";base64," + base64.StdEncoding.EncodeToString(payload.Data))
		item.Style = css.css()
		return item, true
	}

	if p.Kind == models.PrimitiveShape {
		shapeCSS(css, p)
	} else if p.Fill != nil {
		css.set("background", utils.CSSColor(p.Fill.Color, p.Fill.Transparency))
	}

	if p.Text != nil {
		item.Text = true
		textCSS(css, p.Text.Style)
		dot := ""
		if c := p.Text.Style.BulletColor; c != "" {
			dot = "color:" + utils.CSSColor(c, 0)
		}
		for _, para := range p.Text.Paragraphs {
			item.Paras = append(item.Paras, paraView{Text: para.Text, Bullet: para.Bullet, DotStyle: template.CSS(dot)})
		}
	}
	item.Style = css.css()
	return item, true
}

var clipPaths = map[models.ShapeKind]string{
	models.ShapeTriangle:   "polygon(50% 0, 100% 100%, 0 100%)",
	models.ShapeRightArrow: "polygon(0 25%, 60% 25%, 60% 0, 100% 50%, 60% 100%, 60% 75%, 0 75%)",
}

func shapeCSS(css *cssBuilder, p models.Primitive) {
	if p.Shape == models.ShapeLine {
		css.set("height", "0")
		if p.Line != nil {
			css.set("border-top", num(p.Line.Width)+"pt solid "+utils.CSSColor(p.Line.Color, 0))
		}
		return
	}
	if p.Fill != nil {
		css.set("background", utils.CSSColor(p.Fill.Color, p.Fill.Transparency))
	}
	if p.Line != nil {
		css.set("border", num(p.Line.Width)+"pt solid "+utils.CSSColor(p.Line.Color, 0))
	}
	if p.Shape == models.ShapeEllipse {
		css.set("border-radius", "50%")
	}
	if clip, ok := clipPaths[p.Shape]; ok {
		css.set("clip-path", clip)
	}
}

var justify = map[models.VAlign]string{
	models.VAlignTop:    "flex-start",
	models.VAlignMiddle: "center",
	models.VAlignBottom: "flex-end",
}

func textCSS(css *cssBuilder, s models.TextStyle) {
	if f := fontFamily(s.Font); f != "" {
		css.set("font-family", "'"+f+"', sans-serif")
	}
	css.set("font-size", num(s.Size)+"pt")
	if s.Bold {
		css.set("font-weight", "700")
	}
	css.set("color", utils.CSSColor(s.Color, 0))
	align := string(s.Align)
	if align == "" {
		align = string(models.AlignLeft)
	}
	css.set("text-align", align)
	j := justify[s.VAlign]
	if j == "" {
		j = "flex-start"
	}
	css.set("justify-content", j)
}

// fontFamily keeps only characters that are safe inside a quoted CSS family name
func fontFamily(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ', r == '-', r == '_':
			return r
		}
		return -1
	}, strings.TrimSpace(name))
}

type cssBuilder struct {
	b strings.Builder
}

func (c *cssBuilder) set(prop, value string) {
	c.b.WriteString(prop)
	c.b.WriteByte(':')
	c.b.WriteString(value)
	c.b.WriteByte(';')
}

func (c *cssBuilder) box(r models.Rect) {
	c.set("left", num(r.X)+"px")
	c.set("top", num(r.Y)+"px")
	c.set("width", num(r.W)+"px")
	c.set("height", num(r.H)+"px")
}

func (c *cssBuilder) css() template.CSS {
	return template.CSS(c.b.String())
}

func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
