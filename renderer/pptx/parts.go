package pptx

import "text/template"

const (
	nsA = `http://schemas.openxmlformats.org/drawingml/2006/main`
	nsR = `http://schemas.openxmlformats.org/officeDocument/2006/relationships`
	nsP = `http://schemas.openxmlformats.org/presentationml/2006/main`

	relBase = `http://schemas.openxmlformats.org/officeDocument/2006/relationships/`
	ctBase  = `application/vnd.openxmlformats-officedocument.presentationml.`
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

var funcs = template.FuncMap{"esc": escape}

var contentTypesTmpl = template.Must(template.New("ct").Funcs(funcs).Parse(xmlHeader +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Default Extension="png" ContentType="image/png"/>` +
	`<Default Extension="jpeg" ContentType="image/jpeg"/>` +
	`<Default Extension="gif" ContentType="image/gif"/>` +
	`<Override PartName="/ppt/presentation.xml" ContentType="` + ctBase + `presentation.main+xml"/>` +
	`<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="` + ctBase + `slideMaster+xml"/>` +
	`<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="` + ctBase + `slideLayout+xml"/>` +
	`<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>` +
	`{{if .HasNotes}}<Override PartName="/ppt/theme/theme2.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>` +
	`<Override PartName="/ppt/notesMasters/notesMaster1.xml" ContentType="` + ctBase + `notesMaster+xml"/>{{end}}` +
	`<Override PartName="/ppt/presProps.xml" ContentType="` + ctBase + `presProps+xml"/>` +
	`<Override PartName="/ppt/viewProps.xml" ContentType="` + ctBase + `viewProps+xml"/>` +
	`<Override PartName="/ppt/tableStyles.xml" ContentType="` + ctBase + `tableStyles+xml"/>` +
	`{{range .Slides}}<Override PartName="/ppt/slides/slide{{.Number}}.xml" ContentType="` + ctBase + `slide+xml"/>` +
	`{{if .HasNotes}}<Override PartName="/ppt/notesSlides/notesSlide{{.Number}}.xml" ContentType="` + ctBase + `notesSlide+xml"/>{{end}}{{end}}` +
	`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>` +
	`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>` +
	`</Types>`))

var rootRelsTmpl = template.Must(template.New("rels").Parse(xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="` + relBase + `officeDocument" Target="ppt/presentation.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
	`<Relationship Id="rId3" Type="` + relBase + `extended-properties" Target="docProps/app.xml"/>` +
	`</Relationships>`))

var coreTmpl = template.Must(template.New("core").Funcs(funcs).Parse(xmlHeader +
	`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" ` +
	`xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" ` +
	`xmlns:dcmitype="http://purl.org/dc/dcmitype/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
	`<dc:title>{{esc .Title}}</dc:title><dc:creator>{{esc .Author}}</dc:creator><cp:lastModifiedBy>{{esc .Author}}</cp:lastModifiedBy><cp:revision>1</cp:revision>` +
	`<dcterms:created xsi:type="dcterms:W3CDTF">{{.Created}}</dcterms:created>` +
	`<dcterms:modified xsi:type="dcterms:W3CDTF">{{.Created}}</dcterms:modified>` +
	`</cp:coreProperties>`))

var appTmpl = template.Must(template.New("app").Funcs(funcs).Parse(xmlHeader +
	`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties" ` +
	`xmlns:vt="http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes">` +
	`<Application>{{esc .Application}}</Application><PresentationFormat>On-screen Show (16:9)</PresentationFormat>` +
	`<Slides>{{len .Slides}}</Slides><Notes>{{.NotesCount}}</Notes></Properties>`))

var presentationTmpl = template.Must(template.New("presentation").Parse(xmlHeader +
	`<p:presentation xmlns:a="` + nsA + `" xmlns:r="` + nsR + `" xmlns:p="` + nsP + `" saveSubsetFonts="1">` +
	`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>` +
	`{{if .HasNotes}}<p:notesMasterIdLst><p:notesMasterId r:id="rId6"/></p:notesMasterIdLst>{{end}}` +
	`<p:sldIdLst>{{range .Slides}}<p:sldId id="{{.SldID}}" r:id="{{.RelID}}"/>{{end}}</p:sldIdLst>` +
	`<p:sldSz cx="{{.Width}}" cy="{{.Height}}"/><p:notesSz cx="6858000" cy="9144000"/>` +
	`<p:defaultTextStyle><a:defPPr><a:defRPr lang="en-US"/></a:defPPr></p:defaultTextStyle>` +
	`</p:presentation>`))

var presentationRelsTmpl = template.Must(template.New("presentationRels").Parse(xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="` + relBase + `slideMaster" Target="slideMasters/slideMaster1.xml"/>` +
	`<Relationship Id="rId2" Type="` + relBase + `theme" Target="theme/theme1.xml"/>` +
	`<Relationship Id="rId3" Type="` + relBase + `presProps" Target="presProps.xml"/>` +
	`<Relationship Id="rId4" Type="` + relBase + `viewProps" Target="viewProps.xml"/>` +
	`<Relationship Id="rId5" Type="` + relBase + `tableStyles" Target="tableStyles.xml"/>` +
	`{{if .HasNotes}}<Relationship Id="rId6" Type="` + relBase + `notesMaster" Target="notesMasters/notesMaster1.xml"/>{{end}}` +
	`{{range .Slides}}<Relationship Id="{{.RelID}}" Type="` + relBase + `slide" Target="slides/slide{{.Number}}.xml"/>{{end}}` +
	`</Relationships>`))

const presProps = xmlHeader + `<p:presentationPr xmlns:a="` + nsA + `" xmlns:r="` + nsR + `" xmlns:p="` + nsP + `"/>`

const viewProps = xmlHeader + `<p:viewPr xmlns:a="` + nsA + `" xmlns:r="` + nsR + `" xmlns:p="` + nsP + `">` +
	`<p:normalViewPr><p:restoredLeft sz="15620"/><p:restoredTop sz="94660"/></p:normalViewPr>` +
	`<p:gridSpacing cx="76200" cy="76200"/></p:viewPr>`

const tableStyles = xmlHeader + `<a:tblStyleLst xmlns:a="` + nsA + `" def="{5C22544A-7EE6-4342-B048-85BDC9FD1C3A}"/>`

const emptyTree = `<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
	`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`

const clrMap = `<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" ` +
	`accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>`

const slideMaster = xmlHeader + `<p:sldMaster xmlns:a="` + nsA + `" xmlns:r="` + nsR + `" xmlns:p="` + nsP + `">` +
	`<p:cSld><p:bg><p:bgRef idx="1001"><a:schemeClr val="bg1"/></p:bgRef></p:bg><p:spTree>` + emptyTree + `</p:spTree></p:cSld>` +
	clrMap +
	`<p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst>` +
	`<p:txStyles><p:titleStyle><a:lvl1pPr><a:defRPr sz="4400"/></a:lvl1pPr></p:titleStyle>` +
	`<p:bodyStyle><a:lvl1pPr><a:defRPr sz="1800"/></a:lvl1pPr></p:bodyStyle>` +
	`<p:otherStyle><a:lvl1pPr><a:defRPr sz="1800"/></a:lvl1pPr></p:otherStyle></p:txStyles>` +
	`</p:sldMaster>`

const slideMasterRels = xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="` + relBase + `slideLayout" Target="../slideLayouts/slideLayout1.xml"/>` +
	`<Relationship Id="rId2" Type="` + relBase + `theme" Target="../theme/theme1.xml"/>` +
	`</Relationships>`

const slideLayout = xmlHeader + `<p:sldLayout xmlns:a="` + nsA + `" xmlns:r="` + nsR + `" xmlns:p="` + nsP + `" type="blank" preserve="1">` +
	`<p:cSld name="Blank"><p:spTree>` + emptyTree + `</p:spTree></p:cSld>` +
	`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sldLayout>`

const slideLayoutRels = xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="` + relBase + `slideMaster" Target="../slideMasters/slideMaster1.xml"/>` +
	`</Relationships>`

const notesMaster = xmlHeader + `<p:notesMaster xmlns:a="` + nsA + `" xmlns:r="` + nsR + `" xmlns:p="` + nsP + `">` +
	`<p:cSld><p:bg><p:bgRef idx="1001"><a:schemeClr val="bg1"/></p:bgRef></p:bg><p:spTree>` + emptyTree + `</p:spTree></p:cSld>` +
	clrMap + `</p:notesMaster>`

const notesMasterRels = xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="` + relBase + `theme" Target="../theme/theme2.xml"/>` +
	`</Relationships>`

var themeTmpl = template.Must(template.New("theme").Funcs(funcs).Parse(xmlHeader +
	`<a:theme xmlns:a="` + nsA + `" name="{{esc .Name}}"><a:themeElements>` +
	`<a:clrScheme name="{{esc .Name}}">` +
	`<a:dk1><a:srgbClr val="{{.Colors.TextMain}}"/></a:dk1><a:lt1><a:srgbClr val="FFFFFF"/></a:lt1>` +
	`<a:dk2><a:srgbClr val="{{.Colors.Primary}}"/></a:dk2><a:lt2><a:srgbClr val="{{.Colors.BackgroundAlt}}"/></a:lt2>` +
	`<a:accent1><a:srgbClr val="{{.Colors.Accent}}"/></a:accent1><a:accent2><a:srgbClr val="{{.Colors.Secondary}}"/></a:accent2>` +
	`<a:accent3><a:srgbClr val="{{.Colors.ShapeFill}}"/></a:accent3><a:accent4><a:srgbClr val="{{.Colors.TextLight}}"/></a:accent4>` +
	`<a:accent5><a:srgbClr val="{{.Colors.Primary}}"/></a:accent5><a:accent6><a:srgbClr val="{{.Colors.Background}}"/></a:accent6>` +
	`<a:hlink><a:srgbClr val="{{.Colors.Secondary}}"/></a:hlink><a:folHlink><a:srgbClr val="{{.Colors.Primary}}"/></a:folHlink>` +
	`</a:clrScheme>` +
	`<a:fontScheme name="{{esc .Name}}">` +
	`<a:majorFont><a:latin typeface="{{esc .Fonts.Heading}}"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>` +
	`<a:minorFont><a:latin typeface="{{esc .Fonts.Main}}"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont>` +
	`</a:fontScheme>` +
	`<a:fmtScheme name="{{esc .Name}}">` +
	`<a:fillStyleLst>` + solidPh + solidPh + solidPh + `</a:fillStyleLst>` +
	`<a:lnStyleLst>` + linePh + linePh + linePh + `</a:lnStyleLst>` +
	`<a:effectStyleLst>` + effectNone + effectNone + effectNone + `</a:effectStyleLst>` +
	`<a:bgFillStyleLst>` + solidPh + solidPh + solidPh + `</a:bgFillStyleLst>` +
	`</a:fmtScheme></a:themeElements><a:objectDefaults/><a:extraClrSchemeLst/></a:theme>`))

const (
	solidPh    = `<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>`
	linePh     = `<a:ln w="6350"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>`
	effectNone = `<a:effectStyle><a:effectLst/></a:effectStyle>`
)
