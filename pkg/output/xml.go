package output

import (
	"io"
	"strconv"

	"github.com/arthur-debert/filemap/pkg/manifest"
	"github.com/beevik/etree"
)

// XML renders the manifest as <file> and <dir> elements under <manifest>
type XML struct {
	w io.Writer
}

// NewXML creates an XML renderer
func NewXML(w io.Writer) *XML {
	return &XML{w: w}
}

// Document builds the etree document for m
func (r *XML) Document(m *manifest.Manifest) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("manifest")
	root.CreateAttr("entries", strconv.Itoa(m.Len()))
	for _, e := range m.Entries() {
		tag := "file"
		if e.Dir {
			tag = "dir"
		}
		el := root.CreateElement(tag)
		el.CreateAttr("destination", e.Destination)
		el.CreateAttr("source", e.Source)
	}
	doc.Indent(2)
	return doc
}

func (r *XML) Render(m *manifest.Manifest) error {
	if _, err := r.Document(m).WriteTo(r.w); err != nil {
		return renderError(err, FormatXML)
	}
	return nil
}
