// Package facturx provides assembly of the final Factur-X artifact: the
// rendered PDF with the CII XML embedded as factur-x.xml plus the XMP
// metadata readers use to discover it.
package facturx

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/7g2dvxmw94-gif/facturx-engine/internal/service/modelinvoice"
)

// AttachmentName is the standardized embedded file name of the CII XML.
const AttachmentName = "factur-x.xml"

const producerName = "Factur-X Engine"

const xmpTemplate = `<?xpacket begin="" id="W5M0MpCehiHzreSzNTczkc9d"?>
<x:xmpmeta xmlns:x="adobe:ns:meta/">
  <rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
    <rdf:Description rdf:about="" xmlns:pdfaid="http://www.aiim.org/pdfa/ns/id/">
      <pdfaid:part>3</pdfaid:part>
      <pdfaid:conformance>B</pdfaid:conformance>
    </rdf:Description>
    <rdf:Description rdf:about="" xmlns:dc="http://purl.org/dc/elements/1.1/">
      <dc:title><rdf:Alt><rdf:li xml:lang="x-default">%s</rdf:li></rdf:Alt></dc:title>
      <dc:creator><rdf:Seq><rdf:li>%s</rdf:li></rdf:Seq></dc:creator>
    </rdf:Description>
    <rdf:Description rdf:about="" xmlns:fx="urn:factur-x:pdfa:CrossIndustryDocument:invoice:1p0#">
      <fx:DocumentType>INVOICE</fx:DocumentType>
      <fx:DocumentFileName>%s</fx:DocumentFileName>
      <fx:Version>1.0</fx:Version>
      <fx:ConformanceLevel>EXTENDED</fx:ConformanceLevel>
    </rdf:Description>
  </rdf:RDF>
</x:xmpmeta>
<?xpacket end="w"?>`

// Build embeds the CII XML into the rendered document, sets the document
// information and XMP metadata, and returns the serialized artifact.
func Build(doc *fpdf.Fpdf, xml []byte, invoice modelinvoice.Invoice) ([]byte, error) {
	docTitle := "Facture " + invoice.InvoiceNumber
	if invoice.IsCreditNote() {
		docTitle = "Avoir " + invoice.InvoiceNumber
	}
	doc.SetTitle(docTitle, true)
	doc.SetAuthor(producerName, true)
	doc.SetSubject("Facture electronique Factur-X", true)
	doc.SetKeywords("Factur-X, EN16931", true)
	doc.SetCreator(producerName, true)
	doc.SetAttachments([]fpdf.Attachment{
		{
			Content:     xml,
			Filename:    AttachmentName,
			Description: "Factur-X/CII invoice data",
		},
	})
	doc.SetXmpMetadata([]byte(fmt.Sprintf(xmpTemplate, docTitle, producerName, AttachmentName)))

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
