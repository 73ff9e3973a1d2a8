package models

// Creative is an advertising artifact submitted for compliance review.
// Any combination of text and one attachment (image or PDF) is allowed.
type Creative struct {
	Text      string
	ImageData []byte // raw JPEG/PNG payload, nil when absent
	PDFData   []byte // raw PDF payload, nil when absent
	PDFName   string // original filename of the PDF attachment
}

// IsEmpty reports whether the creative carries no content at all.
func (c Creative) IsEmpty() bool {
	return c.Text == "" && len(c.ImageData) == 0 && len(c.PDFData) == 0
}

// HasAttachment reports whether the creative carries a file payload.
func (c Creative) HasAttachment() bool {
	return len(c.ImageData) > 0 || len(c.PDFData) > 0
}
