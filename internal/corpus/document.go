package corpus

// Document is a finite corpus member (spec §3's DocId is the opaque
// identifier; Document is the richer container document acquisition
// collaborators hand to the indexer).
type Document struct {
	ID   string `xml:"-" json:"id"`
	Text string `xml:"abstract" json:"text"`
}
