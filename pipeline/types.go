package pipeline

import "github.com/autou/mailtriage/classifier"

// Submission is the inbound descriptor handed over by the routing
// layer: either an uploaded file (Filename + FileData) or inline text,
// never both.
type Submission struct {
	Filename   string
	FileData   []byte
	InlineText string
}

// HasFile reports whether the submission carries an uploaded file.
func (s Submission) HasFile() bool {
	return s.Filename != "" && len(s.FileData) > 0
}

// Result is the immutable outcome of a completed pipeline run.
type Result struct {
	RunID        string
	OriginalText string
	Category     classifier.Category
	Reply        string
}
