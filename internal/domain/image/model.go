package image

import "time"

// Image is the metadata record for one stored upload. Path is the
// generated on-disk name inside the upload directory, which is also the
// public download name.
type Image struct {
	ID         string    `json:"id"`
	ConcernID  *string   `json:"concernId"`
	CallDocID  *string   `json:"callDocId"`
	Filename   string    `json:"filename"`
	Mimetype   string    `json:"mimetype"`
	Size       int64     `json:"size"`
	Path       string    `json:"path"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Filter narrows a listing. Nil fields match everything; set fields
// must all match.
type Filter struct {
	ConcernID *string
	CallDocID *string
}
