package requests

import "io"

type UploadAttachment struct {
	MedicalRecordID string `validate:"required,uuid"`
	FileName        string `validate:"required,max=255"`
	ContentType     string
	Size            int64 `validate:"gt=0"`
	Content         io.Reader
}
