package utils

import (
	"clinic-admin-service/internal/pkg/constvars"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

func GenerateID() string {
	return uuid.NewString()
}

// GenerateAttachmentObjectName builds medical-records/<record id>/<uuid>-<file name>.
func GenerateAttachmentObjectName(medicalRecordID, fileName string) string {
	return fmt.Sprintf("%s/%s-%s", AttachmentPrefix(medicalRecordID), uuid.NewString(), SanitizeFileName(fileName))
}

func AttachmentPrefix(medicalRecordID string) string {
	return fmt.Sprintf("%s/%s", constvars.MinioMedicalRecordPrefix, medicalRecordID)
}

// AttachmentFileName strips the prefix and the generated uuid from an object name.
func AttachmentFileName(objectName string) string {
	base := path.Base(objectName)
	if len(base) > 37 && base[36] == '-' {
		if _, err := uuid.Parse(base[:36]); err == nil {
			return base[37:]
		}
	}
	return base
}

func SanitizeFileName(fileName string) string {
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" || base == "." || base == "/" {
		return "file"
	}
	return base
}
