package models

import (
	"time"
)

// FileCategory classifies an attached document.
type FileCategory string

const (
	CategoryPrescription FileCategory = "receita"
	CategoryExam         FileCategory = "exame"
	CategoryReport       FileCategory = "laudo"
	CategoryRequest      FileCategory = "solicitacao"
	CategoryOther        FileCategory = "outro"
)

// FileCategories lists every valid category.
var FileCategories = []FileCategory{
	CategoryPrescription,
	CategoryExam,
	CategoryReport,
	CategoryRequest,
	CategoryOther,
}

// Recording model
type Recording struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Duration  string    `json:"duration"`
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
}

func (r Recording) GetID() string { return r.ID }

type RecordingPatch struct {
	Filename *string `json:"filename,omitempty"`
	Duration *string `json:"duration,omitempty"`
	User     *string `json:"user,omitempty"`
}

func (p RecordingPatch) Apply(r *Recording) {
	if p.Filename != nil {
		r.Filename = *p.Filename
	}
	if p.Duration != nil {
		r.Duration = *p.Duration
	}
	if p.User != nil {
		r.User = *p.User
	}
}

// AttachedFile model. ConsultationID may point at a deleted consultation.
type AttachedFile struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Type           string       `json:"type"`
	Size           int64        `json:"size"`
	URL            string       `json:"url"`
	UploadDate     time.Time    `json:"uploadDate"`
	ConsultationID string       `json:"consultationId"`
	Category       FileCategory `json:"category"`
}

func (f AttachedFile) GetID() string { return f.ID }

type AttachedFilePatch struct {
	Name     *string       `json:"name,omitempty"`
	Category *FileCategory `json:"category,omitempty"`
}

func (p AttachedFilePatch) Apply(f *AttachedFile) {
	if p.Name != nil {
		f.Name = *p.Name
	}
	if p.Category != nil {
		f.Category = *p.Category
	}
}

// Medication model
type Medication struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Dosage    string    `json:"dosage"`
	Frequency string    `json:"frequency"`
	Notes     string    `json:"notes,omitempty"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (m Medication) GetID() string { return m.ID }

type MedicationPatch struct {
	Name      *string `json:"name,omitempty"`
	Dosage    *string `json:"dosage,omitempty"`
	Frequency *string `json:"frequency,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	ImageURL  *string `json:"imageUrl,omitempty"`
}

func (p MedicationPatch) Apply(m *Medication) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Dosage != nil {
		m.Dosage = *p.Dosage
	}
	if p.Frequency != nil {
		m.Frequency = *p.Frequency
	}
	if p.Notes != nil {
		m.Notes = *p.Notes
	}
	if p.ImageURL != nil {
		m.ImageURL = *p.ImageURL
	}
}
