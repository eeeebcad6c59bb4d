package utils

import (
	"SaudeSync/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var (
	specialtyRule = validation.In(toInterfaces(models.Specialties)...).Error("especialidade inválida")
	statusRule    = validation.In(toInterfaces(models.ConsultationStatuses)...).Error("status inválido")
	typeRule      = validation.In(models.AppointmentPresential, models.AppointmentTelemedicine).Error("tipo de atendimento inválido")
	categoryRule  = validation.In(toInterfaces(models.FileCategories)...).Error("categoria inválida")
	leadRule      = validation.In(toInterfaces(models.LeadTypes)...).Error("tipo de lembrete inválido")
)

// ValidateConsultation checks a full consultation record, after creation defaults or a merge.
func ValidateConsultation(c models.Consultation) error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Specialty, validation.Required.Error("especialidade é obrigatória"), specialtyRule),
		validation.Field(&c.AppointmentType, typeRule),
		validation.Field(&c.Address, validation.When(c.AppointmentType != models.AppointmentTelemedicine,
			validation.Required.Error("endereço é obrigatório para consultas presenciais"))),
		validation.Field(&c.Status, validation.Required, statusRule),
		validation.Field(&c.Reminders,
			validation.Each(validation.By(reminderOf(c.ID))),
			validation.By(uniqueLeadTypes)),
	)
}

// ValidateOutcome accepts only the two terminal confirmation outcomes.
func ValidateOutcome(status models.ConsultationStatus) error {
	return validation.Validate(status,
		validation.Required,
		validation.In(models.StatusCompleted, models.StatusNoShow).Error("resultado deve ser Realizada ou Não Compareceu"),
	)
}

func ValidateLeadType(lead models.LeadType) error {
	return validation.Validate(lead, validation.Required, leadRule)
}

func ValidateCategory(category models.FileCategory) error {
	return validation.Validate(category, categoryRule)
}

func ValidateAttachedFile(f models.AttachedFile) error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&f.ConsultationID, validation.Required),
		validation.Field(&f.Category, validation.Required, categoryRule),
		validation.Field(&f.Size, validation.Min(int64(0))),
		validation.Field(&f.URL, is.RequestURI),
	)
}

func ValidateRecording(r models.Recording) error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Filename, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Duration, validation.Required),
	)
}

func ValidateMedication(m models.Medication) error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&m.Dosage, validation.Required),
		validation.Field(&m.Frequency, validation.Required),
		validation.Field(&m.ImageURL, is.RequestURI),
	)
}

// reminderOf checks a reminder belongs to the consultation and carries its derived id.
func reminderOf(consultationID string) validation.RuleFunc {
	return func(value interface{}) error {
		r, _ := value.(models.Reminder)
		return validation.ValidateStruct(&r,
			validation.Field(&r.Type, validation.Required, leadRule),
			validation.Field(&r.ID, validation.Required,
				validation.In(models.ReminderID(consultationID, r.Type)).Error("id do lembrete não corresponde à consulta")),
			validation.Field(&r.ConsultationID, validation.Required,
				validation.In(consultationID).Error("lembrete pertence a outra consulta")),
		)
	}
}

func uniqueLeadTypes(value interface{}) error {
	reminders, _ := value.([]models.Reminder)
	seen := make(map[models.LeadType]struct{}, len(reminders))
	for _, r := range reminders {
		if _, dup := seen[r.Type]; dup {
			return validation.NewError("validation_reminder_duplicate", "já existe um lembrete deste tipo")
		}
		seen[r.Type] = struct{}{}
	}
	return nil
}

func toInterfaces[T any](values []T) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
