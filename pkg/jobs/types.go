package jobs

// JobOpening is the document accepted by POST /job-openings.
type JobOpening struct {
	Position            string   `json:"position" validate:"notblank" jsonschema:"minLength=1"`
	Category            string   `json:"category" validate:"notblank" jsonschema:"minLength=1"`
	Type                string   `json:"type" validate:"notblank" jsonschema:"minLength=1"`
	Schedule            string   `json:"schedule" validate:"notblank" jsonschema:"minLength=1"`
	Location            string   `json:"location" validate:"notblank" jsonschema:"minLength=1"`
	SalaryRange         string   `json:"salaryRange" validate:"notblank" jsonschema:"minLength=1"`
	Description         string   `json:"description" validate:"notblank" jsonschema:"minLength=1"`
	KeyResponsibilities []string `json:"keyResponsibilities" validate:"required,min=1,dive,notblank" jsonschema:"minItems=1"`
	Requirements        []string `json:"requirements" validate:"required,min=1,dive,notblank" jsonschema:"minItems=1"`
	Qualifications      []string `json:"qualifications,omitempty" validate:"omitempty,dive,notblank"`
	ExperienceRequired  string   `json:"experienceRequired" validate:"notblank" jsonschema:"minLength=1"`
}

// Metadata is generated when a document is stored and never edited afterwards.
type Metadata struct {
	DocumentType string   `json:"documentType"`
	Domain       string   `json:"domain"`
	Summary      string   `json:"summary"`
	Keywords     []string `json:"keywords"`
	FilePath     string   `json:"filePath"`
}

// StoredDocument is a JobOpening as persisted by a document store.
type StoredDocument struct {
	JobOpening
	ID       string   `json:"id"`
	Metadata Metadata `json:"metadata"`
}

// Stripped returns the listing view of a stored document: the id and the
// original fields, without generated metadata.
func (d StoredDocument) Stripped() ListedDocument {
	return ListedDocument{ID: d.ID, JobOpening: d.JobOpening}
}

// ListedDocument is the element type of GET /job-openings without parameters.
type ListedDocument struct {
	JobOpening
	ID string `json:"id"`
}

// Fields returns the denormalized document fields attached to every vector record.
func (j JobOpening) Fields() map[string]any {
	fields := map[string]any{
		"position":            j.Position,
		"category":            j.Category,
		"type":                j.Type,
		"schedule":            j.Schedule,
		"location":            j.Location,
		"salaryRange":         j.SalaryRange,
		"description":         j.Description,
		"keyResponsibilities": toAny(j.KeyResponsibilities),
		"requirements":        toAny(j.Requirements),
		"experienceRequired":  j.ExperienceRequired,
	}
	if len(j.Qualifications) > 0 {
		fields["qualifications"] = toAny(j.Qualifications)
	}
	return fields
}

// toAny keeps list payloads as []any so every backend serializes them the same way.
func toAny(items []string) []any {
	out := make([]any, len(items))
	for i, s := range items {
		out[i] = s
	}
	return out
}
