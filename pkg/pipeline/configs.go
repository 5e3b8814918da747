package pipeline

const (
	DefaultIndexName  = "job-openings"
	DefaultCandidateK = 20
)

type Config struct {
	// IndexName is the vector index every document is written to.
	IndexName string `koanf:"index_name" validate:"required"`

	// CandidateK is how many chunk hits QueryDocuments fetches before
	// collapsing them to one hit per document.
	CandidateK int `koanf:"candidate_k" validate:"gt=0"`
}

func DefaultConfig() Config {
	return Config{
		IndexName:  DefaultIndexName,
		CandidateK: DefaultCandidateK,
	}
}
