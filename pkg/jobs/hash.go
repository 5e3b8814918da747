package jobs

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// ContentHash returns the sha256 digest of the document's canonical JSON form,
// hex encoded. It identifies the document in every store.
func ContentHash(j JobOpening) (string, error) {
	data, err := json.Marshal(j.canonical())
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// canonical drops the distinction between a missing and an empty qualifications list.
func (j JobOpening) canonical() JobOpening {
	if len(j.Qualifications) == 0 {
		j.Qualifications = nil
	}
	return j
}
