package diag

import (
	"fmt"

	"github.com/tidwall/sjson"
)

// ToJSON encodes every diagnostic in the bag as a JSON array of
// objects, for editor/tooling integration (spec §6 names the plain-text
// format as the only *wire* format for diagnostics; this is an
// additional, ambient export alongside it, not a replacement).
func (b *Bag) ToJSON() (string, error) {
	payload := "[]"
	var err error
	for i, d := range b.All() {
		prefix := fmt.Sprintf("%d.", i)
		payload, err = sjson.Set(payload, prefix+"file", d.File)
		if err != nil {
			return "", err
		}
		payload, err = sjson.Set(payload, prefix+"line", d.Pos.Line)
		if err != nil {
			return "", err
		}
		payload, err = sjson.Set(payload, prefix+"column", d.Pos.Column)
		if err != nil {
			return "", err
		}
		payload, err = sjson.Set(payload, prefix+"severity", d.Severity.String())
		if err != nil {
			return "", err
		}
		payload, err = sjson.Set(payload, prefix+"message", d.Message)
		if err != nil {
			return "", err
		}
	}
	return payload, nil
}
