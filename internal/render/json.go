package render

import (
	"encoding/json"

	"github.com/dshills/userform/internal/view"
)

// jsonRenderer emits one compact JSON object per frame so a consumer can
// read frames line by line.
type jsonRenderer struct{}

func (r *jsonRenderer) Render(frame view.Frame) ([]byte, error) {
	out, err := json.Marshal(frame)
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}
