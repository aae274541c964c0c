package content

import (
	"strconv"
	"strings"

	apperrors "github.com/jrsteele09/go-profile-optimizer/internal/errors"
)

// Target describes the person a connection request is addressed to.
type Target struct {
	Name     string `json:"name"`
	Industry string `json:"industry"`
}

func invalid(message string) error {
	return apperrors.Validation(apperrors.ErrInvalidRequest, message)
}

// NetworkingMessage fills a randomly chosen connection-request template.
func (e *Engine) NetworkingMessage(target Target, topic string) (string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", invalid("context is required")
	}
	templates := e.catalog.NetworkingTemplates()
	if len(templates) == 0 {
		return "", apperrors.Internal(apperrors.ErrNotFound)
	}

	name := strings.TrimSpace(target.Name)
	if name == "" {
		name = "there"
	}
	industry := strings.TrimSpace(target.Industry)
	field := industry
	if industry == "" {
		industry, field = "your field", "your area"
	}

	r := strings.NewReplacer(
		"{name}", braces.Replace(name),
		"{industry}", braces.Replace(industry),
		"{field}", braces.Replace(field),
		"{topic}", braces.Replace(topic),
		"{mutual_connections}", strconv.Itoa(1+e.rnd.IntN(10)),
	)
	msg := r.Replace(templates[e.rnd.IntN(len(templates))])
	return placeholderPattern.ReplaceAllLiteralString(msg, "this"), nil
}
