package docgen

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"
)

// timestampLayout matches the designer's download naming contract:
// <templateName>_<YYYYMMDD_HHMMSS>.<ext>.
const timestampLayout = "20060102_150405"

type filenameData struct {
	Template  string
	Timestamp string
	Date      string
}

func renderFilename(pattern, templateName, ext string, now time.Time) (string, error) {
	if pattern == "" {
		pattern = "{{.Template}}_{{.Timestamp}}"
	}

	data := filenameData{
		Template:  templateName,
		Timestamp: now.Format(timestampLayout),
		Date:      now.Format("20060102"),
	}

	tmpl, err := template.New("filename").Parse(pattern)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	result := strings.TrimSpace(buf.String())
	if result == "" {
		return "", fmt.Errorf("empty filename")
	}

	if ext != "" && !strings.HasSuffix(strings.ToLower(result), "."+ext) {
		result = result + "." + ext
	}
	return result, nil
}
