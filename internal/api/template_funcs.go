package api

import (
	"html/template"
	"strconv"
	"time"

	"github.com/terraincognita07/wellnest/internal/services"
)

func (handler *Handler) templateFuncMap() template.FuncMap {
	return template.FuncMap{
		"url":           handler.path,
		"formatDate":    formatTemplateDate,
		"optionalInt":   formatOptionalInt,
		"optionalFloat": formatOptionalFloat,
		"optionalText":  formatOptionalText,
	}
}

func formatTemplateDate(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format(services.CheckInDateLayout)
}

func formatOptionalInt(value *int) string {
	if value == nil {
		return "–"
	}
	return strconv.Itoa(*value)
}

func formatOptionalFloat(value *float64) string {
	if value == nil {
		return "–"
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}

func formatOptionalText(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
